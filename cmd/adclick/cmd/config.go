package cmd

import (
	"github.com/spf13/cobra"
)

var configDescription = "print the effective configuration as YAML."

var configCmd = &cobra.Command{
	Use:               "config",
	Short:             configDescription,
	Long:              configDescription,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cfg.Dump(cmd.OutOrStdout())
	},
}
