package cmd

import (
	"github.com/spf13/cobra"
)

var runDescription = "run the whole workflow: train, evaluate, then predict."

var runCmd = &cobra.Command{
	Use:               "run",
	Short:             runDescription,
	Long:              runDescription,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, cleanup, err := newPipeline(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer cleanup()

		_, err = p.Run(cmd.Context())
		return err
	},
}
