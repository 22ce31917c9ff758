package cmd

import (
	"github.com/spf13/cobra"
)

var evaluateDescription = "evaluate the saved model on the test split and print a classification report."

var evaluateCmd = &cobra.Command{
	Use:               "evaluate",
	Short:             evaluateDescription,
	Long:              evaluateDescription,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, cleanup, err := newPipeline(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer cleanup()

		split, err := p.Prepare()
		if err != nil {
			return err
		}
		_, err = p.Evaluate(cmd.Context(), split)
		return err
	},
}

func init() {
	flags := evaluateCmd.Flags()
	flags.String("plot", v.GetString("report.plot_path"), "write a bar chart of per-class scores to this file (.png, .svg, .pdf)")

	if err := v.BindPFlag("report.plot_path", flags.Lookup("plot")); err != nil {
		panic(err)
	}
}
