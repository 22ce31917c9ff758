package cmd

import (
	"github.com/spf13/cobra"
)

var predictDescription = "load the saved model and print sample predictions on the test split."

var predictCmd = &cobra.Command{
	Use:               "predict",
	Short:             predictDescription,
	Long:              predictDescription,
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
		if scoreOnly, _ := cmd.Flags().GetBool("score-only"); scoreOnly {
			_, err = p.ScoreModel(split)
			return err
		}
		_, err = p.Predict(cmd.Context(), split)
		return err
	},
}

func init() {
	predictCmd.Flags().Bool("score-only", false, "print only the unrounded model score")
}
