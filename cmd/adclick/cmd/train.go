package cmd

import (
	"github.com/spf13/cobra"
)

var trainDescription = "load the dataset, preprocess it and train the SVM, saving the model artifact."

var trainCmd = &cobra.Command{
	Use:               "train",
	Short:             trainDescription,
	Long:              trainDescription,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE:              runTrain,
}

func runTrain(cmd *cobra.Command, args []string) error {
	p, cleanup, err := newPipeline(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer cleanup()

	_, err = p.Train(cmd.Context())
	return err
}
