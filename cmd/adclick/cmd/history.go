package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/pkg/errors"
	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/tracking"
)

var historyDescription = "list recorded pipeline runs, newest first."

var historyCmd = &cobra.Command{
	Use:               "history",
	Short:             historyDescription,
	Long:              historyDescription,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Tracking.DBPath == "" {
			return errors.NewValidationError("tracking.db_path", "must be set to list runs", cfg.Tracking.DBPath)
		}
		store, err := tracking.Open(cfg.Tracking.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := store.ListRuns(cmd.Context(), limit)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tSTAGE\tRECORDED\tACCURACY\tF1\tAUC\tTRAIN\tTEST\tMODEL")
		for _, r := range runs {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%.4f\t%.4f\t%.4f\t%d\t%d\t%s\n",
				r.ID, r.Stage, r.RecordedAt.Local().Format(time.DateTime),
				r.Accuracy, r.F1, r.AUC, r.TrainSamples, r.TestSamples, r.ModelPath)
		}
		return tw.Flush()
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to show; 0 shows all")
}
