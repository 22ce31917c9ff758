// Package cmd implements the adclick command line.
package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/config"
	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/pipeline"
	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/pkg/log"
	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/tracking"
)

var (
	cfgFile   string
	v         = config.NewViper()
	cfg       *config.Config
	logCloser io.Closer
)

var rootDescription = "train and evaluate an SVM that predicts clicks on advertisements."

// rootCmd trains the model when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:               "adclick",
	Short:             rootDescription,
	Long:              rootDescription,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(v, cfgFile); err != nil {
			return err
		}
		logCloser, err = log.SetupLogger(cfg.LogOptions())
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser != nil {
			return logCloser.Close()
		}
		return nil
	},
	RunE: runTrain,
}

// Execute runs the root command and exits with status 1 on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.GetLoggerWithName("cli").Error("command failed", err)
		if logCloser != nil {
			logCloser.Close()
		}
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "path to a YAML config file")
	flags.String("data", v.GetString("data.path"), "path to the advertising CSV (.xz allowed)")
	flags.String("model-dir", v.GetString("model.dir"), "directory holding the model artifact")
	flags.String("model-filename", v.GetString("model.filename"), "model artifact name; a .xz suffix compresses it")
	flags.String("log-level", v.GetString("log.level"), "debug, info, warn or error")
	flags.String("tracking-db", v.GetString("tracking.db_path"), "SQLite file recording runs; empty disables tracking")

	bindings := map[string]string{
		"data.path":        "data",
		"model.dir":        "model-dir",
		"model.filename":   "model-filename",
		"log.level":        "log-level",
		"tracking.db_path": "tracking-db",
	}
	for key, name := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(trainCmd, evaluateCmd, predictCmd, runCmd, historyCmd, configCmd)
}

// newPipeline builds a pipeline from the loaded config. The returned
// function closes the tracking store, if any.
func newPipeline(out io.Writer) (*pipeline.Pipeline, func(), error) {
	opts := []pipeline.Option{pipeline.WithOutput(out)}
	cleanup := func() {}
	if cfg.Tracking.DBPath != "" {
		store, err := tracking.Open(cfg.Tracking.DBPath)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, pipeline.WithTracker(store))
		cleanup = func() {
			if err := store.Close(); err != nil {
				log.GetLoggerWithName("cli").Warn("failed to close tracking db", "error", err)
			}
		}
	}
	return pipeline.New(cfg, opts...), cleanup, nil
}
