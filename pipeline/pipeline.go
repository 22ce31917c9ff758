package pipeline

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/config"
	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/pkg/errors"
	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/pkg/log"
	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/report"
	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/sklearn/svm"
	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/tracking"
)

// Pipeline runs the stages with settings taken from a Config.
type Pipeline struct {
	cfg     *config.Config
	out     io.Writer
	logger  log.Logger
	tracker *tracking.Store
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithOutput sets where reports are written. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(p *Pipeline) {
		p.out = w
	}
}

// WithLogger replaces the "pipeline" component logger.
func WithLogger(l log.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// WithTracker records every stage in store.
func WithTracker(store *tracking.Store) Option {
	return func(p *Pipeline) {
		p.tracker = store
	}
}

// New creates a Pipeline for cfg.
func New(cfg *config.Config, opts ...Option) *Pipeline {
	p := &Pipeline{cfg: cfg, out: os.Stdout}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = log.GetLoggerWithName("pipeline")
	}
	return p
}

// ModelPath is where the artifact is written and read.
func (p *Pipeline) ModelPath() string {
	return p.cfg.ModelPath()
}

func (p *Pipeline) svmOptions() []svm.Option {
	return []svm.Option{
		svm.WithKernel(p.cfg.SVM.Kernel),
		svm.WithC(p.cfg.SVM.C),
		svm.WithGamma(p.cfg.SVM.Gamma),
		svm.WithTol(p.cfg.SVM.Tol),
		svm.WithMaxIter(p.cfg.SVM.MaxIter),
		svm.WithRandomState(p.cfg.SVM.RandomState),
	}
}

// Prepare loads and preprocesses the configured dataset.
func (p *Pipeline) Prepare() (split *Split, err error) {
	err = errors.SafeExecute("prepare", func() error {
		start := time.Now()
		data, err := LoadData(p.cfg.Data.Path)
		if err != nil {
			return err
		}
		split, err = Preprocess(data, p.cfg.Split.TestSize, p.cfg.Split.RandomState)
		if err != nil {
			return err
		}
		p.logger.Info("data prepared",
			log.DatasetPathKey, p.cfg.Data.Path,
			log.TrainSamplesKey, len(split.XTrain),
			log.TestSamplesKey, len(split.XTest),
			log.FeaturesKey, split.NFeatures(),
			log.RandomSeedKey, p.cfg.Split.RandomState,
			log.DurationMsKey, time.Since(start).Milliseconds(),
		)
		return nil
	})
	return split, err
}

// Train prepares the data, fits the model and saves the artifact.
func (p *Pipeline) Train(ctx context.Context) (*Split, error) {
	split, err := p.Prepare()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	err = errors.SafeExecute("train", func() error {
		_, err := BuildModel(split, p.cfg.Model.Dir, p.cfg.Model.Filename, p.svmOptions()...)
		return err
	})
	if err != nil {
		return nil, err
	}

	p.record(ctx, tracking.Run{
		Stage:        tracking.StageTrain,
		TrainSamples: len(split.XTrain),
		TestSamples:  len(split.XTest),
		DurationMs:   time.Since(start).Milliseconds(),
	})
	return split, nil
}

// Evaluate writes the evaluation report for the saved model and returns its accuracy.
func (p *Pipeline) Evaluate(ctx context.Context, split *Split) (float64, error) {
	start := time.Now()
	var ev *Evaluation
	err := errors.SafeExecute("evaluate", func() error {
		var err error
		ev, err = Evaluate(p.out, split, p.ModelPath())
		return err
	})
	if err != nil {
		return 0, err
	}

	positive := ev.Report.Classes[1]
	p.logger.Info("model evaluated",
		log.ModelPathKey, p.ModelPath(),
		log.AccuracyKey, ev.Accuracy,
		log.PrecisionKey, positive.Precision,
		log.RecallKey, positive.Recall,
		log.F1Key, positive.F1,
		log.AUCKey, ev.AUC,
	)

	if path := p.cfg.Report.PlotPath; path != "" {
		if err := report.PlotClassificationReport(ev.Report, path); err != nil {
			return 0, err
		}
		p.logger.Info("report chart written", "path", path)
	}

	p.record(ctx, tracking.Run{
		Stage:       tracking.StageEvaluate,
		Accuracy:    ev.Accuracy,
		Precision:   positive.Precision,
		Recall:      positive.Recall,
		F1:          positive.F1,
		AUC:         ev.AUC,
		TestSamples: len(split.XTest),
		DurationMs:  time.Since(start).Milliseconds(),
	})
	return ev.Accuracy, nil
}

// Predict writes sample predictions from the saved model and returns its score.
func (p *Pipeline) Predict(ctx context.Context, split *Split) (float64, error) {
	start := time.Now()
	var score float64
	err := errors.SafeExecute("predict", func() error {
		var err error
		score, err = Predict(p.out, split, p.ModelPath())
		return err
	})
	if err != nil {
		return 0, err
	}

	p.logger.Info("predictions made",
		log.ModelPathKey, p.ModelPath(),
		log.PredsKey, len(split.XTest),
		log.AccuracyKey, score,
	)
	p.record(ctx, tracking.Run{
		Stage:       tracking.StagePredict,
		Accuracy:    score,
		TestSamples: len(split.XTest),
		DurationMs:  time.Since(start).Milliseconds(),
	})
	return score, nil
}

// ScoreModel writes the raw score of the saved model and returns the first prediction.
func (p *Pipeline) ScoreModel(split *Split) (int, error) {
	var first int
	err := errors.SafeExecute("score", func() error {
		var err error
		first, err = ScoreModel(p.out, split, p.ModelPath())
		return err
	})
	return first, err
}

// Result summarizes a full Run.
type Result struct {
	Accuracy float64
	Score    float64
}

// Run executes train, evaluate and predict in order, stopping at the first failure.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	split, err := p.Train(ctx)
	if err != nil {
		return nil, err
	}
	acc, err := p.Evaluate(ctx, split)
	if err != nil {
		return nil, err
	}
	score, err := p.Predict(ctx, split)
	if err != nil {
		return nil, err
	}
	return &Result{Accuracy: acc, Score: score}, nil
}

// record stores a run when tracking is enabled. Tracking failures are logged, not returned.
func (p *Pipeline) record(ctx context.Context, run tracking.Run) {
	if p.tracker == nil {
		return
	}
	run.ModelName = "SVC"
	run.ModelPath = p.ModelPath()
	if _, err := p.tracker.RecordRun(ctx, run); err != nil {
		p.logger.Warn("failed to record run", "error", err, log.PhaseKey, string(run.Stage))
	}
}
