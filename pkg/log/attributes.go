// Package log defines standard attribute keys for machine learning operations.
//
// The keys follow a hierarchical naming convention (e.g. "model.name",
// "data.samples") so that records emitted by the loader, preprocessor,
// trainer and evaluator can be filtered the same way.
package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of machine learning model.
	// Examples: "SVC", "StandardScaler", "ColumnTransformer"
	ModelNameKey = "model.name"

	// ModelPathKey is the filesystem location of a persisted model artifact.
	ModelPathKey = "model.path"

	// OperationKey specifies the machine learning operation being performed.
	// Standard values: "fit", "predict", "transform", "fit_transform", "score"
	OperationKey = "ml.operation"

	// ComponentKey identifies which component or package is performing the operation.
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of model lifecycle.
	PhaseKey = "ml.phase"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the dataset.
	FeaturesKey = "data.features"

	// DatasetPathKey is the location the raw dataset was read from.
	DatasetPathKey = "data.path"

	// TrainSamplesKey and TestSamplesKey record the split sizes.
	TrainSamplesKey = "data.train_samples"
	TestSamplesKey  = "data.test_samples"
)

// Performance Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// AccuracyKey records model accuracy for evaluation operations.
	AccuracyKey = "metrics.accuracy"

	PrecisionKey = "metrics.precision"
	RecallKey    = "metrics.recall"
	F1Key        = "metrics.f1"

	// AUCKey records the ROC AUC computed from decision function values.
	AUCKey = "metrics.auc"

	// IterationKey records the current iteration number during iterative processes.
	IterationKey = "training.iteration"

	// SupportVectorsKey records the number of support vectors of a fitted SVC.
	SupportVectorsKey = "training.support_vectors"
)

// Prediction and Output Context
const (
	// PredsKey indicates the number of predictions made.
	PredsKey = "preds.count"
)

// Error and Warning Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// SuggestionKey provides helpful suggestions for resolving issues.
	SuggestionKey = "error.suggestion"
)

// Hyperparameters and Configuration
const (
	// HyperParamsKey contains model hyperparameters as a structured object.
	HyperParamsKey = "model.hyperparams"

	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"
)

// Standard attribute value constants for common operations.
const (
	OperationFit          = "fit"
	OperationPredict      = "predict"
	OperationTransform    = "transform"
	OperationFitTransform = "fit_transform"
	OperationScore        = "score"
	OperationLoad         = "load"
	OperationSave         = "save"

	PhaseTraining      = "training"
	PhaseTesting       = "testing"
	PhaseInference     = "inference"
	PhasePreprocessing = "preprocessing"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorSchemaMismatch    = "SCHEMA_MISMATCH"
	ErrorNotFound          = "NOT_FOUND"
	ErrorConvergence       = "CONVERGENCE_FAILURE"
)
