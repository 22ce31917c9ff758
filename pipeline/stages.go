// Package pipeline implements the advertising click workflow: load the CSV,
// preprocess it into scaled train and test splits, train an SVC, and
// evaluate or sample predictions from the saved model.
package pipeline

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/dataset"
	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/metrics"
	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/pkg/errors"
	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/pkg/log"
	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/preprocessing"
	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/report"
	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/sklearn/model_selection"
	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/sklearn/svm"
)

// DroppedColumns are removed before training.
var DroppedColumns = []string{
	dataset.ColTimestamp,
	dataset.ColClickedOnAd,
	dataset.ColAdTopicLine,
	dataset.ColCountry,
	dataset.ColCity,
}

// NumericColumns are scaled twice, by MinMaxScaler then StandardScaler.
var NumericColumns = []string{
	dataset.ColDailyTimeSpent,
	dataset.ColAge,
	dataset.ColAreaIncome,
	dataset.ColDailyInternetUsage,
	dataset.ColMale,
}

// LabelColumn is the binary target.
const LabelColumn = dataset.ColClickedOnAd

// ClassNames label 0 and 1 in reports.
var ClassNames = []string{"Not Clicked", "Clicked"}

// Split holds the scaled train and test data.
type Split struct {
	XTrain, XTest [][]float64
	YTrain, YTest []int

	// FeatureNames name the transformed columns, e.g. "minmaxscaler__Age".
	FeatureNames []string
}

// NFeatures is the width of the transformed feature rows.
func (s *Split) NFeatures() int {
	if len(s.XTrain) > 0 {
		return len(s.XTrain[0])
	}
	if len(s.XTest) > 0 {
		return len(s.XTest[0])
	}
	return 0
}

// Evaluation is the outcome of Evaluate.
type Evaluation struct {
	Accuracy  float64
	AUC       float64
	Report    *metrics.ClassificationReport
	Confusion *metrics.ConfusionMatrix
}

// LoadData reads the CSV at path and returns it as column-oriented JSON.
func LoadData(path string) ([]byte, error) {
	tbl, err := dataset.ReadCSV(path)
	if err != nil {
		return nil, err
	}
	return dataset.ToJSON(tbl)
}

// Preprocess decodes the JSON from LoadData, validates it, drops the
// non-feature columns, splits rows with the given test share and seed, and
// scales the numeric features with transformers fitted on the training rows.
func Preprocess(data []byte, testSize float64, randomState int64) (*Split, error) {
	tbl, err := dataset.FromJSON(data)
	if err != nil {
		return nil, err
	}
	if err := dataset.AdvertisingSchema.Validate(tbl); err != nil {
		return nil, err
	}

	features, err := tbl.Drop(DroppedColumns...)
	if err != nil {
		return nil, err
	}
	labels, err := tbl.Labels(LabelColumn)
	if err != nil {
		return nil, err
	}
	for i, l := range labels {
		if l != 0 && l != 1 {
			return nil, errors.NewValueError("Preprocess", fmt.Sprintf("row %d: %q must be 0 or 1, got %d", i, LabelColumn, l))
		}
	}
	if missing := features.MissingValues(); len(missing) > 0 {
		return nil, errors.NewValueError("Preprocess", fmt.Sprintf("input contains NaN in columns %v", missing))
	}
	X, err := features.Matrix()
	if err != nil {
		return nil, err
	}

	train, test, err := model_selection.TrainTestSplit(tbl.Len(), testSize, randomState)
	if err != nil {
		return nil, err
	}

	numeric := columnIndices(features.Names(), NumericColumns)
	ct := preprocessing.MakeColumnTransformer(preprocessing.RemainderPassthrough,
		preprocessing.NewColumnSpec(preprocessing.NewMinMaxScalerDefault(), numeric...),
		preprocessing.NewColumnSpec(preprocessing.NewStandardScalerDefault(), numeric...),
	)

	XTrain, err := ct.FitTransform(model_selection.TakeRows(X, train))
	if err != nil {
		return nil, err
	}
	XTest, err := ct.Transform(model_selection.TakeRows(X, test))
	if err != nil {
		return nil, err
	}
	names, err := ct.FeatureNamesOut(features.Names())
	if err != nil {
		return nil, err
	}

	return &Split{
		XTrain:       denseRows(XTrain),
		XTest:        denseRows(XTest),
		YTrain:       pick(labels, train),
		YTest:        pick(labels, test),
		FeatureNames: names,
	}, nil
}

// BuildModel fits an SVC on the training split and saves it as
// <modelDir>/<filename>. It returns the artifact path.
func BuildModel(split *Split, modelDir, filename string, opts ...svm.Option) (string, error) {
	logger := log.GetLoggerWithName("pipeline")
	start := time.Now()

	clf := svm.NewSVC(opts...)
	if err := clf.Fit(rowsMatrix(split.XTrain), labelMatrix(split.YTrain)); err != nil {
		return "", err
	}

	path := filepath.Join(modelDir, filename)
	if err := SaveBundle(newBundle(clf, split), path); err != nil {
		return "", err
	}

	logger.Info("model trained",
		log.ModelNameKey, "SVC",
		log.ModelPathKey, path,
		log.SamplesKey, len(split.XTrain),
		log.FeaturesKey, split.NFeatures(),
		log.SupportVectorsKey, len(clf.SupportVectors),
		log.IterationKey, clf.NIter,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return path, nil
}

// loadForTest loads the artifact and checks it matches the test rows.
func loadForTest(split *Split, path string) (*ModelBundle, mat.Matrix, error) {
	b, err := LoadBundle(path)
	if err != nil {
		return nil, nil, err
	}
	if len(split.XTest) == 0 {
		return nil, nil, errors.NewModelError("Evaluate", "empty test split", errors.ErrEmptyData)
	}
	return b, rowsMatrix(split.XTest), nil
}

// Evaluate scores the saved model on the test split and writes the
// classification report, confusion matrix and accuracy to w.
func Evaluate(w io.Writer, split *Split, path string) (*Evaluation, error) {
	b, XTest, err := loadForTest(split, path)
	if err != nil {
		return nil, err
	}

	pred, err := b.Model.Predict(XTest)
	if err != nil {
		return nil, err
	}
	yPred := matrixLabels(pred)

	acc, err := metrics.AccuracyLabels(split.YTest, yPred)
	if err != nil {
		return nil, err
	}
	rep, err := metrics.NewClassificationReport(split.YTest, yPred, []int{0, 1}, ClassNames)
	if err != nil {
		return nil, err
	}
	cm, err := metrics.NewConfusionMatrix(split.YTest, yPred, []int{0, 1})
	if err != nil {
		return nil, err
	}

	dec, err := b.Model.DecisionFunction(XTest)
	if err != nil {
		return nil, err
	}
	auc, err := metrics.AUCMatrix(labelMatrix(split.YTest), dec)
	if err != nil {
		return nil, err
	}

	if err := report.WriteEvaluation(w, rep, cm, acc); err != nil {
		return nil, err
	}
	return &Evaluation{Accuracy: acc, AUC: auc, Report: rep, Confusion: cm}, nil
}

// Predict writes the model score, the number of predictions and the first
// few predictions beside the true labels. It returns the score.
func Predict(w io.Writer, split *Split, path string) (float64, error) {
	b, XTest, err := loadForTest(split, path)
	if err != nil {
		return 0, err
	}

	pred, err := b.Model.Predict(XTest)
	if err != nil {
		return 0, err
	}
	score, err := b.Model.Score(XTest, labelMatrix(split.YTest))
	if err != nil {
		return 0, err
	}

	if err := report.WritePrediction(w, score, matrixLabels(pred), split.YTest); err != nil {
		return 0, err
	}
	return score, nil
}

// ScoreModel writes the unrounded model score and returns the first prediction.
func ScoreModel(w io.Writer, split *Split, path string) (int, error) {
	b, XTest, err := loadForTest(split, path)
	if err != nil {
		return 0, err
	}

	pred, err := b.Model.Predict(XTest)
	if err != nil {
		return 0, err
	}
	score, err := b.Model.Score(XTest, labelMatrix(split.YTest))
	if err != nil {
		return 0, err
	}
	if err := report.WriteScore(w, score); err != nil {
		return 0, err
	}
	return int(pred.At(0, 0)), nil
}
