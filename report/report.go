// Package report renders evaluation and prediction summaries.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/metrics"
	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/pkg/errors"
)

// SampleSize is the number of leading predictions shown by WritePrediction.
const SampleSize = 7

var rule = strings.Repeat("=", 60)

// WriteEvaluation writes the classification report, the binary confusion
// matrix and the overall accuracy.
func WriteEvaluation(w io.Writer, r *metrics.ClassificationReport, cm *metrics.ConfusionMatrix, accuracy float64) error {
	tn, fp, fn, tp, err := cm.Binary()
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("    MODEL EVALUATION - Classification Report (SVM)\n")
	b.WriteString(rule + "\n")
	b.WriteString(r.String() + "\n")
	b.WriteString("Confusion Matrix:\n")
	fmt.Fprintf(&b, "  TN=%d  FP=%d\n", tn, fp)
	fmt.Fprintf(&b, "  FN=%d  TP=%d\n", fn, tp)
	fmt.Fprintf(&b, "Overall Accuracy: %.4f\n", accuracy)
	b.WriteString(rule + "\n")

	_, err = io.WriteString(w, b.String())
	return errors.Wrap(err, "write evaluation report")
}

// WritePrediction writes the score, the prediction count and the first
// SampleSize predictions next to the true labels.
func WritePrediction(w io.Writer, score float64, predictions, actual []int) error {
	var b strings.Builder
	b.WriteString("    LOAD MODEL & PREDICT - Sample Results\n")
	fmt.Fprintf(&b, "Model score on test data: %.4f\n", score)
	fmt.Fprintf(&b, "Total predictions: %d\n", len(predictions))
	fmt.Fprintf(&b, "First %d predictions: %s\n", SampleSize, formatList(head(predictions, SampleSize)))
	fmt.Fprintf(&b, "First %d actual:      %s\n", SampleSize, formatList(head(actual, SampleSize)))
	b.WriteString(rule + "\n")

	_, err := io.WriteString(w, b.String())
	return errors.Wrap(err, "write prediction report")
}

// WriteScore writes the unrounded model score.
func WriteScore(w io.Writer, score float64) error {
	_, err := fmt.Fprintf(w, "Model score on test data: %s\n", formatScore(score))
	return errors.Wrap(err, "write score")
}

func head(v []int, n int) []int {
	if len(v) < n {
		return v
	}
	return v[:n]
}

// formatList renders labels as "[0, 1, 1]".
func formatList(v []int) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.Itoa(x)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// formatScore prints the shortest representation, keeping a decimal point
// on whole numbers ("1.0").
func formatScore(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
