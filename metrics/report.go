package metrics

import (
	"fmt"
	"strings"

	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/pkg/errors"
)

// ClassScore holds the per-class precision, recall, F1 and support.
type ClassScore struct {
	Label     int
	Name      string
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// PrecisionRecallFScoreSupport computes per-label scores from a confusion
// matrix. A ratio whose denominator is zero is reported as 0 and raises an
// UndefinedMetricWarning.
func PrecisionRecallFScoreSupport(cm *ConfusionMatrix) []ClassScore {
	k := len(cm.Labels)
	scores := make([]ClassScore, k)
	for i := 0; i < k; i++ {
		tp := cm.Counts[i][i]
		predicted, actual := 0, 0
		for j := 0; j < k; j++ {
			predicted += cm.Counts[j][i]
			actual += cm.Counts[i][j]
		}

		s := ClassScore{Label: cm.Labels[i], Name: fmt.Sprint(cm.Labels[i]), Support: actual}
		s.Precision = safeRatio("precision", tp, predicted, "no predicted samples")
		s.Recall = safeRatio("recall", tp, actual, "no true samples")
		if s.Precision+s.Recall > 0 {
			s.F1 = 2 * s.Precision * s.Recall / (s.Precision + s.Recall)
		}
		scores[i] = s
	}
	return scores
}

func safeRatio(metric string, num, den int, condition string) float64 {
	if den == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning(metric, condition, 0))
		return 0
	}
	return float64(num) / float64(den)
}

// ClassificationReport is the per-class and averaged summary printed after
// evaluation.
type ClassificationReport struct {
	Classes     []ClassScore
	Accuracy    float64
	MacroAvg    ClassScore
	WeightedAvg ClassScore
	Total       int
	Digits      int
}

// NewClassificationReport builds a report for the given labels. targetNames,
// when non-nil, must have one entry per label and replaces the numeric label
// in the output.
func NewClassificationReport(yTrue, yPred []int, labels []int, targetNames []string) (*ClassificationReport, error) {
	cm, err := NewConfusionMatrix(yTrue, yPred, labels)
	if err != nil {
		return nil, err
	}
	if targetNames != nil && len(targetNames) != len(cm.Labels) {
		return nil, errors.NewValueError("ClassificationReport",
			fmt.Sprintf("number of classes, %d, does not match size of target_names, %d", len(cm.Labels), len(targetNames)))
	}

	acc, err := AccuracyLabels(yTrue, yPred)
	if err != nil {
		return nil, err
	}

	classes := PrecisionRecallFScoreSupport(cm)
	for i := range classes {
		if targetNames != nil {
			classes[i].Name = targetNames[i]
		}
	}

	r := &ClassificationReport{Classes: classes, Accuracy: acc, Digits: 2}
	r.MacroAvg.Name = "macro avg"
	r.WeightedAvg.Name = "weighted avg"
	for _, c := range classes {
		r.Total += c.Support
	}
	k := float64(len(classes))
	for _, c := range classes {
		r.MacroAvg.Precision += c.Precision / k
		r.MacroAvg.Recall += c.Recall / k
		r.MacroAvg.F1 += c.F1 / k
		if r.Total > 0 {
			w := float64(c.Support) / float64(r.Total)
			r.WeightedAvg.Precision += c.Precision * w
			r.WeightedAvg.Recall += c.Recall * w
			r.WeightedAvg.F1 += c.F1 * w
		}
	}
	r.MacroAvg.Support = r.Total
	r.WeightedAvg.Support = r.Total
	return r, nil
}

// String renders the report in the familiar scikit-learn layout.
func (r *ClassificationReport) String() string {
	width := len("weighted avg")
	for _, c := range r.Classes {
		if len(c.Name) > width {
			width = len(c.Name)
		}
	}
	digits := r.Digits
	if digits <= 0 {
		digits = 2
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%*s  %9s %9s %9s %9s\n\n", width, "", "precision", "recall", "f1-score", "support")
	row := func(c ClassScore) {
		fmt.Fprintf(&b, "%*s  %9.*f %9.*f %9.*f %9d\n",
			width, c.Name, digits, c.Precision, digits, c.Recall, digits, c.F1, c.Support)
	}
	for _, c := range r.Classes {
		row(c)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%*s  %9s %9s %9.*f %9d\n", width, "accuracy", "", "", digits, r.Accuracy, r.Total)
	row(r.MacroAvg)
	row(r.WeightedAvg)
	return b.String()
}
