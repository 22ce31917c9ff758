package report

import (
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/metrics"
	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/pkg/errors"
)

// PlotClassificationReport saves a grouped bar chart of per-class precision,
// recall and F1. The image format follows the file extension (.png, .svg, .pdf).
func PlotClassificationReport(r *metrics.ClassificationReport, path string) error {
	if len(r.Classes) == 0 {
		return errors.NewValueError("PlotClassificationReport", "report has no classes")
	}

	p := plot.New()
	p.Title.Text = "Classification Report (SVM)"
	p.Y.Label.Text = "score"
	p.Y.Min = 0
	p.Y.Max = 1.05

	series := []struct {
		name  string
		value func(metrics.ClassScore) float64
	}{
		{"precision", func(c metrics.ClassScore) float64 { return c.Precision }},
		{"recall", func(c metrics.ClassScore) float64 { return c.Recall }},
		{"f1-score", func(c metrics.ClassScore) float64 { return c.F1 }},
	}

	width := vg.Points(18)
	names := make([]string, len(r.Classes))
	for i, c := range r.Classes {
		names[i] = c.Name
	}

	for k, s := range series {
		values := make(plotter.Values, len(r.Classes))
		for i, c := range r.Classes {
			values[i] = s.value(c)
		}
		bars, err := plotter.NewBarChart(values, width)
		if err != nil {
			return errors.Wrapf(err, "build %s bars", s.name)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(k)
		bars.Offset = width * vg.Length(k-1)
		p.Add(bars)
		p.Legend.Add(s.name, bars)
	}
	p.Legend.Top = true
	p.NominalX(names...)

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create directory %s", dir)
		}
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "save plot %s", path)
	}
	return nil
}
