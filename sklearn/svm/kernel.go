package svm

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/pkg/errors"
)

// kernelFunc evaluates K(a, b).
type kernelFunc func(a, b []float64) float64

func newKernel(name string, gamma, coef0 float64, degree int) (kernelFunc, error) {
	switch name {
	case "linear":
		return floats.Dot, nil
	case "rbf":
		return func(a, b []float64) float64 {
			d := floats.Distance(a, b, 2)
			return math.Exp(-gamma * d * d)
		}, nil
	case "poly":
		return func(a, b []float64) float64 {
			return math.Pow(gamma*floats.Dot(a, b)+coef0, float64(degree))
		}, nil
	case "sigmoid":
		return func(a, b []float64) float64 {
			return math.Tanh(gamma*floats.Dot(a, b) + coef0)
		}, nil
	default:
		return nil, errors.NewValidationError("kernel", "must be one of linear, poly, rbf, sigmoid", name)
	}
}

// resolveGamma turns the gamma hyperparameter into a number.
// "scale" is 1 / (n_features * X.var()), "auto" is 1 / n_features.
func resolveGamma(spec string, rows [][]float64) (float64, error) {
	nFeatures := len(rows[0])
	switch spec {
	case "", "scale":
		flat := make([]float64, 0, len(rows)*nFeatures)
		for _, row := range rows {
			flat = append(flat, row...)
		}
		variance := stat.PopVariance(flat, nil)
		if variance == 0 {
			return 1.0, nil
		}
		return 1.0 / (float64(nFeatures) * variance), nil
	case "auto":
		return 1.0 / float64(nFeatures), nil
	default:
		g, err := strconv.ParseFloat(spec, 64)
		if err != nil || g <= 0 {
			return 0, errors.NewValidationError("gamma", fmt.Sprintf("must be %q, %q or a positive number", "scale", "auto"), spec)
		}
		return g, nil
	}
}
