package preprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/pkg/errors"
)

func TestStandardScaler_FitTransform(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 10,
		2, 10,
		3, 10,
		4, 10,
	})

	scaler := NewStandardScalerDefault()
	out, err := scaler.FitTransform(X)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{2.5, 10}, scaler.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(1.25), scaler.Scale[0], 1e-12)
	// constant column keeps unit scale
	assert.Equal(t, 1.0, scaler.Scale[1])

	var sum, sumSq float64
	for i := 0; i < 4; i++ {
		v := out.At(i, 0)
		sum += v
		sumSq += v * v
		assert.Equal(t, 0.0, out.At(i, 1))
	}
	assert.InDelta(t, 0.0, sum/4, 1e-12)
	assert.InDelta(t, 1.0, sumSq/4, 1e-12)

	back, err := scaler.InverseTransform(out)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(X, back, 1e-12))
}

func TestStandardScaler_UsesTrainingStatistics(t *testing.T) {
	train := mat.NewDense(2, 1, []float64{0, 2})
	test := mat.NewDense(1, 1, []float64{4})

	scaler := NewStandardScalerDefault()
	require.NoError(t, scaler.Fit(train))

	out, err := scaler.Transform(test)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, out.At(0, 0), 1e-12)
}

func TestStandardScaler_Errors(t *testing.T) {
	scaler := NewStandardScalerDefault()

	_, err := scaler.Transform(mat.NewDense(1, 1, []float64{1}))
	var notFitted *errors.NotFittedError
	assert.True(t, errors.As(err, &notFitted))

	require.NoError(t, scaler.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4})))
	_, err = scaler.Transform(mat.NewDense(1, 3, []float64{1, 2, 3}))
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))

	assert.Error(t, scaler.Fit(&mat.Dense{}))
}

func TestMinMaxScaler_FitTransform(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		10, 5,
		20, 5,
		30, 5,
	})

	scaler := NewMinMaxScalerDefault()
	out, err := scaler.FitTransform(X)
	require.NoError(t, err)

	assert.Equal(t, []float64{10, 5}, scaler.DataMin)
	assert.Equal(t, []float64{30, 5}, scaler.DataMax)
	assert.InDeltaSlice(t, []float64{0, 0.5, 1}, mat.Col(nil, 0, out), 1e-12)
	assert.InDeltaSlice(t, []float64{0, 0, 0}, mat.Col(nil, 1, out), 1e-12)

	back, err := scaler.InverseTransform(out)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(X, back, 1e-12))
}

func TestMinMaxScaler_CustomRangeAndOutOfRange(t *testing.T) {
	scaler := NewMinMaxScaler([2]float64{-1, 1})
	require.NoError(t, scaler.Fit(mat.NewDense(2, 1, []float64{0, 10})))

	out, err := scaler.Transform(mat.NewDense(3, 1, []float64{0, 5, 20}))
	require.NoError(t, err)
	// values outside the training range are not clipped
	assert.InDeltaSlice(t, []float64{-1, 0, 3}, mat.Col(nil, 0, out), 1e-12)

	bad := NewMinMaxScaler([2]float64{1, 1})
	assert.Error(t, bad.Fit(mat.NewDense(1, 1, []float64{1})))
}

func TestScalerStrings(t *testing.T) {
	s := NewStandardScalerDefault()
	assert.Equal(t, "StandardScaler(with_mean=true, with_std=true)", s.String())
	require.NoError(t, s.Fit(mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})))
	assert.Equal(t, "StandardScaler(with_mean=true, with_std=true, n_features=3)", s.String())

	m := NewMinMaxScalerDefault()
	assert.Equal(t, "MinMaxScaler(feature_range=[0.0, 1.0])", m.String())
	assert.Equal(t, [2]float64{0, 1}, m.GetParams()["feature_range"])
}
