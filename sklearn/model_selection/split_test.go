package model_selection

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestSplitSizes(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		testSize  float64
		wantTrain int
		wantTest  int
		wantErr   bool
	}{
		{name: "advertising dataset", n: 1000, testSize: 0.3, wantTrain: 700, wantTest: 300},
		{name: "test share rounds up", n: 10, testSize: 0.25, wantTrain: 7, wantTest: 3},
		{name: "zero test size", n: 10, testSize: 0, wantErr: true},
		{name: "whole dataset", n: 10, testSize: 1, wantErr: true},
		{name: "empty train set", n: 1, testSize: 0.5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nTrain, nTest, err := SplitSizes(tt.n, tt.testSize)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTrain, nTrain)
			assert.Equal(t, tt.wantTest, nTest)
		})
	}
}

func TestTrainTestSplit_DeterministicPartition(t *testing.T) {
	train1, test1, err := TrainTestSplit(1000, 0.3, 42)
	require.NoError(t, err)
	train2, test2, err := TrainTestSplit(1000, 0.3, 42)
	require.NoError(t, err)

	assert.Equal(t, train1, train2)
	assert.Equal(t, test1, test2)
	assert.Len(t, train1, 700)
	assert.Len(t, test1, 300)

	all := append(append([]int(nil), train1...), test1...)
	sort.Ints(all)
	for i, v := range all {
		require.Equal(t, i, v, "every row must land in exactly one split")
	}

	_, other, err := TrainTestSplit(1000, 0.3, 7)
	require.NoError(t, err)
	assert.NotEqual(t, test1, other)
}

func TestTrainTestSplitMatrix(t *testing.T) {
	X := mat.NewDense(10, 2, nil)
	y := mat.NewDense(10, 1, nil)
	for i := 0; i < 10; i++ {
		X.Set(i, 0, float64(i))
		X.Set(i, 1, float64(i*10))
		y.Set(i, 0, float64(i%2))
	}

	XTrain, XTest, yTrain, yTest, err := TrainTestSplitMatrix(X, y, 0.3, 42)
	require.NoError(t, err)

	rTrain, _ := XTrain.Dims()
	rTest, _ := XTest.Dims()
	assert.Equal(t, 7, rTrain)
	assert.Equal(t, 3, rTest)

	// rows stay aligned between X and y
	for i := 0; i < rTest; i++ {
		src := int(XTest.At(i, 0))
		assert.Equal(t, float64(src*10), XTest.At(i, 1))
		assert.Equal(t, float64(src%2), yTest.At(i, 0))
	}
	for i := 0; i < rTrain; i++ {
		assert.Equal(t, float64(int(XTrain.At(i, 0))%2), yTrain.At(i, 0))
	}

	_, _, _, _, err = TrainTestSplitMatrix(X, mat.NewDense(3, 1, nil), 0.3, 42)
	assert.Error(t, err)
}
