// Package model_selection provides scikit-learn compatible data splitting.
package model_selection

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/pkg/errors"
)

// SplitSizes returns the train and test sizes for a fractional test size,
// rounding the test share up as scikit-learn does.
func SplitSizes(nSamples int, testSize float64) (nTrain, nTest int, err error) {
	if testSize <= 0 || testSize >= 1 {
		return 0, 0, errors.NewValidationError("test_size", "must be in the open interval (0, 1)", testSize)
	}
	nTest = int(math.Ceil(testSize * float64(nSamples)))
	nTrain = nSamples - nTest
	if nTrain <= 0 || nTest <= 0 {
		return 0, 0, errors.NewValueError("TrainTestSplit",
			fmt.Sprintf("with n_samples=%d and test_size=%v the resulting train set will be empty", nSamples, testSize))
	}
	return nTrain, nTest, nil
}

// TrainTestSplit shuffles row indices with a generator seeded by randomState
// and returns the train and test index sets. The first nTest indices of the
// permutation form the test set. The same (nSamples, testSize, randomState)
// always yields the same assignment.
func TrainTestSplit(nSamples int, testSize float64, randomState int64) (train, test []int, err error) {
	nTrain, nTest, err := SplitSizes(nSamples, testSize)
	if err != nil {
		return nil, nil, err
	}

	perm := rand.New(rand.NewSource(randomState)).Perm(nSamples)
	test = append([]int(nil), perm[:nTest]...)
	train = append(make([]int, 0, nTrain), perm[nTest:]...)
	return train, test, nil
}

// TrainTestSplitMatrix splits the rows of X and y with TrainTestSplit.
func TrainTestSplitMatrix(X, y mat.Matrix, testSize float64, randomState int64) (XTrain, XTest, yTrain, yTest *mat.Dense, err error) {
	rX, _ := X.Dims()
	rY, _ := y.Dims()
	if rX != rY {
		return nil, nil, nil, nil, errors.NewDimensionError("TrainTestSplitMatrix", rX, rY, 0)
	}

	train, test, err := TrainTestSplit(rX, testSize, randomState)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return TakeRows(X, train), TakeRows(X, test), TakeRows(y, train), TakeRows(y, test), nil
}

// TakeRows copies the given rows of m, in order, into a new matrix.
func TakeRows(m mat.Matrix, rows []int) *mat.Dense {
	_, c := m.Dims()
	out := mat.NewDense(len(rows), c, nil)
	for i, src := range rows {
		for j := 0; j < c; j++ {
			out.Set(i, j, m.At(src, j))
		}
	}
	return out
}
