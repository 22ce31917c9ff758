package errors

import (
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		kind    string
		err     error
		wantMsg string
	}{
		{
			name:    "with original error",
			op:      "LoadModel",
			kind:    "failed to decode model",
			err:     fmt.Errorf("unexpected EOF"),
			wantMsg: "adclick: LoadModel: failed to decode model: unexpected EOF",
		},
		{
			name:    "without original error",
			op:      "Predict",
			kind:    "not fitted",
			err:     nil,
			wantMsg: "adclick: Predict: not fitted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			assert.Equal(t, tt.wantMsg, err.Error())

			// スタックトレースの存在確認
			formatted := fmt.Sprintf("%+v", err)
			assert.True(t, strings.Contains(formatted, "errors_test.go"), "expected stack trace to contain test file name")

			var modelErr *ModelError
			assert.True(t, As(err, &modelErr))
			if tt.err != nil {
				assert.True(t, Is(err, tt.err))
			}
		})
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("SVC.Predict", 10, 5, 1)

	assert.Equal(t, "adclick: SVC.Predict: dimension mismatch on axis 1 (features). Expected 10, got 5", err.Error())

	var dimErr *DimensionError
	require.True(t, As(err, &dimErr))
	assert.Equal(t, 10, dimErr.Expected)
	assert.Equal(t, 5, dimErr.Got)
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("SVC", "Predict")

	assert.Equal(t, "adclick: SVC: this model is not fitted yet. Call Fit() before using Predict()", err.Error())

	var notFittedErr *NotFittedError
	assert.True(t, As(err, &notFittedErr))
}

func TestNewSchemaError(t *testing.T) {
	tests := []struct {
		name    string
		missing []string
		invalid []string
		want    string
	}{
		{
			name:    "missing only",
			missing: []string{"Timestamp", "City"},
			want:    "adclick: Drop: schema mismatch: missing columns [Timestamp, City]",
		},
		{
			name:    "invalid only",
			invalid: []string{"Age"},
			want:    "adclick: Drop: schema mismatch: non-numeric values in columns [Age]",
		},
		{
			name:    "both",
			missing: []string{"City"},
			invalid: []string{"Age"},
			want:    "adclick: Drop: schema mismatch: missing columns [City]; non-numeric values in columns [Age]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewSchemaError("Drop", tt.missing, tt.invalid)
			assert.Equal(t, tt.want, err.Error())

			var schemaErr *SchemaError
			require.True(t, As(err, &schemaErr))
			assert.Equal(t, tt.missing, schemaErr.Missing)
		})
	}
}

func TestWrapNotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.sav")
	_, openErr := os.Open(missing)
	require.Error(t, openErr)

	err := WrapNotFound(openErr, ErrModelNotFound, missing)
	assert.True(t, Is(err, ErrModelNotFound))
	assert.True(t, Is(err, fs.ErrNotExist))
	assert.False(t, Is(err, ErrDatasetNotFound))
	assert.Contains(t, err.Error(), missing)

	other := WrapNotFound(fmt.Errorf("permission denied"), ErrModelNotFound, missing)
	assert.False(t, Is(other, ErrModelNotFound))

	assert.NoError(t, WrapNotFound(nil, ErrModelNotFound, missing))
}

func TestWarn(t *testing.T) {
	var got []error
	SetWarningHandler(func(w error) { got = append(got, w) })
	t.Cleanup(func() { SetWarningHandler(func(error) {}) })

	Warn(NewConvergenceWarning("SVC", 100, ""))
	Warn(NewUndefinedMetricWarning("precision", "no predicted samples", 0))

	require.Len(t, got, 2)
	assert.Contains(t, got[0].Error(), "SVC failed to converge after 100 iterations")
	assert.Equal(t, "'precision' is ill-defined and being set to 0.000000 due to no predicted samples.", got[1].Error())

	// zerolog関数が設定されている場合はそちらが優先される
	var routed int
	SetZerologWarnFunc(func(error) { routed++ })
	t.Cleanup(func() { SetZerologWarnFunc(nil) })
	Warn(NewConvergenceWarning("SVC", 1, "cap reached"))
	assert.Equal(t, 1, routed)
	assert.Len(t, got, 2)
}

func TestCheckNumericalStability(t *testing.T) {
	assert.NoError(t, CheckNumericalStability("op", []float64{1, 2, 3}, 0))
	assert.NoError(t, CheckScalar("op", 0.5, 0))

	nan := math.NaN()
	err := CheckNumericalStability("smo_update", []float64{1, nan}, 7)
	var instab *NumericalInstabilityError
	require.True(t, As(err, &instab))
	assert.Equal(t, 7, instab.Iteration)
	assert.Error(t, CheckScalar("op", nan, 0))
}
