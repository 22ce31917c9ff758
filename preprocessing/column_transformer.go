package preprocessing

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/core/model"
	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/pkg/errors"
)

// Remainder decides what happens to input columns no transformer claimed.
type Remainder int

const (
	// RemainderDrop discards unclaimed columns.
	RemainderDrop Remainder = iota
	// RemainderPassthrough appends unclaimed columns, untouched, after all
	// transformer outputs.
	RemainderPassthrough
)

func (r Remainder) String() string {
	if r == RemainderPassthrough {
		return "passthrough"
	}
	return "drop"
}

// ColumnSpec applies one transformer to a subset of input columns.
// The same column may appear in several specs; each spec sees the raw input.
type ColumnSpec struct {
	Name        string
	Transformer model.Transformer
	Columns     []int
}

// NewColumnSpec names the spec after the transformer type, the way
// scikit-learn's make_column_transformer does ("minmaxscaler", ...).
func NewColumnSpec(t model.Transformer, columns ...int) ColumnSpec {
	name := fmt.Sprintf("%T", t)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return ColumnSpec{
		Name:        strings.ToLower(name),
		Transformer: t,
		Columns:     columns,
	}
}

// ColumnTransformer is the scikit-learn ColumnTransformer: it fits each
// transformer on its column subset and horizontally stacks the outputs in
// spec order, followed by the remainder.
type ColumnTransformer struct {
	model.BaseEstimator

	Specs     []ColumnSpec
	Remainder Remainder

	NFeatures        int
	RemainderColumns []int
}

// MakeColumnTransformer builds a ColumnTransformer from specs.
//
//	ct := preprocessing.MakeColumnTransformer(preprocessing.RemainderPassthrough,
//	    preprocessing.NewColumnSpec(preprocessing.NewMinMaxScalerDefault(), 0, 1, 2),
//	    preprocessing.NewColumnSpec(preprocessing.NewStandardScalerDefault(), 0, 1, 2),
//	)
func MakeColumnTransformer(remainder Remainder, specs ...ColumnSpec) *ColumnTransformer {
	return &ColumnTransformer{
		Specs:     specs,
		Remainder: remainder,
	}
}

// Fit fits every transformer on its columns of X.
func (ct *ColumnTransformer) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("ColumnTransformer.Fit", "empty data", errors.ErrEmptyData)
	}
	if len(ct.Specs) == 0 {
		return errors.NewValidationError("transformers", "at least one transformer is required", 0)
	}

	claimed := make(map[int]bool)
	for _, spec := range ct.Specs {
		if len(spec.Columns) == 0 {
			return errors.NewValidationError(spec.Name, "no columns selected", spec.Columns)
		}
		for _, col := range spec.Columns {
			if col < 0 || col >= c {
				return errors.NewValidationError(spec.Name, fmt.Sprintf("column index out of range [0, %d)", c), col)
			}
			claimed[col] = true
		}
	}

	for _, spec := range ct.Specs {
		if err := spec.Transformer.Fit(selectColumns(X, spec.Columns)); err != nil {
			return errors.Wrapf(err, "fit %s", spec.Name)
		}
	}

	ct.NFeatures = c
	ct.RemainderColumns = ct.RemainderColumns[:0]
	for j := 0; j < c; j++ {
		if !claimed[j] {
			ct.RemainderColumns = append(ct.RemainderColumns, j)
		}
	}

	ct.SetFitted()
	return nil
}

// Transform applies the fitted transformers and stacks their outputs.
func (ct *ColumnTransformer) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !ct.IsFitted() {
		return nil, errors.NewNotFittedError("ColumnTransformer", "Transform")
	}
	r, c := X.Dims()
	if c != ct.NFeatures {
		return nil, errors.NewDimensionError("ColumnTransformer.Transform", ct.NFeatures, c, 1)
	}

	blocks := make([]mat.Matrix, 0, len(ct.Specs)+1)
	width := 0
	for _, spec := range ct.Specs {
		out, err := spec.Transformer.Transform(selectColumns(X, spec.Columns))
		if err != nil {
			return nil, errors.Wrapf(err, "transform %s", spec.Name)
		}
		_, w := out.Dims()
		blocks = append(blocks, out)
		width += w
	}
	if ct.Remainder == RemainderPassthrough && len(ct.RemainderColumns) > 0 {
		blocks = append(blocks, selectColumns(X, ct.RemainderColumns))
		width += len(ct.RemainderColumns)
	}

	result := mat.NewDense(r, width, nil)
	offset := 0
	for _, b := range blocks {
		_, w := b.Dims()
		result.Slice(0, r, offset, offset+w).(*mat.Dense).Copy(b)
		offset += w
	}
	return result, nil
}

// FitTransform fits on X and returns the transformed X.
func (ct *ColumnTransformer) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := ct.Fit(X); err != nil {
		return nil, err
	}
	return ct.Transform(X)
}

// OutputWidth is the number of columns Transform produces.
func (ct *ColumnTransformer) OutputWidth() int {
	width := 0
	for _, spec := range ct.Specs {
		width += len(spec.Columns)
	}
	if ct.Remainder == RemainderPassthrough {
		width += len(ct.RemainderColumns)
	}
	return width
}

// FeatureNamesOut returns "<spec>__<column>" names for the output columns,
// and "remainder__<column>" for passthrough columns.
func (ct *ColumnTransformer) FeatureNamesOut(inputNames []string) ([]string, error) {
	if !ct.IsFitted() {
		return nil, errors.NewNotFittedError("ColumnTransformer", "FeatureNamesOut")
	}
	if len(inputNames) != ct.NFeatures {
		return nil, errors.NewDimensionError("ColumnTransformer.FeatureNamesOut", ct.NFeatures, len(inputNames), 1)
	}

	names := make([]string, 0, ct.OutputWidth())
	for _, spec := range ct.Specs {
		for _, col := range spec.Columns {
			names = append(names, spec.Name+"__"+inputNames[col])
		}
	}
	if ct.Remainder == RemainderPassthrough {
		for _, col := range ct.RemainderColumns {
			names = append(names, "remainder__"+inputNames[col])
		}
	}
	return names, nil
}

// String returns a compact description of the transformer.
func (ct *ColumnTransformer) String() string {
	parts := make([]string, len(ct.Specs))
	for i, spec := range ct.Specs {
		parts[i] = fmt.Sprintf("(%s, %v)", spec.Name, spec.Columns)
	}
	return fmt.Sprintf("ColumnTransformer(remainder=%s, transformers=[%s])", ct.Remainder, strings.Join(parts, ", "))
}

func selectColumns(X mat.Matrix, cols []int) *mat.Dense {
	r, _ := X.Dims()
	out := mat.NewDense(r, len(cols), nil)
	for i := 0; i < r; i++ {
		for k, j := range cols {
			out.Set(i, k, X.At(i, j))
		}
	}
	return out
}
