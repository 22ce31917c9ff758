// Package dataset holds tabular data loaded from CSV or column-oriented JSON.
package dataset

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/pkg/errors"
)

// Kind is the value type of a column.
type Kind int

const (
	// Numeric columns hold float64 values. Missing cells are NaN.
	Numeric Kind = iota
	// Text columns hold raw strings.
	Text
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Text:
		return "text"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Column is a named, typed column. Exactly one of Num and Text is populated.
type Column struct {
	Name string
	Kind Kind
	Num  []float64
	Text []string
}

// Len returns the number of cells in the column.
func (c Column) Len() int {
	if c.Kind == Numeric {
		return len(c.Num)
	}
	return len(c.Text)
}

// Cell renders the i-th cell as a string.
func (c Column) Cell(i int) string {
	if c.Kind == Text {
		return c.Text[i]
	}
	v := c.Num[i]
	if math.IsNaN(v) {
		return ""
	}
	return formatFloat(v)
}

// NumericColumn builds a numeric column.
func NumericColumn(name string, values []float64) Column {
	return Column{Name: name, Kind: Numeric, Num: values}
}

// TextColumn builds a text column.
func TextColumn(name string, values []string) Column {
	return Column{Name: name, Kind: Text, Text: values}
}

// Table is an ordered set of equally long columns. Tables are not modified
// after construction; Drop and Select return new tables sharing column data.
type Table struct {
	columns []Column
	index   map[string]int
	rows    int
}

// NewTable validates that column names are unique and lengths agree.
func NewTable(columns ...Column) (*Table, error) {
	t := &Table{
		columns: make([]Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		if _, dup := t.index[c.Name]; dup {
			return nil, errors.NewValueError("NewTable", fmt.Sprintf("duplicate column %q", c.Name))
		}
		if i == 0 {
			t.rows = c.Len()
		} else if c.Len() != t.rows {
			return nil, errors.NewDimensionError("NewTable", t.rows, c.Len(), 0)
		}
		t.index[c.Name] = i
		t.columns = append(t.columns, c)
	}
	return t, nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.rows }

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int { return len(t.columns) }

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Columns returns the columns in order.
func (t *Table) Columns() []Column {
	return append([]Column(nil), t.columns...)
}

// Column looks up a column by name.
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.columns[i], true
}

func (t *Table) missing(names []string) []string {
	var missing []string
	for _, n := range names {
		if _, ok := t.index[n]; !ok {
			missing = append(missing, n)
		}
	}
	return missing
}

// Drop returns a table without the named columns. Naming a column that does
// not exist is a SchemaError.
func (t *Table) Drop(names ...string) (*Table, error) {
	if missing := t.missing(names); len(missing) > 0 {
		return nil, errors.NewSchemaError("Drop", missing, nil)
	}
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}
	kept := make([]Column, 0, len(t.columns))
	for _, c := range t.columns {
		if _, ok := drop[c.Name]; !ok {
			kept = append(kept, c)
		}
	}
	return NewTable(kept...)
}

// Select returns a table with only the named columns, in the given order.
func (t *Table) Select(names ...string) (*Table, error) {
	if missing := t.missing(names); len(missing) > 0 {
		return nil, errors.NewSchemaError("Select", missing, nil)
	}
	cols := make([]Column, len(names))
	for i, n := range names {
		cols[i] = t.columns[t.index[n]]
	}
	return NewTable(cols...)
}

// Floats returns a copy of a numeric column.
func (t *Table) Floats(name string) ([]float64, error) {
	c, ok := t.Column(name)
	if !ok {
		return nil, errors.NewSchemaError("Floats", []string{name}, nil)
	}
	if c.Kind != Numeric {
		return nil, errors.NewSchemaError("Floats", nil, []string{name})
	}
	return append([]float64(nil), c.Num...), nil
}

// Labels returns a numeric column as integer class labels.
func (t *Table) Labels(name string) ([]int, error) {
	values, err := t.Floats(name)
	if err != nil {
		return nil, err
	}
	labels := make([]int, len(values))
	for i, v := range values {
		if v != math.Trunc(v) || math.IsNaN(v) {
			return nil, errors.NewValueError("Labels", fmt.Sprintf("column %q row %d: %v is not an integer label", name, i, v))
		}
		labels[i] = int(v)
	}
	return labels, nil
}

// MissingValues returns the names of numeric columns holding at least one NaN
// cell, in column order.
func (t *Table) MissingValues() []string {
	var names []string
	for _, c := range t.columns {
		if c.Kind != Numeric {
			continue
		}
		for _, v := range c.Num {
			if math.IsNaN(v) {
				names = append(names, c.Name)
				break
			}
		}
	}
	return names
}

// Matrix returns the table as a rows x columns matrix. Every column must be numeric.
func (t *Table) Matrix() (*mat.Dense, error) {
	if t.rows == 0 || len(t.columns) == 0 {
		return nil, errors.NewModelError("Table.Matrix", "empty data", errors.ErrEmptyData)
	}
	var invalid []string
	for _, c := range t.columns {
		if c.Kind != Numeric {
			invalid = append(invalid, c.Name)
		}
	}
	if len(invalid) > 0 {
		return nil, errors.NewSchemaError("Table.Matrix", nil, invalid)
	}

	m := mat.NewDense(t.rows, len(t.columns), nil)
	for j, c := range t.columns {
		m.SetCol(j, c.Num)
	}
	return m, nil
}
