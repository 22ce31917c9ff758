package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/pkg/errors"
)

// ToJSON serializes t in column orientation:
//
//	{"<column>": {"0": v0, "1": v1, ...}, ...}
//
// Column order is preserved. Numeric cells are JSON numbers (NaN becomes
// null) and text cells are JSON strings.
func ToJSON(t *Table) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for j, c := range t.columns {
		if j > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONValue(&buf, c.Name); err != nil {
			return nil, err
		}
		buf.WriteString(":{")
		for i := 0; i < c.Len(); i++ {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteByte('"')
			buf.WriteString(strconv.Itoa(i))
			buf.WriteString(`":`)

			var v interface{}
			if c.Kind == Text {
				v = c.Text[i]
			} else if !math.IsNaN(c.Num[i]) {
				v = c.Num[i]
			}
			if err := writeJSONValue(&buf, v); err != nil {
				return nil, errors.Wrapf(err, "column %q row %d", c.Name, i)
			}
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONValue(buf *bytes.Buffer, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "encode json value")
	}
	buf.Write(b)
	return nil
}

// FromJSON parses the column-oriented JSON produced by ToJSON. Rows are
// ordered by their numeric index and every column must carry the same
// index set. A column holding any string is Text; otherwise it is Numeric
// with null read as NaN.
func FromJSON(data []byte) (*Table, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var (
		names []string
		raw   []map[int]interface{}
	)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, errors.Wrap(err, "decode column name")
		}
		name, ok := tok.(string)
		if !ok {
			return nil, errors.NewValueError("FromJSON", fmt.Sprintf("expected column name, got %v", tok))
		}
		cells, err := decodeCells(dec, name)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		raw = append(raw, cells)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.NewValueError("FromJSON", "unexpected data after top-level object")
	}

	var order []int
	columns := make([]Column, len(names))
	for j, name := range names {
		idx := make([]int, 0, len(raw[j]))
		for i := range raw[j] {
			idx = append(idx, i)
		}
		sort.Ints(idx)
		if j == 0 {
			order = idx
		} else if !equalInts(order, idx) {
			return nil, errors.NewValueError("FromJSON", fmt.Sprintf("column %q does not share the row index of %q", name, names[0]))
		}
		col, err := buildColumn(name, idx, raw[j])
		if err != nil {
			return nil, err
		}
		columns[j] = col
	}
	return NewTable(columns...)
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return errors.Wrapf(err, "expected %q", want)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return errors.NewValueError("FromJSON", fmt.Sprintf("expected %q, got %v", want, tok))
	}
	return nil
}

func decodeCells(dec *json.Decoder, column string) (map[int]interface{}, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	cells := make(map[int]interface{})
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, errors.Wrapf(err, "decode row index of column %q", column)
		}
		key, _ := tok.(string)
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 {
			return nil, errors.NewValueError("FromJSON", fmt.Sprintf("column %q: invalid row index %v", column, tok))
		}

		tok, err = dec.Token()
		if err != nil {
			return nil, errors.Wrapf(err, "decode column %q row %d", column, i)
		}
		if _, nested := tok.(json.Delim); nested {
			return nil, errors.NewValueError("FromJSON", fmt.Sprintf("column %q row %d: nested values are not supported", column, i))
		}
		cells[i] = tok
	}
	return cells, expectDelim(dec, '}')
}

func buildColumn(name string, idx []int, cells map[int]interface{}) (Column, error) {
	text := false
	for _, v := range cells {
		if _, ok := v.(string); ok {
			text = true
			break
		}
	}

	if text {
		values := make([]string, len(idx))
		for k, i := range idx {
			switch v := cells[i].(type) {
			case string:
				values[k] = v
			case json.Number:
				values[k] = v.String()
			case bool:
				values[k] = strconv.FormatBool(v)
			}
		}
		return TextColumn(name, values), nil
	}

	values := make([]float64, len(idx))
	for k, i := range idx {
		switch v := cells[i].(type) {
		case nil:
			values[k] = math.NaN()
		case bool:
			if v {
				values[k] = 1
			}
		case json.Number:
			f, err := v.Float64()
			if err != nil {
				return Column{}, errors.Wrapf(err, "column %q row %d", name, i)
			}
			values[k] = f
		}
	}
	return NumericColumn(name, values), nil
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
