package dataset

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/pkg/errors"
)

// CompressedSuffix marks files that are read and written through xz.
const CompressedSuffix = ".xz"

// ReadCSV reads a CSV file with a header row. Files ending in ".xz" are
// decompressed on the fly. A missing file yields an error matching both
// errors.ErrDatasetNotFound and fs.ErrNotExist.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapNotFound(err, errors.ErrDatasetNotFound, path)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, CompressedSuffix) {
		zr, err := xz.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", path)
		}
		r = zr
	}

	t, err := ReadCSVFrom(r)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return t, nil
}

// ReadCSVFrom parses CSV from r. A column whose every non-empty cell parses
// as a number becomes Numeric (empty cells become NaN); any other column is Text.
func ReadCSVFrom(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.NewModelError("ReadCSV", "missing header row", errors.ErrEmptyData)
	}
	if err != nil {
		return nil, errors.Wrap(err, "parse header")
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	cells := make([][]string, len(header))
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "parse record")
		}
		for j, v := range rec {
			cells[j] = append(cells[j], v)
		}
	}

	columns := make([]Column, len(header))
	for j, name := range header {
		columns[j] = inferColumn(name, cells[j])
	}
	return NewTable(columns...)
}

func inferColumn(name string, raw []string) Column {
	values := make([]float64, len(raw))
	for i, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			values[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return TextColumn(name, raw)
		}
		values[i] = v
	}
	return NumericColumn(name, values)
}

// WriteCSV writes t with a header row, compressing with xz when path ends in ".xz".
func WriteCSV(path string, t *Table) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create directory %s", dir)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()

	if !strings.HasSuffix(path, CompressedSuffix) {
		return WriteCSVTo(f, t)
	}
	zw, err := xz.NewWriter(f)
	if err != nil {
		return errors.Wrap(err, "create xz writer")
	}
	if err := WriteCSVTo(zw, t); err != nil {
		return err
	}
	return errors.Wrap(zw.Close(), "flush xz stream")
}

// WriteCSVTo writes t as CSV to w.
func WriteCSVTo(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Names()); err != nil {
		return errors.Wrap(err, "write header")
	}
	record := make([]string, t.NumColumns())
	for i := 0; i < t.Len(); i++ {
		for j, c := range t.columns {
			record[j] = c.Cell(i)
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrap(err, "write record")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flush csv")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
