package dataset

import (
	"encoding/json"
	"io/fs"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/pkg/errors"
)

func TestReadCSV_AdvertisingSample(t *testing.T) {
	tbl, err := ReadCSV(filepath.Join("testdata", "advertising_sample.csv"))
	require.NoError(t, err)

	assert.Equal(t, 10, tbl.Len())
	assert.Equal(t, AdvertisingSchema.Names(), tbl.Names())
	require.NoError(t, AdvertisingSchema.Validate(tbl))

	age, err := tbl.Floats(ColAge)
	require.NoError(t, err)
	assert.Equal(t, 35.0, age[0])

	city, ok := tbl.Column(ColCity)
	require.True(t, ok)
	assert.Equal(t, Text, city.Kind)
	assert.Equal(t, "Wrightburgh", city.Text[0])

	labels, err := tbl.Labels(ColClickedOnAd)
	require.NoError(t, err)
	assert.Equal(t, 1, labels[7])
}

func TestReadCSV_NotFound(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDatasetNotFound))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestReadCSVFrom_Errors(t *testing.T) {
	_, err := ReadCSVFrom(strings.NewReader(""))
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	_, err = ReadCSVFrom(strings.NewReader("a,b\n1,2\n3\n"))
	assert.Error(t, err, "ragged rows are rejected")
}

func TestReadCSVFrom_EmptyCellsAreNaN(t *testing.T) {
	tbl, err := ReadCSVFrom(strings.NewReader("a,b\n1,x\n,y\n"))
	require.NoError(t, err)

	a, err := tbl.Floats("a")
	require.NoError(t, err)
	assert.Equal(t, 1.0, a[0])
	assert.True(t, math.IsNaN(a[1]))

	_, err = tbl.Floats("b")
	var se *errors.SchemaError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, []string{"b"}, se.Invalid)

	assert.Equal(t, []string{"a"}, tbl.MissingValues(), "text columns are never reported")
}

func TestTable_MissingValuesNone(t *testing.T) {
	tbl, err := ReadCSVFrom(strings.NewReader("a,b\n1,2\n3,4\n"))
	require.NoError(t, err)
	assert.Empty(t, tbl.MissingValues())
}

func TestCSV_CompressedRoundTrip(t *testing.T) {
	src, err := ReadCSV(filepath.Join("testdata", "advertising_sample.csv"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "nested", "advertising.csv.xz")
	require.NoError(t, WriteCSV(path, src))

	got, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, src.Names(), got.Names())
	assert.Equal(t, src.Len(), got.Len())

	income, err := got.Floats(ColAreaIncome)
	require.NoError(t, err)
	assert.Equal(t, 61833.9, income[0])
}

func TestSchemaValidate(t *testing.T) {
	tbl, err := ReadCSV(filepath.Join("testdata", "missing_timestamp.csv"))
	require.NoError(t, err)

	err = AdvertisingSchema.Validate(tbl)
	var se *errors.SchemaError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, []string{ColTimestamp}, se.Missing)
	assert.Equal(t, []string{ColAge}, se.Invalid)
	assert.Contains(t, err.Error(), "Timestamp")
}

func TestTable_DropAndSelect(t *testing.T) {
	tbl, err := NewTable(
		NumericColumn("a", []float64{1, 2}),
		TextColumn("b", []string{"x", "y"}),
		NumericColumn("c", []float64{3, 4}),
	)
	require.NoError(t, err)

	dropped, err := tbl.Drop("b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, dropped.Names())
	assert.Equal(t, 3, tbl.NumColumns(), "source table is unchanged")

	m, err := dropped.Matrix()
	require.NoError(t, err)
	assert.Equal(t, 4.0, m.At(1, 1))

	_, err = tbl.Drop("b", "zzz")
	var se *errors.SchemaError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, []string{"zzz"}, se.Missing)

	selected, err := tbl.Select("c", "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, selected.Names())

	_, err = tbl.Matrix()
	assert.Error(t, err, "text column cannot become a matrix")
}

func TestNewTable_Errors(t *testing.T) {
	_, err := NewTable(NumericColumn("a", []float64{1}), NumericColumn("a", []float64{2}))
	assert.Error(t, err)

	_, err = NewTable(NumericColumn("a", []float64{1}), NumericColumn("b", []float64{2, 3}))
	var de *errors.DimensionError
	assert.True(t, errors.As(err, &de))
}

func TestJSON_ColumnOrientation(t *testing.T) {
	tbl, err := NewTable(
		NumericColumn("Age", []float64{35, 31.5}),
		TextColumn("City", []string{"Wrightburgh", "West \"Jodi\""}),
		NumericColumn("Male", []float64{0, math.NaN()}),
	)
	require.NoError(t, err)

	data, err := ToJSON(tbl)
	require.NoError(t, err)
	assert.Equal(t,
		`{"Age":{"0":35,"1":31.5},"City":{"0":"Wrightburgh","1":"West \"Jodi\""},"Male":{"0":0,"1":null}}`,
		string(data))
	assert.True(t, json.Valid(data))

	back, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, tbl.Names(), back.Names())
	city, _ := back.Column("City")
	assert.Equal(t, "West \"Jodi\"", city.Text[1])
	male, _ := back.Column("Male")
	assert.True(t, math.IsNaN(male.Num[1]))
}

func TestFromJSON_OrdersRowsByIndex(t *testing.T) {
	tbl, err := FromJSON([]byte(`{"z":{"10":3,"2":1,"9":2},"a":{"9":"b","2":"a","10":"c"}}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"z", "a"}, tbl.Names())
	z, err := tbl.Floats("z")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, z)
	a, _ := tbl.Column("a")
	assert.Equal(t, []string{"a", "b", "c"}, a.Text)
}

func TestFromJSON_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not an object", input: `[1,2]`},
		{name: "mismatched index", input: `{"a":{"0":1},"b":{"1":2}}`},
		{name: "bad row index", input: `{"a":{"x":1}}`},
		{name: "nested value", input: `{"a":{"0":[1]}}`},
		{name: "truncated", input: `{"a":{"0":1}`},
		{name: "trailing data", input: `{"a":{"0":1}} {}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromJSON([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}
