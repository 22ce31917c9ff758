package dataset

import "github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/pkg/errors"

// Field names a column and the kind of values it must hold.
type Field struct {
	Name string
	Kind Kind
}

// Schema is the ordered list of columns a dataset is expected to carry.
type Schema struct {
	Fields []Field
}

// Advertising column names.
const (
	ColDailyTimeSpent     = "Daily Time Spent on Site"
	ColAge                = "Age"
	ColAreaIncome         = "Area Income"
	ColDailyInternetUsage = "Daily Internet Usage"
	ColAdTopicLine        = "Ad Topic Line"
	ColCity               = "City"
	ColMale               = "Male"
	ColCountry            = "Country"
	ColTimestamp          = "Timestamp"
	ColClickedOnAd        = "Clicked on Ad"
)

// AdvertisingSchema describes the advertising click dataset.
var AdvertisingSchema = Schema{Fields: []Field{
	{ColDailyTimeSpent, Numeric},
	{ColAge, Numeric},
	{ColAreaIncome, Numeric},
	{ColDailyInternetUsage, Numeric},
	{ColAdTopicLine, Text},
	{ColCity, Text},
	{ColMale, Numeric},
	{ColCountry, Text},
	{ColTimestamp, Text},
	{ColClickedOnAd, Numeric},
}}

// Names returns the field names in schema order.
func (s Schema) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Validate checks that every field is present and that numeric fields hold
// only numbers. Text fields accept any column. Extra columns are allowed.
func (s Schema) Validate(t *Table) error {
	var missing, invalid []string
	for _, f := range s.Fields {
		c, ok := t.Column(f.Name)
		if !ok {
			missing = append(missing, f.Name)
			continue
		}
		if f.Kind == Numeric && c.Kind != Numeric {
			invalid = append(invalid, f.Name)
		}
	}
	if len(missing) > 0 || len(invalid) > 0 {
		return errors.NewSchemaError("Schema.Validate", missing, invalid)
	}
	return nil
}
