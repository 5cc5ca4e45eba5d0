package duckhttp

import (
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func TestMapType(t *testing.T) {
	cases := map[string]TypeKind{
		"INTEGER":       KindInteger,
		"BIGINT":        KindInteger,
		"HUGEINT":       KindInteger,
		"VARCHAR":       KindString,
		"TEXT":          KindString,
		"DOUBLE":        KindFloat,
		"FLOAT":         KindFloat,
		"DECIMAL(18,3)": KindDecimal,
		"BOOLEAN":       KindBoolean,
		"DATE":          KindDate,
		"TIMESTAMP":     KindTimestamp,
		"timestamp":     KindTimestamp,
		"BLOB":          KindUnknown,
		"":              KindUnknown,
	}

	for declared, want := range cases {
		assert.Equal(t, want, MapType(declared), "MapType(%q)", declared)
	}
}

func TestConvertValue(t *testing.T) {
	assert.Equal(t, int64(7), ConvertValue(float64(7), KindInteger).(int64))

	// Non-integral values stay as they are.
	assert.Equal(t, 7.5, ConvertValue(7.5, KindInteger).(float64))

	d := ConvertValue("10.250", KindDecimal).(decimal.Decimal)
	assert.True(t, d.Equal(decimal.RequireFromString("10.25")))

	day := ConvertValue("2024-05-01", KindDate).(time.Time)
	assert.Equal(t, 2024, day.Year())

	at := ConvertValue("2024-05-01 12:30:00", KindTimestamp).(time.Time)
	assert.Equal(t, 30, at.Minute())

	// nil and unconvertible values pass through.
	assert.Equal(t, nil, ConvertValue(nil, KindInteger))
	assert.Equal(t, "not a date", ConvertValue("not a date", KindDate).(string))
}

func TestApplyDeclaredTypes(t *testing.T) {
	rs := &ResultSet{
		Columns: []Column{
			{Name: "id", DeclaredType: "INTEGER"},
			{Name: "name"},
		},
		Rows: []Row{
			{float64(1), "a"},
			{float64(2), "b"},
		},
	}

	rs.ApplyDeclaredTypes()

	assert.Equal(t, []Row{{int64(1), "a"}, {int64(2), "b"}}, rs.Rows)
}

func TestApplyDeclaredTypesNoDeclarations(t *testing.T) {
	rs := &ResultSet{
		Columns: []Column{{Name: "n"}},
		Rows:    []Row{{float64(1)}},
	}

	rs.ApplyDeclaredTypes()

	assert.Equal(t, []Row{{float64(1)}}, rs.Rows)
}
