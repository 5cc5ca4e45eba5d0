package duckhttp

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TypeKind is the coarse client-side category of a declared DuckDB type.
type TypeKind int

const (
	KindUnknown TypeKind = iota
	KindInteger
	KindFloat
	KindDecimal
	KindString
	KindBoolean
	KindDate
	KindTimestamp
)

// MapType categorizes a declared type string such as "INTEGER",
// "VARCHAR" or "DECIMAL(18,3)". Substring matching keeps the mapping
// tolerant of width and precision suffixes.
func MapType(declared string) TypeKind {
	t := strings.ToUpper(declared)

	switch {
	case strings.Contains(t, "INT"):
		return KindInteger
	case strings.Contains(t, "CHAR"), strings.Contains(t, "TEXT"), strings.Contains(t, "STRING"):
		return KindString
	case strings.Contains(t, "DECIMAL"), strings.Contains(t, "NUMERIC"):
		return KindDecimal
	case strings.Contains(t, "DOUBLE"), strings.Contains(t, "FLOAT"), strings.Contains(t, "REAL"):
		return KindFloat
	case strings.Contains(t, "BOOL"):
		return KindBoolean
	case strings.Contains(t, "TIMESTAMP"), strings.Contains(t, "DATETIME"):
		return KindTimestamp
	case strings.Contains(t, "DATE"):
		return KindDate
	default:
		return KindUnknown
	}
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	time.RFC3339Nano,
	time.RFC3339,
}

// ConvertValue coerces a JSON-decoded value toward the declared kind.
// Values that do not convert cleanly pass through unchanged; the declared
// type is a hint, not a validation rule.
func ConvertValue(value any, kind TypeKind) any {
	if value == nil {
		return nil
	}

	switch kind {
	case KindInteger:
		if f, ok := value.(float64); ok && f == float64(int64(f)) {
			return int64(f)
		}
	case KindDecimal:
		switch v := value.(type) {
		case string:
			if d, err := decimal.NewFromString(v); err == nil {
				return d
			}
		case float64:
			return decimal.NewFromFloat(v)
		}
	case KindDate:
		if s, ok := value.(string); ok {
			if t, err := time.Parse("2006-01-02", s); err == nil {
				return t
			}
		}
	case KindTimestamp:
		if s, ok := value.(string); ok {
			for _, layout := range timestampLayouts {
				if t, err := time.Parse(layout, s); err == nil {
					return t
				}
			}
		}
	}

	return value
}

// ApplyDeclaredTypes converts row values in place for every column that
// carries a declared type. Ragged rows are converted up to their own
// width.
func (rs *ResultSet) ApplyDeclaredTypes() {
	kinds := make([]TypeKind, len(rs.Columns))
	declared := false

	for i, column := range rs.Columns {
		kinds[i] = MapType(column.DeclaredType)

		if column.DeclaredType != "" {
			declared = true
		}
	}

	if !declared {
		return
	}

	for _, row := range rs.Rows {
		for i := range row {
			if i < len(kinds) && kinds[i] != KindUnknown {
				row[i] = ConvertValue(row[i], kinds[i])
			}
		}
	}
}
