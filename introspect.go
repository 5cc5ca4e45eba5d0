package duckhttp

import (
	"context"
	"fmt"
)

// ColumnInfo describes one table column as reported by DESCRIBE.
type ColumnInfo struct {
	Name     string
	Type     string
	Kind     TypeKind
	Nullable bool
}

// Inspector runs the fixed schema-reflection queries the endpoint
// supports. It relies on the normalizer's array-of-arrays contract: a
// DESCRIBE response surfaces as ordered fixed-position rows.
type Inspector struct {
	cursor *Cursor
}

func NewInspector(client *Client) *Inspector {
	return &Inspector{
		cursor: client.Cursor(),
	}
}

const (
	schemaNamesQuery = `SELECT database_name, schema_name AS nspname
FROM duckdb_schemas() ORDER BY database_name, nspname`

	tableNamesQuery = `SELECT database_name, schema_name, table_name
FROM duckdb_tables()`

	viewNamesQuery = `SELECT table_name
FROM information_schema.tables
WHERE table_type='VIEW' AND table_schema = %s`
)

// SchemaNames lists the schemas visible to the connection.
func (in *Inspector) SchemaNames(ctx context.Context) ([]string, error) {
	if err := in.cursor.Execute(ctx, schemaNamesQuery); err != nil {
		return nil, err
	}

	return in.columnValues(1), nil
}

// TableNames lists base tables across all attached databases.
func (in *Inspector) TableNames(ctx context.Context) ([]string, error) {
	if err := in.cursor.Execute(ctx, tableNamesQuery); err != nil {
		return nil, err
	}

	return in.columnValues(2), nil
}

// ViewNames lists the views of one schema.
func (in *Inspector) ViewNames(ctx context.Context, schema string) ([]string, error) {
	if err := in.cursor.Execute(ctx, viewNamesQuery, schema); err != nil {
		return nil, err
	}

	return in.columnValues(0), nil
}

// Columns describes a table via DESCRIBE. The first two row positions are
// the column name and its declared type, in order; the third, when
// present, is the YES/NO nullability flag.
func (in *Inspector) Columns(ctx context.Context, table, schema string) ([]ColumnInfo, error) {
	if err := in.cursor.Execute(ctx, fmt.Sprintf("DESCRIBE %s", qualify(table, schema))); err != nil {
		return nil, err
	}

	var columns []ColumnInfo

	for _, row := range in.cursor.FetchAll() {
		if len(row) < 2 {
			continue
		}

		declared, _ := row[1].(string)

		info := ColumnInfo{
			Name:     stringValue(row[0]),
			Type:     declared,
			Kind:     MapType(declared),
			Nullable: true,
		}

		if len(row) > 2 && stringValue(row[2]) == "NO" {
			info.Nullable = false
		}

		columns = append(columns, info)
	}

	return columns, nil
}

// PrimaryKeys returns the primary key column names of a table, read from
// PRAGMA table_info: position 1 is the column name, position 5 the pk
// flag.
func (in *Inspector) PrimaryKeys(ctx context.Context, table, schema string) ([]string, error) {
	query := fmt.Sprintf("PRAGMA table_info('%s')", qualify(table, schema))

	if err := in.cursor.Execute(ctx, query); err != nil {
		return nil, err
	}

	var keys []string

	for _, row := range in.cursor.FetchAll() {
		if len(row) > 5 && isTrue(row[5]) {
			keys = append(keys, stringValue(row[1]))
		}
	}

	return keys, nil
}

// ForeignKeys is not supported by the endpoint; the result is always
// empty.
func (in *Inspector) ForeignKeys(ctx context.Context, table, schema string) ([]string, error) {
	return nil, nil
}

// Indexes is not supported by the endpoint; the result is always empty.
func (in *Inspector) Indexes(ctx context.Context, table, schema string) ([]string, error) {
	return nil, nil
}

func (in *Inspector) columnValues(index int) []string {
	var values []string

	for _, row := range in.cursor.FetchAll() {
		if index < len(row) {
			values = append(values, stringValue(row[index]))
		}
	}

	return values
}

func qualify(table, schema string) string {
	if schema == "" {
		return table
	}

	return schema + "." + table
}

func stringValue(value any) string {
	if s, ok := value.(string); ok {
		return s
	}

	return fmt.Sprint(value)
}

// The pk flag arrives as a JSON boolean or the string "true" depending on
// the endpoint's serialization.
func isTrue(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}
