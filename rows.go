package duckhttp

import (
	"database/sql/driver"
	"io"
)

// Rows adapts a fetched result set to driver.Rows.
type Rows struct {
	columns []Column
	names   []string
	index   int
	rows    []Row
}

func NewRows(columns []Column, rows []Row) *Rows {
	names := make([]string, len(columns))

	for i, column := range columns {
		names[i] = column.Name
	}

	return &Rows{
		columns: columns,
		names:   names,
		index:   -1,
		rows:    rows,
	}
}

func (r *Rows) Columns() []string {
	return r.names
}

// ColumnTypeDatabaseTypeName reports the type the endpoint declared for
// the column, when it declared one.
func (r *Rows) ColumnTypeDatabaseTypeName(index int) string {
	return r.columns[index].DeclaredType
}

func (r *Rows) Close() error {
	r.rows = nil

	return nil
}

func (r *Rows) Next(dest []driver.Value) error {
	if r.index >= len(r.rows)-1 {
		return io.EOF
	}

	r.index++

	for i, value := range r.rows[r.index] {
		if i < len(dest) {
			dest[i] = value
		}
	}

	return nil
}
