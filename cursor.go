package duckhttp

import (
	"context"
	"fmt"
)

// Cursor is a forward-only pull interface over normalized query results.
// It owns exactly one result set and position counter and is not safe for
// concurrent use; independent cursors created from the same client do not
// share state.
type Cursor struct {
	client  *Client
	opts    []NormalizeOption
	results *ResultSet
	pos     int
}

// Execute runs the full pipeline for one query: interpolate values, gate
// on the read-only classifier, send, parse, normalize. The previous
// result set is replaced and the position reset to 0. On failure at any
// stage the cursor is left empty and exhausted and the originating error
// is returned; only Execute touches the network.
func (c *Cursor) Execute(ctx context.Context, query string, args ...any) error {
	c.results = &ResultSet{}
	c.pos = 0

	query, err := Interpolate(query, args...)

	if err != nil {
		return err
	}

	if c.client.Config().ReadOnly && !IsReadOnly(query) {
		return fmt.Errorf("%w: statement is not a read", ErrReadOnly)
	}

	body, err := c.client.Send(ctx, query)

	if err != nil {
		return err
	}

	payload, err := ParsePayload(body)

	if err != nil {
		return err
	}

	results, err := Normalize(payload, c.opts...)

	if err != nil {
		return err
	}

	results.ApplyDeclaredTypes()

	c.results = results

	return nil
}

// FetchOne returns the row at the current position and advances by one.
// The second return is false at end-of-data.
func (c *Cursor) FetchOne() (Row, bool) {
	if c.pos >= len(c.results.Rows) {
		return nil, false
	}

	row := c.results.Rows[c.pos]
	c.pos++

	return row, true
}

// FetchMany returns up to n rows from the current position, advancing by
// the number actually returned. n values below 1 default to 1. At
// end-of-data the result is empty.
func (c *Cursor) FetchMany(n int) []Row {
	if n < 1 {
		n = 1
	}

	end := min(c.pos+n, len(c.results.Rows))

	rows := c.results.Rows[c.pos:end]
	c.pos = end

	return rows
}

// FetchAll returns every remaining row and exhausts the cursor.
func (c *Cursor) FetchAll() []Row {
	rows := c.results.Rows[c.pos:]
	c.pos = len(c.results.Rows)

	return rows
}

// Close discards the held result set. The cursor behaves afterwards like
// one that never executed: fetches return no rows rather than erroring.
func (c *Cursor) Close() {
	c.results = &ResultSet{}
	c.pos = 0
}

// Description returns the columns of the current result set.
func (c *Cursor) Description() []Column {
	return c.results.Columns
}

// RowCount returns the total number of rows in the current result set,
// independent of the read position.
func (c *Cursor) RowCount() int {
	return len(c.results.Rows)
}

// Pos returns the current read position.
func (c *Cursor) Pos() int {
	return c.pos
}
