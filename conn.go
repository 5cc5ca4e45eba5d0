package duckhttp

import (
	"context"
	"database/sql/driver"
)

// Conn adapts a Client to driver.Conn. Every query runs as one blocking
// round trip on its own cursor.
type Conn struct {
	client *Client
}

// The endpoint is autocommit; Begin hands back no-op transaction
// semantics for interface compliance.
func (c *Conn) Begin() (driver.Tx, error) {
	return &Transaction{}, nil
}

func (c *Conn) Close() error {
	return nil
}

func (c *Conn) Prepare(query string) (driver.Stmt, error) {
	return NewStatement(c.client, query), nil
}

func (c *Conn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	cursor := c.client.Cursor()

	if err := cursor.Execute(ctx, query, namedValueArgs(args)...); err != nil {
		return nil, err
	}

	return NewRows(cursor.Description(), cursor.FetchAll()), nil
}

func (c *Conn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	cursor := c.client.Cursor()

	if err := cursor.Execute(ctx, query, namedValueArgs(args)...); err != nil {
		return nil, err
	}

	return Result{}, nil
}

// Send a trivial query to verify the endpoint answers.
func (c *Conn) Ping(ctx context.Context) error {
	return c.client.Cursor().Execute(ctx, "SELECT 1")
}

// namedValueArgs converts driver values to Interpolate arguments: a map
// when any value is named, the positional slice otherwise.
func namedValueArgs(args []driver.NamedValue) []any {
	if len(args) == 0 {
		return nil
	}

	named := false

	for _, arg := range args {
		if arg.Name != "" {
			named = true
			break
		}
	}

	if !named {
		values := make([]any, len(args))

		for i, arg := range args {
			values[i] = arg.Value
		}

		return values
	}

	values := make(map[string]any, len(args))

	for _, arg := range args {
		values[arg.Name] = arg.Value
	}

	return []any{values}
}
