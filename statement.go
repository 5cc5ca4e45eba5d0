package duckhttp

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
)

type Statement struct {
	closed bool
	client *Client
	SQL    string
}

func NewStatement(client *Client, sql string) *Statement {
	return &Statement{
		client: client,
		SQL:    sql,
	}
}

func (s *Statement) Close() error {
	if s.closed {
		return errors.New("statement is already closed")
	}

	s.closed = true

	return nil
}

func (s *Statement) Exec(args []driver.Value) (driver.Result, error) {
	cursor := s.client.Cursor()

	if err := cursor.Execute(context.Background(), s.SQL, valueArgs(args)...); err != nil {
		return nil, err
	}

	return Result{}, nil
}

var (
	namedParamRegex      = regexp.MustCompile(`%\(\w+\)[sdf]`)
	positionalParamRegex = regexp.MustCompile(`%[sdf]`)
)

func (s *Statement) NumInput() int {
	// Named placeholders are filled from a map; skip the stdlib's
	// positional count check for them.
	if namedParamRegex.MatchString(s.SQL) {
		return -1
	}

	return len(positionalParamRegex.FindAllString(s.SQL, -1))
}

func (s *Statement) Query(args []driver.Value) (driver.Rows, error) {
	cursor := s.client.Cursor()

	if err := cursor.Execute(context.Background(), s.SQL, valueArgs(args)...); err != nil {
		return nil, err
	}

	return NewRows(cursor.Description(), cursor.FetchAll()), nil
}

func valueArgs(args []driver.Value) []any {
	values := make([]any, len(args))

	for i, arg := range args {
		values[i] = arg
	}

	return values
}
