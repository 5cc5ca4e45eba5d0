package duckhttp

import (
	"bytes"
	"errors"
	"fmt"
)

var (
	// ErrUnparseableBody is returned when a response body is neither valid
	// whole-document JSON nor contains any valid line-delimited JSON record.
	ErrUnparseableBody = errors.New("response body is not JSON or line-delimited JSON")
	// ErrReadOnly is returned before any network call when the connection is
	// read-only and the statement is not classified as a read.
	ErrReadOnly = errors.New("connection is read-only")
	// ErrRaggedRow is returned in strict-width mode when a row's width does
	// not match the inferred column count.
	ErrRaggedRow = errors.New("row width does not match column count")
	// ErrMissingParameter is returned when a named placeholder has no value.
	ErrMissingParameter = errors.New("named parameter not provided")
	// ErrParameterCount is returned when the number of positional values does
	// not match the number of placeholders.
	ErrParameterCount = errors.New("parameter count mismatch")
	// ErrUnknownProfile is returned when a profile name is not present in a
	// profiles file.
	ErrUnknownProfile = errors.New("profile not found")
)

// TransportError reports a failed round trip to the endpoint: either a
// non-2xx status, or a network-level failure before any status was
// received (StatusCode 0).
type TransportError struct {
	StatusCode int
	Body       []byte
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("query request failed: %v", e.Err)
	}

	return fmt.Sprintf("query request failed with status %d: %s", e.StatusCode, bytes.TrimSpace(e.Body))
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError reports a body that could not be interpreted in any of the
// accepted formats. The query is considered to have produced no result.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
