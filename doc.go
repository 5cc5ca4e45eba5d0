// Package duckhttp is a client for DuckDB instances exposed over a plain
// HTTP endpoint. Queries are sent as raw text in a POST body and the
// response, whatever shape the endpoint chooses to return it in, is
// normalized into an ordered set of columns and fixed-width rows that can
// be consumed through a forward-only cursor.
//
// The endpoint may answer with a single JSON document, a JSON array of
// rows, line-delimited JSON records, or a {columns, types, data} envelope.
// All of these surface through the same ResultSet contract.
//
// The package also registers a database/sql driver under the name
// "duckhttp". The driver uses pyformat-style placeholders (%s and
// %(name)s) interpolated client side; the endpoint has no prepared
// statement protocol.
package duckhttp
