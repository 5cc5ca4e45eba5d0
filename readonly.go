package duckhttp

import (
	"strings"
	"unicode"

	"github.com/xwb1989/sqlparser"
)

// Verbs of DuckDB introspection statements the SQL parser's grammar does
// not cover.
var introspectionVerbs = map[string]struct{}{
	"SHOW":    {},
	"PRAGMA":  {},
	"EXPLAIN": {},
}

// IsReadOnly reports whether a statement is guaranteed non-mutating. The
// allow-list is syntactic: plain selections and set combinations, plus
// SHOW/PRAGMA/EXPLAIN introspection commands. Anything else, including
// unparseable input, is rejected.
//
// Known limitation: the classification is advisory only. A SELECT that
// calls a mutating function still passes.
func IsReadOnly(query string) bool {
	statement, err := sqlparser.Parse(query)

	if err == nil {
		switch statement.(type) {
		case *sqlparser.Select, *sqlparser.Union, *sqlparser.ParenSelect:
			return true
		case *sqlparser.Show, *sqlparser.OtherRead:
			// OtherRead covers EXPLAIN and DESCRIBE.
			return true
		default:
			return false
		}
	}

	// Dialect statements outside the parser's grammar are accepted on
	// their leading verb alone.
	_, ok := introspectionVerbs[leadingKeyword(query)]

	return ok
}

func leadingKeyword(query string) string {
	query = strings.TrimSpace(query)

	end := 0

	for end < len(query) && unicode.IsLetter(rune(query[end])) {
		end++
	}

	return strings.ToUpper(query[:end])
}
