package duckhttp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var placeholderPattern = regexp.MustCompile(`%%|%\((\w+)\)[sdf]|%[sdf]`)

// Interpolate substitutes values into pyformat-style placeholders before
// transport; the endpoint has no prepared statement protocol. Positional
// values fill %s/%d/%f in order; a single map value fills %(name)s
// placeholders; %% escapes a literal percent. A query with no values is
// returned untouched.
func Interpolate(query string, args ...any) (string, error) {
	if len(args) == 0 {
		return query, nil
	}

	if len(args) == 1 {
		if named, ok := args[0].(map[string]any); ok {
			return interpolateNamed(query, named)
		}
	}

	var (
		next     int
		substErr error
	)

	out := placeholderPattern.ReplaceAllStringFunc(query, func(match string) string {
		if match == "%%" {
			return "%"
		}

		if strings.HasPrefix(match, "%(") {
			substErr = fmt.Errorf("%w: named placeholder %s with positional values", ErrMissingParameter, match)
			return match
		}

		if next >= len(args) {
			substErr = fmt.Errorf("%w: %d placeholders, %d values", ErrParameterCount, next+1, len(args))
			return match
		}

		literal := renderLiteral(args[next])
		next++

		return literal
	})

	if substErr != nil {
		return "", substErr
	}

	if next != len(args) {
		return "", fmt.Errorf("%w: %d placeholders, %d values", ErrParameterCount, next, len(args))
	}

	return out, nil
}

func interpolateNamed(query string, args map[string]any) (string, error) {
	var substErr error

	out := placeholderPattern.ReplaceAllStringFunc(query, func(match string) string {
		if match == "%%" {
			return "%"
		}

		groups := placeholderPattern.FindStringSubmatch(match)

		if groups[1] == "" {
			substErr = fmt.Errorf("%w: positional placeholder %s with named values", ErrParameterCount, match)
			return match
		}

		value, ok := args[groups[1]]

		if !ok {
			substErr = fmt.Errorf("%w: %q", ErrMissingParameter, groups[1])
			return match
		}

		return renderLiteral(value)
	})

	if substErr != nil {
		return "", substErr
	}

	return out, nil
}

// renderLiteral formats a value as a SQL literal. Strings are quoted with
// single quotes doubled; nil becomes NULL.
func renderLiteral(value any) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case string:
		return quoteString(v)
	case []byte:
		return quoteString(string(v))
	case bool:
		if v {
			return "TRUE"
		}

		return "FALSE"
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case decimal.Decimal:
		return v.String()
	case time.Time:
		return quoteString(v.Format("2006-01-02 15:04:05.999999"))
	default:
		return quoteString(fmt.Sprint(v))
	}
}

func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
