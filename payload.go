package duckhttp

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/iancoleman/orderedmap"
)

// PayloadKind discriminates the shape of a parsed response body. The kind
// is decided once, at the parser boundary; the normalizer switches over
// it rather than re-inspecting values.
type PayloadKind int

const (
	// PayloadScalar is a whole-document primitive (string, number,
	// boolean or null).
	PayloadScalar PayloadKind = iota
	// PayloadObject is a single JSON object whose keys imply the schema.
	PayloadObject
	// PayloadArray is a JSON array, or the records recovered from a
	// line-delimited body.
	PayloadArray
	// PayloadEnvelope is an object that explicitly separates columns,
	// types and data.
	PayloadEnvelope
)

// Payload is the parsed form of a response body. Exactly one variant is
// populated, selected by Kind. Objects preserve key insertion order;
// column order inferred from them is an observable contract.
type Payload struct {
	Kind   PayloadKind
	Scalar any
	Object orderedmap.OrderedMap
	Array  []any

	// LineDelimited records that the body was recovered line by line
	// rather than parsed as a single document.
	LineDelimited bool
}

// ParsePayload interprets a response body. Strict whole-document JSON is
// attempted first; on failure each non-empty line is parsed independently
// and unparseable lines are discarded. An empty body is an empty array. A
// body that yields nothing in either mode is a *ParseError.
func ParsePayload(body []byte) (Payload, error) {
	trimmed := bytes.TrimSpace(body)

	if len(trimmed) == 0 {
		return Payload{Kind: PayloadArray}, nil
	}

	value, err := decodeValue(trimmed)

	if err == nil {
		return classify(value, false), nil
	}

	var records []any

	for _, line := range strings.Split(string(trimmed), "\n") {
		line = strings.TrimSpace(line)

		if line == "" {
			continue
		}

		value, lineErr := decodeValue([]byte(line))

		if lineErr != nil {
			continue
		}

		records = append(records, value)
	}

	if len(records) == 0 {
		return Payload{}, &ParseError{Err: ErrUnparseableBody}
	}

	return Payload{Kind: PayloadArray, Array: records, LineDelimited: true}, nil
}

func classify(value any, lineDelimited bool) Payload {
	switch v := value.(type) {
	case orderedmap.OrderedMap:
		if isEnvelope(v) {
			return Payload{Kind: PayloadEnvelope, Object: v, LineDelimited: lineDelimited}
		}

		return Payload{Kind: PayloadObject, Object: v, LineDelimited: lineDelimited}
	case []any:
		return Payload{Kind: PayloadArray, Array: v, LineDelimited: lineDelimited}
	default:
		return Payload{Kind: PayloadScalar, Scalar: v, LineDelimited: lineDelimited}
	}
}

// An envelope is any object carrying at least one of the columns or data
// keys, even when the other is absent.
func isEnvelope(object orderedmap.OrderedMap) bool {
	if _, ok := object.Get("columns"); ok {
		return true
	}

	_, ok := object.Get("data")

	return ok
}

// decodeValue parses a single JSON document. Objects decode into ordered
// maps at every depth so key order survives.
func decodeValue(data []byte) (any, error) {
	switch data[0] {
	case '{':
		object := orderedmap.New()

		if err := json.Unmarshal(data, object); err != nil {
			return nil, err
		}

		return *object, nil
	case '[':
		var elements []json.RawMessage

		if err := json.Unmarshal(data, &elements); err != nil {
			return nil, err
		}

		values := make([]any, len(elements))

		for i, element := range elements {
			element = bytes.TrimSpace(element)

			value, err := decodeValue(element)

			if err != nil {
				return nil, err
			}

			values[i] = value
		}

		return values, nil
	default:
		var value any

		if err := json.Unmarshal(data, &value); err != nil {
			return nil, err
		}

		return value, nil
	}
}
