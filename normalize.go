package duckhttp

import (
	"fmt"

	"github.com/iancoleman/orderedmap"
)

// Column describes one result column. DeclaredType is empty unless the
// endpoint sent a types list alongside the data.
type Column struct {
	Name         string
	DeclaredType string
}

// Row is one fixed-width result row.
type Row []any

// ResultSet is the normalized form of a response: an ordered column list
// and an ordered sequence of rows.
type ResultSet struct {
	Columns []Column
	Rows    []Row
}

type normalizeOptions struct {
	strictWidth bool
}

type NormalizeOption func(*normalizeOptions)

// WithStrictWidth makes Normalize reject array-of-arrays payloads whose
// rows differ in width from the first row. The default is to pass ragged
// widths through uncorrected.
func WithStrictWidth() NormalizeOption {
	return func(o *normalizeOptions) {
		o.strictWidth = true
	}
}

// Normalize infers a tabular structure from a parsed payload.
//
// Precedence: an envelope supplies columns, types and data explicitly; a
// bare object becomes a single row keyed by its fields; an array of
// objects takes its schema from the first element's keys; an array of
// arrays synthesizes col0..colN-1 names from the first element's width;
// anything else in an array, scalars included, is boxed one element per
// width-1 row under col0. A bare scalar behaves like a one-element scalar
// array. An empty array has no columns and no rows.
func Normalize(payload Payload, opts ...NormalizeOption) (*ResultSet, error) {
	var options normalizeOptions

	for _, opt := range opts {
		opt(&options)
	}

	switch payload.Kind {
	case PayloadEnvelope:
		return normalizeEnvelope(payload.Object)
	case PayloadObject:
		return normalizeObject(payload.Object), nil
	case PayloadArray:
		return normalizeArray(payload.Array, options)
	default:
		return &ResultSet{
			Columns: []Column{{Name: "col0"}},
			Rows:    []Row{{payload.Scalar}},
		}, nil
	}
}

func normalizeEnvelope(object orderedmap.OrderedMap) (*ResultSet, error) {
	rows := envelopeRows(object)

	names := stringList(object, "columns")
	types := stringList(object, "types")

	if len(names) == 0 && len(rows) > 0 {
		names = synthesizeNames(len(rows[0]))
	}

	columns := make([]Column, len(names))

	for i, name := range names {
		columns[i] = Column{Name: name}

		if i < len(types) {
			columns[i].DeclaredType = types[i]
		}
	}

	return &ResultSet{Columns: columns, Rows: rows}, nil
}

// Envelope rows are trusted to be fixed-width already; a stray non-array
// element is boxed rather than rejected.
func envelopeRows(object orderedmap.OrderedMap) []Row {
	data, ok := object.Get("data")

	if !ok {
		return nil
	}

	elements, ok := data.([]any)

	if !ok {
		return nil
	}

	rows := make([]Row, len(elements))

	for i, element := range elements {
		if values, ok := element.([]any); ok {
			rows[i] = Row(values)
		} else {
			rows[i] = Row{element}
		}
	}

	return rows
}

func normalizeObject(object orderedmap.OrderedMap) *ResultSet {
	keys := object.Keys()

	columns := make([]Column, len(keys))
	row := make(Row, len(keys))

	for i, key := range keys {
		columns[i] = Column{Name: key}
		row[i], _ = object.Get(key)
	}

	return &ResultSet{Columns: columns, Rows: []Row{row}}
}

func normalizeArray(elements []any, options normalizeOptions) (*ResultSet, error) {
	if len(elements) == 0 {
		return &ResultSet{}, nil
	}

	if objects, ok := asObjects(elements); ok {
		return normalizeObjectRows(objects), nil
	}

	if tuples, ok := asTuples(elements); ok {
		return normalizeTupleRows(tuples, options)
	}

	// Scalars and mixed-shape arrays: one element per width-1 row.
	rows := make([]Row, len(elements))

	for i, element := range elements {
		rows[i] = Row{element}
	}

	return &ResultSet{
		Columns: []Column{{Name: "col0"}},
		Rows:    rows,
	}, nil
}

// The schema is the first element's key list, in that element's order.
// Later elements may omit keys (null is substituted) or carry extra keys
// (silently dropped); a uniform schema is assumed, not verified.
func normalizeObjectRows(objects []orderedmap.OrderedMap) *ResultSet {
	keys := objects[0].Keys()

	columns := make([]Column, len(keys))

	for i, key := range keys {
		columns[i] = Column{Name: key}
	}

	rows := make([]Row, len(objects))

	for i, object := range objects {
		row := make(Row, len(keys))

		for j, key := range keys {
			if value, ok := object.Get(key); ok {
				row[j] = value
			}
		}

		rows[i] = row
	}

	return &ResultSet{Columns: columns, Rows: rows}
}

func normalizeTupleRows(tuples [][]any, options normalizeOptions) (*ResultSet, error) {
	width := len(tuples[0])

	names := synthesizeNames(width)
	columns := make([]Column, width)

	for i, name := range names {
		columns[i] = Column{Name: name}
	}

	rows := make([]Row, len(tuples))

	for i, tuple := range tuples {
		if options.strictWidth && len(tuple) != width {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrRaggedRow, i, len(tuple), width)
		}

		rows[i] = Row(tuple)
	}

	return &ResultSet{Columns: columns, Rows: rows}, nil
}

func asObjects(elements []any) ([]orderedmap.OrderedMap, bool) {
	objects := make([]orderedmap.OrderedMap, len(elements))

	for i, element := range elements {
		object, ok := element.(orderedmap.OrderedMap)

		if !ok {
			return nil, false
		}

		objects[i] = object
	}

	return objects, true
}

func asTuples(elements []any) ([][]any, bool) {
	tuples := make([][]any, len(elements))

	for i, element := range elements {
		tuple, ok := element.([]any)

		if !ok {
			return nil, false
		}

		tuples[i] = tuple
	}

	return tuples, true
}

func synthesizeNames(width int) []string {
	names := make([]string, width)

	for i := range names {
		names[i] = fmt.Sprintf("col%d", i)
	}

	return names
}

func stringList(object orderedmap.OrderedMap, key string) []string {
	value, ok := object.Get(key)

	if !ok {
		return nil
	}

	elements, ok := value.([]any)

	if !ok {
		return nil
	}

	names := make([]string, len(elements))

	for i, element := range elements {
		if s, ok := element.(string); ok {
			names[i] = s
		}
	}

	return names
}
