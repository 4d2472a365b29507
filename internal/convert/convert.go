// Package convert bridges the two codec domains: CSV tables to JSON values
// and back. It exists for the CLI; the codec packages themselves know nothing
// about each other.
package convert

import (
	"fmt"

	"github.com/iancoleman/strcase"

	"github.com/mcncl/textcodec/csvtext"
	"github.com/mcncl/textcodec/jsontext"
)

// Options controls how CSV rows map onto JSON.
type Options struct {
	// Headers treats row 0 as column names and emits an array of objects
	// instead of an array of arrays.
	Headers bool
	// KeyStyle restyles header-derived keys: snake, camel, pascal, or
	// original (leave as-is).
	KeyStyle string
}

// CSVToJSON converts a table into a JSON value: an array of arrays of
// strings, or with opts.Headers an array of objects keyed by the header row.
// A data row shorter than the header omits the trailing keys; one longer than
// the header is an error.
func CSVToJSON(t csvtext.Table, opts Options) (jsontext.Value, error) {
	if !opts.Headers {
		out := jsontext.Array{}
		for _, row := range t {
			jrow := make(jsontext.Array, len(row))
			for i, cell := range row {
				jrow[i] = jsontext.String(cell)
			}
			out = append(out, jrow)
		}
		return out, nil
	}

	if len(t) == 0 {
		return jsontext.Array{}, nil
	}
	header := make([]string, len(t[0]))
	for i, name := range t[0] {
		header[i] = styleKey(name, opts.KeyStyle)
	}
	out := jsontext.Array{}
	for n, row := range t[1:] {
		if len(row) > len(header) {
			return nil, fmt.Errorf("row %d has %d cells but the header has only %d columns", n+1, len(row), len(header))
		}
		obj := jsontext.NewObject()
		for i, cell := range row {
			obj.Set(header[i], jsontext.String(cell))
		}
		out = append(out, obj)
	}
	return out, nil
}

func styleKey(name, style string) string {
	switch style {
	case "snake":
		return strcase.ToSnake(name)
	case "camel":
		return strcase.ToLowerCamel(name)
	case "pascal":
		return strcase.ToCamel(name)
	default:
		return name
	}
}

// JSONToCSV converts a JSON value into a table. An array of arrays of
// scalars maps row-for-row; an array of objects yields a header row holding
// the union of keys in first-seen order, with absent keys rendered as empty
// cells. Anything else is an error.
func JSONToCSV(v jsontext.Value) (csvtext.Table, error) {
	arr, ok := v.(jsontext.Array)
	if !ok {
		kind := "nothing"
		if v != nil {
			kind = v.Kind().String()
		}
		return nil, fmt.Errorf("top-level value must be an array, got %s", kind)
	}
	if len(arr) == 0 {
		return csvtext.Table{}, nil
	}

	switch arr[0].(type) {
	case jsontext.Array:
		return rowsFromArrays(arr)
	case *jsontext.Object:
		return rowsFromObjects(arr)
	default:
		return nil, fmt.Errorf("array elements must be arrays or objects, got %s", arr[0].Kind())
	}
}

func rowsFromArrays(arr jsontext.Array) (csvtext.Table, error) {
	table := make(csvtext.Table, 0, len(arr))
	for n, elem := range arr {
		jrow, ok := elem.(jsontext.Array)
		if !ok {
			return nil, fmt.Errorf("element %d is a %s, expected every element to be an array", n, elem.Kind())
		}
		row := make(csvtext.Row, len(jrow))
		for i, cell := range jrow {
			s, err := cellString(cell)
			if err != nil {
				return nil, fmt.Errorf("row %d, cell %d: %w", n, i, err)
			}
			row[i] = s
		}
		table = append(table, row)
	}
	return table, nil
}

func rowsFromObjects(arr jsontext.Array) (csvtext.Table, error) {
	// Header is the union of keys across all objects, in first-seen order.
	header := csvtext.Row{}
	seen := map[string]bool{}
	for n, elem := range arr {
		obj, ok := elem.(*jsontext.Object)
		if !ok {
			return nil, fmt.Errorf("element %d is a %s, expected every element to be an object", n, elem.Kind())
		}
		for _, key := range obj.Keys() {
			if !seen[key] {
				seen[key] = true
				header = append(header, key)
			}
		}
	}

	table := csvtext.Table{header}
	for n, elem := range arr {
		obj := elem.(*jsontext.Object)
		row := make(csvtext.Row, len(header))
		for i, key := range header {
			val, ok := obj.Get(key)
			if !ok {
				continue
			}
			s, err := cellString(val)
			if err != nil {
				return nil, fmt.Errorf("row %d, key %q: %w", n, key, err)
			}
			row[i] = s
		}
		table = append(table, row)
	}
	return table, nil
}

// cellString renders one scalar as cell content. Strings stay raw; other
// scalars use their compact JSON spelling. Nested containers do not fit in a
// cell.
func cellString(v jsontext.Value) (string, error) {
	switch val := v.(type) {
	case jsontext.String:
		return string(val), nil
	case jsontext.Null, jsontext.Bool, jsontext.Number:
		return jsontext.Serialize(val)
	default:
		kind := "nothing"
		if v != nil {
			kind = v.Kind().String()
		}
		return "", fmt.Errorf("cannot place a %s in a CSV cell", kind)
	}
}
