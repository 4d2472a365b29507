package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/textcodec/csvtext"
	"github.com/mcncl/textcodec/jsontext"
)

func TestCSVToJSON_ArraysOfArrays(t *testing.T) {
	table := csvtext.Table{{"a", "b"}, {"c"}}
	v, err := CSVToJSON(table, Options{})
	require.NoError(t, err)

	want := jsontext.Array{
		jsontext.Array{jsontext.String("a"), jsontext.String("b")},
		jsontext.Array{jsontext.String("c")},
	}
	assert.True(t, jsontext.Equal(want, v), "got %#v", v)
}

func TestCSVToJSON_WithHeaders(t *testing.T) {
	table := csvtext.Table{
		{"User Name", "Age"},
		{"ada", "36"},
		{"grace", "45"},
	}
	v, err := CSVToJSON(table, Options{Headers: true, KeyStyle: "snake"})
	require.NoError(t, err)

	arr, ok := v.(jsontext.Array)
	require.True(t, ok)
	require.Len(t, arr, 2)

	first := arr[0].(*jsontext.Object)
	assert.Equal(t, []string{"user_name", "age"}, first.Keys())
	name, _ := first.Get("user_name")
	assert.Equal(t, jsontext.String("ada"), name)
}

func TestCSVToJSON_KeyStyles(t *testing.T) {
	table := csvtext.Table{{"first name"}, {"x"}}
	tests := map[string]string{
		"snake":    "first_name",
		"camel":    "firstName",
		"pascal":   "FirstName",
		"original": "first name",
	}
	for style, wantKey := range tests {
		v, err := CSVToJSON(table, Options{Headers: true, KeyStyle: style})
		require.NoError(t, err)
		obj := v.(jsontext.Array)[0].(*jsontext.Object)
		assert.Equal(t, []string{wantKey}, obj.Keys(), "style %s", style)
	}
}

func TestCSVToJSON_ShortAndLongRows(t *testing.T) {
	// A short row simply omits trailing keys.
	table := csvtext.Table{{"a", "b"}, {"1"}}
	v, err := CSVToJSON(table, Options{Headers: true, KeyStyle: "original"})
	require.NoError(t, err)
	obj := v.(jsontext.Array)[0].(*jsontext.Object)
	assert.Equal(t, []string{"a"}, obj.Keys())

	// A row longer than the header has nowhere to put the extra cells.
	table = csvtext.Table{{"a"}, {"1", "2"}}
	_, err = CSVToJSON(table, Options{Headers: true, KeyStyle: "original"})
	require.Error(t, err)
}

func TestJSONToCSV_ArraysOfArrays(t *testing.T) {
	v := jsontext.Array{
		jsontext.Array{jsontext.String("a"), jsontext.Number(1), jsontext.Bool(true), jsontext.Null{}},
		jsontext.Array{jsontext.String("b,c")},
	}
	table, err := JSONToCSV(v)
	require.NoError(t, err)
	assert.Equal(t, csvtext.Table{{"a", "1", "true", "null"}, {"b,c"}}, table)
}

func TestJSONToCSV_ArrayOfObjects(t *testing.T) {
	first := jsontext.NewObject()
	first.Set("name", jsontext.String("ada"))
	first.Set("age", jsontext.Number(36))
	second := jsontext.NewObject()
	second.Set("name", jsontext.String("grace"))
	second.Set("title", jsontext.String("cdr"))

	table, err := JSONToCSV(jsontext.Array{first, second})
	require.NoError(t, err)

	// Header is the union of keys in first-seen order; absent keys become
	// empty cells.
	assert.Equal(t, csvtext.Table{
		{"name", "age", "title"},
		{"ada", "36", ""},
		{"grace", "", "cdr"},
	}, table)
}

func TestJSONToCSV_Rejections(t *testing.T) {
	_, err := JSONToCSV(jsontext.String("scalar"))
	require.Error(t, err)

	_, err = JSONToCSV(jsontext.Array{jsontext.Number(1)})
	require.Error(t, err)

	// Nested containers do not fit in a cell.
	_, err = JSONToCSV(jsontext.Array{jsontext.Array{jsontext.Array{}}})
	require.Error(t, err)

	// Mixing arrays and objects is ambiguous.
	_, err = JSONToCSV(jsontext.Array{jsontext.Array{}, jsontext.NewObject()})
	require.Error(t, err)
}

func TestJSONToCSV_EmptyArray(t *testing.T) {
	table, err := JSONToCSV(jsontext.Array{})
	require.NoError(t, err)
	assert.Equal(t, csvtext.Table{}, table)
}
