package csvtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize_Simple(t *testing.T) {
	out := Serialize(Table{{"a", "b"}, {"c", "d"}})
	assert.Equal(t, "a,b\nc,d", out)
}

func TestSerialize_QuotesOnlyWhenNeeded(t *testing.T) {
	tests := []struct {
		name string
		in   Table
		want string
	}{
		{"PlainCells", Table{{"a", "b c", "d.e"}}, "a,b c,d.e"},
		{"EmbeddedSeparator", Table{{"a,b", "c"}}, `"a,b",c`},
		{"EmbeddedNewline", Table{{"a\nb"}}, "\"a\nb\""},
		{"EmbeddedQuote", Table{{`a"b`}}, `"a""b"`},
		{"QuoteOnly", Table{{`"`}}, `""""`},
		{"EmptyCell", Table{{"", "x"}}, ",x"},
		{"SpacesStayBare", Table{{"  padded  "}}, "  padded  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Serialize(tt.in))
		})
	}
}

func TestSerializeDialect_AlternateCharacters(t *testing.T) {
	d := Dialect{Quote: '\'', FieldSep: ';', RowSep: '|'}
	out, err := SerializeDialect(Table{{"a;b", "c"}, {"d|e"}}, d)
	require.NoError(t, err)
	assert.Equal(t, "'a;b';c|'d|e'", out)

	// A comma is ordinary content in this dialect.
	out, err = SerializeDialect(Table{{"a,b"}}, d)
	require.NoError(t, err)
	assert.Equal(t, "a,b", out)
}

func TestRoundTrip_TableSurvives(t *testing.T) {
	tables := []Table{
		{{"a", "b"}, {"c", "d"}},
		{{"a,b", `quote " inside`, "line\nbreak"}},
		{{"ragged"}, {"row", "lengths", "kept"}, {"", ""}},
		{{`""`, `,,,`, "\n"}},
	}
	for _, table := range tables {
		back, err := Parse(Serialize(table))
		require.NoError(t, err)
		assert.True(t, table.Equal(back), "table %#v changed across a round trip, got %#v", table, back)
	}
}

func TestRoundTrip_AlternateDialect(t *testing.T) {
	d := Dialect{Quote: '\'', FieldSep: '\t', RowSep: '\n'}
	table := Table{{"a\tb", "it's", "plain"}, {"second\nrow"}}

	out, err := SerializeDialect(table, d)
	require.NoError(t, err)
	back, err := ParseDialect(out, d)
	require.NoError(t, err)
	assert.True(t, table.Equal(back))
}
