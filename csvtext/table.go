// Package csvtext parses and serializes CSV documents. A document is a Table:
// an ordered sequence of rows of raw string cells. Rows may have differing
// lengths and no row is treated as a header. The quote, field separator, and
// row separator characters are configurable through a Dialect.
package csvtext

import (
	"fmt"

	"github.com/mcncl/textcodec/textpos"
)

// Row is one ordered sequence of cells. Cells are raw strings; no type
// coercion is performed.
type Row []string

// Table is an ordered sequence of rows, as parsed. Ragged rows are preserved
// without padding.
type Table []Row

// Equal reports cell-for-cell equality, including row lengths.
func (t Table) Equal(other Table) bool {
	if len(t) != len(other) {
		return false
	}
	for i, row := range t {
		if len(row) != len(other[i]) {
			return false
		}
		for j, cell := range row {
			if other[i][j] != cell {
				return false
			}
		}
	}
	return true
}

// Dialect holds the three characters that structure a CSV document.
type Dialect struct {
	Quote    rune
	FieldSep rune
	RowSep   rune
}

// DefaultDialect is the common comma-separated form.
var DefaultDialect = Dialect{Quote: '"', FieldSep: ',', RowSep: '\n'}

// Validate rejects dialects whose three characters are not pairwise distinct;
// parsing with such a dialect would be ambiguous.
func (d Dialect) Validate() error {
	if d.Quote == d.FieldSep || d.Quote == d.RowSep || d.FieldSep == d.RowSep {
		return &DialectError{Dialect: d}
	}
	return nil
}

// DialectError reports a dialect whose characters collide.
type DialectError struct {
	Dialect Dialect
}

// Error implements the error interface.
func (e *DialectError) Error() string {
	d := e.Dialect
	return fmt.Sprintf("csv: dialect characters must be distinct, got quote %q, field separator %q, row separator %q", d.Quote, d.FieldSep, d.RowSep)
}

// SyntaxError reports a grammar violation during parsing. Offset is the
// absolute rune offset of the offending character; Row counts the rows
// already completed and Cell the cells already completed in the current row.
// Pos carries the derived line and column.
type SyntaxError struct {
	Msg    string
	Offset int
	Row    int
	Cell   int
	Pos    textpos.Position
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("csv: %s at position %d (row: %d, cell: %d, line: %d, col: %d)", e.Msg, e.Offset, e.Row, e.Cell, e.Pos.Line, e.Pos.Col)
}
