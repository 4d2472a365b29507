package csvtext

import (
	"strings"

	"github.com/mcncl/textcodec/textpos"
)

// Parse converts a CSV document into a Table using DefaultDialect.
func Parse(text string) (Table, error) {
	return ParseDialect(text, DefaultDialect)
}

// ParseDialect converts a CSV document into a Table in a single left-to-right
// scan. The character immediately after a separator (or the start of input)
// decides whether the cell is quoted. On failure the returned error is a
// *SyntaxError or, for a colliding dialect, a *DialectError; no partial table
// is returned.
func ParseDialect(text string, d Dialect) (Table, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	src := []rune(text)
	table := Table{}
	row := Row{}

	// Scan state: whether the cursor is inside a cell, where that cell
	// started, whether it opened with a quote, and whether the previous
	// character was a quote not yet matched by another.
	outOfCell := true
	cellStart := 0
	cellQuoted := false
	lastWasQuote := false

	fail := func(offset int, msg string) (Table, error) {
		return nil, &SyntaxError{
			Msg:    msg,
			Offset: offset,
			Row:    len(table),
			Cell:   len(row),
			Pos:    textpos.Resolve(src, offset),
		}
	}

	for i, c := range src {
		couldEndCell := c == d.FieldSep || c == d.RowSep

		if outOfCell {
			outOfCell = false
			cellStart = i
			lastWasQuote = false
			cellQuoted = c == d.Quote
			// A separator right here means the new cell is empty and
			// ends immediately; anything else is cell content.
			if !couldEndCell {
				continue
			}
		}

		if !cellQuoted && c == d.Quote {
			return fail(i, "unexpected quote in unquoted cell")
		}

		if cellQuoted && lastWasQuote && !couldEndCell {
			if c == d.Quote {
				// Doubled quote: an escaped literal quote.
				lastWasQuote = false
				continue
			}
			return fail(i, "expected field separator, row separator, or quote following a closing quote")
		}

		if couldEndCell && (lastWasQuote || !cellQuoted) {
			outOfCell = true
			lastWasQuote = false
			cell := string(src[cellStart:i])
			if cellQuoted {
				cell = unquoteCell(cell, d.Quote)
			}
			row = append(row, cell)
			if c == d.RowSep {
				table = append(table, row)
				row = Row{}
			}
			cellQuoted = false
			continue
		}

		lastWasQuote = cellQuoted && c == d.Quote
	}

	// Input ended mid-scan; close out whatever the cursor was in.
	switch {
	case cellQuoted:
		if !lastWasQuote {
			return fail(len(src), "unexpected end of input, expected quote")
		}
		row = append(row, unquoteCell(string(src[cellStart:]), d.Quote))
	case !outOfCell:
		row = append(row, string(src[cellStart:]))
	case len(src) > 0 && src[len(src)-1] == d.FieldSep:
		row = append(row, "")
	}

	if len(row) > 0 {
		table = append(table, row)
	}
	return table, nil
}

// unquoteCell strips the wrapping quotes from a closed quoted cell and
// collapses doubled quotes to one.
func unquoteCell(cell string, quote rune) string {
	q := string(quote)
	cell = strings.TrimPrefix(cell, q)
	cell = strings.TrimSuffix(cell, q)
	return strings.ReplaceAll(cell, q+q, q)
}
