package csvtext

import "strings"

// Serialize renders a table as CSV text using DefaultDialect.
func Serialize(t Table) string {
	s, _ := SerializeDialect(t, DefaultDialect)
	return s
}

// SerializeDialect renders a table as CSV text: cells joined by the field
// separator, rows joined by the row separator. A cell is wrapped in quotes
// with internal quotes doubled if and only if it contains the quote, field
// separator, or row separator character; otherwise it is emitted verbatim.
// The only failure is a *DialectError for colliding dialect characters.
func SerializeDialect(t Table, d Dialect) (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}
	var b strings.Builder
	for i, row := range t {
		if i > 0 {
			b.WriteRune(d.RowSep)
		}
		for j, cell := range row {
			if j > 0 {
				b.WriteRune(d.FieldSep)
			}
			b.WriteString(escapeCell(cell, d))
		}
	}
	return b.String(), nil
}

func escapeCell(cell string, d Dialect) string {
	if !strings.ContainsRune(cell, d.Quote) &&
		!strings.ContainsRune(cell, d.FieldSep) &&
		!strings.ContainsRune(cell, d.RowSep) {
		return cell
	}
	q := string(d.Quote)
	return q + strings.ReplaceAll(cell, q, q+q) + q
}
