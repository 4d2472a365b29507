// Package textpos translates absolute rune offsets within a text document
// into zero-indexed line and column numbers for error reporting.
package textpos

import "fmt"

// Position is a resolved location within a document. Line and Col are both
// zero-indexed; Offset is the absolute rune offset the position was derived
// from.
type Position struct {
	Offset int
	Line   int
	Col    int
}

// String formats the position the way error messages embed it.
func (p Position) String() string {
	return fmt.Sprintf("%d (line: %d, column: %d)", p.Offset, p.Line, p.Col)
}

// Locate converts an absolute rune offset into a zero-indexed line and column
// by counting newlines before the offset. The column is measured from the last
// newline, or from the start of the text if there is none. Offsets past the
// end of text resolve as if the text were long enough.
func Locate(text []rune, offset int) (line, col int) {
	lastLineIndex := 0
	for i := 0; i < offset && i < len(text); i++ {
		if text[i] == '\n' {
			line++
			lastLineIndex = i
		}
	}
	return line, offset - lastLineIndex
}

// Resolve is Locate plus the originating offset, packaged as a Position.
func Resolve(text []rune, offset int) Position {
	line, col := Locate(text, offset)
	return Position{Offset: offset, Line: line, Col: col}
}
