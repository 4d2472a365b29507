package jsontext

import (
	"fmt"

	"github.com/mcncl/textcodec/textpos"
)

// SyntaxError reports a grammar violation during parsing. Offset is the
// absolute rune offset of the offending character; Pos carries the derived
// line and column. Message text is advisory; programs should branch on the
// error type and offset.
type SyntaxError struct {
	Msg    string
	Offset int
	Pos    textpos.Position
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("json: %s at position %s", e.Msg, e.Pos)
}

// TypeError reports a serialization failure: a value outside the six
// supported kinds, or a number that is not finite.
type TypeError struct {
	Msg string
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	return "json: " + e.Msg
}
