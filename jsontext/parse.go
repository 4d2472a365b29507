package jsontext

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mcncl/textcodec/textpos"
)

// maxDepth caps recursion so that hostile input exhausts a counter instead of
// the call stack.
const maxDepth = 10000

// Parse converts a JSON document into a Value. The whole document must be a
// single value; anything but whitespace after it is an error. On failure the
// returned error is a *SyntaxError locating the offending character.
func Parse(text string) (Value, error) {
	p := &parser{src: []rune(text)}
	v, err := p.parseValue(0)
	if err != nil {
		return nil, err
	}
	p.skipWhitespace()
	if p.i < len(p.src) {
		return nil, p.errorf(p.i, "expected end of input")
	}
	return v, nil
}

// parser scans a rune slice left to right. All offsets are rune offsets.
type parser struct {
	src []rune
	i   int
}

func (p *parser) errorf(offset int, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Msg:    fmt.Sprintf(format, args...),
		Offset: offset,
		Pos:    textpos.Resolve(p.src, offset),
	}
}

func (p *parser) eof() *SyntaxError {
	return p.errorf(len(p.src), "unexpected end of file")
}

func (p *parser) skipWhitespace() {
	for p.i < len(p.src) {
		switch p.src[p.i] {
		case ' ', '\t', '\r', '\n':
			p.i++
		default:
			return
		}
	}
}

func (p *parser) parseValue(depth int) (Value, error) {
	if depth >= maxDepth {
		return nil, p.errorf(p.i, "maximum nesting depth exceeded")
	}
	p.skipWhitespace()
	if p.i >= len(p.src) {
		return nil, p.eof()
	}
	c := p.src[p.i]
	switch {
	case c == '{':
		return p.parseObject(depth)
	case c == '[':
		return p.parseArray(depth)
	case c == '"':
		s, err := p.parseString()
		if err != nil {
			return nil, err
		}
		return String(s), nil
	case c == 't' || c == 'f':
		return p.parseBool()
	case c == 'n':
		return p.parseNull()
	case c == '-' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	default:
		return nil, p.errorf(p.i, "unexpected character %q", c)
	}
}

func (p *parser) parseObject(depth int) (Value, error) {
	p.i++ // consume '{'
	p.skipWhitespace()
	obj := NewObject()
	if p.i >= len(p.src) {
		return nil, p.eof()
	}
	if p.src[p.i] == '}' {
		p.i++
		return obj, nil
	}
	for {
		key, err := p.parseString()
		if err != nil {
			return nil, err
		}
		p.skipWhitespace()
		if p.i >= len(p.src) {
			return nil, p.eof()
		}
		if p.src[p.i] != ':' {
			return nil, p.errorf(p.i, "unexpected character %q, expected ':'", p.src[p.i])
		}
		p.i++
		val, err := p.parseValue(depth + 1)
		if err != nil {
			return nil, err
		}
		obj.Set(key, val)
		p.skipWhitespace()
		if p.i >= len(p.src) {
			return nil, p.eof()
		}
		switch p.src[p.i] {
		case '}':
			p.i++
			return obj, nil
		case ',':
			p.i++
			p.skipWhitespace()
			if p.i >= len(p.src) {
				return nil, p.eof()
			}
		default:
			return nil, p.errorf(p.i, "unexpected character %q, expected ',' or '}'", p.src[p.i])
		}
	}
}

func (p *parser) parseArray(depth int) (Value, error) {
	p.i++ // consume '['
	p.skipWhitespace()
	if p.i >= len(p.src) {
		return nil, p.eof()
	}
	arr := Array{}
	if p.src[p.i] == ']' {
		p.i++
		return arr, nil
	}
	for {
		val, err := p.parseValue(depth + 1)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
		p.skipWhitespace()
		if p.i >= len(p.src) {
			return nil, p.eof()
		}
		switch p.src[p.i] {
		case ']':
			p.i++
			return arr, nil
		case ',':
			p.i++
		default:
			return nil, p.errorf(p.i, "unexpected character %q, expected ',' or ']'", p.src[p.i])
		}
	}
}

func (p *parser) parseNull() (Value, error) {
	if !p.hasLiteral("null") {
		return nil, p.errorf(p.i, "unexpected string %q, expected 'null'", p.peekWord(4))
	}
	p.i += 4
	return Null{}, nil
}

func (p *parser) parseBool() (Value, error) {
	if p.hasLiteral("true") {
		p.i += 4
		return Bool(true), nil
	}
	if p.hasLiteral("false") {
		p.i += 5
		return Bool(false), nil
	}
	return nil, p.errorf(p.i, "unexpected string %q, expected 'true' or 'false'", p.peekWord(5))
}

// hasLiteral reports whether the exact literal starts at the cursor.
func (p *parser) hasLiteral(lit string) bool {
	if p.i+len(lit) > len(p.src) {
		return false
	}
	for j, c := range lit {
		if p.src[p.i+j] != c {
			return false
		}
	}
	return true
}

// peekWord returns up to n runes at the cursor, for error messages.
func (p *parser) peekWord(n int) string {
	end := p.i + n
	if end > len(p.src) {
		end = len(p.src)
	}
	return string(p.src[p.i:end])
}

// parseString consumes a double-quoted string starting at the cursor and
// returns its unescaped content. Each \uXXXX escape appends exactly one code
// unit; escapes in the surrogate range are preserved uninterpreted (encoded as
// their three-byte sequence, see encodeCodeUnit) rather than paired or
// rejected.
func (p *parser) parseString() (string, error) {
	if p.i >= len(p.src) {
		return "", p.eof()
	}
	if p.src[p.i] != '"' {
		return "", p.errorf(p.i, "unexpected character %q, expected '\"'", p.src[p.i])
	}
	p.i++
	var b strings.Builder
	for {
		if p.i >= len(p.src) {
			return "", p.eof()
		}
		c := p.src[p.i]
		p.i++
		switch {
		case c == '"':
			return b.String(), nil
		case c == '\\':
			if err := p.parseEscape(&b); err != nil {
				return "", err
			}
		case c < 0x20:
			return "", p.errorf(p.i-1, "unexpected control character %q, expected it to be escaped", c)
		default:
			b.WriteRune(c)
		}
	}
}

func (p *parser) parseEscape(b *strings.Builder) error {
	if p.i >= len(p.src) {
		return p.eof()
	}
	c := p.src[p.i]
	p.i++
	switch c {
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case '/':
		b.WriteByte('/')
	case '"':
		b.WriteByte('"')
	case '\\':
		b.WriteByte('\\')
	case 'u':
		return p.parseHexEscape(b)
	default:
		return p.errorf(p.i-1, "unexpected escape character %q, expected 'b', 'f', 'n', 't', 'r', '/', '\\', '\"', or 'u'", c)
	}
	return nil
}

func (p *parser) parseHexEscape(b *strings.Builder) error {
	var cu rune
	for k := 0; k < 4; k++ {
		if p.i >= len(p.src) {
			return p.eof()
		}
		c := p.src[p.i]
		d := hexDigit(c)
		if d < 0 {
			return p.errorf(p.i, "unexpected character %q, expected a hexadecimal digit ([0-9A-Fa-f])", c)
		}
		cu = cu<<4 | rune(d)
		p.i++
	}
	encodeCodeUnit(b, cu)
	return nil
}

func hexDigit(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}

// encodeCodeUnit appends one \uXXXX code unit to the buffer. Code units in the
// surrogate range have no valid UTF-8 encoding, so they are written as the
// three-byte sequence their code point would otherwise have (the WTF-8
// convention); the serializer reverses this, so lone surrogates round-trip.
func encodeCodeUnit(b *strings.Builder, cu rune) {
	if cu >= surrogateMin && cu <= surrogateMax {
		b.WriteByte(0xe0 | byte(cu>>12))
		b.WriteByte(0x80 | byte(cu>>6)&0x3f)
		b.WriteByte(0x80 | byte(cu)&0x3f)
		return
	}
	b.WriteRune(cu)
}

// parseNumber greedily scans every rune that could belong to a number token,
// then validates the token against the JSON grammar, pinpointing each
// violation at its exact offset within the token.
func (p *parser) parseNumber() (Value, error) {
	start := p.i
	for p.i < len(p.src) && isNumberRune(p.src[p.i]) {
		p.i++
	}
	tok := p.src[start:p.i]
	if err := p.validateNumber(tok, start); err != nil {
		return nil, err
	}
	f, err := strconv.ParseFloat(string(tok), 64)
	if err != nil {
		return nil, p.errorf(start, "invalid number %q", string(tok))
	}
	return Number(f), nil
}

func isNumberRune(c rune) bool {
	return c >= '0' && c <= '9' || c == '.' || c == 'e' || c == 'E' || c == '+' || c == '-'
}

func (p *parser) validateNumber(tok []rune, start int) error {
	j := 0
	if j < len(tok) && tok[j] == '-' {
		j++
	}
	// Integer part: at least one digit, no leading zero before another digit.
	if j >= len(tok) {
		return p.errorf(start+j, "unexpected end of number, expected a digit")
	}
	if tok[j] == '.' {
		return p.errorf(start+j, "unexpected decimal point, expected a digit beforehand")
	}
	if tok[j] < '0' || tok[j] > '9' {
		return p.errorf(start+j, "unexpected character %q, expected a digit", tok[j])
	}
	if tok[j] == '0' && j+1 < len(tok) && tok[j+1] >= '0' && tok[j+1] <= '9' {
		return p.errorf(start+j+1, "unexpected digit following a zero, expected '.', 'e', 'E', or end of number")
	}
	for j < len(tok) && tok[j] >= '0' && tok[j] <= '9' {
		j++
	}
	// Fraction part.
	if j < len(tok) && tok[j] == '.' {
		j++
		if j >= len(tok) || tok[j] < '0' || tok[j] > '9' {
			if j < len(tok) && tok[j] == '.' {
				return p.errorf(start+j, "unexpected second decimal point, expected 0 or 1 decimal points")
			}
			return p.errorf(start+j-1, "unexpected decimal point, expected a following digit")
		}
		for j < len(tok) && tok[j] >= '0' && tok[j] <= '9' {
			j++
		}
		if j < len(tok) && tok[j] == '.' {
			return p.errorf(start+j, "unexpected second decimal point, expected 0 or 1 decimal points")
		}
	}
	if j >= len(tok) {
		return nil
	}
	// Exponent part.
	if tok[j] != 'e' && tok[j] != 'E' {
		return p.errorf(start+j, "unexpected character %q, expected a digit", tok[j])
	}
	j++
	if j < len(tok) && (tok[j] == '+' || tok[j] == '-') {
		j++
	}
	if j >= len(tok) {
		return p.errorf(start+j, "unexpected end of number, expected a digit")
	}
	for ; j < len(tok); j++ {
		if tok[j] < '0' || tok[j] > '9' {
			return p.errorf(start+j, "unexpected character %q, expected a digit", tok[j])
		}
	}
	return nil
}

