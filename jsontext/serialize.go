package jsontext

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	surrogateMin = 0xd800
	surrogateMax = 0xdfff
)

// Serialize renders a value as compact JSON: no whitespace is inserted
// anywhere, not even after ':' or ','. Fails with a *TypeError if the value
// is nil, is not one of the six supported kinds, or contains a non-finite
// number.
func Serialize(v Value) (string, error) {
	return serialize(v, "", false)
}

// SerializeIndent renders a value with one indent unit per nesting level.
// Every container element is placed on its own line; keys are followed by
// ": ". An empty indent unit still produces the line breaks.
func SerializeIndent(v Value, indent string) (string, error) {
	return serialize(v, indent, true)
}

// Indent returns an indent unit of n spaces, for callers configuring
// SerializeIndent by count.
func Indent(n int) string {
	if n < 0 {
		n = 0
	}
	return strings.Repeat(" ", n)
}

func serialize(v Value, indent string, pretty bool) (string, error) {
	if v == nil {
		return "", &TypeError{Msg: "cannot serialize a nil value; expected null, boolean, number, string, array, or object"}
	}
	switch val := v.(type) {
	case Null:
		return "null", nil
	case Bool:
		if val {
			return "true", nil
		}
		return "false", nil
	case Number:
		return serializeNumber(float64(val))
	case String:
		return quoteString(string(val)), nil
	case Array:
		return serializeArray(val, indent, pretty)
	case *Object:
		return serializeObject(val, indent, pretty)
	default:
		return "", &TypeError{Msg: fmt.Sprintf("cannot serialize value of type %T; expected null, boolean, number, string, array, or object", v)}
	}
}

func serializeNumber(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", &TypeError{Msg: "cannot serialize a non-finite number"}
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	// Integral floats serialize without a decimal point.
	s = strings.TrimSuffix(s, ".0")
	return s, nil
}

func serializeObject(o *Object, indent string, pretty bool) (string, error) {
	if o.Len() == 0 {
		return "{}", nil
	}
	var b strings.Builder
	b.WriteByte('{')
	for i, key := range o.Keys() {
		if i > 0 {
			b.WriteByte(',')
		}
		if pretty {
			b.WriteByte('\n')
			b.WriteString(indent)
		}
		b.WriteString(quoteString(key))
		b.WriteByte(':')
		if pretty {
			b.WriteByte(' ')
		}
		child, _ := o.Get(key)
		s, err := serialize(child, indent, pretty)
		if err != nil {
			return "", err
		}
		if pretty {
			s = reindent(s, indent)
		}
		b.WriteString(s)
	}
	if pretty {
		b.WriteByte('\n')
	}
	b.WriteByte('}')
	return b.String(), nil
}

func serializeArray(a Array, indent string, pretty bool) (string, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	var b strings.Builder
	b.WriteByte('[')
	for i, child := range a {
		if i > 0 {
			b.WriteByte(',')
		}
		if pretty {
			b.WriteByte('\n')
			b.WriteString(indent)
		}
		s, err := serialize(child, indent, pretty)
		if err != nil {
			return "", err
		}
		if pretty {
			s = reindent(s, indent)
		}
		b.WriteString(s)
	}
	if pretty {
		b.WriteByte('\n')
	}
	b.WriteByte(']')
	return b.String(), nil
}

// reindent shifts a rendered child block one level deeper by prefixing every
// interior line with the indent unit.
func reindent(s, indent string) string {
	if indent == "" {
		return s
	}
	return strings.ReplaceAll(s, "\n", "\n"+indent)
}

// quoteString escapes and double-quotes a string. The backslash, the double
// quote, and the six named control characters use their short escapes; any
// other code point below 0x20 or in the surrogate range is written as \uxxxx
// with lowercase hex. Surrogate code points appear as the three-byte
// sequences the parser produces for unpaired \u escapes (see encodeCodeUnit)
// and are decoded back here.
func quoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			if cu, n := decodeSurrogate(s[i:]); n > 0 {
				fmt.Fprintf(&b, `\u%04x`, cu)
				i += n
				continue
			}
			// Not a surrogate sequence: pass the raw byte through.
			b.WriteByte(s[i])
			i++
			continue
		}
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			b.WriteString(`\t`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
		i += size
	}
	b.WriteByte('"')
	return b.String()
}

// decodeSurrogate recognizes the three-byte encoding of a surrogate-range
// code point at the start of s, returning the code point and 3, or 0, 0 if
// the bytes are something else.
func decodeSurrogate(s string) (rune, int) {
	if len(s) >= 3 && s[0] == 0xed && s[1] >= 0xa0 && s[1] <= 0xbf && s[2]&0xc0 == 0x80 {
		return rune(s[0]&0x0f)<<12 | rune(s[1]&0x3f)<<6 | rune(s[2]&0x3f), 3
	}
	return 0, 0
}
