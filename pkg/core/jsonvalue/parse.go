package jsonvalue

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	errs "github.com/matzehuels/umlkit/pkg/errors"
)

// maxDepth bounds the nesting of arrays and objects.
const maxDepth = 512

// SyntaxError describes where and why parsing failed.
// It is always returned wrapped in an error with the MALFORMED_JSON code.
type SyntaxError struct {
	Offset int    // Byte offset into the input
	Msg    string // Description of the problem
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Msg, e.Offset)
}

// Parse parses a complete JSON document. Leading and trailing whitespace is
// allowed; anything else after the top-level value is an error.
func Parse(data []byte) (Value, error) {
	p := &parser{data: data}
	p.skipWhitespace()
	v, err := p.parseValue(0)
	if err != nil {
		return nil, err
	}
	p.skipWhitespace()
	if p.pos < len(p.data) {
		return nil, p.fail(p.pos, "unexpected trailing character %q", p.data[p.pos])
	}
	return v, nil
}

// ParseString is a convenience wrapper around [Parse].
func ParseString(s string) (Value, error) {
	return Parse([]byte(s))
}

type parser struct {
	data []byte
	pos  int
}

func (p *parser) fail(offset int, format string, args ...any) error {
	se := &SyntaxError{Offset: offset, Msg: fmt.Sprintf(format, args...)}
	return errs.Wrap(errs.ErrCodeMalformedJSON, se, "malformed json")
}

func (p *parser) skipWhitespace() {
	for p.pos < len(p.data) {
		switch p.data[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) parseValue(depth int) (Value, error) {
	if p.pos >= len(p.data) {
		return nil, p.fail(p.pos, "unexpected end of input")
	}
	if depth > maxDepth {
		return nil, p.fail(p.pos, "nesting deeper than %d levels", maxDepth)
	}

	switch c := p.data[p.pos]; {
	case c == '{':
		return p.parseObject(depth)
	case c == '[':
		return p.parseArray(depth)
	case c == '"':
		s, err := p.parseString()
		if err != nil {
			return nil, err
		}
		return Str(s), nil
	case c == '-' || isDigit(c):
		return p.parseInt()
	case c == 't':
		return p.parseLiteral("true", Bool(true))
	case c == 'f':
		return p.parseLiteral("false", Bool(false))
	case c == 'n' && p.hasPrefix("null"):
		return nil, p.fail(p.pos, "null is not a supported value")
	default:
		return nil, p.fail(p.pos, "unexpected character %q", c)
	}
}

func (p *parser) hasPrefix(lit string) bool {
	return strings.HasPrefix(string(p.data[p.pos:min(len(p.data), p.pos+len(lit))]), lit)
}

func (p *parser) parseLiteral(lit string, v Value) (Value, error) {
	if !p.hasPrefix(lit) {
		return nil, p.fail(p.pos, "invalid literal, expected %s", lit)
	}
	p.pos += len(lit)
	return v, nil
}

func (p *parser) parseInt() (Value, error) {
	start := p.pos
	if p.data[p.pos] == '-' {
		p.pos++
	}
	if p.pos >= len(p.data) || !isDigit(p.data[p.pos]) {
		return nil, p.fail(p.pos, "expected digit after '-'")
	}
	if p.data[p.pos] == '0' && p.pos+1 < len(p.data) && isDigit(p.data[p.pos+1]) {
		return nil, p.fail(p.pos, "leading zeros are not allowed")
	}
	for p.pos < len(p.data) && isDigit(p.data[p.pos]) {
		p.pos++
	}
	if p.pos < len(p.data) {
		switch p.data[p.pos] {
		case '.', 'e', 'E':
			return nil, p.fail(start, "floating point numbers are not supported")
		}
	}
	n, err := strconv.ParseInt(string(p.data[start:p.pos]), 10, 64)
	if err != nil {
		return nil, p.fail(start, "integer out of range")
	}
	return Int(n), nil
}

func (p *parser) parseString() (string, error) {
	start := p.pos
	p.pos++ // opening quote
	var sb strings.Builder
	for {
		if p.pos >= len(p.data) {
			return "", p.fail(start, "unterminated string")
		}
		c := p.data[p.pos]
		switch {
		case c == '"':
			p.pos++
			return sb.String(), nil
		case c == '\\':
			if err := p.parseEscape(&sb); err != nil {
				return "", err
			}
		case c < 0x20:
			return "", p.fail(p.pos, "control character %#x in string", c)
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
}

// parseEscape consumes one escape sequence starting at the backslash.
func (p *parser) parseEscape(sb *strings.Builder) error {
	at := p.pos
	p.pos++
	if p.pos >= len(p.data) {
		return p.fail(at, "unterminated string")
	}
	c := p.data[p.pos]
	p.pos++
	switch c {
	case '"', '\\', '/':
		sb.WriteByte(c)
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'u':
		r, err := p.parseHex4(at)
		if err != nil {
			return err
		}
		if utf16.IsSurrogate(r) {
			r = p.parseLowSurrogate(r)
		}
		sb.WriteRune(r)
	default:
		return p.fail(at, "invalid escape sequence \\%c", c)
	}
	return nil
}

func (p *parser) parseHex4(at int) (rune, error) {
	if p.pos+4 > len(p.data) {
		return 0, p.fail(at, "invalid unicode escape")
	}
	n, err := strconv.ParseUint(string(p.data[p.pos:p.pos+4]), 16, 32)
	if err != nil {
		return 0, p.fail(at, "invalid unicode escape")
	}
	p.pos += 4
	return rune(n), nil
}

// parseLowSurrogate completes a surrogate pair when one follows; a lone
// surrogate decodes to the replacement character.
func (p *parser) parseLowSurrogate(high rune) rune {
	if p.pos+6 > len(p.data) || p.data[p.pos] != '\\' || p.data[p.pos+1] != 'u' {
		return utf8.RuneError
	}
	n, err := strconv.ParseUint(string(p.data[p.pos+2:p.pos+6]), 16, 32)
	if err != nil {
		return utf8.RuneError
	}
	r := utf16.DecodeRune(high, rune(n))
	if r == utf8.RuneError {
		return r
	}
	p.pos += 6
	return r
}

func (p *parser) parseArray(depth int) (Value, error) {
	p.pos++ // [
	arr := Array{}
	p.skipWhitespace()
	if p.pos < len(p.data) && p.data[p.pos] == ']' {
		p.pos++
		return arr, nil
	}
	for {
		p.skipWhitespace()
		v, err := p.parseValue(depth + 1)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
		p.skipWhitespace()
		if p.pos >= len(p.data) {
			return nil, p.fail(p.pos, "unterminated array")
		}
		switch p.data[p.pos] {
		case ',':
			p.pos++
		case ']':
			p.pos++
			return arr, nil
		default:
			return nil, p.fail(p.pos, "expected ',' or ']' but found %q", p.data[p.pos])
		}
	}
}

func (p *parser) parseObject(depth int) (Value, error) {
	p.pos++ // {
	obj := NewObject()
	p.skipWhitespace()
	if p.pos < len(p.data) && p.data[p.pos] == '}' {
		p.pos++
		return obj, nil
	}
	for {
		p.skipWhitespace()
		if p.pos >= len(p.data) {
			return nil, p.fail(p.pos, "unterminated object")
		}
		if p.data[p.pos] != '"' {
			return nil, p.fail(p.pos, "expected string key but found %q", p.data[p.pos])
		}
		keyAt := p.pos
		key, err := p.parseString()
		if err != nil {
			return nil, err
		}
		if obj.Has(key) {
			return nil, p.fail(keyAt, "duplicate key %q", key)
		}
		p.skipWhitespace()
		if p.pos >= len(p.data) || p.data[p.pos] != ':' {
			return nil, p.fail(p.pos, "expected ':' after object key")
		}
		p.pos++
		p.skipWhitespace()
		v, err := p.parseValue(depth + 1)
		if err != nil {
			return nil, err
		}
		obj.Set(key, v)
		p.skipWhitespace()
		if p.pos >= len(p.data) {
			return nil, p.fail(p.pos, "unterminated object")
		}
		switch p.data[p.pos] {
		case ',':
			p.pos++
		case '}':
			p.pos++
			return obj, nil
		default:
			return nil, p.fail(p.pos, "expected ',' or '}' but found %q", p.data[p.pos])
		}
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
