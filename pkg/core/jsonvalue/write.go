package jsonvalue

import (
	"bytes"
	"strconv"
	"strings"

	errs "github.com/matzehuels/umlkit/pkg/errors"
)

const hexDigits = "0123456789abcdef"

// Write serializes v in compact form.
// It fails with UNSUPPORTED_JSON_TYPE if v, or anything nested in it, is not
// one of the five recognized variants.
func Write(v Value) (string, error) {
	w := &writer{}
	if err := w.write(v); err != nil {
		return "", err
	}
	return w.buf.String(), nil
}

// WriteIndent serializes v with one element per line, each nesting level
// prefixed by indent. Empty arrays and objects stay on one line.
func WriteIndent(v Value, indent string) (string, error) {
	w := &writer{indent: indent}
	if err := w.write(v); err != nil {
		return "", err
	}
	return w.buf.String(), nil
}

type writer struct {
	buf    bytes.Buffer
	indent string
	depth  int
}

func (w *writer) write(v Value) error {
	switch tv := v.(type) {
	case Bool:
		w.buf.WriteString(strconv.FormatBool(bool(tv)))
	case Int:
		w.buf.WriteString(strconv.FormatInt(int64(tv), 10))
	case Str:
		writeString(&w.buf, string(tv))
	case Array:
		return w.writeArray(tv)
	case *Object:
		if tv == nil {
			return errs.New(errs.ErrCodeUnsupportedJSONType, "nil object")
		}
		return w.writeObject(tv)
	case nil:
		return errs.New(errs.ErrCodeUnsupportedJSONType, "nil value")
	default:
		return errs.New(errs.ErrCodeUnsupportedJSONType, "unsupported value type %T", v)
	}
	return nil
}

func (w *writer) writeArray(arr Array) error {
	if len(arr) == 0 {
		w.buf.WriteString("[]")
		return nil
	}
	w.buf.WriteByte('[')
	w.depth++
	for i, elem := range arr {
		if i > 0 {
			w.buf.WriteByte(',')
		}
		w.newline()
		if err := w.write(elem); err != nil {
			return err
		}
	}
	w.depth--
	w.newline()
	w.buf.WriteByte(']')
	return nil
}

func (w *writer) writeObject(obj *Object) error {
	if obj.Len() == 0 {
		w.buf.WriteString("{}")
		return nil
	}
	w.buf.WriteByte('{')
	w.depth++
	i := 0
	for k, v := range obj.All() {
		if i > 0 {
			w.buf.WriteByte(',')
		}
		i++
		w.newline()
		writeString(&w.buf, k)
		w.buf.WriteByte(':')
		if w.indent != "" {
			w.buf.WriteByte(' ')
		}
		if err := w.write(v); err != nil {
			return err
		}
	}
	w.depth--
	w.newline()
	w.buf.WriteByte('}')
	return nil
}

func (w *writer) newline() {
	if w.indent == "" {
		return
	}
	w.buf.WriteByte('\n')
	w.buf.WriteString(strings.Repeat(w.indent, w.depth))
}

// writeString quotes s, escaping quotes, backslashes and control characters.
// Other bytes, including non-ASCII UTF-8, are copied verbatim.
func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if c < 0x20 || c == 0x7f {
				buf.WriteString(`\u00`)
				buf.WriteByte(hexDigits[c>>4])
				buf.WriteByte(hexDigits[c&0xf])
				continue
			}
			buf.WriteByte(c)
		}
	}
	buf.WriteByte('"')
}
