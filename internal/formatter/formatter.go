// Package formatter writes multi-maps as MAML text.
package formatter

import (
	"encoding"
	"fmt"
	"io"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/KimNorgaard/go-docboost/internal/convert"
	"github.com/KimNorgaard/go-docboost/internal/lexer"
	"github.com/KimNorgaard/go-docboost/multimap"
)

const defaultIndent = 2

// Formatter writes MAML to an output stream. Write errors are sticky: after
// the first one nothing more is written and Format reports it.
type Formatter struct {
	w      io.Writer
	indent string
	depth  int
	err    error
}

// New returns a new formatter that writes to w. A nil indentSpaces selects
// the default of two spaces; zero selects the single-line form.
func New(w io.Writer, indentSpaces *int) *Formatter {
	spaces := defaultIndent
	if indentSpaces != nil {
		spaces = *indentSpaces
	}
	return &Formatter{w: w, indent: strings.Repeat(" ", max(spaces, 0))}
}

// Format writes m as a MAML object.
func (f *Formatter) Format(m *multimap.Map) error {
	f.writeObject(m)
	return f.err
}

func (f *Formatter) write(s string) {
	if f.err != nil {
		return
	}
	_, f.err = io.WriteString(f.w, s)
}

func (f *Formatter) fail(err error) {
	if f.err == nil {
		f.err = err
	}
}

func (f *Formatter) newline() {
	f.write("\n")
	f.write(strings.Repeat(f.indent, f.depth))
}

// writeList writes n items between open and end, one per line when
// indenting and comma separated on one line otherwise. pad adds inner spaces
// in the single-line form.
func (f *Formatter) writeList(open, end string, n int, pad bool, item func(i int)) {
	f.write(open)
	if n == 0 {
		f.write(end)
		return
	}
	if f.indent != "" {
		f.depth++
		for i := range n {
			f.newline()
			item(i)
			if i < n-1 {
				f.write(",")
			}
		}
		f.depth--
		f.newline()
		f.write(end)
		return
	}
	if pad {
		f.write(" ")
	}
	for i := range n {
		if i > 0 {
			f.write(", ")
		}
		item(i)
	}
	if pad {
		f.write(" ")
	}
	f.write(end)
}

func (f *Formatter) writeObject(m *multimap.Map) {
	type member struct {
		key   string
		value any
	}
	var members []member
	c := m.Cursor()
	for c.Next() {
		members = append(members, member{c.Key(), c.Value()})
	}
	c.Destroy()

	f.writeList("{", "}", len(members), true, func(i int) {
		f.writeKey(members[i].key)
		f.write(": ")
		f.writeValue(members[i].value)
	})
}

func (f *Formatter) writeKey(k string) {
	if k != "" && strings.IndexFunc(k, func(r rune) bool { return !lexer.IsIdentChar(r) }) < 0 {
		f.write(k)
		return
	}
	f.write(Quote(k))
}

func (f *Formatter) writeValue(v any) { //nolint:gocyclo
	if convert.IsNil(v) {
		f.write("null")
		return
	}
	switch x := v.(type) {
	case *multimap.Map:
		f.writeObject(x)
	case interface{ Multimap() *multimap.Map }:
		f.writeObject(x.Multimap())
	case multimap.Boxed:
		f.writeValue(x.Unbox())
	case string:
		f.write(Quote(x))
	case []byte:
		f.write(Quote(string(x)))
	case bool:
		f.write(strconv.FormatBool(x))
	case gojson.Number:
		f.write(string(x))
	case decimal.Decimal:
		f.write(x.String())
	case *big.Int:
		f.write(x.String())
	case time.Time:
		f.write(Quote(x.Format(convert.TimeLayout)))
	case float32:
		f.writeFloat(float64(x), 32)
	case float64:
		f.writeFloat(x, 64)
	case encoding.TextMarshaler:
		text, err := x.MarshalText()
		if err != nil {
			f.fail(err)
			return
		}
		f.write(Quote(string(text)))
	case fmt.Stringer:
		f.write(Quote(x.String()))
	default:
		f.writeReflect(reflect.ValueOf(v))
	}
}

func (f *Formatter) writeReflect(rv reflect.Value) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f.write(strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		f.write(strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32:
		f.writeFloat(rv.Float(), 32)
	case reflect.Float64:
		f.writeFloat(rv.Float(), 64)
	case reflect.String:
		f.write(Quote(rv.String()))
	case reflect.Bool:
		f.write(strconv.FormatBool(rv.Bool()))
	case reflect.Slice, reflect.Array:
		f.writeList("[", "]", rv.Len(), false, func(i int) {
			f.writeValue(rv.Index(i).Interface())
		})
	default:
		f.fail(fmt.Errorf("maml: unsupported value type %s", rv.Type()))
	}
}

func (f *Formatter) writeFloat(v float64, bits int) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		f.fail(fmt.Errorf("maml: unsupported float value %v", v))
		return
	}
	s := strconv.FormatFloat(v, 'g', -1, bits)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	f.write(s)
}

// Quote returns s as a double-quoted MAML string.
func Quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7F {
				fmt.Fprintf(&sb, `\u%04X`, r)
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
