package docboost

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/big"
	"reflect"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/KimNorgaard/go-docboost/internal/convert"
	"github.com/KimNorgaard/go-docboost/multimap"
)

// ParseJSON parses a JSON document with the default factory.
func ParseJSON(data []byte) (*Document, error) {
	return defaultFactory.ParseJSON(data)
}

// ParseJSON parses a JSON document. The top-level value must be an object.
// Members keep their order, repeated keys become repeated entries and
// numbers are stored as json.Number.
func (f *Factory) ParseJSON(data []byte) (*Document, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("docboost: invalid json: %w", err)
	}
	if tok != gojson.Delim('{') {
		return nil, fmt.Errorf("docboost: json document must be an object, got %v", tok)
	}
	m, err := f.decodeJSONObject(dec, 1)
	if err != nil {
		f.log.Debug().Err(err).Int("bytes", len(data)).Msg("json parse failed")
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("docboost: invalid json: unexpected data after top-level object")
	}
	f.log.Debug().Int("bytes", len(data)).Int("entries", m.Len()).Msg("parsed json document")
	return f.Wrap(m), nil
}

// decodeJSONObject reads members up to and including the closing brace.
func (f *Factory) decodeJSONObject(dec *gojson.Decoder, depth int) (*multimap.Map, error) {
	if depth > f.maxDepth {
		return nil, fmt.Errorf("docboost: json exceeds max depth of %d", f.maxDepth)
	}
	m := f.newMap()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("docboost: invalid json: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("docboost: invalid json: expected object key, got %v", tok)
		}
		v, err := f.decodeJSONValue(dec, depth)
		if err != nil {
			return nil, err
		}
		m.Append(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("docboost: invalid json: %w", err)
	}
	return m, nil
}

func (f *Factory) decodeJSONValue(dec *gojson.Decoder, depth int) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("docboost: invalid json: %w", err)
	}
	switch t := tok.(type) {
	case gojson.Delim:
		switch t {
		case '{':
			return f.decodeJSONObject(dec, depth+1)
		case '[':
			return f.decodeJSONArray(dec, depth+1)
		}
		return nil, fmt.Errorf("docboost: invalid json: unexpected %v", t)
	case string, bool, gojson.Number, nil:
		return t, nil
	case float64:
		return t, nil
	}
	return nil, fmt.Errorf("docboost: invalid json: unexpected token %T", tok)
}

// decodeJSONArray returns []any, or []*multimap.Map when every element is
// an object.
func (f *Factory) decodeJSONArray(dec *gojson.Decoder, depth int) (any, error) {
	if depth > f.maxDepth {
		return nil, fmt.Errorf("docboost: json exceeds max depth of %d", f.maxDepth)
	}
	elems := []any{}
	maps := []*multimap.Map{}
	for dec.More() {
		v, err := f.decodeJSONValue(dec, depth)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
		if m, ok := v.(*multimap.Map); ok && maps != nil {
			maps = append(maps, m)
		} else {
			maps = nil
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("docboost: invalid json: %w", err)
	}
	if len(maps) > 0 {
		return maps, nil
	}
	return elems, nil
}

// MarshalJSON returns d as a JSON object. Members are written in document
// order and repeated keys are repeated.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSONObject(&buf, d.m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSONObject(buf *bytes.Buffer, m *multimap.Map) error {
	c := m.Cursor()
	defer c.Destroy()

	buf.WriteByte('{')
	for i := 0; c.Next(); i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := gojson.Marshal(c.Key())
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if err := writeJSONValue(buf, c.Value()); err != nil {
			return fmt.Errorf("docboost: field '%s': %w", c.Key(), err)
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeJSONValue(buf *bytes.Buffer, v any) error {
	if convert.IsNil(v) {
		buf.WriteString("null")
		return nil
	}
	switch x := v.(type) {
	case *multimap.Map:
		return writeJSONObject(buf, x)
	case *Document:
		return writeJSONObject(buf, x.m)
	case multimap.Boxed:
		return writeJSONValue(buf, x.Unbox())
	case gojson.Number:
		buf.WriteString(string(x))
		return nil
	case decimal.Decimal:
		buf.WriteString(x.String())
		return nil
	case *big.Int:
		buf.WriteString(x.String())
		return nil
	case time.Time:
		v = x.Format(convert.TimeLayout)
	case []byte:
		v = string(x)
	default:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			buf.WriteByte('[')
			for i := range rv.Len() {
				if i > 0 {
					buf.WriteByte(',')
				}
				if err := writeJSONValue(buf, rv.Index(i).Interface()); err != nil {
					return err
				}
			}
			buf.WriteByte(']')
			return nil
		}
	}
	b, err := gojson.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
