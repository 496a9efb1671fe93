package docboost

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/shopspring/decimal"

	"github.com/KimNorgaard/go-docboost/internal/convert"
	"github.com/KimNorgaard/go-docboost/internal/mapper"
	"github.com/KimNorgaard/go-docboost/multimap"
)

var (
	timeType            = reflect.TypeFor[time.Time]()
	decimalType         = reflect.TypeFor[decimal.Decimal]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// opaque struct types are converted whole rather than bound field by field.
var opaque = map[reflect.Type]bool{
	timeType:            true,
	decimalType:         true,
	documentType.Elem(): true,
	multimapType.Elem(): true,
}

// isRecord reports whether values of t are bound field by field to a nested
// document rather than converted as a whole.
func isRecord(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct && !opaque[t] &&
		!reflect.PointerTo(t).Implements(textUnmarshalerType)
}

// Decode copies the entries of d into the struct v points to. Fields are
// bound to keys with the docboost struct tag:
//
//	type Order struct {
//		ID    int      `docboost:"id"`
//		Tags  []string `docboost:"tag,split"`
//		Lines []Line   `docboost:"lines"`
//	}
//
// A field reads the first occurrence of its key, converted the way an entry
// of the field's type would convert it. A "split" slice field reads every
// occurrence of its key. Struct fields read nested documents. Fields whose
// key is absent are left untouched; null values set the zero value.
func (d *Document) Decode(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return invalidArgument("Decode needs a non-nil pointer to a struct, got %T", v)
	}
	return d.decodeStruct(rv.Elem())
}

func (d *Document) decodeStruct(rv reflect.Value) error {
	for _, fld := range mapper.Fields(rv.Type()) {
		fv := rv.FieldByIndex(fld.Index)
		b := baseEntry{doc: d, key: fld.Key, normalise: DontNormalise}
		if fld.Split {
			if err := d.decodeSplit(b, fv); err != nil {
				return err
			}
			continue
		}
		raw, ok := b.first()
		if !ok {
			continue
		}
		if err := d.decodeValue(b, raw, fv); err != nil {
			return err
		}
	}
	return nil
}

func (d *Document) decodeSplit(b baseEntry, fv reflect.Value) error {
	c := b.cursor()
	defer c.Destroy()

	out := reflect.MakeSlice(fv.Type(), 0, 0)
	found := false
	for ok := c.Find(b.key); ok; ok = c.FindNext(b.key) {
		found = true
		e := reflect.New(fv.Type().Elem()).Elem()
		if err := d.decodeValue(b, c.Value(), e); err != nil {
			return err
		}
		out = reflect.Append(out, e)
	}
	if found {
		fv.Set(out)
	}
	return nil
}

func (d *Document) decodeValue(b baseEntry, raw any, fv reflect.Value) error {
	t := fv.Type()
	if convert.IsNil(raw) {
		fv.SetZero()
		return nil
	}

	switch {
	case isRecord(t) && t.Kind() == reflect.Pointer:
		if fv.IsNil() {
			fv.Set(reflect.New(t.Elem()))
		}
		return d.decodeValue(b, raw, fv.Elem())
	case isRecord(t):
		m, ok := raw.(*multimap.Map)
		if !ok {
			return newConversionError(b.key, t, raw, false, errors.New("value is not a document"))
		}
		return d.f.Wrap(m).decodeStruct(fv)
	case t.Kind() == reflect.Slice && isRecord(t.Elem()):
		elems := records(raw)
		if elems == nil {
			return newConversionError(b.key, t, raw, false, errors.New("value is not a list of documents"))
		}
		out := reflect.MakeSlice(t, len(elems), len(elems))
		for i, e := range elems {
			if err := d.decodeValue(b, e, out.Index(i)); err != nil {
				return err
			}
		}
		fv.Set(out)
		return nil
	}

	if t.Kind() == reflect.Interface {
		b.normalise = Normalise
	}
	out, err := b.convertForGet(raw, t)
	if err != nil {
		return err
	}
	if out == nil {
		fv.SetZero()
		return nil
	}
	fv.Set(reflect.ValueOf(out))
	return nil
}

// records returns the elements of a stored list of documents, or of a single
// document, or nil if raw is neither.
func records(raw any) []any {
	switch x := raw.(type) {
	case *multimap.Map:
		return []any{x}
	case []*multimap.Map:
		out := make([]any, len(x))
		for i, m := range x {
			out[i] = m
		}
		return out
	case []any:
		return x
	}
	return nil
}

// Encode returns a new document holding the fields of the struct v (or the
// struct v points to), bound as Decode binds them. Fields are stored in
// declaration order; nested structs become nested documents. With the
// "omitempty" option empty fields are left out.
func (f *Factory) Encode(v any) (*Document, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, invalidArgument("Encode(nil %T)", v)
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, invalidArgument("Encode needs a struct, got %T", v)
	}
	m, err := f.encodeStruct(rv)
	if err != nil {
		return nil, err
	}
	return f.Wrap(m), nil
}

// Encode returns a new document from the default factory holding the
// fields of v.
func Encode(v any) (*Document, error) {
	return defaultFactory.Encode(v)
}

func (f *Factory) encodeStruct(rv reflect.Value) (*multimap.Map, error) {
	m := f.newMap()
	if m == nil {
		return nil, errNilMapFactory
	}
	for _, fld := range mapper.Fields(rv.Type()) {
		fv := rv.FieldByIndex(fld.Index)
		if fld.OmitEmpty && mapper.IsEmptyValue(fv) {
			continue
		}
		if fld.Split {
			for i := range fv.Len() {
				val, err := f.encodeValue(fv.Index(i))
				if err != nil {
					return nil, fmt.Errorf("docboost: field '%s': %w", fld.Key, err)
				}
				m.Append(fld.Key, val)
			}
			continue
		}
		val, err := f.encodeValue(fv)
		if err != nil {
			return nil, fmt.Errorf("docboost: field '%s': %w", fld.Key, err)
		}
		m.Append(fld.Key, val)
	}
	return m, nil
}

func (f *Factory) encodeValue(v reflect.Value) (any, error) {
	t := v.Type()
	switch {
	case isRecord(t) && t.Kind() == reflect.Pointer:
		if v.IsNil() {
			return nil, nil
		}
		return f.encodeStruct(v.Elem())
	case isRecord(t):
		return f.encodeStruct(v)
	case t.Kind() == reflect.Slice && isRecord(t.Elem()):
		if v.IsNil() {
			return nil, nil
		}
		maps := make([]*multimap.Map, v.Len())
		for i := range v.Len() {
			e, err := f.encodeValue(v.Index(i))
			if err != nil {
				return nil, err
			}
			maps[i], _ = e.(*multimap.Map)
		}
		return maps, nil
	}
	return normaliseForPut(v.Interface()), nil
}
