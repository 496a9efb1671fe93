// Package convert turns stored document values into the shapes callers ask
// for. Conversions are looked up in an explicit registry keyed by
// (source, destination) type pairs, then by destination type, then by
// destination kind.
package convert

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/KimNorgaard/go-docboost/multimap"
)

// Func converts a non-nil value to the destination type. The returned value
// must be assignable to dst, or nil to signal a null result.
type Func func(v any, dst reflect.Type) (any, error)

const defaultMaxDepth = 100

type pair struct {
	src, dst reflect.Type
}

// Service is a registry of converters. A Service is safe for concurrent
// reads once registration is finished.
type Service struct {
	pairs map[pair]Func
	to    map[reflect.Type]Func
	kinds map[reflect.Kind]Func
}

// New returns a Service with the default converters registered.
func New() *Service {
	s := &Service{
		pairs: make(map[pair]Func),
		to:    make(map[reflect.Type]Func),
		kinds: make(map[reflect.Kind]Func),
	}
	s.registerDefaults()
	return s
}

// Register installs fn for values of type src converted to dst. It replaces
// any converter previously registered for the same pair.
func (s *Service) Register(src, dst reflect.Type, fn Func) {
	s.pairs[pair{src: src, dst: dst}] = fn
}

// RegisterTo installs fn for any source converted to dst.
func (s *Service) RegisterTo(dst reflect.Type, fn Func) {
	s.to[dst] = fn
}

// Convert converts v, declared as src, to dst. A nil src means the dynamic
// type of v. Nil values (including typed nil pointers, slices and maps)
// convert to nil for every destination.
func (s *Service) Convert(v any, src, dst reflect.Type) (any, error) {
	if dst == nil {
		return nil, errors.New("convert: nil destination type")
	}
	if IsNil(v) {
		return nil, nil
	}
	if src == nil {
		src = reflect.TypeOf(v)
	}
	return s.convert(v, src, dst, defaultMaxDepth)
}

func (s *Service) convert(v any, src, dst reflect.Type, depth int) (any, error) { //nolint:gocyclo
	depth--
	if depth <= 0 {
		return nil, errors.New("convert: reached max recursion depth")
	}
	if IsNil(v) {
		return nil, nil
	}

	if fn, ok := s.pairs[pair{src: src, dst: dst}]; ok {
		return fn(v, dst)
	}

	// Unwrap boxed shapes unless the caller asked for them.
	if !src.AssignableTo(dst) {
		switch b := v.(type) {
		case multimap.Boxed:
			u := b.Unbox()
			return s.convert(u, reflect.TypeOf(u), dst, depth)
		case gojson.Number:
			return s.convert(string(b), stringType, dst, depth)
		}
	}

	if str, ok := v.(string); ok && strings.TrimSpace(str) == "" && isScalarDest(dst) {
		return nil, nil
	}

	if dst.Kind() == reflect.Slice && dst != bytesType {
		return s.toSlice(v, dst, depth)
	}

	if src.AssignableTo(dst) {
		return v, nil
	}

	if isSequence(src) {
		rv := reflect.ValueOf(v)
		switch rv.Len() {
		case 0:
			return nil, nil
		case 1:
			elem := rv.Index(0).Interface()
			if IsNil(elem) {
				return nil, nil
			}
			return s.convert(elem, reflect.TypeOf(elem), dst, depth)
		default:
			return nil, fmt.Errorf("convert: cannot convert %s of length %d to %s", src, rv.Len(), dst)
		}
	}

	if fn, ok := s.to[dst]; ok {
		return fn(v, dst)
	}
	if str, ok := v.(string); ok && reflect.PointerTo(dst).Implements(textUnmarshalerType) {
		return unmarshalText(str, dst)
	}
	if fn, ok := s.kinds[dst.Kind()]; ok {
		return fn(v, dst)
	}
	return nil, fmt.Errorf("convert: no conversion from %s to %s", src, dst)
}

func (s *Service) toSlice(v any, dst reflect.Type, depth int) (any, error) {
	elemType := dst.Elem()
	rv := reflect.ValueOf(v)

	if !isSequence(rv.Type()) {
		c, err := s.convert(v, rv.Type(), elemType, depth)
		if err != nil {
			return nil, err
		}
		out := reflect.MakeSlice(dst, 1, 1)
		if c != nil {
			out.Index(0).Set(reflect.ValueOf(c))
		}
		return out.Interface(), nil
	}

	n := rv.Len()
	out := reflect.MakeSlice(dst, n, n)
	for i := range n {
		elem := rv.Index(i).Interface()
		if IsNil(elem) {
			continue
		}
		c, err := s.convert(elem, reflect.TypeOf(elem), elemType, depth)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		if c != nil {
			out.Index(i).Set(reflect.ValueOf(c))
		}
	}
	return out.Interface(), nil
}

// IsNil reports whether v is nil or a nil pointer, slice, map, interface,
// channel or function.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface, reflect.Chan, reflect.Func:
		return rv.IsNil()
	}
	return false
}

func isSequence(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Slice:
		return t != bytesType
	case reflect.Array:
		return true
	}
	return false
}

// isScalarDest reports whether an empty string should become null when
// converted to t.
func isScalarDest(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.String, reflect.Interface, reflect.Slice, reflect.Array:
		return false
	}
	return true
}
