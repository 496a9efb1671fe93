package docboost

import (
	"reflect"

	"github.com/rs/zerolog"

	"github.com/KimNorgaard/go-docboost/internal/parser"
	"github.com/KimNorgaard/go-docboost/multimap"
)

// ConverterFunc converts a non-nil value to dst. It returns a value
// assignable to dst, or nil for a null result.
type ConverterFunc func(v any, dst reflect.Type) (any, error)

type converterSpec struct {
	src, dst reflect.Type
	fn       ConverterFunc
}

type options struct {
	logger     zerolog.Logger
	converters []converterSpec
	newMap     func() *multimap.Map
	maxDepth   int
}

// Option configures a Factory.
type Option func(*options) error

// WithLogger sets the logger used by the factory's documents. The default
// discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = l
		return nil
	}
}

// WithConverter registers fn for values of type src converted to dst,
// taking precedence over the built-in conversions for that pair.
func WithConverter(src, dst reflect.Type, fn ConverterFunc) Option {
	return func(o *options) error {
		if src == nil || dst == nil || fn == nil {
			return invalidArgument("converter types and function must not be nil")
		}
		o.converters = append(o.converters, converterSpec{src: src, dst: dst, fn: fn})
		return nil
	}
}

// WithMapFactory sets the constructor for the storage of new documents,
// including the nested objects produced by the codecs.
func WithMapFactory(fn func() *multimap.Map) Option {
	return func(o *options) error {
		if fn == nil {
			return invalidArgument("map factory must not be nil")
		}
		o.newMap = fn
		return nil
	}
}

// MaxDepth sets the nesting limit applied when parsing documents.
//
// The depth n must be a positive integer.
func MaxDepth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return invalidArgument("max depth must be a positive integer")
		}
		o.maxDepth = n
		return nil
	}
}

func defaultOptions() options {
	return options{
		logger:   zerolog.Nop(),
		newMap:   multimap.New,
		maxDepth: parser.DefaultMaxDepth,
	}
}

type marshalOptions struct {
	indent *int
}

// MarshalOption configures MarshalMAML.
type MarshalOption func(*marshalOptions) error

// Indent sets the number of spaces per nesting level. Zero writes the whole
// document on one line.
func Indent(spaces int) MarshalOption {
	return func(o *marshalOptions) error {
		if spaces < 0 {
			return invalidArgument("indent must be a non-negative integer")
		}
		o.indent = &spaces
		return nil
	}
}
