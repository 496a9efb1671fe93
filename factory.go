package docboost

import (
	"reflect"

	"github.com/rs/zerolog"

	"github.com/KimNorgaard/go-docboost/internal/convert"
	"github.com/KimNorgaard/go-docboost/multimap"
)

var (
	documentType     = reflect.TypeFor[*Document]()
	multimapType     = reflect.TypeFor[*multimap.Map]()
	multimapsType    = reflect.TypeFor[[]*multimap.Map]()
	goMapType        = reflect.TypeFor[map[string]any]()
	defaultFactory   = mustFactory()
	errNilMultimap   = invalidArgument("multimap must not be nil")
	errNilMapFactory = invalidArgument("map factory returned nil")
)

// A Factory creates documents that share one converter registry, logger and
// storage constructor. A Factory is safe for concurrent use; the documents it
// creates are not.
type Factory struct {
	conv     *convert.Service
	log      zerolog.Logger
	newMap   func() *multimap.Map
	maxDepth int
}

// NewFactory returns a Factory configured by opts.
func NewFactory(opts ...Option) (*Factory, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}

	f := &Factory{
		conv:     convert.New(),
		log:      o.logger,
		newMap:   o.newMap,
		maxDepth: o.maxDepth,
	}
	f.conv.Register(multimapType, documentType, func(v any, _ reflect.Type) (any, error) {
		return f.Wrap(v.(*multimap.Map)), nil
	})
	f.conv.Register(documentType, multimapType, func(v any, _ reflect.Type) (any, error) {
		return v.(*Document).m, nil
	})
	f.conv.Register(goMapType, documentType, func(v any, _ reflect.Type) (any, error) {
		m, err := f.conv.Convert(v, goMapType, multimapType)
		if err != nil {
			return nil, err
		}
		return f.Wrap(m.(*multimap.Map)), nil
	})
	for _, c := range o.converters {
		f.conv.Register(c.src, c.dst, convert.Func(c.fn))
	}
	return f, nil
}

func mustFactory(opts ...Option) *Factory {
	f, err := NewFactory(opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// Default returns the factory used by the package-level functions.
func Default() *Factory {
	return defaultFactory
}

// Create returns a new, empty document backed by fresh storage.
func (f *Factory) Create() *Document {
	m := f.newMap()
	if m == nil {
		panic(errNilMapFactory)
	}
	return &Document{m: m, f: f}
}

// Wrap returns a document that reads and writes m. Any number of documents
// may wrap the same map. Wrap panics if m is nil.
func (f *Factory) Wrap(m *multimap.Map) *Document {
	if m == nil {
		panic(errNilMultimap)
	}
	return &Document{m: m, f: f}
}

// New returns a new, empty document from the default factory.
func New() *Document {
	return defaultFactory.Create()
}

// Wrap returns a document over m from the default factory.
func Wrap(m *multimap.Map) *Document {
	return defaultFactory.Wrap(m)
}
