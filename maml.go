package docboost

import (
	"bytes"

	"github.com/KimNorgaard/go-docboost/internal/formatter"
	"github.com/KimNorgaard/go-docboost/internal/lexer"
	"github.com/KimNorgaard/go-docboost/internal/parser"
)

// ParseMAML parses a MAML document with the default factory.
func ParseMAML(data []byte) (*Document, error) {
	return defaultFactory.ParseMAML(data)
}

// ParseMAML parses a MAML document. The top-level value must be an object.
// Members keep their order and repeated keys become repeated entries.
// Syntax errors are reported as errors.ParseErrors.
func (f *Factory) ParseMAML(data []byte) (*Document, error) {
	p := parser.New(lexer.New(data),
		parser.WithMapFactory(f.newMap),
		parser.WithMaxDepth(f.maxDepth))
	m, err := p.Parse()
	if err != nil {
		f.log.Debug().Err(err).Int("bytes", len(data)).Msg("maml parse failed")
		return nil, err
	}
	f.log.Debug().Int("bytes", len(data)).Int("entries", m.Len()).Msg("parsed maml document")
	return f.Wrap(m), nil
}

// MarshalMAML returns the MAML encoding of d, indented by two spaces unless
// Indent says otherwise.
func (d *Document) MarshalMAML(opts ...MarshalOption) ([]byte, error) {
	var o marshalOptions
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := formatter.New(&buf, o.indent).Format(d.m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// String returns d as single-line MAML.
func (d *Document) String() string {
	b, err := d.MarshalMAML(Indent(0))
	if err != nil {
		return "!<" + err.Error() + ">"
	}
	return string(b)
}
