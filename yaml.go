package docboost

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/KimNorgaard/go-docboost/internal/convert"
	"github.com/KimNorgaard/go-docboost/multimap"
)

// ParseYAML parses a YAML document with the default factory.
func ParseYAML(data []byte) (*Document, error) {
	return defaultFactory.ParseYAML(data)
}

// ParseYAML parses the first document of a YAML stream. Its root must be a
// mapping. Pairs keep their order and repeated keys become repeated
// entries. Aliases are resolved; merge keys are kept as ordinary keys.
func (f *Factory) ParseYAML(data []byte) (*Document, error) {
	var root yaml.Node
	err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&root)
	if errors.Is(err, io.EOF) {
		return f.Create(), nil
	}
	if err != nil {
		f.log.Debug().Err(err).Int("bytes", len(data)).Msg("yaml parse failed")
		return nil, fmt.Errorf("docboost: invalid yaml: %w", err)
	}

	n := &root
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return f.Create(), nil
		}
		n = n.Content[0]
	}
	n = resolveAlias(n)
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return f.Create(), nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("docboost: yaml document must be a mapping, got %s at line %d", n.Tag, n.Line)
	}
	m, err := f.decodeYAMLMapping(n, 1)
	if err != nil {
		f.log.Debug().Err(err).Int("bytes", len(data)).Msg("yaml parse failed")
		return nil, err
	}
	f.log.Debug().Int("bytes", len(data)).Int("entries", m.Len()).Msg("parsed yaml document")
	return f.Wrap(m), nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func (f *Factory) decodeYAMLMapping(n *yaml.Node, depth int) (*multimap.Map, error) {
	if depth > f.maxDepth {
		return nil, fmt.Errorf("docboost: yaml exceeds max depth of %d", f.maxDepth)
	}
	m := f.newMap()
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := resolveAlias(n.Content[i])
		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("docboost: yaml mapping key at line %d, column %d is not a scalar", k.Line, k.Column)
		}
		v, err := f.decodeYAMLValue(n.Content[i+1], depth)
		if err != nil {
			return nil, err
		}
		m.Append(k.Value, v)
	}
	return m, nil
}

func (f *Factory) decodeYAMLValue(n *yaml.Node, depth int) (any, error) {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.MappingNode:
		return f.decodeYAMLMapping(n, depth+1)
	case yaml.SequenceNode:
		if depth+1 > f.maxDepth {
			return nil, fmt.Errorf("docboost: yaml exceeds max depth of %d", f.maxDepth)
		}
		elems := make([]any, len(n.Content))
		maps := make([]*multimap.Map, 0, len(n.Content))
		for i, c := range n.Content {
			v, err := f.decodeYAMLValue(c, depth+1)
			if err != nil {
				return nil, err
			}
			elems[i] = v
			if m, ok := v.(*multimap.Map); ok {
				maps = append(maps, m)
			}
		}
		if len(maps) > 0 && len(maps) == len(elems) {
			return maps, nil
		}
		return elems, nil
	case yaml.ScalarNode:
		return decodeYAMLScalar(n)
	}
	return nil, fmt.Errorf("docboost: unsupported yaml node at line %d, column %d", n.Line, n.Column)
}

func decodeYAMLScalar(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!str":
		return n.Value, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return i, nil
		}
		if b, ok := new(big.Int).SetString(strings.ReplaceAll(n.Value, "_", ""), 0); ok {
			return b, nil
		}
		return n.Value, nil
	case "!!float":
		// Plain integers too large for int64 resolve as floats.
		if n.Style&yaml.TaggedStyle == 0 {
			if b, ok := new(big.Int).SetString(n.Value, 10); ok && !b.IsInt64() {
				return b, nil
			}
		}
	case "!!timestamp":
		return n.Value, nil
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, fmt.Errorf("docboost: invalid yaml scalar at line %d, column %d: %w", n.Line, n.Column, err)
	}
	return v, nil
}

// MarshalYAML implements yaml.Marshaler. The document becomes a mapping
// node with its pairs in document order, repeated keys included.
func (d *Document) MarshalYAML() (any, error) {
	return yamlMapping(d.m)
}

func yamlMapping(m *multimap.Map) (*yaml.Node, error) {
	c := m.Cursor()
	defer c.Destroy()

	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for c.Next() {
		v, err := yamlValue(c.Value())
		if err != nil {
			return nil, fmt.Errorf("docboost: field '%s': %w", c.Key(), err)
		}
		n.Content = append(n.Content, yamlScalar("!!str", c.Key()), v)
	}
	return n, nil
}

func yamlScalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func yamlValue(v any) (*yaml.Node, error) {
	if convert.IsNil(v) {
		return yamlScalar("!!null", "null"), nil
	}
	switch x := v.(type) {
	case *multimap.Map:
		return yamlMapping(x)
	case *Document:
		return yamlMapping(x.m)
	case multimap.Boxed:
		return yamlValue(x.Unbox())
	case gojson.Number:
		if _, err := x.Int64(); err == nil {
			return yamlScalar("!!int", x.String()), nil
		}
		return yamlScalar("!!float", x.String()), nil
	case decimal.Decimal:
		if x.IsInteger() {
			return yamlScalar("!!int", x.String()), nil
		}
		return yamlScalar("!!float", x.String()), nil
	case *big.Int:
		return yamlScalar("!!int", x.String()), nil
	case []byte:
		return yamlScalar("!!str", string(x)), nil
	case float32:
		return yamlValue(float64(x))
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1e15 {
			return yamlScalar("!!float", strconv.FormatFloat(x, 'f', 1, 64)), nil
		}
	}

	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i := range rv.Len() {
			e, err := yamlValue(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, e)
		}
		return n, nil
	}

	n := &yaml.Node{}
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	return n, nil
}
