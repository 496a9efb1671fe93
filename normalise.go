package docboost

import (
	gojson "github.com/goccy/go-json"

	"github.com/KimNorgaard/go-docboost/multimap"
)

// normaliseForGet turns stored shapes into the ones callers work with:
// boxed values and JSON numbers become plain Go values, nested maps become
// documents. Slices are rebuilt, never shared with the store.
func (f *Factory) normaliseForGet(v any) any {
	switch x := v.(type) {
	case multimap.Boxed:
		return x.Unbox()
	case gojson.Number:
		if n, err := x.Int64(); err == nil {
			return n
		}
		if fl, err := x.Float64(); err == nil {
			return fl
		}
		return string(x)
	case *multimap.Map:
		if x == nil {
			return nil
		}
		return f.Wrap(x)
	case []*multimap.Map:
		docs := make([]*Document, len(x))
		for i, m := range x {
			if m != nil {
				docs[i] = f.Wrap(m)
			}
		}
		return docs
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = f.normaliseForGet(e)
		}
		return out
	}
	return v
}

// normaliseForPut is the inverse of normaliseForGet for documents: they are
// stored as their underlying maps. A []any holding only documents is stored
// as []*multimap.Map.
func normaliseForPut(v any) any {
	switch x := v.(type) {
	case *Document:
		if x == nil {
			return nil
		}
		return x.m
	case []*Document:
		return documentMaps(x)
	case []any:
		if docs, ok := allDocuments(x); ok {
			return documentMaps(docs)
		}
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = normaliseForPut(e)
		}
		return out
	}
	return v
}

func documentMaps(docs []*Document) []*multimap.Map {
	maps := make([]*multimap.Map, len(docs))
	for i, d := range docs {
		if d != nil {
			maps[i] = d.m
		}
	}
	return maps
}

func allDocuments(vs []any) ([]*Document, bool) {
	if len(vs) == 0 {
		return nil, false
	}
	docs := make([]*Document, len(vs))
	for i, v := range vs {
		d, ok := v.(*Document)
		if !ok {
			return nil, false
		}
		docs[i] = d
	}
	return docs, true
}
