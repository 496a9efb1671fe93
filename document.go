package docboost

import (
	"iter"
	"math/big"
	"time"

	"github.com/shopspring/decimal"

	"github.com/KimNorgaard/go-docboost/multimap"
)

// A Document is a view over an ordered multi-map. Several documents may
// wrap the same map; each sees the others' changes.
//
// A Document is not safe for concurrent use.
type Document struct {
	m *multimap.Map
	f *Factory
}

// Multimap returns the map the document reads and writes.
func (d *Document) Multimap() *multimap.Map { return d.m }

// Factory returns the factory that created the document.
func (d *Document) Factory() *Factory { return d.f }

// Keys returns the distinct keys of the document in order of first
// occurrence.
func (d *Document) Keys() []string {
	keys := []string{}
	for kv := range d.UnitEntries() {
		keys = append(keys, kv.Key())
	}
	return keys
}

// TotalEntries returns the number of entries, counting every occurrence of
// a repeated key.
func (d *Document) TotalEntries() int { return d.m.Len() }

// IsEmpty reports whether the document has no entries.
func (d *Document) IsEmpty() bool { return d.m.Len() == 0 }

// Clear removes every entry.
func (d *Document) Clear() { d.m.Clear() }

// AllEntries returns every entry in document order, repeated keys included.
// Values are normalised: nested maps appear as documents.
//
// Each range over the sequence holds a cursor on the document until the loop
// ends, however it ends.
func (d *Document) AllEntries() iter.Seq[KeyValue] {
	return func(yield func(KeyValue) bool) {
		c := d.m.Cursor()
		defer c.Destroy()
		for c.Next() {
			if !yield(d.keyValue(c)) {
				return
			}
		}
	}
}

// UnitEntries is like AllEntries but yields only the first occurrence of
// each key.
func (d *Document) UnitEntries() iter.Seq[KeyValue] {
	return func(yield func(KeyValue) bool) {
		c := d.m.Cursor()
		defer c.Destroy()
		seen := make(map[string]struct{})
		for c.Next() {
			if _, dup := seen[c.Key()]; dup {
				continue
			}
			seen[c.Key()] = struct{}{}
			if !yield(d.keyValue(c)) {
				return
			}
		}
	}
}

func (d *Document) keyValue(c *multimap.Cursor) KeyValue {
	return KeyValue{key: c.Key(), value: d.f.normaliseForGet(c.Value())}
}

// Entry returns an untyped entry for key. Values are normalised.
func (d *Document) Entry(key string) *Entry[any] { return EntryOf[any](d, key) }

// StringEntry returns an entry reading and writing key as a string.
func (d *Document) StringEntry(key string) *Entry[string] { return EntryOf[string](d, key) }

// BoolEntry returns an entry reading and writing key as a bool. Text such as
// "yes", "on" and "1" reads as true.
func (d *Document) BoolEntry(key string) *Entry[bool] { return EntryOf[bool](d, key) }

// IntEntry returns an entry reading and writing key as an int.
func (d *Document) IntEntry(key string) *Entry[int] { return EntryOf[int](d, key) }

// Int16Entry returns an entry reading and writing key as an int16.
func (d *Document) Int16Entry(key string) *Entry[int16] { return EntryOf[int16](d, key) }

// Int32Entry returns an entry reading and writing key as an int32.
func (d *Document) Int32Entry(key string) *Entry[int32] { return EntryOf[int32](d, key) }

// Int64Entry returns an entry reading and writing key as an int64.
func (d *Document) Int64Entry(key string) *Entry[int64] { return EntryOf[int64](d, key) }

// Float32Entry returns an entry reading and writing key as a float32.
func (d *Document) Float32Entry(key string) *Entry[float32] { return EntryOf[float32](d, key) }

// Float64Entry returns an entry reading and writing key as a float64.
func (d *Document) Float64Entry(key string) *Entry[float64] { return EntryOf[float64](d, key) }

// DecimalEntry returns an entry reading and writing key as a decimal.Decimal.
func (d *Document) DecimalEntry(key string) *Entry[decimal.Decimal] {
	return EntryOf[decimal.Decimal](d, key)
}

// BigIntEntry returns an entry reading and writing key as a *big.Int.
func (d *Document) BigIntEntry(key string) *Entry[*big.Int] { return EntryOf[*big.Int](d, key) }

// TimeEntry returns an entry reading and writing key as a time.Time.
func (d *Document) TimeEntry(key string) *Entry[time.Time] { return EntryOf[time.Time](d, key) }

// DocEntry returns an entry for a nested document. The nested map is stored
// as is, so changes through the returned document are visible in d.
func (d *Document) DocEntry(key string) *Entry[*Document] {
	return must(newEntry[*Document](d, key, DontNormalise, multimapType))
}

// CollectionEntry returns an untyped collection entry for key.
func (d *Document) CollectionEntry(key string) *CollectionEntry[any] {
	return CollectionEntryOf[any](d, key)
}

// StringsEntry returns a collection entry reading key as a []string.
func (d *Document) StringsEntry(key string) *CollectionEntry[string] {
	return CollectionEntryOf[string](d, key)
}

// BoolsEntry returns a collection entry reading key as a []bool.
func (d *Document) BoolsEntry(key string) *CollectionEntry[bool] {
	return CollectionEntryOf[bool](d, key)
}

// IntsEntry returns a collection entry reading key as a []int.
func (d *Document) IntsEntry(key string) *CollectionEntry[int] {
	return CollectionEntryOf[int](d, key)
}

// Int16sEntry returns a collection entry reading key as a []int16.
func (d *Document) Int16sEntry(key string) *CollectionEntry[int16] {
	return CollectionEntryOf[int16](d, key)
}

// Int64sEntry returns a collection entry reading key as a []int64.
func (d *Document) Int64sEntry(key string) *CollectionEntry[int64] {
	return CollectionEntryOf[int64](d, key)
}

// Float32sEntry returns a collection entry reading key as a []float32.
func (d *Document) Float32sEntry(key string) *CollectionEntry[float32] {
	return CollectionEntryOf[float32](d, key)
}

// Float64sEntry returns a collection entry reading key as a []float64.
func (d *Document) Float64sEntry(key string) *CollectionEntry[float64] {
	return CollectionEntryOf[float64](d, key)
}

// DecimalsEntry returns a collection entry reading key as a []decimal.Decimal.
func (d *Document) DecimalsEntry(key string) *CollectionEntry[decimal.Decimal] {
	return CollectionEntryOf[decimal.Decimal](d, key)
}

// DocsEntry returns a collection entry for a list of nested documents,
// stored as []*multimap.Map.
func (d *Document) DocsEntry(key string) *CollectionEntry[*Document] {
	return must(newCollectionEntry[*Document](d, key, DontNormalise, multimapsType))
}

// SplitEntry returns an untyped split entry for key.
func (d *Document) SplitEntry(key string) *SplitEntry[any] {
	return SplitEntryOf[any](d, key)
}

// StringsSplitEntry returns a split entry with one string per occurrence of key.
func (d *Document) StringsSplitEntry(key string) *SplitEntry[string] {
	return SplitEntryOf[string](d, key)
}

// BoolsSplitEntry returns a split entry with one bool per occurrence of key.
func (d *Document) BoolsSplitEntry(key string) *SplitEntry[bool] {
	return SplitEntryOf[bool](d, key)
}

// IntsSplitEntry returns a split entry with one int per occurrence of key.
func (d *Document) IntsSplitEntry(key string) *SplitEntry[int] {
	return SplitEntryOf[int](d, key)
}

// Int16sSplitEntry returns a split entry with one int16 per occurrence of key.
func (d *Document) Int16sSplitEntry(key string) *SplitEntry[int16] {
	return SplitEntryOf[int16](d, key)
}

// Int64sSplitEntry returns a split entry with one int64 per occurrence of key.
func (d *Document) Int64sSplitEntry(key string) *SplitEntry[int64] {
	return SplitEntryOf[int64](d, key)
}

// Float32sSplitEntry returns a split entry with one float32 per occurrence of key.
func (d *Document) Float32sSplitEntry(key string) *SplitEntry[float32] {
	return SplitEntryOf[float32](d, key)
}

// Float64sSplitEntry returns a split entry with one float64 per occurrence of key.
func (d *Document) Float64sSplitEntry(key string) *SplitEntry[float64] {
	return SplitEntryOf[float64](d, key)
}

// DecimalsSplitEntry returns a split entry with one decimal.Decimal per occurrence of key.
func (d *Document) DecimalsSplitEntry(key string) *SplitEntry[decimal.Decimal] {
	return SplitEntryOf[decimal.Decimal](d, key)
}
