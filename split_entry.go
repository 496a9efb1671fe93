package docboost

import (
	"reflect"
	"slices"
)

// A SplitEntry treats every occurrence of a key as one element of a list, in
// document order. It suits documents that repeat a key instead of holding an
// array under it.
type SplitEntry[E any] struct {
	baseEntry
	elem    reflect.Type
	mutator reflect.Type
}

// NewSplitEntry returns a split entry for key in d. It fails with
// ErrInvalidArgument if d is nil, key is empty or n is not a known option.
func NewSplitEntry[E any](d *Document, key string, n NormaliseOption) (*SplitEntry[E], error) {
	t := reflect.TypeFor[E]()
	return newSplitEntry[E](d, key, n, defaultMutator(t))
}

func newSplitEntry[E any](d *Document, key string, n NormaliseOption, mutator reflect.Type) (*SplitEntry[E], error) {
	b, err := newBaseEntry(d, key, n)
	if err != nil {
		return nil, err
	}
	return &SplitEntry[E]{baseEntry: b, elem: reflect.TypeFor[E](), mutator: mutator}, nil
}

// SplitEntryOf returns a split entry for key in d with the normalisation
// that suits E. It panics if d is nil or key is empty.
func SplitEntryOf[E any](d *Document, key string) *SplitEntry[E] {
	return must(NewSplitEntry[E](d, key, defaultNormalise(reflect.TypeFor[E]())))
}

// values converts every occurrence. nulls reports how many were null.
func (e *SplitEntry[E]) values() (vals []E, nulls int, err error) {
	c := e.cursor()
	defer c.Destroy()
	for found := c.Find(e.key); found; found = c.FindNext(e.key) {
		out, err := e.convertForGet(c.Value(), e.elem)
		if err != nil {
			return nil, 0, err
		}
		v, null, err := cast[E](e.baseEntry, out, e.elem)
		if err != nil {
			return nil, 0, err
		}
		if null {
			nulls++
		}
		vals = append(vals, v)
	}
	if vals == nil {
		return nil, 0, e.inexistent()
	}
	return vals, nulls, nil
}

// Count returns the number of occurrences of the key.
func (e *SplitEntry[E]) Count() int {
	c := e.cursor()
	defer c.Destroy()
	n := 0
	for found := c.Find(e.key); found; found = c.FindNext(e.key) {
		n++
	}
	return n
}

// Val returns one element per occurrence of the key. It fails with an
// InexistentEntryError if there is none.
func (e *SplitEntry[E]) Val() ([]E, error) {
	vals, _, err := e.values()
	return vals, err
}

// NonEmptyVal is like Val but also fails with an UnexpectedValueError if any
// occurrence holds null.
func (e *SplitEntry[E]) NonEmptyVal() ([]E, error) {
	vals, nulls, err := e.values()
	if err == nil && nulls > 0 {
		return nil, nullValueError(e.key)
	}
	return vals, err
}

// ValOrDefault returns one element per occurrence, or a copy of def if the
// key does not exist.
func (e *SplitEntry[E]) ValOrDefault(def []E) ([]E, error) {
	vals, _, err := e.values()
	if IsInexistent(err) {
		return slices.Clone(def), nil
	}
	return vals, err
}

// ValOrEmpty returns one element per occurrence, or an empty list if the key
// does not exist.
func (e *SplitEntry[E]) ValOrEmpty() ([]E, error) {
	return e.ValOrDefault([]E{})
}

// Put replaces every occurrence of the key with one occurrence per element
// of vals. The new occurrences take the place of the first old one, or go
// at the end of the document if the key did not exist. An empty vals
// removes the key.
func (e *SplitEntry[E]) Put(vals []E) error {
	stored := make([]any, len(vals))
	for i, v := range vals {
		out, err := e.convertForPut(v, e.mutator)
		if err != nil {
			return err
		}
		stored[i] = out
	}
	return e.replace(stored)
}

// PutConverted converts each element of vals to the entry's element type
// and stores them as Put does.
func (e *SplitEntry[E]) PutConverted(vals []any) error {
	target := e.mutator
	if target == nil {
		target = e.elem
	}
	stored := make([]any, len(vals))
	for i, v := range vals {
		out, err := e.convert(v, target, true)
		if err != nil {
			return err
		}
		if e.mutator == nil && e.normalise == Normalise {
			out = normaliseForPut(out)
		}
		stored[i] = out
	}
	return e.replace(stored)
}

func (e *SplitEntry[E]) replace(stored []any) error {
	c := e.cursor()
	defer c.Destroy()

	if !c.Find(e.key) {
		for _, v := range stored {
			c.InsertAfter(e.key, v)
		}
		return nil
	}

	// Drop every later occurrence, then rewrite the first in place.
	rest := e.cursor()
	defer rest.Destroy()
	rest.Find(e.key)
	for rest.FindNext(e.key) {
		for rest.Key() == e.key {
			rest.Delete()
		}
	}

	if len(stored) == 0 {
		return e.deleteCurrent(c)
	}
	c.SetValue(stored[0])
	for _, v := range stored[1:] {
		c.InsertAfter(e.key, v)
	}
	return nil
}

// Add appends v as a new occurrence directly after the last existing one,
// or at the end of the document.
func (e *SplitEntry[E]) Add(v E) error {
	out, err := e.convertForPut(v, e.mutator)
	if err != nil {
		return err
	}
	c := e.cursor()
	defer c.Destroy()
	if c.Find(e.key) {
		for c.FindNext(e.key) {
		}
	}
	c.InsertAfter(e.key, out)
	return nil
}

// Remove deletes every occurrence of the key. It fails with an
// InexistentEntryError if there is none.
func (e *SplitEntry[E]) Remove() error {
	return e.removeAll(Strict)
}

// RemoveWith deletes every occurrence of the key; with Lenient a missing key
// is not an error.
func (e *SplitEntry[E]) RemoveWith(opt RemoveOption) error {
	return e.removeAll(opt)
}
