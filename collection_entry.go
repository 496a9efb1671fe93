package docboost

import (
	"reflect"
	"slices"
)

// A CollectionEntry refers to the first occurrence of a key whose value is a
// list. A stored scalar reads as a one-element list.
//
// Lists returned by a CollectionEntry are fresh copies: changing them never
// changes the document.
type CollectionEntry[E any] struct {
	Entry[[]E]
}

// NewCollectionEntry returns a collection entry for key in d. It fails with
// ErrInvalidArgument if d is nil, key is empty or n is not a known option.
func NewCollectionEntry[E any](d *Document, key string, n NormaliseOption) (*CollectionEntry[E], error) {
	return newCollectionEntry[E](d, key, n, defaultMutator(reflect.TypeFor[[]E]()))
}

func newCollectionEntry[E any](d *Document, key string, n NormaliseOption, mutator reflect.Type) (*CollectionEntry[E], error) {
	e, err := newEntry[[]E](d, key, n, mutator)
	if err != nil {
		return nil, err
	}
	return &CollectionEntry[E]{Entry: *e}, nil
}

// CollectionEntryOf returns a collection entry for key in d with the
// normalisation that suits E. It panics if d is nil or key is empty.
func CollectionEntryOf[E any](d *Document, key string) *CollectionEntry[E] {
	return must(NewCollectionEntry[E](d, key, defaultNormalise(reflect.TypeFor[[]E]())))
}

// NonEmptyVal is like NonNullVal but also fails with an UnexpectedValueError
// if the list is empty.
func (e *CollectionEntry[E]) NonEmptyVal() ([]E, error) {
	v, err := e.NonNullVal()
	if err == nil && len(v) == 0 {
		return nil, emptyValueError(e.key)
	}
	return v, err
}

// ValOr returns the list, or a copy of def if the key does not exist.
func (e *CollectionEntry[E]) ValOr(def []E, h NullValHandling) ([]E, error) {
	return e.Entry.ValOr(slices.Clone(def), h)
}

// ValOrDefault returns the list, or a copy of def if the key does not exist
// or holds null.
func (e *CollectionEntry[E]) ValOrDefault(def []E) ([]E, error) {
	return e.ValOr(def, ReturnDefault)
}

// ValOrEmpty returns the list, or an empty list if the key does not exist or
// holds null.
func (e *CollectionEntry[E]) ValOrEmpty() ([]E, error) {
	return e.ValOrEmptyWith(ReturnDefault)
}

// ValOrEmptyWith returns the list, or an empty list if the key does not
// exist. h decides what a stored null yields: ReturnDefault yields an empty
// list, ReturnNull yields nil.
func (e *CollectionEntry[E]) ValOrEmptyWith(h NullValHandling) ([]E, error) {
	return e.Entry.ValOr([]E{}, h)
}
