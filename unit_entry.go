package docboost

import (
	"errors"
	"reflect"
)

// An Entry refers to the first occurrence of a key in a document and reads
// and writes its value as a T.
//
// A null value is reported as the zero value of T; use IsNull to tell the
// two apart. Every read converts the stored value again, so an Entry always
// reflects the current contents of its document.
type Entry[T any] struct {
	baseEntry
	accessor reflect.Type
	mutator  reflect.Type
}

// NewEntry returns an entry for key in d. It fails with ErrInvalidArgument
// if d is nil, key is empty or n is not a known option.
func NewEntry[T any](d *Document, key string, n NormaliseOption) (*Entry[T], error) {
	t := reflect.TypeFor[T]()
	return newEntry[T](d, key, n, defaultMutator(t))
}

func newEntry[T any](d *Document, key string, n NormaliseOption, mutator reflect.Type) (*Entry[T], error) {
	b, err := newBaseEntry(d, key, n)
	if err != nil {
		return nil, err
	}
	return &Entry[T]{baseEntry: b, accessor: reflect.TypeFor[T](), mutator: mutator}, nil
}

// EntryOf returns an entry for key in d with the normalisation that suits
// T. It panics if d is nil or key is empty.
func EntryOf[T any](d *Document, key string) *Entry[T] {
	return must(NewEntry[T](d, key, defaultNormalise(reflect.TypeFor[T]())))
}

func must[E any](e E, err error) E {
	if err != nil {
		panic(err)
	}
	return e
}

func (e *Entry[T]) get() (T, bool, error) {
	var zero T
	v, ok := e.first()
	if !ok {
		return zero, false, e.inexistent()
	}
	out, err := e.convertForGet(v, e.accessor)
	if err != nil {
		return zero, false, err
	}
	return cast[T](e.baseEntry, out, e.accessor)
}

// Val returns the value of the entry. It fails with an InexistentEntryError
// if the key does not exist. A null value is not an error.
func (e *Entry[T]) Val() (T, error) {
	v, _, err := e.get()
	return v, err
}

// NonNullVal is like Val but also fails with an UnexpectedValueError if the
// value is null.
func (e *Entry[T]) NonNullVal() (T, error) {
	v, null, err := e.get()
	if err == nil && null {
		return v, nullValueError(e.key)
	}
	return v, err
}

// ValOr returns the value of the entry, or def if the key does not exist.
// h decides what a null value yields.
func (e *Entry[T]) ValOr(def T, h NullValHandling) (T, error) {
	var zero T
	if !h.valid() {
		return zero, invalidArgument("unknown null value handling %d", h)
	}
	v, null, err := e.get()
	switch {
	case IsInexistent(err):
		return def, nil
	case err != nil:
		return zero, err
	case !null:
		return v, nil
	}
	switch h {
	case ReturnDefault:
		return def, nil
	case Fail:
		return zero, nullValueError(e.key)
	}
	return zero, nil
}

// ValOrDefault returns the value of the entry, or def if the key does not
// exist or holds null.
func (e *Entry[T]) ValOrDefault(def T) (T, error) {
	return e.ValOr(def, ReturnDefault)
}

// ValOrNull returns the value of the entry, or the null value if the key
// does not exist. h decides what a stored null yields; ReturnDefault and
// ReturnNull both yield the null value.
func (e *Entry[T]) ValOrNull(h NullValHandling) (T, error) {
	var zero T
	return e.ValOr(zero, h)
}

// IsNull reports whether the key exists and its value converts to null.
func (e *Entry[T]) IsNull() bool {
	_, null, err := e.get()
	return err == nil && null
}

// Put stores v, replacing the value of the first occurrence in place or
// appending the key if it does not exist.
func (e *Entry[T]) Put(v T) error {
	return e.put(v)
}

// PutConverted converts v to the entry's type before storing it.
func (e *Entry[T]) PutConverted(v any) error {
	target := e.mutator
	if target == nil {
		target = e.accessor
	}
	out, err := e.convert(v, target, true)
	if err != nil {
		return err
	}
	return e.put(out)
}

func (e *Entry[T]) put(v any) error {
	out, err := e.convertForPut(v, e.mutator)
	if err != nil {
		return err
	}
	e.store(out)
	return nil
}

// Remove deletes the first occurrence of the key. It fails with an
// InexistentEntryError if there is none.
func (e *Entry[T]) Remove() error {
	return e.removeFirst(Strict)
}

// RemoveWith deletes the first occurrence of the key; with Lenient a missing
// key is not an error.
func (e *Entry[T]) RemoveWith(opt RemoveOption) error {
	return e.removeFirst(opt)
}

// IsInexistent reports whether err says an entry does not exist.
func IsInexistent(err error) bool {
	var ie *InexistentEntryError
	return errors.As(err, &ie)
}
