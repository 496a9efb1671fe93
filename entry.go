package docboost

import (
	"fmt"
	"reflect"

	"github.com/KimNorgaard/go-docboost/internal/convert"
	"github.com/KimNorgaard/go-docboost/multimap"
)

// baseEntry is the state shared by every entry variant: where the entry
// lives and how its values are normalised. It never caches a value.
type baseEntry struct {
	doc       *Document
	key       string
	normalise NormaliseOption
}

func newBaseEntry(d *Document, key string, n NormaliseOption) (baseEntry, error) {
	switch {
	case d == nil || d.m == nil:
		return baseEntry{}, invalidArgument("document must not be nil")
	case key == "":
		return baseEntry{}, invalidArgument("invalid key was provided (empty string)")
	case !n.valid():
		return baseEntry{}, invalidArgument("unknown normalise option %d", n)
	}
	return baseEntry{doc: d, key: key, normalise: n}, nil
}

// Key returns the key the entry refers to.
func (b baseEntry) Key() string { return b.key }

// Document returns the document the entry belongs to.
func (b baseEntry) Document() *Document { return b.doc }

func (b baseEntry) convert(v any, dst reflect.Type, storing bool) (any, error) {
	out, err := b.doc.f.conv.Convert(v, nil, dst)
	if err != nil {
		b.doc.f.log.Debug().
			Err(err).
			Str("key", b.key).
			Stringer("type", dst).
			Bool("storing", storing).
			Msg("value conversion failed")
		return nil, newConversionError(b.key, dst, v, storing, err)
	}
	return out, nil
}

// convertForGet converts a stored value to accessor and normalises the
// result when enabled. A normalised value that no longer fits accessor is
// dropped in favour of the plain conversion.
func (b baseEntry) convertForGet(v any, accessor reflect.Type) (any, error) {
	out, err := b.convert(v, accessor, false)
	if err != nil || b.normalise == DontNormalise || out == nil {
		return out, err
	}
	n := b.doc.f.normaliseForGet(out)
	if n == nil || reflect.TypeOf(n).AssignableTo(accessor) {
		return n, nil
	}
	return out, nil
}

// convertForPut prepares v for storage. A declared mutator type wins;
// otherwise the value is normalised when enabled, or stored as is.
func (b baseEntry) convertForPut(v any, mutator reflect.Type) (any, error) {
	switch {
	case mutator != nil:
		return b.convert(v, mutator, true)
	case b.normalise == Normalise:
		return normaliseForPut(v), nil
	}
	return v, nil
}

func (b baseEntry) cursor() *multimap.Cursor {
	return b.doc.m.Cursor()
}

// first returns the value of the first occurrence of the key.
func (b baseEntry) first() (any, bool) {
	c := b.cursor()
	defer c.Destroy()
	if !c.Find(b.key) {
		return nil, false
	}
	return c.Value(), true
}

// IsAssigned reports whether the document holds at least one occurrence of
// the key, whatever its value.
func (b baseEntry) IsAssigned() bool {
	_, ok := b.first()
	return ok
}

// store replaces the value of the first occurrence, or appends a new
// occurrence when there is none.
func (b baseEntry) store(v any) {
	c := b.cursor()
	defer c.Destroy()
	if c.Find(b.key) {
		c.SetValue(v)
		return
	}
	c.InsertAfter(b.key, v)
}

// deleteCurrent deletes the entry under c. Cursor.Delete's result does not
// say whether anything was deleted, so the map length is checked instead.
func (b baseEntry) deleteCurrent(c *multimap.Cursor) error {
	before := b.doc.m.Len()
	c.Delete()
	if b.doc.m.Len() != before-1 {
		return fmt.Errorf("docboost: failed to delete entry for key '%s'", b.key)
	}
	return nil
}

// removeFirst deletes the first occurrence of the key.
func (b baseEntry) removeFirst(opt RemoveOption) error {
	if !opt.valid() {
		return invalidArgument("unknown remove option %d", opt)
	}
	c := b.cursor()
	defer c.Destroy()
	if !c.Find(b.key) {
		return b.absent(opt)
	}
	return b.deleteCurrent(c)
}

// removeAll deletes every occurrence of the key.
func (b baseEntry) removeAll(opt RemoveOption) error {
	if !opt.valid() {
		return invalidArgument("unknown remove option %d", opt)
	}
	c := b.cursor()
	defer c.Destroy()
	if !c.Find(b.key) {
		return b.absent(opt)
	}
	for {
		if err := b.deleteCurrent(c); err != nil {
			return err
		}
		if !c.Find(b.key) {
			return nil
		}
	}
}

func (b baseEntry) absent(opt RemoveOption) error {
	if opt == Lenient {
		b.doc.f.log.Trace().Str("key", b.key).Msg("nothing to remove")
		return nil
	}
	return &InexistentEntryError{Key: b.key}
}

func (b baseEntry) inexistent() error {
	return &InexistentEntryError{Key: b.key}
}

// defaultNormalise picks the normalise option for an entry whose accessor
// type is t: entries typed as interfaces (or slices of them) see normalised
// values, concretely typed entries see the plain conversion.
func defaultNormalise(t reflect.Type) NormaliseOption {
	if t.Kind() == reflect.Slice {
		t = t.Elem()
	}
	if t.Kind() == reflect.Interface {
		return Normalise
	}
	return DontNormalise
}

// defaultMutator is the type values are converted to on put: concretely
// typed entries store their own type, interface typed entries store what
// they are given.
func defaultMutator(t reflect.Type) reflect.Type {
	if defaultNormalise(t) == Normalise {
		return nil
	}
	return t
}

// cast returns v as a T. A nil v is the zero value and reports null.
func cast[T any](b baseEntry, v any, dst reflect.Type) (T, bool, error) {
	var zero T
	if convert.IsNil(v) {
		return zero, true, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, false, newConversionError(b.key, dst, v, false,
			fmt.Errorf("converter produced %T", v))
	}
	return t, false, nil
}
