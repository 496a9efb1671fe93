// Package mapper reads the docboost struct tags that bind Go struct fields to
// document keys.
package mapper

import (
	"reflect"
	"strings"
	"sync"
)

// TagName is the struct tag consulted for field keys and options.
const TagName = "docboost"

// Field is a struct field bound to a document key.
type Field struct {
	Key       string
	Index     []int
	Type      reflect.Type
	OmitEmpty bool
	// Split binds a slice field to every occurrence of the key instead of
	// to a list under its first occurrence.
	Split bool
}

// fieldCache maps a struct type to its []Field.
var fieldCache sync.Map

// Fields returns the bound fields of struct type t in declaration order.
// Unexported fields, embedded fields and fields tagged "-" are skipped. A
// field without a key in its tag is bound to its Go name.
func Fields(t reflect.Type) []Field {
	if f, ok := fieldCache.Load(t); ok {
		return f.([]Field)
	}

	fields := make([]Field, 0, t.NumField())
	for i := range t.NumField() {
		sf := t.Field(i)
		if sf.Anonymous || !sf.IsExported() {
			continue
		}

		tag := sf.Tag.Get(TagName)
		if tag == "-" {
			continue
		}

		f := Field{Key: sf.Name, Index: sf.Index, Type: sf.Type}
		name, opts, _ := strings.Cut(tag, ",")
		if name != "" {
			f.Key = name
		}
		for opts != "" {
			var opt string
			opt, opts, _ = strings.Cut(opts, ",")
			switch strings.TrimSpace(opt) {
			case "omitempty":
				f.OmitEmpty = true
			case "split":
				f.Split = sf.Type.Kind() == reflect.Slice
			}
		}
		fields = append(fields, f)
	}

	actual, _ := fieldCache.LoadOrStore(t, fields)
	return actual.([]Field)
}

// IsEmptyValue reports whether v is empty in the encoding/json sense: false,
// 0, a nil pointer or interface, and any empty array, slice, map or string.
func IsEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}
