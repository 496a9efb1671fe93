package multimap

import "strconv"

// Boxed is implemented by the wrapper types some producers store in place of
// plain numbers and booleans.
type Boxed interface {
	Unbox() any
}

// Int is a boxed 32-bit integer.
type Int struct{ Value int32 }

func (i Int) Unbox() any     { return i.Value }
func (i Int) String() string { return strconv.FormatInt(int64(i.Value), 10) }

// Long is a boxed 64-bit integer.
type Long struct{ Value int64 }

func (l Long) Unbox() any     { return l.Value }
func (l Long) String() string { return strconv.FormatInt(l.Value, 10) }

// Bool is a boxed boolean.
type Bool struct{ Value bool }

func (b Bool) Unbox() any     { return b.Value }
func (b Bool) String() string { return strconv.FormatBool(b.Value) }
