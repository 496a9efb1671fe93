// Package multimap implements an ordered multi-map: an associative structure
// that keeps its entries in insertion order and allows a key to occur more
// than once. All positional access goes through a Cursor.
//
// A Map is not safe for concurrent use.
package multimap

type entry struct {
	key   string
	value any
}

// Map is an ordered multi-map of string keys to arbitrary values.
// The zero value is an empty map ready to use.
type Map struct {
	entries []entry
	cursors int
}

// New returns an empty map.
func New() *Map {
	return &Map{}
}

// Len returns the number of physical entries, counting every occurrence of
// a repeated key.
func (m *Map) Len() int {
	return len(m.entries)
}

// Append adds an entry at the end of the map.
func (m *Map) Append(key string, value any) {
	m.entries = append(m.entries, entry{key: key, value: value})
}

// Clear removes every entry.
func (m *Map) Clear() {
	clear(m.entries)
	m.entries = m.entries[:0]
}

// OpenCursors returns the number of cursors that have been acquired and not
// yet destroyed.
func (m *Map) OpenCursors() int {
	return m.cursors
}

// Cursor returns a new cursor positioned before the first entry. The caller
// must call Destroy when done with it.
func (m *Map) Cursor() *Cursor {
	m.cursors++
	return &Cursor{m: m, pos: -1}
}

func (m *Map) insert(idx int, key string, value any) {
	m.entries = append(m.entries, entry{})
	copy(m.entries[idx+1:], m.entries[idx:])
	m.entries[idx] = entry{key: key, value: value}
}

func (m *Map) remove(idx int) {
	copy(m.entries[idx:], m.entries[idx+1:])
	m.entries[len(m.entries)-1] = entry{}
	m.entries = m.entries[:len(m.entries)-1]
}
