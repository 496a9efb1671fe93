package multimap

// Cursor is a position within a Map. A new cursor sits before the first
// entry; it is "on" an entry after a successful First, Next, Find, FindNext
// or insert.
//
// Once destroyed, a cursor no longer moves or modifies its map.
type Cursor struct {
	m         *Map
	pos       int
	destroyed bool
}

func (c *Cursor) valid() bool {
	return !c.destroyed && c.pos >= 0 && c.pos < len(c.m.entries)
}

// First moves the cursor to the first entry. It reports false if the map is
// empty.
func (c *Cursor) First() bool {
	if c.destroyed {
		return false
	}
	c.pos = -1
	return c.Next()
}

// Next moves the cursor to the following entry. It reports false once the
// cursor has moved past the last entry.
func (c *Cursor) Next() bool {
	if c.destroyed {
		return false
	}
	if c.pos < len(c.m.entries) {
		c.pos++
	}
	return c.pos < len(c.m.entries)
}

// Reset moves the cursor back before the first entry.
func (c *Cursor) Reset() {
	c.pos = -1
}

// Find moves the cursor to the first occurrence of key in the map. If the
// key is absent it reports false and the cursor is left before the first
// entry.
func (c *Cursor) Find(key string) bool {
	c.pos = -1
	return c.FindNext(key)
}

// FindNext moves the cursor to the next occurrence of key after the current
// position. If there is none it reports false and the cursor does not move.
func (c *Cursor) FindNext(key string) bool {
	if c.destroyed {
		return false
	}
	for i := c.pos + 1; i < len(c.m.entries); i++ {
		if c.m.entries[i].key == key {
			c.pos = i
			return true
		}
	}
	return false
}

// Key returns the key of the current entry, or "" if the cursor is not on
// an entry.
func (c *Cursor) Key() string {
	if !c.valid() {
		return ""
	}
	return c.m.entries[c.pos].key
}

// Value returns the value of the current entry, or nil if the cursor is not
// on an entry.
func (c *Cursor) Value() any {
	if !c.valid() {
		return nil
	}
	return c.m.entries[c.pos].value
}

// SetValue replaces the value of the current entry in place.
func (c *Cursor) SetValue(value any) bool {
	if !c.valid() {
		return false
	}
	c.m.entries[c.pos].value = value
	return true
}

// InsertAfter inserts a new entry after the current one and moves the cursor
// onto it. A cursor that is not on an entry appends at the end of the map.
func (c *Cursor) InsertAfter(key string, value any) {
	if c.destroyed {
		return
	}
	idx := len(c.m.entries)
	if c.valid() {
		idx = c.pos + 1
	}
	c.m.insert(idx, key, value)
	c.pos = idx
}

// InsertBefore inserts a new entry before the current one and moves the
// cursor onto it. A cursor before the first entry prepends; a cursor past the
// last entry appends.
func (c *Cursor) InsertBefore(key string, value any) {
	if c.destroyed {
		return
	}
	idx := 0
	switch {
	case c.valid():
		idx = c.pos
	case c.pos >= len(c.m.entries):
		idx = len(c.m.entries)
	}
	c.m.insert(idx, key, value)
	c.pos = idx
}

// Delete removes the current entry and leaves the cursor on the entry that
// followed it.
//
// The result is true only when an entry was removed and the cursor is still
// on an entry afterwards, so deleting the last entry reports false even
// though it succeeded. Callers that need to know whether a deletion happened
// must check the map itself.
func (c *Cursor) Delete() bool {
	if !c.valid() {
		return false
	}
	c.m.remove(c.pos)
	return c.pos < len(c.m.entries)
}

// Destroy releases the cursor. It is safe to call more than once.
func (c *Cursor) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.m.cursors--
}
