package model

// Collection is the full, ordered list of saved videos, newest first.
// Order is established by insertion at the head and preserved across
// save/load; it is never re-sorted.
type Collection struct {
	Entries []VideoEntry `json:"-"`
}

// NewCollection creates an empty Collection with an initialized slice.
func NewCollection() *Collection {
	return &Collection{Entries: []VideoEntry{}}
}

// Len returns the number of entries.
func (c *Collection) Len() int {
	return len(c.Entries)
}

// Prepend inserts an entry at the head of the collection.
func (c *Collection) Prepend(entry VideoEntry) {
	c.Entries = append([]VideoEntry{entry}, c.Entries...)
}

// RemoveAt removes the entry at the given absolute index.
// Out-of-range indexes are a no-op.
func (c *Collection) RemoveAt(index int) {
	if index < 0 || index >= len(c.Entries) {
		return
	}
	c.Entries = append(c.Entries[:index], c.Entries[index+1:]...)
}

// At returns the entry at the given absolute index, or nil if out of range.
func (c *Collection) At(index int) *VideoEntry {
	if index < 0 || index >= len(c.Entries) {
		return nil
	}
	return &c.Entries[index]
}

// Slice returns entries in [start, end), clamped to the collection bounds.
func (c *Collection) Slice(start, end int) []VideoEntry {
	if start < 0 {
		start = 0
	}
	if end > len(c.Entries) {
		end = len(c.Entries)
	}
	if start >= end {
		return []VideoEntry{}
	}
	return c.Entries[start:end]
}
