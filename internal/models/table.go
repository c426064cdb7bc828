// Package models holds the name-to-ID tables for game objects referenced
// by scripts. Two scopes exist: the default table, loaded once per run,
// and the level table, reloadable between job batches.
package models

import "sort"

// Entry maps one object/model name onto its 32-bit ID. Names keep their
// original spelling; ordering and lookup ignore case.
type Entry struct {
	Name string
	ID   uint32
}

// Table is an ordered name-to-ID map. Ordering and lookup use the same
// case-insensitive comparator, so queries never normalize or copy the key.
type Table struct {
	entries []Entry
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{}
}

// Insert adds or replaces an entry. Names that fold to the same spelling
// collapse onto one entry, keeping the latest ID.
func (t *Table) Insert(name string, id uint32) {
	i := sort.Search(len(t.entries), func(i int) bool {
		return foldCompare(t.entries[i].Name, name) >= 0
	})
	if i < len(t.entries) && foldCompare(t.entries[i].Name, name) == 0 {
		t.entries[i] = Entry{Name: name, ID: id}
		return
	}
	t.entries = append(t.entries, Entry{})
	copy(t.entries[i+1:], t.entries[i:])
	t.entries[i] = Entry{Name: name, ID: id}
}

// Lookup finds an entry by name, ignoring case. No allocation happens for
// the query key.
func (t *Table) Lookup(name string) (uint32, bool) {
	i := sort.Search(len(t.entries), func(i int) bool {
		return foldCompare(t.entries[i].Name, name) >= 0
	})
	if i < len(t.entries) && foldCompare(t.entries[i].Name, name) == 0 {
		return t.entries[i].ID, true
	}
	return 0, false
}

// Contains reports whether name is present, ignoring case.
func (t *Table) Contains(name string) bool {
	_, ok := t.Lookup(name)
	return ok
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.entries) }

// Entries returns the ordered entries. The slice is owned by the table and
// must not be mutated.
func (t *Table) Entries() []Entry { return t.entries }

// foldByte maps ASCII lowercase onto uppercase. Model names are ASCII by
// the definition-file format.
func foldByte(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

// foldCompare orders strings case-insensitively without copying either.
func foldCompare(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		ca, cb := foldByte(a[i]), foldByte(b[i])
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}
