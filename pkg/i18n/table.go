package i18n

import (
	"maps"
	"slices"
)

// Table holds the translations of one language. A Table is not safe for
// concurrent mutation; each request works on its own copy.
type Table struct {
	lang    string
	entries map[string]string
}

// NewTable copies entries into a new Table for lang.
func NewTable(lang string, entries map[string]string) *Table {
	t := &Table{lang: lang, entries: make(map[string]string, len(entries))}
	maps.Copy(t.entries, entries)
	return t
}

// Get returns the value for key. The boolean is false when the key is
// absent, which is distinct from a stored empty string.
func (t *Table) Get(key string) (string, bool) {
	if t == nil {
		return "", false
	}
	v, ok := t.entries[key]
	return v, ok
}

// Set stores value under key in memory only.
func (t *Table) Set(key, value string) {
	if t.entries == nil {
		t.entries = make(map[string]string)
	}
	t.entries[key] = value
}

// Lang returns the language code the table was loaded for.
func (t *Table) Lang() string {
	if t == nil {
		return ""
	}
	return t.lang
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Keys returns the keys in sorted order.
func (t *Table) Keys() []string {
	if t == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(t.entries))
}

// Clone returns an independent copy of t.
func (t *Table) Clone() *Table {
	if t == nil {
		return NewTable("", nil)
	}
	return NewTable(t.lang, t.entries)
}
