package i18n

import (
	"context"
	"sync"
)

// TableLoader loads a language table. Store implements it.
type TableLoader interface {
	Load(ctx context.Context, code string) (*Table, error)
}

// Loader holds the active table of one request. Switch replaces the table
// wholesale; nothing carries over from the previous language.
type Loader struct {
	source TableLoader

	mu    sync.RWMutex
	table *Table
}

// NewLoader returns a Loader with an empty table.
func NewLoader(source TableLoader) *Loader {
	return &Loader{source: source, table: NewTable("", nil)}
}

// Switch loads code and makes it the active table. On error the active
// table is still replaced by the (empty) table Load returned.
func (l *Loader) Switch(ctx context.Context, code string) (*Table, error) {
	tbl, err := l.source.Load(ctx, code)
	if tbl == nil {
		tbl = NewTable(code, nil)
	}

	l.mu.Lock()
	l.table = tbl
	l.mu.Unlock()
	return tbl, err
}

// Table returns the active table.
func (l *Loader) Table() *Table {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.table
}

// Lang returns the code of the active table.
func (l *Loader) Lang() string {
	return l.Table().Lang()
}
