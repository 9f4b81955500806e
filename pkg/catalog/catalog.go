// Package catalog is the table/column metadata store: a concurrent mapping
// from table name to its ordered column list.
package catalog

import (
	"sync"

	"minisql/pkg/types"
)

// Column is the cataloged form of a column: name, resolved type, and an
// optional default literal carried as lexical text.
type Column struct {
	Name         string
	Type         types.Type
	HasDefault   bool
	DefaultText  string
	DefaultIsNum bool
}

// Catalog is a concurrent mapping from table name to its ordered columns.
// One coarse mutex guards the whole map.
type Catalog struct {
	mu     sync.RWMutex
	tables map[string][]Column
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{tables: make(map[string][]Column)}
}

// AddTable registers an empty table. It is a caller error to add a table
// that already exists; callers are expected to call ContainsTable first
// (the validator owns that check).
func (c *Catalog) AddTable(table string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.tables[table]; !ok {
		c.tables[table] = nil
	}
}

// ContainsTable reports whether table has been created.
func (c *Catalog) ContainsTable(table string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.tables[table]
	return ok
}

// AddColumnTo appends a column's metadata to table, in declaration order.
// Adding a column to a missing table is a no-op.
func (c *Catalog) AddColumnTo(table string, col Column) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.tables[table]; !ok {
		return
	}
	c.tables[table] = append(c.tables[table], col)
}

// ContainsColumnIn reports whether table has a column named name.
func (c *Catalog) ContainsColumnIn(table, name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, col := range c.tables[table] {
		if col.Name == name {
			return true
		}
	}
	return false
}

// MatchType reports whether the column at the given positional index in
// table has the given type.
func (c *Catalog) MatchType(table string, index int, t types.Type) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cols := c.tables[table]
	if index < 0 || index >= len(cols) {
		return false
	}
	return cols[index].Type.Equal(t)
}

// GetColumnIndex returns the positional index of name in table.
func (c *Catalog) GetColumnIndex(table, name string) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i, col := range c.tables[table] {
		if col.Name == name {
			return i, true
		}
	}
	return 0, false
}

// GetTableColumns returns a copy of table's columns in declaration order.
func (c *Catalog) GetTableColumns(table string) []Column {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cols := c.tables[table]
	out := make([]Column, len(cols))
	copy(out, cols)
	return out
}

// GetColumnType returns the declared type of name in table.
func (c *Catalog) GetColumnType(table, name string) (types.Type, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, col := range c.tables[table] {
		if col.Name == name {
			return col.Type, true
		}
	}
	return types.Type{}, false
}

// GetColumnTypeByIndex returns the declared type of the column at index.
func (c *Catalog) GetColumnTypeByIndex(table string, index int) (types.Type, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cols := c.tables[table]
	if index < 0 || index >= len(cols) {
		return types.Type{}, false
	}
	return cols[index].Type, true
}
