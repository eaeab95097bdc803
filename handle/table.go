package handle

import (
	"sync"
)

// Ref is an opaque reference to an exported value.
// Ref 0 is reserved and always invalid.
type Ref uint64

// Table stores exported values behind opaque refs. Lifetime discipline is
// the caller's: every Insert must be balanced by exactly one Remove.
type Table struct {
	mu     sync.RWMutex
	next   Ref
	values map[Ref]any
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		next:   1,
		values: make(map[Ref]any),
	}
}

// Insert adds a value and returns its ref.
func (t *Table) Insert(value any) Ref {
	t.mu.Lock()
	defer t.mu.Unlock()

	ref := t.next
	t.next++
	t.values[ref] = value
	return ref
}

// Get retrieves a value by ref.
func (t *Table) Get(ref Ref) (any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.values[ref]
	return v, ok
}

// Remove drops a ref and returns (value, true) if it was live.
// Removing an unknown or already-removed ref returns (nil, false); the
// double-free is reported, never absorbed.
func (t *Table) Remove(ref Ref) (any, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	v, ok := t.values[ref]
	if !ok {
		return nil, false
	}
	delete(t.values, ref)
	return v, true
}

// Len returns the number of live refs.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.values)
}
