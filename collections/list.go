package collections

import (
	"sync"

	as "github.com/clarkmcc/go-activestandby"
)

// List is the slice-backed sibling of Map: an eventually-consistent,
// read-optimized ordered collection built the same way (a single long-lived
// write guard, refreshed on demand or once WithMaxReplicationWriteLag
// writes have been exceeded).
type List[V any] struct {
	handle *as.Handle[[]V]

	mu          sync.Mutex
	guard       *as.WriteGuard[[]V]
	writeLag    int
	maxWriteLag int
}

// NewList creates a new List with the provided options.
func NewList[V any](options ...OptionFunc) *List[V] {
	opts := Options{}
	for _, fn := range options {
		fn(&opts)
	}

	handle := as.NewHandle([]V{}, cloneSlice[V])
	guard, err := handle.Write()
	if err != nil {
		panic(err)
	}
	return &List[V]{handle: handle, guard: guard, maxWriteLag: opts.MaxReplicationWriteLag}
}

func cloneSlice[V any](s []V) []V {
	cp := make([]V, len(s))
	copy(cp, s)
	return cp
}

// Refresh exposes the current state of the list to readers.
func (l *List[V]) Refresh() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.refreshLocked()
}

func (l *List[V]) refreshLocked() {
	l.guard.Close()
	guard, err := l.handle.Write()
	if err != nil {
		panic(err)
	}
	l.guard = guard
	l.writeLag = 0
}

func (l *List[V]) observeWrite() {
	l.writeLag++
	if l.maxWriteLag > 0 && l.writeLag > l.maxWriteLag {
		l.refreshLocked()
	}
}

// Append adds value to the end of the list and returns its new length.
func (l *List[V]) Append(value V) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	v, err := l.guard.UpdateTables(appendEntry[V](value))
	if err != nil {
		panic(err)
	}
	l.observeWrite()
	return v.(int)
}

// RemoveAt removes the element at index and reports whether it existed.
func (l *List[V]) RemoveAt(index int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	v, err := l.guard.UpdateTables(removeAtEntry[V](index))
	if err != nil {
		panic(err)
	}
	l.observeWrite()
	return v.(bool)
}

// Clear removes every element from the list.
func (l *List[V]) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.guard.UpdateTables(clearListEntry[V]()); err != nil {
		panic(err)
	}
	l.observeWrite()
}

// Len returns the number of elements visible to readers.
//
// Each call clones a short-lived handle rather than reading through the
// List's shared one; see Map.Get for why a handle can't be shared across
// concurrent readers.
func (l *List[V]) Len() int {
	h := l.handle.Clone()
	defer h.Close()
	g := h.Read()
	defer g.Close()
	return len(*g.Value())
}

// At returns the element at index, as seen by readers.
func (l *List[V]) At(index int) (V, bool) {
	h := l.handle.Clone()
	defer h.Close()
	g := h.Read()
	defer g.Close()
	s := *g.Value()
	if index < 0 || index >= len(s) {
		var zero V
		return zero, false
	}
	return s[index], true
}
