/*
Copyright (C) 2020 Print Tracker, LLC - All Rights Reserved

Unauthorized copying of this file, via any medium is strictly prohibited
as this source code is proprietary and confidential. Dissemination of this
information or reproduction of this material is strictly forbidden unless
prior written permission is obtained from Print Tracker, LLC.
*/

// Package collections contains the prebuilt container wrappers spec.md §6
// describes as external collaborators of the core: types that translate
// container-style method calls into activestandby.Operation values and
// route them through a Handle. They're built entirely on the exported
// activestandby surface; nothing here reaches into the core's internals.
package collections

import (
	"sync"

	as "github.com/clarkmcc/go-activestandby"
)

// Map is a generic hashmap that provides low-contention, concurrent access
// to its values. Readers never block on writers, and writes only wait for
// in-flight reads when a refresh swaps the tables, at the cost of eventual
// consistency: readers only observe writes once Refresh (or
// enough writes to cross MaxReplicationWriteLag) has run.
//
// Under the hood this is two maps, handed to activestandby.Handle as a
// single table value. Writes go to the table the current write guard
// holds; reads go through a Handle.Read of whichever table is active.
// Refresh closes the current guard (swapping the tables) and opens a new
// one, so that the next batch of writes targets what was the readable map.
type Map[K comparable, V any] struct {
	handle *as.Handle[map[K]V]

	// mu serializes Map-level calls against the single long-lived write
	// guard below; the core's own writer mutex only changes hands on
	// Refresh.
	mu    sync.Mutex
	guard *as.WriteGuard[map[K]V]

	// writeLag counts writes since the last refresh; maxWriteLag is the
	// threshold at which a refresh is forced. Both are guarded by mu.
	writeLag    int
	maxWriteLag int
}

// NewMap creates a new Map with the provided options.
func NewMap[K comparable, V any](options ...OptionFunc) *Map[K, V] {
	opts := Options{}
	for _, fn := range options {
		fn(&opts)
	}

	handle := as.NewHandle(make(map[K]V), cloneMap[K, V])
	guard, err := handle.Write()
	if err != nil {
		// A freshly created handle can't be poisoned.
		panic(err)
	}
	return &Map[K, V]{
		handle:      handle,
		guard:       guard,
		maxWriteLag: opts.MaxReplicationWriteLag,
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	cp := make(map[K]V, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}

// Refresh exposes the current state of the map to readers. Under the hood
// this closes the held write guard (which swaps the tables) and opens a
// new one, so the writable side starts over with what's now the readable
// map's contents replayed onto it.
func (m *Map[K, V]) Refresh() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshLocked()
}

func (m *Map[K, V]) refreshLocked() {
	m.guard.Close()
	guard, err := m.handle.Write()
	if err != nil {
		panic(err)
	}
	m.guard = guard
	m.writeLag = 0
}

// observeWrite accounts for a write and refreshes if the configured lag has
// been exceeded. Called with mu held.
func (m *Map[K, V]) observeWrite() {
	m.writeLag++
	if m.maxWriteLag > 0 && m.writeLag > m.maxWriteLag {
		m.refreshLocked()
	}
}

// Insert adds or replaces the value at key.
func (m *Map[K, V]) Insert(key K, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.guard.UpdateTables(insertEntry[K, V](key, value)); err != nil {
		panic(err)
	}
	m.observeWrite()
}

// Delete removes key and reports whether it was present.
func (m *Map[K, V]) Delete(key K) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, err := m.guard.UpdateTables(deleteEntry[K, V](key))
	if err != nil {
		panic(err)
	}
	m.observeWrite()
	return v.(bool)
}

// Clear removes every key from the map.
func (m *Map[K, V]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.guard.UpdateTables(clearEntry[K, V]()); err != nil {
		panic(err)
	}
	m.observeWrite()
}

// Get returns the value at key and whether it was present, as seen by
// readers (i.e. as of the last Refresh).
//
// Each call clones a short-lived handle rather than reading through the
// Map's shared one: the registry's drain contract needs one epoch counter
// per concurrent reader (spec.md §4.2/§6), and two goroutines sharing a
// single handle's epoch can hide each other from a writer's drain.
func (m *Map[K, V]) Get(key K) (V, bool) {
	h := m.handle.Clone()
	defer h.Close()
	g := h.Read()
	defer g.Close()
	v, ok := (*g.Value())[key]
	return v, ok
}

// Has reports whether key is present, as seen by readers.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// Reader returns a standalone reader over this map, independent of Get/Has.
// Useful when a caller wants to perform several lookups without repeatedly
// registering and deregistering with the underlying registry.
func (m *Map[K, V]) Reader() *Reader[K, V] {
	return &Reader[K, V]{handle: m.handle.Clone()}
}
