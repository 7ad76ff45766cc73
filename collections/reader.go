package collections

import as "github.com/clarkmcc/go-activestandby"

// Reader is a standalone handle onto a Map's underlying table. Unlike
// Map.Get/Map.Has, which register and deregister a handle for each call, a
// Reader keeps its own registered handle for as long as it's open.
type Reader[K comparable, V any] struct {
	handle *as.Handle[map[K]V]
}

// Get returns the value at key and whether it was present.
func (r *Reader[K, V]) Get(key K) (V, bool) {
	g := r.handle.Read()
	defer g.Close()
	v, ok := (*g.Value())[key]
	return v, ok
}

// Has reports whether key is present.
func (r *Reader[K, V]) Has(key K) bool {
	_, ok := r.Get(key)
	return ok
}

// Close removes this reader from the map's registry. Using the reader
// afterwards is safe (reads just keep working against the registry-less
// handle) but no longer participates in the writer's drain accounting, so
// callers should not keep reading from a closed Reader.
func (r *Reader[K, V]) Close() {
	r.handle.Close()
}
