package collections

// Set is a thin wrapper over Map[K, struct{}], following the same
// eventually-consistent read/write split.
type Set[K comparable] struct {
	m *Map[K, struct{}]
}

// NewSet creates a new Set with the provided options.
func NewSet[K comparable](options ...OptionFunc) *Set[K] {
	return &Set[K]{m: NewMap[K, struct{}](options...)}
}

// Add inserts key into the set.
func (s *Set[K]) Add(key K) {
	s.m.Insert(key, struct{}{})
}

// Remove deletes key from the set and reports whether it was present.
func (s *Set[K]) Remove(key K) bool {
	return s.m.Delete(key)
}

// Contains reports whether key is present, as seen by readers.
func (s *Set[K]) Contains(key K) bool {
	return s.m.Has(key)
}

// Clear removes every key from the set.
func (s *Set[K]) Clear() {
	s.m.Clear()
}

// Refresh exposes the current state of the set to readers.
func (s *Set[K]) Refresh() {
	s.m.Refresh()
}
