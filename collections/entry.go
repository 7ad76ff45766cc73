package collections

import as "github.com/clarkmcc/go-activestandby"

// entryType indicates the supported kinds of map operations. Operations are
// limited to the modifications that can be made to a map, mirroring
// pkg/oplog/entry.go's tagged-variant style from the teacher this package
// generalizes from.
type entryType uint8

const (
	entryTypeInsert entryType = iota
	entryTypeDelete
	entryTypeClear
)

// entry is an Operation[map[K]V]: the minimal type-erased carrier spec.md
// §4.4/§9 calls for, realized as a tagged variant rather than a pair of
// function pointers since every map mutation this package needs fits in
// three cases.
type entry[K comparable, V any] struct {
	t entryType
	k K
	v V
}

var _ as.Operation[map[string]int] = entry[string, int]{}

func insertEntry[K comparable, V any](key K, value V) entry[K, V] {
	return entry[K, V]{t: entryTypeInsert, k: key, v: value}
}

func deleteEntry[K comparable, V any](key K) entry[K, V] {
	return entry[K, V]{t: entryTypeDelete, k: key}
}

func clearEntry[K comparable, V any]() entry[K, V] {
	return entry[K, V]{t: entryTypeClear}
}

// ApplyFirst mutates the standby map and, for a delete, reports whether the
// key existed beforehand.
func (e entry[K, V]) ApplyFirst(m *map[K]V) any {
	switch e.t {
	case entryTypeInsert:
		(*m)[e.k] = e.v
		return nil
	case entryTypeDelete:
		_, ok := (*m)[e.k]
		delete(*m, e.k)
		return ok
	case entryTypeClear:
		for k := range *m {
			delete(*m, k)
		}
		return nil
	default:
		panic("collections: unreachable entry type")
	}
}

// ApplySecond delegates to ApplyFirst: every entry here fully describes its
// mutation without consuming anything, so replaying it is identical to
// applying it the first time (spec.md §4.4).
func (e entry[K, V]) ApplySecond(m *map[K]V) {
	e.ApplyFirst(m)
}
