package collections

import as "github.com/clarkmcc/go-activestandby"

type listEntryType uint8

const (
	listEntryAppend listEntryType = iota
	listEntryRemoveAt
	listEntryClear
)

// listEntry is List's Operation[[]V], following the same tagged-variant
// shape as collections.entry for maps.
type listEntry[V any] struct {
	t     listEntryType
	value V
	index int
}

var _ as.Operation[[]int] = listEntry[int]{}

func appendEntry[V any](value V) listEntry[V] {
	return listEntry[V]{t: listEntryAppend, value: value}
}

func removeAtEntry[V any](index int) listEntry[V] {
	return listEntry[V]{t: listEntryRemoveAt, index: index}
}

func clearListEntry[V any]() listEntry[V] {
	return listEntry[V]{t: listEntryClear}
}

func (e listEntry[V]) ApplyFirst(s *[]V) any {
	switch e.t {
	case listEntryAppend:
		*s = append(*s, e.value)
		return len(*s)
	case listEntryRemoveAt:
		if e.index < 0 || e.index >= len(*s) {
			return false
		}
		*s = append((*s)[:e.index], (*s)[e.index+1:]...)
		return true
	case listEntryClear:
		*s = (*s)[:0]
		return nil
	default:
		panic("collections: unreachable list entry type")
	}
}

func (e listEntry[V]) ApplySecond(s *[]V) {
	e.ApplyFirst(s)
}
