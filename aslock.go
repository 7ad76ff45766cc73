package activestandby

import (
	"sync"
	"sync/atomic"

	"github.com/clarkmcc/go-activestandby/internal/backoff"
)

// AsLock is the sync form of the active-standby primitive (spec.md §6
// "Sync form"): a single shareable object rather than a family of cloned
// handles. Readers briefly contend on a small internal lock during the
// swap window; there's no per-reader epoch to own.
type AsLock[T any] struct {
	pair *tablePair[T]
	w    *writer[T]

	// readersOn[i] counts live readers of tables[i]. A reader increments
	// the one for whichever index it observed as active at acquisition and
	// decrements that same index on release, regardless of any swaps that
	// happen in between.
	readersOn [2]atomic.Uint32

	// swapMu makes "observe active index, then increment its counter"
	// atomic with respect to a concurrent swap; see spec.md §4.3.
	swapMu sync.Mutex
}

// NewAsLock creates a new active-standby object from an initial value and a
// clone function used once to produce its standby twin.
func NewAsLock[T any](initial T, clone func(T) T) *AsLock[T] {
	a := &AsLock[T]{pair: newTablePair(initial, clone)}
	a.w = newWriter(a.pair, a.drainStandby)
	a.w.swapMu = &a.swapMu
	return a
}

func (a *AsLock[T]) drainStandby() {
	idx := a.pair.standbyIndex()
	bo := backoff.New()
	for a.readersOn[idx].Load() != 0 {
		bo.Spin()
	}
}

// Read acquires a read guard over the currently active table. It briefly
// holds the object's internal lock, so it contends with a concurrent swap
// and with other readers acquiring at the same moment.
func (a *AsLock[T]) Read() (*SyncReadGuard[T], error) {
	if a.w.poisoned.Load() {
		return nil, a.w.poisonedError()
	}
	a.swapMu.Lock()
	idx := a.pair.activeIndex()
	a.readersOn[idx].Add(1)
	a.swapMu.Unlock()
	return &SyncReadGuard[T]{a: a, idx: idx}, nil
}

// Write acquires exclusive writer access; see Handle.Write.
func (a *AsLock[T]) Write() (*WriteGuard[T], error) {
	return a.w.acquire()
}

// SyncReadGuard pins the table that was active when Read was called. It
// must be closed exactly once.
type SyncReadGuard[T any] struct {
	a      *AsLock[T]
	idx    uint32
	closed bool
}

// Value returns the guarded table. Using it after Close panics.
func (g *SyncReadGuard[T]) Value() *T {
	if g.closed {
		panic("activestandby: use of a closed read guard")
	}
	return g.a.pair.at(g.idx)
}

// Close releases the read guard.
func (g *SyncReadGuard[T]) Close() {
	if g.closed {
		panic("activestandby: double close of read guard")
	}
	g.closed = true
	g.a.readersOn[g.idx].Add(^uint32(0))
}
