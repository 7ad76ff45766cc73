package activestandby

import "sync/atomic"

// tablePair owns the two copies of the value a Handle or AsLock guards, plus
// the single bit naming which one is currently visible to readers. Swapping
// that bit is the linearization point of every write cycle.
type tablePair[T any] struct {
	tables [2]T
	active atomic.Uint32
}

// newTablePair creates a table pair from a single initial value and a clone
// function used once to produce its twin. The two tables must be
// semantically equal whenever no write is in progress; it's the caller's
// responsibility to pass a clone that establishes that.
func newTablePair[T any](initial T, clone func(T) T) *tablePair[T] {
	tp := &tablePair[T]{}
	tp.tables[0] = initial
	tp.tables[1] = clone(initial)
	return tp
}

// activeIndex returns the index of the table currently visible to readers.
func (tp *tablePair[T]) activeIndex() uint32 {
	return tp.active.Load()
}

// standbyIndex returns the index of the table the writer may mutate.
func (tp *tablePair[T]) standbyIndex() uint32 {
	return 1 - tp.active.Load()
}

// at returns a pointer to the table at the given index. The caller must
// already know it's safe to dereference (either because it's reading the
// active table under a live guard, or because it's the writer holding
// exclusive standby access).
func (tp *tablePair[T]) at(idx uint32) *T {
	return &tp.tables[idx]
}

// standby returns exclusive access to the non-active table. Callable only
// from the writer; the writer mutex is what makes this safe.
func (tp *tablePair[T]) standby() *T {
	return tp.at(tp.standbyIndex())
}

// swap toggles the active index. This is the single linearization point of
// every write cycle: after swap returns, new readers observe what was the
// standby, and the writer may safely mutate what was active once it has
// drained readers from it.
func (tp *tablePair[T]) swap() {
	tp.active.Store(1 - tp.active.Load())
}
