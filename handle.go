package activestandby

// Handle is the lockless form of the active-standby primitive (spec.md §6
// "Lockless form"). Each Handle owns its own epoch entry in a shared
// registry; reads are non-blocking atomic operations, writes serialize on
// a shared mutex.
type Handle[T any] struct {
	core *handleCore[T]
	id   uint64
	self *epochEntry
}

// handleCore is the state shared by every Handle cloned from the same
// origin: the table pair, the registry of reader epochs, and the writer.
// Handles hold a reference to it; there's no reference counting needed
// beyond what the garbage collector already does for a shared pointer.
type handleCore[T any] struct {
	pair *tablePair[T]
	reg  *registry
	w    *writer[T]
}

// NewHandle creates a new active-standby object holding initial (and a
// clone of it as the standby table), returning the first handle registered
// against it. Additional handles are created with Clone.
func NewHandle[T any](initial T, clone func(T) T) *Handle[T] {
	core := &handleCore[T]{
		pair: newTablePair(initial, clone),
		reg:  newRegistry(),
	}
	core.w = newWriter(core.pair, core.reg.drainStandby)
	id, entry := core.reg.register()
	return &Handle[T]{core: core, id: id, self: entry}
}

// Clone returns a new handle sharing this one's underlying object,
// registered with its own epoch entry. Readers and writers aren't distinct
// types; any handle may call Read or Write.
func (h *Handle[T]) Clone() *Handle[T] {
	id, entry := h.core.reg.register()
	return &Handle[T]{core: h.core, id: id, self: entry}
}

// Close deregisters this handle. It does not affect the underlying object
// or other handles; the object itself is released once every handle
// referring to it, and the handles themselves, become unreachable.
//
// Closing a handle while one of its read guards is still open is a misuse:
// the guard remains valid to use, but the writer can no longer be relied
// on to wait for it.
func (h *Handle[T]) Close() {
	h.core.reg.deregister(h.id)
}

// Read acquires a non-blocking read guard over the currently active table.
// It never contends with a writer and never fails.
func (h *Handle[T]) Read() *ReadGuard[T] {
	// Announce before loading the index: a drain that observes this epoch
	// as even must be guaranteed the handle's next activeIndex() load (if
	// any) happens after that snapshot, not before it. Incrementing first
	// means a drain that catches us mid-read (odd epoch) waits for the
	// matching Close; a drain that doesn't see us reading at all can only
	// be racing a Read that hasn't incremented yet, i.e. one that will load
	// the post-swap index.
	h.self.epoch.Add(1)
	idx := h.core.pair.activeIndex()
	return &ReadGuard[T]{h: h, idx: idx}
}

// Write acquires exclusive writer access, blocking until it's available and
// until readers have drained from the table this cycle will mutate. It
// fails only if the object has been poisoned by a panic in a previous
// operation.
func (h *Handle[T]) Write() (*WriteGuard[T], error) {
	return h.core.w.acquire()
}

// ReadGuard pins the table that was active at acquisition time. It must be
// closed exactly once; using it after Close panics.
type ReadGuard[T any] struct {
	h      *Handle[T]
	idx    uint32
	closed bool
}

// Value returns the guarded table. The returned pointer must not be used
// after Close.
func (g *ReadGuard[T]) Value() *T {
	if g.closed {
		panic("activestandby: use of a closed read guard")
	}
	return g.h.core.pair.at(g.idx)
}

// Close releases the read guard. Infallible and non-blocking: it's a
// single atomic increment of the handle's epoch.
func (g *ReadGuard[T]) Close() {
	if g.closed {
		panic("activestandby: double close of read guard")
	}
	g.closed = true
	g.h.self.epoch.Add(1)
}
