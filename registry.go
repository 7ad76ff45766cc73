package activestandby

import (
	"sync"
	"sync/atomic"

	"github.com/clarkmcc/go-activestandby/internal/backoff"
)

// epochEntry is one reader handle's presence marker. Even values mean "not
// reading"; odd values mean "currently reading the table whose active
// index was observed when the epoch was last e-1". It's incremented once
// on read-guard acquisition and once on release; the two increments must
// straddle the entire read.
type epochEntry struct {
	epoch atomic.Uint64
}

// registry is the lockless variant's ReaderRegistry: a flat, concurrent
// collection of epoch entries keyed by handle identifier. Handles register
// on clone and deregister on close; the writer enumerates a snapshot of
// current handles once per drain.
type registry struct {
	mu      sync.Mutex
	nextID  uint64
	entries map[uint64]*epochEntry
}

func newRegistry() *registry {
	return &registry{entries: make(map[uint64]*epochEntry)}
}

func (r *registry) register() (uint64, *epochEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	e := &epochEntry{}
	r.entries[id] = e
	return id, e
}

func (r *registry) deregister(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
}

// snapshot captures every currently registered entry and its epoch at this
// instant. Handles registered after the snapshot is taken are absent from
// it and therefore never waited on: per spec.md §9, a handle created after
// the swap can only observe the new active table, so it cannot be
// referencing the standby the writer is about to drain.
func (r *registry) snapshot() map[uint64]uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := make(map[uint64]uint64, len(r.entries))
	for id, e := range r.entries {
		snap[id] = e.epoch.Load()
	}
	return snap
}

func (r *registry) lookup(id uint64) (*epochEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	return e, ok
}

// drainStandby waits until every handle that was mid-read at snapshot time has
// either finished that read or been deregistered. A handle "passes" when
// its snapshot epoch was even (it wasn't reading) or its current epoch no
// longer equals the snapshot value (it released, possibly re-entered, but
// either way is no longer pinned to the pre-swap active table).
func (r *registry) drainStandby() {
	for id, startEpoch := range r.snapshot() {
		if startEpoch%2 == 0 {
			continue
		}
		e, ok := r.lookup(id)
		if !ok {
			// Handle closed mid-drain. Closing a handle while one of its
			// read guards is still open is a misuse this registry can't
			// detect; in the well-behaved case a handle only closes
			// between reads, so its epoch was already even and it never
			// reaches this branch.
			continue
		}
		bo := backoff.New()
		for e.epoch.Load() == startEpoch {
			bo.Spin()
		}
	}
}
