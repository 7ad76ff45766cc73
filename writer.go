package activestandby

import (
	"sync"
	"sync/atomic"
)

// writer orchestrates write cycles for either form of the core. Exactly one
// instance exists per active-standby object; Handle and AsLock differ only
// in how readers announce and retire themselves (drain), not in how a
// write cycle proceeds.
type writer[T any] struct {
	pair *tablePair[T]
	log  *writeLog[T]

	mu sync.Mutex

	poisoned atomic.Bool
	lastErr  atomic.Pointer[poisonError]

	// drain waits until no outstanding read guard references the table at
	// pair.standbyIndex(). Supplied by whichever registry variant owns
	// this writer; called with mu held.
	drain func()

	// swapMu, when set, is locked around the pair swap in WriteGuard.Close.
	// The sync variant uses this to make "load active index, increment its
	// reader counter" atomic with respect to the swap (spec.md §4.3); the
	// lockless variant leaves it nil since its epoch counters don't need a
	// lock to stay consistent with the swap.
	swapMu *sync.Mutex
}

func newWriter[T any](pair *tablePair[T], drain func()) *writer[T] {
	return &writer[T]{
		pair:  pair,
		log:   newWriteLog[T](),
		drain: drain,
	}
}

// acquire implements write_guard(): locks the writer mutex, then performs
// the deferred drain and log replay from the previous cycle before
// returning a guard that may accept new operations. This is the "drain on
// guard acquisition" placement spec.md §4.5/§9 call out as the one used in
// practice: it keeps the wait for readers out of the swap that ends the
// previous writer's guard, and out of the fast path entirely when the next
// writer doesn't arrive for a while.
func (w *writer[T]) acquire() (*WriteGuard[T], error) {
	w.mu.Lock()
	if w.poisoned.Load() {
		w.mu.Unlock()
		return nil, w.poisonedError()
	}
	if err := w.drainAndReplay(); err != nil {
		w.mu.Unlock()
		return nil, err
	}
	return &WriteGuard[T]{w: w}, nil
}

func (w *writer[T]) drainAndReplay() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = w.poison(r)
		}
	}()
	w.drain()
	w.log.replay(w.pair.standby())
	return nil
}

func (w *writer[T]) poison(cause any) error {
	e := poisonedErr(cause).(*poisonError)
	w.lastErr.Store(e)
	w.poisoned.Store(true)
	return e
}

func (w *writer[T]) poisonedError() error {
	if e := w.lastErr.Load(); e != nil {
		return e
	}
	return ErrPoisoned
}

// WriteGuard is the exclusive handle returned by Handle.Write and
// AsLock.Write; it must be
// closed exactly once, which performs the swap that publishes this cycle's
// updates to readers.
type WriteGuard[T any] struct {
	w      *writer[T]
	closed bool
}

// UpdateTables applies op.ApplyFirst to the standby table immediately and
// records op so its ApplySecond runs at the start of the next write cycle.
// The value returned is whatever ApplyFirst produced.
//
// If ApplyFirst panics, the object is poisoned: the panic is recovered,
// reported as an error, and every subsequent Write (and AsLock.Read) fails
// until a new object is created. Handle.Read never fails.
func (g *WriteGuard[T]) UpdateTables(op Operation[T]) (result any, err error) {
	if g.closed {
		panic("activestandby: use of a closed write guard")
	}
	defer func() {
		if r := recover(); r != nil {
			err = g.w.poison(r)
		}
	}()
	result = op.ApplyFirst(g.w.pair.standby())
	g.w.log.push(op)
	return result, nil
}

// UpdateTablesClosure wraps f as a replayable Operation (see Func) and
// applies it via UpdateTables. f runs once on each table, so it must be
// replayable: applied to two initially-equal tables, it must leave them
// equal. This is documented, not enforced, matching the behavior this
// module is modeled on.
func (g *WriteGuard[T]) UpdateTablesClosure(f func(t *T)) error {
	_, err := g.UpdateTables(Func(f))
	return err
}

// Close publishes this cycle's updates by swapping the table pair and
// releases the writer mutex. The log is not drained here; that happens at
// the start of the next write cycle (see writer.acquire), which defers the
// wait for readers out of this hot path.
func (g *WriteGuard[T]) Close() {
	if g.closed {
		panic("activestandby: double close of write guard")
	}
	g.closed = true
	if g.w.swapMu != nil {
		g.w.swapMu.Lock()
		g.w.pair.swap()
		g.w.swapMu.Unlock()
	} else {
		g.w.pair.swap()
	}
	g.w.mu.Unlock()
}
