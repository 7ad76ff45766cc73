// Package backoff implements the spin/yield/park escalation a drain loop
// uses while waiting for readers to vacate a table. It has no third-party
// dependency to ground itself on: every pack example that spins on an
// atomic (erikfastermann/readerwriter's Reader acquisition loop,
// gaissmai/bart's pool CAS retries) does so with a bare for-loop plus
// runtime.Gosched, so that's the idiom followed here rather than pulling in
// a scheduling library nothing in the corpus reaches for.
package backoff

import (
	"runtime"
	"time"
)

// spinLimit is how many iterations are spent busy-spinning before yielding
// the P, and yieldLimit is how many of those before sleeping with backoff.
// Readers are expected to hold guards briefly, so most drains never leave
// the busy-spin phase.
const (
	spinLimit  = 64
	yieldLimit = 512
)

// Backoff escalates from busy-spinning to yielding to sleeping with
// exponentially increasing (capped) delay. It never gives up: the drain it
// backs has no timeout, by design (spec.md §5, "the drain has no built-in
// timeout").
type Backoff struct {
	attempts int
	sleep    time.Duration
}

const maxSleep = 10 * time.Millisecond

// New returns a fresh Backoff.
func New() *Backoff {
	return &Backoff{sleep: 50 * time.Microsecond}
}

// Spin waits one step of the escalating backoff.
func (b *Backoff) Spin() {
	b.attempts++
	switch {
	case b.attempts <= spinLimit:
		// busy-spin: cheapest option for the common case of a reader that
		// releases within a few instructions of the writer's check.
	case b.attempts <= yieldLimit:
		runtime.Gosched()
	default:
		time.Sleep(b.sleep)
		if b.sleep < maxSleep {
			b.sleep *= 2
			if b.sleep > maxSleep {
				b.sleep = maxSleep
			}
		}
	}
}
