// Package activestandby implements an active-standby concurrency primitive:
// a read-optimized synchronization object that holds two identical copies of
// a value so that readers never contend with the single writer.
//
// Readers always observe the active table; the writer mutates only the
// standby, then atomically swaps the tables and replays the mutation on the
// new standby. This trades 2x memory and duplicated write work for
// read-heavy throughput: a reader never blocks on the writer, and the
// writer only blocks on other writers and on draining readers from the
// table it's about to mutate.
//
// Two interchangeable forms are provided. Handle is "lockless": readers
// only ever perform atomic increments and an acquire load, at the cost of
// one epoch counter per reader handle. AsLock is "sync": readers briefly
// contend on a small internal lock during the swap window, in exchange for
// not needing a per-reader handle.
//
// Both forms support multiple concurrent writers: Write serializes them on an internal mutex, so only one write cycle is ever in
// flight at a time; see WriteGuard.
package activestandby
