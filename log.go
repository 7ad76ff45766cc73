package activestandby

// writeLog stores the sequence of operations applied to the standby table
// during the current write cycle but not yet applied to the other table.
// At the start of any cycle it holds exactly those operations already
// applied (via ApplyFirst) to the active table but not yet (via
// ApplySecond) to the standby; Replay drains it back to empty.
//
// Not thread-safe on its own: the writer mutex that guards writeGuard
// acquisition is what makes access to the log safe.
type writeLog[T any] struct {
	entries []Operation[T]
}

func newWriteLog[T any]() *writeLog[T] {
	return &writeLog[T]{entries: []Operation[T]{}}
}

// push appends an operation to the log. Used after ApplyFirst has already
// been run against the standby.
func (l *writeLog[T]) push(op Operation[T]) {
	l.entries = append(l.entries, op)
}

// replay applies ApplySecond, in order, to every logged operation against
// t, then clears the log. Called once per write cycle, before any new
// operation is accepted.
func (l *writeLog[T]) replay(t *T) {
	for _, op := range l.entries {
		op.ApplySecond(t)
	}
	l.clear()
}

// clear empties the log without applying anything.
func (l *writeLog[T]) clear() {
	l.entries = l.entries[:0]
}

// len returns the number of operations pending their second application.
func (l *writeLog[T]) len() int {
	return len(l.entries)
}
