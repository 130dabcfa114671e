package engine

// actionQueue is the ordered list of seats still owed a decision this
// betting round, plus a cursor identifying the current actor. The cursor
// may deliberately sit one past the end: that is the round-completion
// signal, never an error to be reset.
type actionQueue struct {
	seats []int
	idx   int
}

func newActionQueue(seats []int) *actionQueue {
	return &actionQueue{seats: seats}
}

// current returns the seat whose turn it is. ok is false when the queue
// is exhausted, which callers must treat as "round complete" rather than
// indexing blindly.
func (q *actionQueue) current() (int, bool) {
	if q.idx < 0 || q.idx >= len(q.seats) {
		return 0, false
	}
	return q.seats[q.idx], true
}

// advance moves the cursor to the next entry.
func (q *actionQueue) advance() {
	q.idx++
}

// remove drops a seat from the queue. When the removed entry sits before
// the cursor the cursor shifts back one so it keeps denoting the same
// logical next actor; when the removed entry is the cursor itself the
// cursor is left alone, so it now denotes the following entry or the end.
func (q *actionQueue) remove(seat int) {
	for pos, s := range q.seats {
		if s != seat {
			continue
		}
		q.seats = append(q.seats[:pos], q.seats[pos+1:]...)
		if pos < q.idx {
			q.idx--
		}
		return
	}
}

// exhausted reports whether every queued seat has acted.
func (q *actionQueue) exhausted() bool {
	return q.idx >= len(q.seats)
}

// contains reports whether a seat is still owed an action.
func (q *actionQueue) contains(seat int) bool {
	for _, s := range q.seats {
		if s == seat {
			return true
		}
	}
	return false
}

// pending returns a copy of the remaining queue from the cursor onward.
func (q *actionQueue) pending() []int {
	if q.exhausted() {
		return nil
	}
	out := make([]int, len(q.seats)-q.idx)
	copy(out, q.seats[q.idx:])
	return out
}

// snapshotOrder returns a copy of the full queue for state snapshots.
func (q *actionQueue) snapshotOrder() []int {
	out := make([]int, len(q.seats))
	copy(out, q.seats)
	return out
}
