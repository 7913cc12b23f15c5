package service

const SeatsPerTable = 5

// AssignSeat maps the n-th allocation of an event (1-based) to a table and seat.
func AssignSeat(seq int64) (table, seat int) {
	if seq < 1 {
		seq = 1
	}
	n := int(seq - 1)
	return n/SeatsPerTable + 1, n%SeatsPerTable + 1
}
