package repository // repository holds the seat inventory and the booking audit journal

import (
	"strconv"
	"sync/atomic"

	"github.com/iliyamo/cinematch/internal/model"
)

// SeatRepo is the in-memory seat inventory.  The set of seats is built once
// by NewSeatRepo and never changes size afterwards, so the map itself is
// read-only and safe for concurrent lookups; per-seat state is guarded by the
// seats' own locks.
type SeatRepo struct {
	seats  map[string]*model.Seat
	order  []*model.Seat // display order: row, then numeric column
	booked atomic.Int64
}

// NewSeatRepo builds a rows x cols grid of empty seats named A1..A<cols>,
// B1.. and so on.  Rows past Z continue as AA, AB, ...
func NewSeatRepo(rows, cols int, basePriceCents uint32) *SeatRepo {
	r := &SeatRepo{
		seats: make(map[string]*model.Seat, rows*cols),
		order: make([]*model.Seat, 0, rows*cols),
	}
	for i := 0; i < rows; i++ {
		row := indexToRowLabel(i)
		for n := 1; n <= cols; n++ {
			s := model.NewSeat(row+strconv.Itoa(n), basePriceCents)
			r.seats[s.ID] = s
			r.order = append(r.order, s)
		}
	}
	return r
}

// Get returns the seat with the given id.
func (r *SeatRepo) Get(id string) (*model.Seat, bool) {
	s, ok := r.seats[id]
	return s, ok
}

// List returns a snapshot of every seat in display order.  Seats are copied
// one at a time, so the result is not a point-in-time view of concurrent
// bookings; it is meant for rendering.
func (r *SeatRepo) List() []model.SeatView {
	out := make([]model.SeatView, 0, len(r.order))
	for _, s := range r.order {
		out = append(out, s.Snapshot())
	}
	return out
}

// IncrementBookedCount adds one to the occupancy counter and returns the new
// total.  Only the booking coordinator calls it, once per committed seat.
func (r *SeatRepo) IncrementBookedCount() int64 {
	return r.booked.Add(1)
}

// BookedCount returns the current occupancy counter.
func (r *SeatRepo) BookedCount() int64 {
	return r.booked.Load()
}

// Capacity returns the number of seats in the theater.
func (r *SeatRepo) Capacity() int {
	return len(r.order)
}

// indexToRowLabel converts a zero-based index to an alphabetical row label like A, B, AA
func indexToRowLabel(i int) string {
	if i < 0 {
		return ""
	}
	res := []rune{}
	for {
		res = append(res, rune('A'+i%26))
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	for j, k := 0, len(res)-1; j < k; j, k = j+1, k-1 {
		res[j], res[k] = res[k], res[j]
	}
	return string(res)
}
