package model

import "sync"

// EmptyLabel is the label carried by every seat that has not been booked.
const EmptyLabel = "Empty"

// Seat describes one seat of the theater.  Seats are identified by their
// row letter and column number ("A1") and are created once at startup.
//
// Two locks guard a seat:
//
//	lock:  held by the booking coordinator for the whole check-then-commit
//	        of a booking; callers acquire it through Lock/Unlock.
//	state: guards the field copy in Snapshot so that listing the map never
//	        waits behind a booking that is still acquiring other seats.
//
// IsBooked, Label and PriceCents are only written by Book, which requires
// lock to be held.
type Seat struct {
	ID             string // row letter + column, immutable
	IsBooked       bool   // false until the seat is committed, then never reverts
	Label          string // EmptyLabel until booked, then the booking's vibe
	BasePriceCents uint32 // fixed at creation
	PriceCents     uint32 // base price until booked, then the committed tier price

	lock  sync.Mutex
	state sync.RWMutex
}

// NewSeat returns an empty seat priced at basePriceCents.
func NewSeat(id string, basePriceCents uint32) *Seat {
	return &Seat{
		ID:             id,
		Label:          EmptyLabel,
		BasePriceCents: basePriceCents,
		PriceCents:     basePriceCents,
	}
}

// Lock acquires the seat's booking lock.
func (s *Seat) Lock() { s.lock.Lock() }

// Unlock releases the seat's booking lock.
func (s *Seat) Unlock() { s.lock.Unlock() }

// Booked reports whether the seat is taken.  The caller must hold the
// booking lock.
func (s *Seat) Booked() bool { return s.IsBooked }

// Book marks the seat as taken.  The caller must hold the booking lock and
// must have checked Booked first.
func (s *Seat) Book(label string, priceCents uint32) {
	s.state.Lock()
	s.IsBooked = true
	s.Label = label
	s.PriceCents = priceCents
	s.state.Unlock()
}

// Snapshot copies the seat's display fields.
func (s *Seat) Snapshot() SeatView {
	s.state.RLock()
	defer s.state.RUnlock()
	return SeatView{
		ID:         s.ID,
		IsBooked:   s.IsBooked,
		Label:      s.Label,
		PriceCents: s.PriceCents,
	}
}

// SeatView is the read-only projection of a seat returned to callers that
// render the seat map.
type SeatView struct {
	ID         string `json:"id"`
	IsBooked   bool   `json:"is_booked"`
	Label      string `json:"vibe"`
	PriceCents uint32 `json:"price_cents"`
}
