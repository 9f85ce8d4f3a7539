package service

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Outcome classifies a BookingResult.
type Outcome string

const (
	OutcomeBooked          Outcome = "BOOKED"
	OutcomeSeatNotFound    Outcome = "SEAT_NOT_FOUND"
	OutcomeSeatUnavailable Outcome = "SEAT_UNAVAILABLE"
	OutcomeNothingBooked   Outcome = "NOTHING_BOOKED"
)

var (
	// ErrSeatNotFound means at least one requested id is not in the theater.
	ErrSeatNotFound = errors.New("seat not found")
	// ErrSeatUnavailable means at least one requested seat is already booked.
	ErrSeatUnavailable = errors.New("seat unavailable")
	// ErrNothingBooked means the request named no seats.
	ErrNothingBooked = errors.New("nothing booked")
)

// BookingResult is what BookSeats returns for every request, successful or
// not.  SeatIDs are the normalized, sorted ids of the request; Rejected lists
// the unknown or already taken ones on failure.
type BookingResult struct {
	Outcome    Outcome
	BookingID  string
	SeatIDs    []string
	Label      string
	PriceCents uint32 // per seat
	TotalCents uint32
	Rejected   []string
	BookedAt   time.Time
}

// OK reports whether the seats were booked.
func (r BookingResult) OK() bool { return r.Outcome == OutcomeBooked }

// Err returns nil for a successful booking and the matching sentinel,
// wrapped with the offending seats, otherwise.
func (r BookingResult) Err() error {
	switch r.Outcome {
	case OutcomeBooked:
		return nil
	case OutcomeSeatNotFound:
		return fmt.Errorf("%w: %s", ErrSeatNotFound, strings.Join(r.Rejected, ", "))
	case OutcomeSeatUnavailable:
		return fmt.Errorf("%w: %s", ErrSeatUnavailable, strings.Join(r.Rejected, ", "))
	default:
		return ErrNothingBooked
	}
}

// Message renders the result as one line for the console and API clients.
func (r BookingResult) Message() string {
	switch r.Outcome {
	case OutcomeBooked:
		return fmt.Sprintf("Success! Booked %v for vibe: %s at %s", r.SeatIDs, r.Label, FormatCents(r.PriceCents))
	case OutcomeSeatNotFound:
		if len(r.Rejected) == 1 {
			return fmt.Sprintf("Error: Seat %s does not exist.", r.Rejected[0])
		}
		return fmt.Sprintf("Error: Seats %v do not exist.", r.Rejected)
	case OutcomeSeatUnavailable:
		return fmt.Sprintf("Denied! One or more seats are already taken: %v", r.Rejected)
	default:
		return "Nothing booked: no seats requested."
	}
}

// FormatCents renders cents as dollars, e.g. 1500 -> "$15.00".
func FormatCents(c uint32) string {
	return fmt.Sprintf("$%d.%02d", c/100, c%100)
}
