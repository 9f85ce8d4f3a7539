package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinematch/internal/repository"
)

type fakeAuditWriter struct {
	recs []repository.BookingAuditRecord
}

func (f *fakeAuditWriter) Insert(_ context.Context, rec repository.BookingAuditRecord) error {
	f.recs = append(f.recs, rec)
	return nil
}

func TestAuditListener_JournalsCommittedBooking(t *testing.T) {
	w := &fakeAuditWriter{}
	svc, _ := newTestService(NewAuditListener(w))
	fixed := time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	svc.newID = func() string { return "booking-1" }

	svc.BookSeats(context.Background(), []string{"C1", "B2"}, "birthday")
	svc.BookSeats(context.Background(), []string{"C1"}, "late")
	svc.Close()

	require.Len(t, w.recs, 1)
	assert.Equal(t, repository.BookingAuditRecord{
		BookingID:  "booking-1",
		SeatIDs:    []string{"B2", "C1"},
		Vibe:       "birthday",
		PriceCents: 1500,
		TotalCents: 3000,
		BookedAt:   fixed,
	}, w.recs[0])
}

func TestNewBookingConfirmedEvent(t *testing.T) {
	res := BookingResult{
		Outcome:    OutcomeBooked,
		BookingID:  "b-42",
		SeatIDs:    []string{"A1", "A2"},
		Label:      "squad",
		PriceCents: 1800,
		TotalCents: 3600,
		BookedAt:   time.Date(2026, 10, 16, 21, 30, 0, 0, time.UTC),
	}

	ev := newBookingConfirmedEvent(res, Stats{Capacity: 15, Booked: 10})

	assert.Equal(t, "b-42", ev.BookingID)
	assert.Equal(t, []string{"A1", "A2"}, ev.SeatIDs)
	assert.Equal(t, "squad", ev.Vibe)
	assert.Equal(t, uint32(1800), ev.PriceCents)
	assert.Equal(t, uint32(3600), ev.TotalAmountCents)
	assert.Equal(t, int64(10), ev.BookedCount)
	assert.Equal(t, 15, ev.Capacity)
	assert.Equal(t, "2026-10-16T21:30:00Z", ev.ConfirmedAt)
}

func TestBookingResult_Messages(t *testing.T) {
	ok := BookingResult{Outcome: OutcomeBooked, SeatIDs: []string{"A1", "A3"}, Label: "date-night", PriceCents: 1500}
	assert.Equal(t, "Success! Booked [A1 A3] for vibe: date-night at $15.00", ok.Message())

	taken := BookingResult{Outcome: OutcomeSeatUnavailable, Rejected: []string{"A1"}}
	assert.Contains(t, taken.Message(), "already taken")
	assert.EqualError(t, taken.Err(), "seat unavailable: A1")

	missing := BookingResult{Outcome: OutcomeSeatNotFound, Rejected: []string{"Y1", "Z9"}}
	assert.Equal(t, "Error: Seats [Y1 Z9] do not exist.", missing.Message())

	assert.Equal(t, "$18.05", FormatCents(1805))
}
