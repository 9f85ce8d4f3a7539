package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// BookingAuditRecord is one row of the booking_audit journal.  The journal
// is append-only: it is never read back to rebuild the inventory.
type BookingAuditRecord struct {
	BookingID  string    // booking_audit.booking_id
	SeatIDs    []string  // booking_audit.seat_ids (comma separated)
	Vibe       string    // booking_audit.vibe
	PriceCents uint32    // booking_audit.price_cents (per seat)
	TotalCents uint32    // booking_audit.total_cents
	BookedAt   time.Time // booking_audit.booked_at
}

// ErrEmptyAuditRecord is returned when a record carries no booking id or seats.
var ErrEmptyAuditRecord = errors.New("audit record has no booking id or seats")

// BookingAuditRepo writes committed bookings to MySQL.
type BookingAuditRepo struct {
	db *sql.DB
}

// NewBookingAuditRepo constructs a BookingAuditRepo with the given DB handle.
func NewBookingAuditRepo(db *sql.DB) *BookingAuditRepo {
	return &BookingAuditRepo{db: db}
}

// Insert appends one booking to the journal.
func (r *BookingAuditRepo) Insert(ctx context.Context, rec BookingAuditRecord) error {
	if rec.BookingID == "" || len(rec.SeatIDs) == 0 {
		return ErrEmptyAuditRecord
	}
	const q = `INSERT INTO booking_audit (booking_id, seat_ids, vibe, price_cents, total_cents, booked_at)
	           VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		rec.BookingID, strings.Join(rec.SeatIDs, ","), rec.Vibe,
		rec.PriceCents, rec.TotalCents, rec.BookedAt.UTC())
	return err
}
