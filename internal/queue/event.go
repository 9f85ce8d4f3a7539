// Package queue defines message payloads exchanged over the message broker
// and the consumer that turns them into booking log lines.
package queue

// BookingQueueName is the durable queue committed bookings are published to.
const BookingQueueName = "booking.confirmed"

// BookingConfirmedEvent is published when seats are successfully booked.
// It carries enough for downstream consumers to log or notify without
// querying the engine.
type BookingConfirmedEvent struct {
	BookingID        string   `json:"booking_id"`
	SeatIDs          []string `json:"seats"`
	Vibe             string   `json:"vibe"`
	PriceCents       uint32   `json:"price_cents"`
	TotalAmountCents uint32   `json:"total_amount_cents"`
	BookedCount      int64    `json:"booked_count"`
	Capacity         int      `json:"capacity"`
	ConfirmedAt      string   `json:"confirmed_at"`
}
