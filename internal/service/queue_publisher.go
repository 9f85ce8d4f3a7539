package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	q "github.com/iliyamo/cinematch/internal/queue"
)

// StatsSource supplies the occupancy figures attached to published events.
type StatsSource interface {
	Stats() Stats
}

// EventPublisher publishes a BookingConfirmedEvent to the booking.confirmed
// queue for every committed booking.  It dials the broker per event, so a
// broker outage only costs the events published while it lasts.
type EventPublisher struct {
	url   string
	stats StatsSource
	log   *zap.Logger
}

// NewEventPublisher returns a publisher for the broker at url.
func NewEventPublisher(url string, stats StatsSource, log *zap.Logger) *EventPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &EventPublisher{url: url, stats: stats, log: log}
}

// BookingConfirmed implements BookingListener.  Messages are marked persistent.
func (p *EventPublisher) BookingConfirmed(ctx context.Context, res BookingResult) error {
	body, err := json.Marshal(newBookingConfirmedEvent(res, p.stats.Stats()))
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(dialTimeout(ctx)),
	})
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Durable so messages survive broker restarts; declaring is idempotent.
	if _, err := ch.QueueDeclare(q.BookingQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    res.BookingID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", q.BookingQueueName, false, false, pub); err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	p.log.Debug("booking event published", zap.String("booking_id", res.BookingID))
	return nil
}

// dialTimeout bounds the broker connect by ctx's deadline.
func dialTimeout(ctx context.Context) time.Duration {
	const fallback = 30 * time.Second
	deadline, ok := ctx.Deadline()
	if !ok {
		return fallback
	}
	if d := time.Until(deadline); d > 0 {
		return d
	}
	return time.Millisecond
}

func newBookingConfirmedEvent(res BookingResult, st Stats) q.BookingConfirmedEvent {
	return q.BookingConfirmedEvent{
		BookingID:        res.BookingID,
		SeatIDs:          res.SeatIDs,
		Vibe:             res.Label,
		PriceCents:       res.PriceCents,
		TotalAmountCents: res.TotalCents,
		BookedCount:      st.Booked,
		Capacity:         st.Capacity,
		ConfirmedAt:      res.BookedAt.UTC().Format(time.RFC3339),
	}
}
