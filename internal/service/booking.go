// Package service contains the booking coordinator and the side channels
// that react to committed bookings.
package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/cinematch/internal/model"
	"github.com/iliyamo/cinematch/internal/repository"
)

// DefaultLabel is stored on seats booked without a vibe so that a booked
// seat never carries model.EmptyLabel.
const DefaultLabel = "Unspecified"

// Pricing holds the two price tiers.  Elevated applies once more than half of
// the theater is booked.
type Pricing struct {
	BaseCents     uint32
	ElevatedCents uint32
}

// Stats summarises occupancy for the stats endpoint and for events.
type Stats struct {
	Capacity          int    `json:"capacity"`
	Booked            int64  `json:"booked"`
	Available         int64  `json:"available"`
	CurrentPriceCents uint32 `json:"current_price_cents"`
}

// BookingService books seats atomically.  Concurrent requests over
// overlapping seat sets acquire seat locks in the same sorted order, so they
// queue behind each other instead of deadlocking.
type BookingService struct {
	seats     *repository.SeatRepo
	pricing   Pricing
	listeners []BookingListener
	log       *zap.Logger

	// Listener delivery runs off the booking path; see dispatch.
	jobs            chan listenerJob
	jobsMu          sync.RWMutex
	closed          bool
	overflow        sync.WaitGroup
	workerDone      chan struct{}
	listenerTimeout time.Duration

	now   func() time.Time
	newID func() string
}

// NewBookingService wires the coordinator to the inventory.  Listeners are
// notified in the background after every successful booking, once all seat
// locks are released.  Call Close to flush pending notifications.
func NewBookingService(seats *repository.SeatRepo, pricing Pricing, log *zap.Logger, listeners ...BookingListener) *BookingService {
	if seats == nil {
		panic("nil seat repository passed to NewBookingService")
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &BookingService{
		seats:           seats,
		pricing:         pricing,
		listeners:       listeners,
		log:             log,
		now:             func() time.Time { return time.Now().UTC() },
		newID:           func() string { return uuid.NewString() },
		jobs:            make(chan listenerJob, listenerQueueSize),
		workerDone:      make(chan struct{}),
		listenerTimeout: defaultListenerTimeout,
	}
	go s.dispatch()
	return s
}

// AddListener registers another post-commit listener.  It must be called
// before the service is shared between goroutines.
func (s *BookingService) AddListener(l BookingListener) {
	s.listeners = append(s.listeners, l)
}

// BookSeats books every seat in ids for label, or none of them.
//
// Waiting for a seat lock cannot be cancelled, so a request either commits
// fully or changes nothing.  ctx only carries values to the listeners; its
// cancellation does not reach them.
func (s *BookingService) BookSeats(ctx context.Context, ids []string, label string) BookingResult {
	sorted := normalizeIDs(ids)
	label = strings.TrimSpace(label)
	if label == "" || label == model.EmptyLabel {
		label = DefaultLabel
	}
	if len(sorted) == 0 {
		return BookingResult{Outcome: OutcomeNothingBooked, Label: label}
	}

	// Resolve before locking so an invalid request never holds a lock.
	seats := make([]*model.Seat, 0, len(sorted))
	var missing []string
	for _, id := range sorted {
		seat, ok := s.seats.Get(id)
		if !ok {
			missing = append(missing, id)
			continue
		}
		seats = append(seats, seat)
	}
	if len(missing) > 0 {
		s.log.Debug("booking rejected: unknown seats", zap.Strings("seats", sorted), zap.Strings("missing", missing))
		return BookingResult{Outcome: OutcomeSeatNotFound, SeatIDs: sorted, Label: label, Rejected: missing}
	}

	res := s.commit(seats, sorted, label)
	if res.Outcome != OutcomeBooked {
		s.log.Debug("booking rejected: seats taken", zap.Strings("seats", sorted), zap.Strings("taken", res.Rejected))
		return res
	}

	s.log.Info("seats booked",
		zap.String("booking_id", res.BookingID),
		zap.Strings("seats", res.SeatIDs),
		zap.String("vibe", res.Label),
		zap.Uint32("price_cents", res.PriceCents),
	)
	s.enqueue(ctx, res)
	return res
}

// commit runs the locked part of a booking.  seats must be in sorted id order.
func (s *BookingService) commit(seats []*model.Seat, ids []string, label string) BookingResult {
	for _, seat := range seats {
		seat.Lock()
	}
	defer func() {
		for i := len(seats) - 1; i >= 0; i-- {
			seats[i].Unlock()
		}
	}()

	var taken []string
	for _, seat := range seats {
		if seat.Booked() {
			taken = append(taken, seat.ID)
		}
	}
	if len(taken) > 0 {
		return BookingResult{Outcome: OutcomeSeatUnavailable, SeatIDs: ids, Label: label, Rejected: taken}
	}

	// The counter covers seats outside this request, so the tier is best
	// effort under concurrent commits on disjoint seats.
	price := s.priceFor(s.seats.BookedCount())
	for _, seat := range seats {
		seat.Book(label, price)
		s.seats.IncrementBookedCount()
	}

	return BookingResult{
		Outcome:    OutcomeBooked,
		BookingID:  s.newID(),
		SeatIDs:    ids,
		Label:      label,
		PriceCents: price,
		TotalCents: price * uint32(len(seats)),
		BookedAt:   s.now(),
	}
}

func (s *BookingService) priceFor(booked int64) uint32 {
	if booked > int64(s.seats.Capacity()/2) {
		return s.pricing.ElevatedCents
	}
	return s.pricing.BaseCents
}

// ListSeats returns the current seat map in display order.
func (s *BookingService) ListSeats() []model.SeatView {
	return s.seats.List()
}

// Stats reports occupancy and the price the next booking would pay.
func (s *BookingService) Stats() Stats {
	booked := s.seats.BookedCount()
	capacity := s.seats.Capacity()
	return Stats{
		Capacity:          capacity,
		Booked:            booked,
		Available:         int64(capacity) - booked,
		CurrentPriceCents: s.priceFor(booked),
	}
}

// normalizeIDs trims and upper-cases ids, drops blanks and duplicates and
// sorts the rest.  The sorted order is the global lock order.
func normalizeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.ToUpper(strings.TrimSpace(id))
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
