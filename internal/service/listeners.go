package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/cinematch/internal/repository"
)

// BookingListener is notified after a booking has been committed and all
// seat locks are released.  Calls come from a background worker, each
// bounded by a timeout.  Errors are logged by the service and never change
// the booking outcome.
type BookingListener interface {
	BookingConfirmed(ctx context.Context, res BookingResult) error
}

// BookingListenerFunc adapts a plain function to BookingListener.
type BookingListenerFunc func(ctx context.Context, res BookingResult) error

func (f BookingListenerFunc) BookingConfirmed(ctx context.Context, res BookingResult) error {
	return f(ctx, res)
}

// AuditWriter is the part of repository.BookingAuditRepo the audit listener needs.
type AuditWriter interface {
	Insert(ctx context.Context, rec repository.BookingAuditRecord) error
}

// NewAuditListener journals every committed booking through w.
func NewAuditListener(w AuditWriter) BookingListener {
	return BookingListenerFunc(func(ctx context.Context, res BookingResult) error {
		return w.Insert(ctx, repository.BookingAuditRecord{
			BookingID:  res.BookingID,
			SeatIDs:    res.SeatIDs,
			Vibe:       res.Label,
			PriceCents: res.PriceCents,
			TotalCents: res.TotalCents,
			BookedAt:   res.BookedAt,
		})
	})
}

const (
	listenerQueueSize      = 256
	defaultListenerTimeout = 10 * time.Second
)

type listenerJob struct {
	ctx context.Context
	res BookingResult
}

// enqueue hands res to the listener worker without blocking.  When the queue
// is full the job gets its own goroutine so no confirmed booking is dropped.
func (s *BookingService) enqueue(ctx context.Context, res BookingResult) {
	if len(s.listeners) == 0 {
		return
	}
	job := listenerJob{ctx: context.WithoutCancel(ctx), res: res}

	s.jobsMu.RLock()
	defer s.jobsMu.RUnlock()
	if s.closed {
		s.log.Warn("booking service closed, listeners skipped", zap.String("booking_id", res.BookingID))
		return
	}
	select {
	case s.jobs <- job:
	default:
		s.log.Warn("listener queue full", zap.String("booking_id", res.BookingID))
		s.overflow.Add(1)
		go func() {
			defer s.overflow.Done()
			s.notify(job)
		}()
	}
}

func (s *BookingService) dispatch() {
	defer close(s.workerDone)
	for job := range s.jobs {
		s.notify(job)
	}
}

func (s *BookingService) notify(job listenerJob) {
	for _, l := range s.listeners {
		ctx, cancel := context.WithTimeout(job.ctx, s.listenerTimeout)
		err := l.BookingConfirmed(ctx, job.res)
		cancel()
		if err != nil {
			s.log.Warn("booking listener failed",
				zap.String("booking_id", job.res.BookingID),
				zap.Error(err),
			)
		}
	}
}

// Close stops accepting notifications and waits until every queued one has
// been delivered.  Bookings made after Close still commit but notify nobody.
func (s *BookingService) Close() {
	s.jobsMu.Lock()
	if !s.closed {
		s.closed = true
		close(s.jobs)
	}
	s.jobsMu.Unlock()
	<-s.workerDone
	s.overflow.Wait()
}
