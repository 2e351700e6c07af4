package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"rideshare-backend/internal/observability"
)

// Async delivers events to a slow notifier (Kafka, FCM) off the request
// path. Each delivery gets its own timeout and is not cancelled when the
// caller's request ends. Failures are logged and counted.
type Async struct {
	next    Notifier
	timeout time.Duration
	logger  *slog.Logger
	wg      sync.WaitGroup
}

func NewAsync(next Notifier, timeout time.Duration, logger *slog.Logger) *Async {
	return &Async{next: next, timeout: timeout, logger: logger}
}

// Notify starts the delivery and returns immediately.
func (a *Async) Notify(ctx context.Context, e Event) error {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.timeout)
		defer cancel()

		if err := a.next.Notify(ctx, e); err != nil {
			observability.NotificationFailures.WithLabelValues(string(e.Type)).Inc()
			a.logger.Warn("booking event delivery failed", "event", e.Type, "booking_id", e.BookingID, "error", err)
		}
	}()
	return nil
}

// Wait blocks until in-flight deliveries finish or ctx is done.
func (a *Async) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
