package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"rideshare-backend/internal/database"
	"rideshare-backend/internal/events"
	"rideshare-backend/internal/models"
	"rideshare-backend/internal/observability"
	"rideshare-backend/internal/pricing"

	"github.com/shopspring/decimal"
)

var (
	ErrServiceNotFound = errors.New("service not found")
	ErrStatusRequired  = errors.New("status is required")
)

// scheduledLeadTime is how far ahead a scheduled booking without an explicit
// time is placed.
const scheduledLeadTime = time.Hour

// ValidationError reports a single bad request field found after schema
// validation passed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// BookingService creates bookings with their companion rides and emits
// booking events.
type BookingService struct {
	store    database.Store
	notifier events.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

func NewBookingService(store database.Store, notifier events.Notifier, logger *slog.Logger) *BookingService {
	return &BookingService{
		store:    store,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Create persists a booking for userID. When the referenced service exists a
// completed ride is recorded alongside it; when it does not, the booking still
// succeeds and no ride is written.
func (s *BookingService) Create(ctx context.Context, userID string, req models.CreateBookingRequest) (*models.Booking, error) {
	service, err := s.store.GetService(ctx, req.ServiceID)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("lookup service %s: %w", req.ServiceID, err)
	}

	total, err := s.totalFor(req, service)
	if err != nil {
		return nil, err
	}

	pointsUsed := models.DefaultPointsUsed
	if req.PointsUsed != nil {
		if pointsUsed, err = pricing.NormalizeAmount(*req.PointsUsed); err != nil {
			return nil, &ValidationError{Field: "pointsUsed", Message: "must be a decimal amount"}
		}
	}

	scheduled, err := s.scheduledTime(req)
	if err != nil {
		return nil, err
	}

	booking := models.Booking{
		UserID:         userID,
		ServiceID:      req.ServiceID,
		PickupLocation: trimmed(req.PickupLocation),
		Destination:    trimmed(req.Destination),
		ScheduledTime:  &scheduled,
		Status:         valueOr(trimmed(req.Status), models.BookingStatusPending),
		TotalAmount:    total,
		PointsUsed:     pointsUsed,
		PaymentMethod:  valueOr(trimmed(req.PaymentMethod), models.DefaultPaymentMethod),
		Notes:          req.Notes,
	}

	created, err := s.store.CreateBooking(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	serviceType := "unknown"
	if service != nil {
		serviceType = string(service.Type)
	}
	observability.BookingsCreated.WithLabelValues(serviceType).Inc()
	s.logger.Info("booking created",
		"booking_id", created.ID,
		"user_id", userID,
		"service_id", created.ServiceID,
		"total_amount", created.TotalAmount,
	)
	s.notify(ctx, events.Event{
		Type:      events.BookingCreated,
		UserID:    userID,
		BookingID: created.ID,
		Status:    created.Status,
		Timestamp: created.CreatedAt,
		Data:      created,
	})

	if service == nil {
		s.logger.Warn("booking references unknown service, no ride recorded",
			"booking_id", created.ID,
			"service_id", created.ServiceID,
		)
		return created, nil
	}

	destination := models.UnknownDestination
	if created.Destination != nil && *created.Destination != "" {
		destination = *created.Destination
	}
	ride, err := s.store.CreateRide(ctx, models.Ride{
		UserID:      created.UserID,
		ServiceType: service.Name,
		Destination: destination,
		Amount:      created.TotalAmount,
		Status:      models.RideStatusCompleted,
	})
	if err != nil {
		return nil, fmt.Errorf("create ride for booking %s: %w", created.ID, err)
	}

	observability.RidesCreated.Inc()
	s.notify(ctx, events.Event{
		Type:      events.RideCreated,
		UserID:    userID,
		BookingID: created.ID,
		Status:    ride.Status,
		Timestamp: ride.Date,
		Data:      ride,
	})

	return created, nil
}

func (s *BookingService) List(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.store.GetUserBookings(ctx, userID)
}

// UpdateStatus writes any non-empty status. Transitions are not checked.
func (s *BookingService) UpdateStatus(ctx context.Context, id, status string) (*models.Booking, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, ErrStatusRequired
	}

	booking, err := s.store.UpdateBookingStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	observability.BookingStatusUpdates.WithLabelValues(observability.KnownStatusLabel(status)).Inc()
	s.logger.Info("booking status updated", "booking_id", id, "status", status)
	s.notify(ctx, events.Event{
		Type:      events.BookingStatusChanged,
		UserID:    booking.UserID,
		BookingID: booking.ID,
		Status:    booking.Status,
		Timestamp: booking.UpdatedAt,
		Data:      booking,
	})
	return booking, nil
}

// Quote prices a service for display, including the points-plus-card preview
// against the user's balance. Nothing is persisted.
func (s *BookingService) Quote(ctx context.Context, userID, serviceID string, isScheduled bool) (*models.BookingQuote, error) {
	service, err := s.store.GetService(ctx, serviceID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, serviceID)
	}
	if err != nil {
		return nil, err
	}

	base, err := pricing.ParseAmount(service.BasePrice)
	if err != nil {
		return nil, fmt.Errorf("service %s base price: %w", serviceID, err)
	}

	balance := decimal.Zero
	user, err := s.store.GetUser(ctx, userID)
	switch {
	case err == nil:
		if b, perr := pricing.ParseAmount(user.PointsBalance); perr == nil {
			balance = b
		}
	case !errors.Is(err, database.ErrNotFound):
		return nil, err
	}

	total := pricing.Total(base, isScheduled)
	split := pricing.PointsSplit(total, balance)

	return &models.BookingQuote{
		ServiceID:   service.ID,
		IsScheduled: isScheduled,
		BasePrice:   pricing.FormatAmount(base),
		Discount:    pricing.FormatAmount(pricing.Discount(isScheduled)),
		TotalAmount: pricing.FormatAmount(total),
		PointsPreview: models.PointsPreview{
			Points:     pricing.FormatAmount(split.Points),
			CardAmount: pricing.FormatAmount(split.CardAmount),
		},
	}, nil
}

func (s *BookingService) totalFor(req models.CreateBookingRequest, service *models.Service) (string, error) {
	if req.TotalAmount != nil {
		total, err := pricing.NormalizeAmount(*req.TotalAmount)
		if err != nil {
			return "", &ValidationError{Field: "totalAmount", Message: "must be a decimal amount"}
		}
		return total, nil
	}
	if service == nil {
		return "", &ValidationError{Field: "totalAmount", Message: "is required when the service is unknown"}
	}

	base, err := pricing.ParseAmount(service.BasePrice)
	if err != nil {
		return "", fmt.Errorf("service %s base price: %w", service.ID, err)
	}
	return pricing.FormatAmount(pricing.Total(base, req.IsScheduled)), nil
}

func (s *BookingService) scheduledTime(req models.CreateBookingRequest) (time.Time, error) {
	if req.ScheduledTime != nil {
		t, err := time.Parse(time.RFC3339, *req.ScheduledTime)
		if err != nil {
			return time.Time{}, &ValidationError{Field: "scheduledTime", Message: "must be an RFC 3339 timestamp"}
		}
		return t, nil
	}
	if req.IsScheduled {
		return s.now().Add(scheduledLeadTime), nil
	}
	return s.now(), nil
}

func (s *BookingService) notify(ctx context.Context, e events.Event) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, e); err != nil {
		observability.NotificationFailures.WithLabelValues(string(e.Type)).Inc()
		s.logger.Warn("booking event delivery failed", "event", e.Type, "booking_id", e.BookingID, "error", err)
	}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func valueOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}
