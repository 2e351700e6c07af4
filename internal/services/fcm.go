package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"

	"rideshare-backend/internal/database"
	"rideshare-backend/internal/events"
	"rideshare-backend/internal/models"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

type multicastSender interface {
	SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

// DeviceTokenSource looks up the push tokens registered for a user.
type DeviceTokenSource interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// FCMService pushes booking notifications to the user's registered devices
// through Firebase Cloud Messaging.
type FCMService struct {
	client multicastSender
	tokens DeviceTokenSource
	logger *slog.Logger
}

// NewFCMService creates a new FCM service instance from a credentials file
func NewFCMService(ctx context.Context, credentialsFile string, tokens DeviceTokenSource, logger *slog.Logger) (*FCMService, error) {
	return newFCMService(ctx, option.WithCredentialsFile(credentialsFile), tokens, logger)
}

// NewFCMServiceFromBase64 creates a new FCM service instance from base64-encoded credentials.
// Useful where a credentials file cannot be mounted.
func NewFCMServiceFromBase64(ctx context.Context, credentialsBase64 string, tokens DeviceTokenSource, logger *slog.Logger) (*FCMService, error) {
	credentialsJSON, err := base64.StdEncoding.DecodeString(credentialsBase64)
	if err != nil {
		return nil, fmt.Errorf("error decoding base64 credentials: %w", err)
	}
	return newFCMService(ctx, option.WithCredentialsJSON(credentialsJSON), tokens, logger)
}

func newFCMService(ctx context.Context, opt option.ClientOption, tokens DeviceTokenSource, logger *slog.Logger) (*FCMService, error) {
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting messaging client: %w", err)
	}

	return &FCMService{client: client, tokens: tokens, logger: logger}, nil
}

// Notify sends a push for booking creation and status changes. Ride events
// and users without devices are skipped.
func (s *FCMService) Notify(ctx context.Context, e events.Event) error {
	title, body, ok := pushText(e)
	if !ok {
		return nil
	}

	user, err := s.tokens.GetUser(ctx, e.UserID)
	if errors.Is(err, database.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load device tokens: %w", err)
	}
	if len(user.DeviceTokens) == 0 {
		return nil
	}

	message := &messaging.MulticastMessage{
		Tokens: user.DeviceTokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: map[string]string{
			"type":       string(e.Type),
			"booking_id": e.BookingID,
			"status":     e.Status,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					ContentAvailable: true,
					Sound:            "default",
				},
			},
		},
	}

	response, err := s.client.SendEachForMulticast(ctx, message)
	if err != nil {
		return fmt.Errorf("error sending multicast message: %w", err)
	}

	s.logger.Info("✅ FCM multicast sent",
		"event", e.Type,
		"booking_id", e.BookingID,
		"success", response.SuccessCount,
		"failure", response.FailureCount,
	)
	return nil
}

func pushText(e events.Event) (title, body string, ok bool) {
	switch e.Type {
	case events.BookingCreated:
		return "Booking Received", fmt.Sprintf("Your booking has been received and is %s.", e.Status), true
	case events.BookingStatusChanged:
		return "Booking Update", fmt.Sprintf("Your booking status has been updated to: %s", e.Status), true
	default:
		return "", "", false
	}
}
