package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"rideshare-backend/internal/models"
)

func strPtr(s string) *string { return &s }

// Seed loads the demo user, the service catalog and sample ride history.
// Each step skips itself when its data is already present.
func Seed(ctx context.Context, store Store, logger *slog.Logger) error {
	if err := SeedUsers(ctx, store, logger); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	if err := SeedServices(ctx, store, logger); err != nil {
		return fmt.Errorf("seed services: %w", err)
	}
	if err := SeedRides(ctx, store, logger); err != nil {
		return fmt.Errorf("seed rides: %w", err)
	}
	return nil
}

func SeedUsers(ctx context.Context, store Store, logger *slog.Logger) error {
	_, err := store.GetUser(ctx, models.DemoUserID)
	if err == nil {
		logger.Info("✓ users already seeded, skipping")
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}

	logger.Info("🌱 seeding demo user...")
	user, err := store.CreateUser(ctx, models.User{
		ID:            models.DemoUserID,
		Username:      "demo",
		Password:      "demo123",
		PointsBalance: "125.50",
		IsVerified:    true,
		PhoneNumber:   strPtr("+1234567890"),
		Email:         strPtr("demo@example.com"),
	})
	if err != nil {
		return err
	}

	logger.Info("✓ created demo user", "id", user.ID, "username", user.Username)
	return nil
}

var defaultServices = []models.Service{
	{ID: "service-bajaj", Name: "Bajaj", Type: models.ServiceTypeTransportation, Icon: "motorcycle", BasePrice: "8.50", Description: strPtr("Auto-rickshaw service"), IsActive: true},
	{ID: "service-taxi", Name: "Taxi", Type: models.ServiceTypeTransportation, Icon: "taxi", BasePrice: "15.00", Description: strPtr("Traditional taxi service"), IsActive: true},
	{ID: "service-bus", Name: "Bus", Type: models.ServiceTypeTransportation, Icon: "bus", BasePrice: "3.50", Description: strPtr("Public bus transportation"), IsActive: true},
	{ID: "service-business", Name: "Business", Type: models.ServiceTypeTransportation, Icon: "car", BasePrice: "25.00", Description: strPtr("Premium business rides"), IsActive: true},
	{ID: "service-delivery", Name: "Delivery", Type: models.ServiceTypeDelivery, Icon: "motorcycle", BasePrice: "12.00", Description: strPtr("Package delivery service"), IsActive: true},
	{ID: "service-parcel", Name: "Parcel", Type: models.ServiceTypeDelivery, Icon: "box", BasePrice: "10.00", Description: strPtr("Parcel delivery service"), IsActive: true},
	{ID: "service-gas", Name: "Gas", Type: models.ServiceTypeDelivery, Icon: "fire", BasePrice: "2.50", Description: strPtr("Gas cylinder delivery"), IsActive: true},
	{ID: "service-food", Name: "Food", Type: models.ServiceTypeFood, Icon: "utensils", BasePrice: "5.00", Description: strPtr("Food delivery service"), IsActive: true},
}

func SeedServices(ctx context.Context, store Store, logger *slog.Logger) error {
	created := 0
	for _, svc := range defaultServices {
		_, err := store.GetService(ctx, svc.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}
		if _, err := store.CreateService(ctx, svc); err != nil {
			return err
		}
		created++
	}

	if created == 0 {
		logger.Info("✓ services already seeded, skipping")
		return nil
	}
	logger.Info("✓ seeded service catalog", "count", created)
	return nil
}

func SeedRides(ctx context.Context, store Store, logger *slog.Logger) error {
	existing, err := store.GetUserRides(ctx, models.DemoUserID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Info("✓ rides already seeded, skipping")
		return nil
	}

	now := time.Now()
	rides := []models.Ride{
		{ID: "ride-1", UserID: models.DemoUserID, ServiceType: "Taxi", Destination: "Central Market", Amount: "12.50", Status: models.RideStatusCompleted, Date: now},
		{ID: "ride-2", UserID: models.DemoUserID, ServiceType: "Food", Destination: "Food Delivery", Amount: "8.75", Status: models.RideStatusDelivered, Date: now.Add(-24 * time.Hour)},
	}
	for _, ride := range rides {
		if _, err := store.CreateRide(ctx, ride); err != nil {
			return err
		}
	}

	logger.Info("✓ seeded sample rides", "count", len(rides))
	return nil
}
