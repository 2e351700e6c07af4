package database

import (
	"context"
	"errors"

	"rideshare-backend/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateUsername is returned by CreateUser when the username is taken.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrDuplicateID is returned when a caller-supplied id is already in use.
	ErrDuplicateID = errors.New("id already exists")
)

// Store is the record storage used by handlers and services. Lookups that
// find nothing return ErrNotFound; records returned are copies.
type Store interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	UpdateUserPoints(ctx context.Context, userID, points string) (*models.User, error)
	AddUserDeviceToken(ctx context.Context, userID, token string) error

	GetAllServices(ctx context.Context) ([]models.Service, error)
	GetService(ctx context.Context, id string) (*models.Service, error)
	CreateService(ctx context.Context, service models.Service) (*models.Service, error)

	CreateBooking(ctx context.Context, booking models.Booking) (*models.Booking, error)
	GetUserBookings(ctx context.Context, userID string) ([]models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id, status string) (*models.Booking, error)

	CreateRide(ctx context.Context, ride models.Ride) (*models.Ride, error)
	GetUserRides(ctx context.Context, userID string) ([]models.Ride, error)
}
