package database

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"rideshare-backend/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MemoryStore keeps every collection in process memory. Data is lost on
// restart. Writes are last-write-wins under a single lock.
type MemoryStore struct {
	mu sync.RWMutex

	users    map[string]*models.User
	services map[string]*models.Service
	bookings map[string]*models.Booking
	rides    map[string]*models.Ride

	// insertion order per collection
	userOrder    []string
	serviceOrder []string
	bookingOrder []string
	rideOrder    []string

	now        func() time.Time
	newID      func() string
	bcryptCost int
}

type Option func(*MemoryStore)

// WithClock overrides time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) { s.now = now }
}

// WithIDGenerator overrides the uuid generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *MemoryStore) { s.newID = newID }
}

// WithBcryptCost sets the cost used to hash user passwords.
func WithBcryptCost(cost int) Option {
	return func(s *MemoryStore) { s.bcryptCost = cost }
}

func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		users:      make(map[string]*models.User),
		services:   make(map[string]*models.Service),
		bookings:   make(map[string]*models.Booking),
		rides:      make(map[string]*models.Ride),
		now:        time.Now,
		newID:      func() string { return uuid.New().String() },
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ Store = (*MemoryStore)(nil)

// Users

func (s *MemoryStore) GetUser(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(u), nil
}

func (s *MemoryStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.userOrder {
		if u := s.users[id]; u.Username == username {
			return copyUser(u), nil
		}
	}
	return nil, ErrNotFound
}

// CreateUser inserts a user. A caller-supplied ID is kept (used for seed
// data); otherwise a uuid is assigned. Plaintext passwords are bcrypt-hashed.
func (s *MemoryStore) CreateUser(_ context.Context, user models.User) (*models.User, error) {
	if user.Password != "" {
		if _, err := bcrypt.Cost([]byte(user.Password)); err != nil {
			hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), s.bcryptCost)
			if err != nil {
				return nil, fmt.Errorf("hash password: %w", err)
			}
			user.Password = string(hashed)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.userOrder {
		if s.users[id].Username == user.Username {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateUsername, user.Username)
		}
	}

	if user.ID == "" {
		user.ID = s.newID()
	} else if _, exists := s.users[user.ID]; exists {
		return nil, fmt.Errorf("%w: user %s", ErrDuplicateID, user.ID)
	}
	if user.PointsBalance == "" {
		user.PointsBalance = "0.00"
	}
	user.CreatedAt = s.now()
	user.DeviceTokens = slices.Clone(user.DeviceTokens)

	s.users[user.ID] = &user
	s.userOrder = append(s.userOrder, user.ID)
	return copyUser(&user), nil
}

func (s *MemoryStore) UpdateUserPoints(_ context.Context, userID, points string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	u.PointsBalance = points
	return copyUser(u), nil
}

func (s *MemoryStore) AddUserDeviceToken(_ context.Context, userID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}
	if !slices.Contains(u.DeviceTokens, token) {
		u.DeviceTokens = append(u.DeviceTokens, token)
	}
	return nil
}

// Services

func (s *MemoryStore) GetAllServices(_ context.Context) ([]models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Service, 0, len(s.serviceOrder))
	for _, id := range s.serviceOrder {
		if svc := s.services[id]; svc.IsActive {
			out = append(out, *svc)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetService(_ context.Context, id string) (*models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	svc, ok := s.services[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *svc
	return &out, nil
}

func (s *MemoryStore) CreateService(_ context.Context, service models.Service) (*models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if service.ID == "" {
		service.ID = s.newID()
	} else if _, exists := s.services[service.ID]; exists {
		return nil, fmt.Errorf("%w: service %s", ErrDuplicateID, service.ID)
	}

	s.services[service.ID] = &service
	s.serviceOrder = append(s.serviceOrder, service.ID)
	out := service
	return &out, nil
}

// Bookings

func (s *MemoryStore) CreateBooking(_ context.Context, booking models.Booking) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	booking.ID = s.newID()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	s.bookings[booking.ID] = &booking
	s.bookingOrder = append(s.bookingOrder, booking.ID)
	out := booking
	return &out, nil
}

func (s *MemoryStore) GetUserBookings(_ context.Context, userID string) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Booking, 0)
	for _, id := range s.bookingOrder {
		if b := s.bookings[id]; b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetBooking(_ context.Context, id string) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *b
	return &out, nil
}

// UpdateBookingStatus overwrites the status with any string; there is no
// transition graph.
func (s *MemoryStore) UpdateBookingStatus(_ context.Context, id, status string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	b.Status = status
	b.UpdatedAt = s.now()
	out := *b
	return &out, nil
}

// Rides

// CreateRide stamps the ride with the current time unless a date is given
// (seed history uses past dates).
func (s *MemoryStore) CreateRide(_ context.Context, ride models.Ride) (*models.Ride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ride.ID == "" {
		ride.ID = s.newID()
	} else if _, exists := s.rides[ride.ID]; exists {
		return nil, fmt.Errorf("%w: ride %s", ErrDuplicateID, ride.ID)
	}
	if ride.Date.IsZero() {
		ride.Date = s.now()
	}

	s.rides[ride.ID] = &ride
	s.rideOrder = append(s.rideOrder, ride.ID)
	out := ride
	return &out, nil
}

// GetUserRides returns the user's rides, most recent first.
func (s *MemoryStore) GetUserRides(_ context.Context, userID string) ([]models.Ride, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Ride, 0)
	for _, id := range s.rideOrder {
		if r := s.rides[id]; r.UserID == userID {
			out = append(out, *r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func copyUser(u *models.User) *models.User {
	out := *u
	out.DeviceTokens = slices.Clone(u.DeviceTokens)
	return &out
}
