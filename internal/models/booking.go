package models

import "time"

// Booking statuses as the client renders them. The store accepts any string.
const (
	BookingStatusPending    = "pending"
	BookingStatusConfirmed  = "confirmed"
	BookingStatusInProgress = "in_progress"
	BookingStatusCompleted  = "completed"
	BookingStatusCancelled  = "cancelled"
)

const (
	DefaultPaymentMethod = "card"
	DefaultPointsUsed    = "0.00"
)

type Booking struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId"`
	ServiceID      string     `json:"serviceId"`
	PickupLocation *string    `json:"pickupLocation"`
	Destination    *string    `json:"destination"`
	ScheduledTime  *time.Time `json:"scheduledTime"`
	Status         string     `json:"status"`
	TotalAmount    string     `json:"totalAmount"`
	PointsUsed     string     `json:"pointsUsed"`
	PaymentMethod  string     `json:"paymentMethod"`
	Notes          *string    `json:"notes"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// CreateBookingRequest is the request body for POST /api/bookings.
// totalAmount may be omitted, in which case it is priced from the service.
type CreateBookingRequest struct {
	ServiceID      string  `json:"serviceId" validate:"required,max=128"`
	PickupLocation *string `json:"pickupLocation" validate:"omitempty,max=500"`
	Destination    *string `json:"destination" validate:"omitempty,max=500"`
	ScheduledTime  *string `json:"scheduledTime" validate:"omitempty,rfc3339"`
	IsScheduled    bool    `json:"isScheduled"`
	Status         *string `json:"status" validate:"omitempty,max=32"`
	TotalAmount    *string `json:"totalAmount" validate:"omitempty,money"`
	PointsUsed     *string `json:"pointsUsed" validate:"omitempty,money"`
	PaymentMethod  *string `json:"paymentMethod" validate:"omitempty,max=32"`
	Notes          *string `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateBookingStatusRequest is the request body for PATCH /api/bookings/{id}
type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}

// BookingQuote is the server-side price preview for a service
type BookingQuote struct {
	ServiceID     string        `json:"serviceId"`
	IsScheduled   bool          `json:"isScheduled"`
	BasePrice     string        `json:"basePrice"`
	Discount      string        `json:"discount"`
	TotalAmount   string        `json:"totalAmount"`
	PointsPreview PointsPreview `json:"pointsPreview"`
}

// PointsPreview is display-only: bookings never persist it
type PointsPreview struct {
	Points     string `json:"points"`
	CardAmount string `json:"cardAmount"`
}

// FieldError describes one failing field of a request body
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
