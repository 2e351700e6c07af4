package models

import "time"

const (
	RideStatusCompleted = "completed"
	RideStatusDelivered = "delivered"
	RideStatusCancelled = "cancelled"
)

// UnknownDestination is recorded on a ride whose booking had no destination
const UnknownDestination = "Unknown"

// Ride is a history entry. ServiceType is a copy of the service name, not a reference.
type Ride struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	ServiceType string    `json:"serviceType"`
	Destination string    `json:"destination"`
	Amount      string    `json:"amount"`
	Status      string    `json:"status"`
	Date        time.Time `json:"date"`
}
