package models

// ServiceType is the catalog category of a bookable service
type ServiceType string

const (
	ServiceTypeTransportation ServiceType = "transportation"
	ServiceTypeDelivery       ServiceType = "delivery"
	ServiceTypeFood           ServiceType = "food"
)

type Service struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Type        ServiceType `json:"type"`
	Icon        string      `json:"icon"`
	BasePrice   string      `json:"basePrice"` // decimal string, two places
	Description *string     `json:"description"`
	IsActive    bool        `json:"isActive"`
}
