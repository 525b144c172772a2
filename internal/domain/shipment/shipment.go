package shipment

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("shipment not found")
	ErrDuplicateTracking = errors.New("tracking number already exists")
	ErrInvalidStatus     = errors.New("invalid shipment status")
)

type Status string

const (
	StatusCreated        Status = "CREATED"
	StatusPickedUp       Status = "PICKED_UP"
	StatusInTransit      Status = "IN_TRANSIT"
	StatusOutForDelivery Status = "OUT_FOR_DELIVERY"
	StatusDelivered      Status = "DELIVERED"
	StatusDelayed        Status = "DELAYED"
)

// ParseStatus validates a caller-supplied status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusCreated, StatusPickedUp, StatusInTransit, StatusOutForDelivery, StatusDelivered, StatusDelayed:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

// Shipment references its order by id only; the reference is not enforced
// transactionally across services.
type Shipment struct {
	ID                int64      `json:"id"`
	OrderID           int64      `json:"orderId"`
	TrackingNumber    string     `json:"trackingNumber"`
	Origin            string     `json:"origin"`
	Destination       string     `json:"destination"`
	CurrentLocation   string     `json:"currentLocation"`
	Status            Status     `json:"status"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}
