package order

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("order not found")
	ErrNoItems       = errors.New("order must contain at least one item")
	ErrInvalidStatus = errors.New("invalid order status")
)

// Status is the order lifecycle state. DELIVERED and CANCELLED are terminal.
type Status string

const (
	StatusCreated   Status = "CREATED"
	StatusConfirmed Status = "CONFIRMED"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

// ParseStatus validates a caller-supplied status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusCreated, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

// Order is the aggregate root; it owns its items exclusively (deleting an
// order deletes its items).
type Order struct {
	ID          int64     `json:"id"`
	CustomerID  string    `json:"customerId"`
	Status      Status    `json:"status"`
	TotalAmount float64   `json:"totalAmount"`
	Items       []Item    `json:"items"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Item struct {
	ID        int64   `json:"id"`
	SKU       string  `json:"sku"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}
