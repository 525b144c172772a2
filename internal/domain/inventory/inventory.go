package inventory

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("inventory item not found")
	ErrNegativeQuantity = errors.New("resulting available quantity cannot be negative")
	ErrMissingKey       = errors.New("sku and warehouseId are required")
)

// Item tracks stock for one sku at one warehouse; sku+warehouseId is the
// unique natural key. AvailableQty is a pointer because a partial update may
// legitimately leave it unknown, and the low-stock rule must treat unknown as
// "skip", not zero.
type Item struct {
	ID           int64     `json:"id"`
	SKU          string    `json:"sku"`
	WarehouseID  string    `json:"warehouseId"`
	AvailableQty *int      `json:"availableQty"`
	ReservedQty  int       `json:"reservedQty"`
	IncomingQty  int       `json:"incomingQty"`
	Threshold    int       `json:"threshold"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// EventKey is the partition key for this item's events.
func (i *Item) EventKey() string {
	return i.SKU + ":" + i.WarehouseID
}
