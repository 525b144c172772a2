package inventory

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/example/supplychain-events/internal/event"
)

const (
	EventStockUpdated = "STOCK_UPDATED"
	EventLowStock     = "LOW_STOCK"
)

// Event is the wire shape published to the inventory events topic.
type Event struct {
	SchemaVersion int       `json:"schemaVersion"`
	EventType     string    `json:"eventType"`
	InventoryID   int64     `json:"inventoryId"`
	SKU           string    `json:"sku"`
	WarehouseID   string    `json:"warehouseId"`
	AvailableQty  *int      `json:"availableQty"`
	ReservedQty   int       `json:"reservedQty"`
	IncomingQty   int       `json:"incomingQty"`
	Threshold     int       `json:"threshold"`
	UpdatedAt     time.Time `json:"updatedAt"`
	EventTime     time.Time `json:"eventTime"`
}

// Publisher emits inventory events keyed by sku:warehouseId so updates and
// derived LOW_STOCK events for the same item stay ordered. Emission is
// best-effort: failures are logged and dropped.
type Publisher struct {
	producer event.Publisher
}

func NewPublisher(producer event.Publisher) *Publisher {
	return &Publisher{producer: producer}
}

func (p *Publisher) StockUpdated(ctx context.Context, i *Item) {
	p.publish(ctx, EventStockUpdated, i)
}

func (p *Publisher) LowStock(ctx context.Context, i *Item) {
	p.publish(ctx, EventLowStock, i)
}

func (p *Publisher) publish(ctx context.Context, eventType string, i *Item) {
	if p.producer == nil {
		return
	}

	e := Event{
		SchemaVersion: event.SchemaVersion,
		EventType:     eventType,
		InventoryID:   i.ID,
		SKU:           i.SKU,
		WarehouseID:   i.WarehouseID,
		AvailableQty:  i.AvailableQty,
		ReservedQty:   i.ReservedQty,
		IncomingQty:   i.IncomingQty,
		Threshold:     i.Threshold,
		UpdatedAt:     i.UpdatedAt,
		EventTime:     time.Now(),
	}

	if err := p.producer.Publish(ctx, i.EventKey(), e); err != nil {
		log.Error().Err(err).
			Str("eventType", eventType).
			Str("key", i.EventKey()).
			Msg("failed to publish inventory event")
	}
}
