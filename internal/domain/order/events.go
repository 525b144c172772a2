package order

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/example/supplychain-events/internal/event"
)

const (
	EventOrderCreated       = "ORDER_CREATED"
	EventOrderStatusUpdated = "ORDER_STATUS_UPDATED"
)

// Event is the wire shape published to the order events topic: a full
// denormalized snapshot of the order at publish time.
type Event struct {
	SchemaVersion int         `json:"schemaVersion"`
	EventType     string      `json:"eventType"`
	OrderID       int64       `json:"orderId"`
	CustomerID    string      `json:"customerId"`
	Status        Status      `json:"status"`
	TotalAmount   float64     `json:"totalAmount"`
	Items         []EventItem `json:"items"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
	EventTime     time.Time   `json:"eventTime"`
}

type EventItem struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// Publisher emits order events keyed by order id so all events for one order
// stay in publish order. Emission is best-effort: a failed publish is logged
// and dropped, never retried or rolled back.
type Publisher struct {
	producer event.Publisher
}

func NewPublisher(producer event.Publisher) *Publisher {
	return &Publisher{producer: producer}
}

func (p *Publisher) OrderCreated(ctx context.Context, o *Order) {
	p.publish(ctx, EventOrderCreated, o)
}

func (p *Publisher) OrderStatusUpdated(ctx context.Context, o *Order) {
	p.publish(ctx, EventOrderStatusUpdated, o)
}

func (p *Publisher) publish(ctx context.Context, eventType string, o *Order) {
	if p.producer == nil {
		return
	}

	items := make([]EventItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = EventItem{SKU: item.SKU, Quantity: item.Quantity}
	}

	e := Event{
		SchemaVersion: event.SchemaVersion,
		EventType:     eventType,
		OrderID:       o.ID,
		CustomerID:    o.CustomerID,
		Status:        o.Status,
		TotalAmount:   o.TotalAmount,
		Items:         items,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		EventTime:     time.Now(),
	}

	key := strconv.FormatInt(o.ID, 10)
	if err := p.producer.Publish(ctx, key, e); err != nil {
		log.Error().Err(err).
			Str("eventType", eventType).
			Int64("orderId", o.ID).
			Msg("failed to publish order event")
	}
}
