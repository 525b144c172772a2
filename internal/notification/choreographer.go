package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/example/supplychain-events/internal/event"
	"github.com/example/supplychain-events/internal/metrics"
)

// Addresses are the fixed notification recipients. They are deploy-time
// configuration, not derived from the entities in the events.
type Addresses struct {
	Customer  string
	Warehouse string
}

func DefaultAddresses() Addresses {
	return Addresses{
		Customer:  "customer@example.com",
		Warehouse: "warehouse-ops@example.com",
	}
}

// Choreographer normalizes heterogeneous upstream events into Events and
// republishes them downstream. One notification per consumed message, keyed
// by a fresh notification id — downstream ordering is deliberately unrelated
// to upstream keys.
type Choreographer struct {
	publisher event.Publisher
	addresses Addresses
}

func NewChoreographer(publisher event.Publisher, addresses Addresses) *Choreographer {
	return &Choreographer{publisher: publisher, addresses: addresses}
}

// HandleOrderEvent consumes one message from the order events topic.
func (c *Choreographer) HandleOrderEvent(ctx context.Context, key, value []byte) error {
	c.notify(ctx, c.addresses.Customer, "Order event: ", value)
	return nil
}

// HandleInventoryEvent consumes one message from the inventory events topic.
func (c *Choreographer) HandleInventoryEvent(ctx context.Context, key, value []byte) error {
	c.notify(ctx, c.addresses.Warehouse, "Inventory event: ", value)
	return nil
}

// HandleShipmentEvent consumes one message from the shipment events topic.
func (c *Choreographer) HandleShipmentEvent(ctx context.Context, key, value []byte) error {
	c.notify(ctx, c.addresses.Customer, "Shipment event: ", value)
	return nil
}

// notify builds exactly one Event embedding the raw payload verbatim and
// publishes it. Publish failures are logged and dropped; the upstream offset
// still advances.
func (c *Choreographer) notify(ctx context.Context, userEmail, prefix string, payload []byte) {
	e := Event{
		NotificationID: uuid.New().String(),
		UserEmail:      userEmail,
		Message:        prefix + string(payload),
		Type:           ExtractEventType(payload),
		Timestamp:      time.Now(),
	}

	if err := c.publisher.Publish(ctx, e.NotificationID, e); err != nil {
		log.Error().Err(err).
			Str("notificationId", e.NotificationID).
			Str("type", e.Type).
			Msg("failed to publish notification event")
		return
	}
	metrics.NotificationsBuilt.Inc()
}

// ExtractEventType pulls the eventType discriminator out of a raw payload.
// Producers occasionally double-encode (the top-level JSON value is itself a
// JSON-encoded string), so one extra decode level is attempted. Any failure
// degrades to TypeUnknown; this function never fails.
func ExtractEventType(payload []byte) string {
	var root any
	if err := json.Unmarshal(payload, &root); err != nil {
		log.Warn().Err(err).Msg("payload is not valid JSON")
		return TypeUnknown
	}

	if inner, ok := root.(string); ok {
		if err := json.Unmarshal([]byte(inner), &root); err != nil {
			log.Warn().Err(err).Msg("double-encoded payload is not valid JSON")
			return TypeUnknown
		}
	}

	obj, ok := root.(map[string]any)
	if !ok {
		return TypeUnknown
	}
	if t, ok := obj["eventType"].(string); ok && t != "" {
		return t
	}
	return TypeUnknown
}
