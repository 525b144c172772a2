package shipment

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/example/supplychain-events/internal/event"
)

const (
	EventShipmentCreated         = "SHIPMENT_CREATED"
	EventShipmentStatusUpdated   = "SHIPMENT_STATUS_UPDATED"
	EventShipmentLocationUpdated = "SHIPMENT_LOCATION_UPDATED"
)

// Event is the wire shape published to the shipment events topic.
type Event struct {
	SchemaVersion     int        `json:"schemaVersion"`
	EventType         string     `json:"eventType"`
	ShipmentID        int64      `json:"shipmentId"`
	OrderID           int64      `json:"orderId"`
	TrackingNumber    string     `json:"trackingNumber"`
	Origin            string     `json:"origin"`
	Destination       string     `json:"destination"`
	CurrentLocation   string     `json:"currentLocation"`
	Status            Status     `json:"status"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
	EventTime         time.Time  `json:"eventTime"`
}

// Publisher emits shipment events keyed by tracking number. Emission is
// best-effort: failures are logged and dropped.
type Publisher struct {
	producer event.Publisher
}

func NewPublisher(producer event.Publisher) *Publisher {
	return &Publisher{producer: producer}
}

func (p *Publisher) ShipmentCreated(ctx context.Context, s *Shipment) {
	p.publish(ctx, EventShipmentCreated, s)
}

func (p *Publisher) ShipmentStatusUpdated(ctx context.Context, s *Shipment) {
	p.publish(ctx, EventShipmentStatusUpdated, s)
}

func (p *Publisher) ShipmentLocationUpdated(ctx context.Context, s *Shipment) {
	p.publish(ctx, EventShipmentLocationUpdated, s)
}

func (p *Publisher) publish(ctx context.Context, eventType string, s *Shipment) {
	if p.producer == nil {
		return
	}

	e := Event{
		SchemaVersion:     event.SchemaVersion,
		EventType:         eventType,
		ShipmentID:        s.ID,
		OrderID:           s.OrderID,
		TrackingNumber:    s.TrackingNumber,
		Origin:            s.Origin,
		Destination:       s.Destination,
		CurrentLocation:   s.CurrentLocation,
		Status:            s.Status,
		EstimatedDelivery: s.EstimatedDelivery,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
		EventTime:         time.Now(),
	}

	if err := p.producer.Publish(ctx, s.TrackingNumber, e); err != nil {
		log.Error().Err(err).
			Str("eventType", eventType).
			Str("trackingNumber", s.TrackingNumber).
			Msg("failed to publish shipment event")
	}
}
