package shipment

import (
	"context"
	"time"
)

// Repository is the persistence store for shipments; trackingNumber
// uniqueness is enforced by the store.
type Repository interface {
	Create(ctx context.Context, s *Shipment) error
	GetByID(ctx context.Context, id int64) (*Shipment, error)
	List(ctx context.Context) ([]Shipment, error)
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*Shipment, error)
	GetByOrderID(ctx context.Context, orderID int64) ([]Shipment, error)
	Update(ctx context.Context, s *Shipment) error
	Delete(ctx context.Context, id int64) error
}

// CreateInput carries a shipment creation request. Status and current
// location are never taken from the caller: a new shipment starts CREATED at
// its origin.
type CreateInput struct {
	OrderID           int64      `json:"orderId"`
	TrackingNumber    string     `json:"trackingNumber"`
	Origin            string     `json:"origin"`
	Destination       string     `json:"destination"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery"`
}

type Service struct {
	repo      Repository
	publisher *Publisher
}

func NewService(repo Repository, publisher *Publisher) *Service {
	return &Service{repo: repo, publisher: publisher}
}

// Create persists a new shipment and publishes SHIPMENT_CREATED after the
// write commits.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Shipment, error) {
	sh := &Shipment{
		OrderID:           in.OrderID,
		TrackingNumber:    in.TrackingNumber,
		Origin:            in.Origin,
		Destination:       in.Destination,
		CurrentLocation:   in.Origin,
		Status:            StatusCreated,
		EstimatedDelivery: in.EstimatedDelivery,
	}
	if err := s.repo.Create(ctx, sh); err != nil {
		return nil, err
	}

	s.publisher.ShipmentCreated(ctx, sh)
	return sh, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Shipment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Shipment, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*Shipment, error) {
	return s.repo.GetByTrackingNumber(ctx, trackingNumber)
}

func (s *Service) GetByOrderID(ctx context.Context, orderID int64) ([]Shipment, error) {
	return s.repo.GetByOrderID(ctx, orderID)
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status Status) (*Shipment, error) {
	sh, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sh.Status = status
	if err := s.repo.Update(ctx, sh); err != nil {
		return nil, err
	}

	s.publisher.ShipmentStatusUpdated(ctx, sh)
	return sh, nil
}

func (s *Service) UpdateLocation(ctx context.Context, id int64, location string) (*Shipment, error) {
	sh, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sh.CurrentLocation = location
	if err := s.repo.Update(ctx, sh); err != nil {
		return nil, err
	}

	s.publisher.ShipmentLocationUpdated(ctx, sh)
	return sh, nil
}

// Delete removes the shipment. No event is emitted.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
