package inventory

import (
	"context"
	"errors"
)

// Repository is the persistence store for inventory items. sku+warehouseId
// uniqueness is enforced by the store.
type Repository interface {
	Create(ctx context.Context, i *Item) error
	Update(ctx context.Context, i *Item) error
	GetByID(ctx context.Context, id int64) (*Item, error)
	List(ctx context.Context) ([]Item, error)
	GetBySKU(ctx context.Context, sku string) ([]Item, error)
	GetBySKUAndWarehouse(ctx context.Context, sku, warehouseID string) (*Item, error)
	Delete(ctx context.Context, id int64) error
}

// UpsertInput carries a create-or-update request. Nil quantity fields leave
// an existing item's values untouched and default to zero on create.
type UpsertInput struct {
	SKU          string `json:"sku"`
	WarehouseID  string `json:"warehouseId"`
	AvailableQty *int   `json:"availableQty"`
	ReservedQty  *int   `json:"reservedQty"`
	IncomingQty  *int   `json:"incomingQty"`
	Threshold    *int   `json:"threshold"`
}

type Service struct {
	repo      Repository
	publisher *Publisher
}

func NewService(repo Repository, publisher *Publisher) *Service {
	return &Service{repo: repo, publisher: publisher}
}

// CreateOrUpdate upserts by natural key, then publishes STOCK_UPDATED and,
// when the low-stock rule holds, exactly one derived LOW_STOCK event.
func (s *Service) CreateOrUpdate(ctx context.Context, in UpsertInput) (*Item, error) {
	if in.SKU == "" || in.WarehouseID == "" {
		return nil, ErrMissingKey
	}

	item, err := s.repo.GetBySKUAndWarehouse(ctx, in.SKU, in.WarehouseID)
	switch {
	case err == nil:
		if in.AvailableQty != nil {
			item.AvailableQty = in.AvailableQty
		}
		if in.ReservedQty != nil {
			item.ReservedQty = *in.ReservedQty
		}
		if in.IncomingQty != nil {
			item.IncomingQty = *in.IncomingQty
		}
		if in.Threshold != nil {
			item.Threshold = *in.Threshold
		}
		if err := s.repo.Update(ctx, item); err != nil {
			return nil, err
		}
	case errors.Is(err, ErrNotFound):
		qty := 0
		if in.AvailableQty != nil {
			qty = *in.AvailableQty
		}
		item = &Item{
			SKU:          in.SKU,
			WarehouseID:  in.WarehouseID,
			AvailableQty: &qty,
			ReservedQty:  intOrZero(in.ReservedQty),
			IncomingQty:  intOrZero(in.IncomingQty),
			Threshold:    intOrZero(in.Threshold),
		}
		if err := s.repo.Create(ctx, item); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	s.publishAfterMutation(ctx, item)
	return item, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Item, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetBySKU(ctx context.Context, sku string) ([]Item, error) {
	return s.repo.GetBySKU(ctx, sku)
}

func (s *Service) GetBySKUAndWarehouse(ctx context.Context, sku, warehouseID string) (*Item, error) {
	return s.repo.GetBySKUAndWarehouse(ctx, sku, warehouseID)
}

// AdjustStock applies a delta to the available quantity. A delta that would
// drive the quantity negative is rejected and nothing is stored or published.
func (s *Service) AdjustStock(ctx context.Context, id int64, delta int) (*Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	current := 0
	if item.AvailableQty != nil {
		current = *item.AvailableQty
	}
	next := current + delta
	if next < 0 {
		return nil, ErrNegativeQuantity
	}

	item.AvailableQty = &next
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.publishAfterMutation(ctx, item)
	return item, nil
}

// UpdateThreshold changes the low-stock threshold. Only the derived LOW_STOCK
// event is published, and only when the rule holds for the new threshold.
func (s *Service) UpdateThreshold(ctx context.Context, id int64, threshold int) (*Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Threshold = threshold
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	if IsLowStock(item) {
		s.publisher.LowStock(ctx, item)
	}
	return item, nil
}

// Delete removes the item. No event is emitted.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) publishAfterMutation(ctx context.Context, item *Item) {
	s.publisher.StockUpdated(ctx, item)
	if IsLowStock(item) {
		s.publisher.LowStock(ctx, item)
	}
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
