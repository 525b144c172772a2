package order

import "context"

// Repository is the persistence store for orders. Implementations guarantee
// the mutation is durably committed before returning.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id int64) (*Order, error)
	List(ctx context.Context) ([]Order, error)
	Update(ctx context.Context, o *Order) error
	Delete(ctx context.Context, id int64) error
}

// ItemInput is one order line as submitted by the caller.
type ItemInput struct {
	SKU       string  `json:"sku"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type Service struct {
	repo      Repository
	publisher *Publisher
}

func NewService(repo Repository, publisher *Publisher) *Service {
	return &Service{repo: repo, publisher: publisher}
}

// Create persists a new order and, after the write commits, publishes
// ORDER_CREATED. The total is derived from the submitted items, never taken
// from the request.
func (s *Service) Create(ctx context.Context, customerID string, items []ItemInput) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	var total float64
	orderItems := make([]Item, len(items))
	for i, in := range items {
		total += in.UnitPrice * float64(in.Quantity)
		orderItems[i] = Item{SKU: in.SKU, Quantity: in.Quantity, UnitPrice: in.UnitPrice}
	}

	o := &Order{
		CustomerID:  customerID,
		Status:      StatusCreated,
		TotalAmount: total,
		Items:       orderItems,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	s.publisher.OrderCreated(ctx, o)
	return o, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Order, error) {
	return s.repo.List(ctx)
}

// UpdateStatus transitions the order and publishes ORDER_STATUS_UPDATED after
// the write commits.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status Status) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	o.Status = status
	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}

	s.publisher.OrderStatusUpdated(ctx, o)
	return o, nil
}

// Delete removes the order and its items. No event is emitted.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
