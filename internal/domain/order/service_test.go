package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	orders map[int64]*Order
	nextID int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{orders: make(map[int64]*Order), nextID: 1}
}

func (m *mockRepo) Create(ctx context.Context, o *Order) error {
	o.ID = m.nextID
	m.nextID++
	copied := *o
	m.orders[o.ID] = &copied
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *o
	return &copied, nil
}

func (m *mockRepo) List(ctx context.Context) ([]Order, error) {
	var out []Order
	for _, o := range m.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (m *mockRepo) Update(ctx context.Context, o *Order) error {
	if _, ok := m.orders[o.ID]; !ok {
		return ErrNotFound
	}
	copied := *o
	m.orders[o.ID] = &copied
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.orders[id]; !ok {
		return ErrNotFound
	}
	delete(m.orders, id)
	return nil
}

type recordingProducer struct {
	keys   []string
	events []Event
}

func (r *recordingProducer) Publish(ctx context.Context, key string, event any) error {
	r.keys = append(r.keys, key)
	r.events = append(r.events, event.(Event))
	return nil
}

func newTestService() (*Service, *recordingProducer) {
	producer := &recordingProducer{}
	return NewService(newMockRepo(), NewPublisher(producer)), producer
}

func TestService_Create_TotalFromItems(t *testing.T) {
	svc, producer := newTestService()

	o, err := svc.Create(context.Background(), "cust-1", []ItemInput{
		{SKU: "A1", Quantity: 2, UnitPrice: 9.99},
		{SKU: "B2", Quantity: 1, UnitPrice: 50},
	})

	require.NoError(t, err)
	assert.Equal(t, StatusCreated, o.Status)
	assert.InDelta(t, 69.98, o.TotalAmount, 0.001)
	assert.Len(t, o.Items, 2)

	require.Len(t, producer.events, 1)
	e := producer.events[0]
	assert.Equal(t, EventOrderCreated, e.EventType)
	assert.Equal(t, "cust-1", e.CustomerID)
	assert.Len(t, e.Items, 2)
	assert.Equal(t, "A1", e.Items[0].SKU)
	assert.Equal(t, 2, e.Items[0].Quantity)
	assert.Equal(t, []string{"1"}, producer.keys)
}

func TestService_Create_NoItems(t *testing.T) {
	svc, producer := newTestService()

	_, err := svc.Create(context.Background(), "cust-1", nil)

	assert.ErrorIs(t, err, ErrNoItems)
	assert.Empty(t, producer.events)
}

func TestService_UpdateStatus(t *testing.T) {
	svc, producer := newTestService()

	o, err := svc.Create(context.Background(), "cust-1", []ItemInput{
		{SKU: "A1", Quantity: 1, UnitPrice: 10},
	})
	require.NoError(t, err)
	producer.events = nil
	producer.keys = nil

	updated, err := svc.UpdateStatus(context.Background(), o.ID, StatusShipped)

	require.NoError(t, err)
	assert.Equal(t, StatusShipped, updated.Status)

	require.Len(t, producer.events, 1)
	assert.Equal(t, EventOrderStatusUpdated, producer.events[0].EventType)
	assert.Equal(t, StatusShipped, producer.events[0].Status)
	// Same order id key: status events stay ordered with the create.
	assert.Equal(t, []string{"1"}, producer.keys)
}

func TestService_UpdateStatus_NotFound(t *testing.T) {
	svc, producer := newTestService()

	_, err := svc.UpdateStatus(context.Background(), 42, StatusShipped)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, producer.events)
}

func TestService_Delete_NoEvent(t *testing.T) {
	svc, producer := newTestService()

	o, err := svc.Create(context.Background(), "cust-1", []ItemInput{
		{SKU: "A1", Quantity: 1, UnitPrice: 10},
	})
	require.NoError(t, err)
	producer.events = nil

	require.NoError(t, svc.Delete(context.Background(), o.ID))
	assert.Empty(t, producer.events)

	_, err = svc.GetByID(context.Background(), o.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{"CREATED", StatusCreated, false},
		{"DELIVERED", StatusDelivered, false},
		{"shipped", "", true},
		{"BOGUS", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
