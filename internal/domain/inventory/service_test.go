package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRepo is an in-memory Repository that records mutations.
type mockRepo struct {
	items  map[int64]*Item
	nextID int64

	updateErr error
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: make(map[int64]*Item), nextID: 1}
}

func (m *mockRepo) Create(ctx context.Context, i *Item) error {
	i.ID = m.nextID
	m.nextID++
	copied := *i
	m.items[i.ID] = &copied
	return nil
}

func (m *mockRepo) Update(ctx context.Context, i *Item) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.items[i.ID]; !ok {
		return ErrNotFound
	}
	copied := *i
	m.items[i.ID] = &copied
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*Item, error) {
	i, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *i
	return &copied, nil
}

func (m *mockRepo) List(ctx context.Context) ([]Item, error) {
	var out []Item
	for _, i := range m.items {
		out = append(out, *i)
	}
	return out, nil
}

func (m *mockRepo) GetBySKU(ctx context.Context, sku string) ([]Item, error) {
	var out []Item
	for _, i := range m.items {
		if i.SKU == sku {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (m *mockRepo) GetBySKUAndWarehouse(ctx context.Context, sku, warehouseID string) (*Item, error) {
	for _, i := range m.items {
		if i.SKU == sku && i.WarehouseID == warehouseID {
			copied := *i
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return ErrNotFound
	}
	delete(m.items, id)
	return nil
}

// recordingProducer captures every published event.
type recordingProducer struct {
	keys   []string
	events []Event

	err error
}

func (r *recordingProducer) Publish(ctx context.Context, key string, event any) error {
	if r.err != nil {
		return r.err
	}
	r.keys = append(r.keys, key)
	r.events = append(r.events, event.(Event))
	return nil
}

func (r *recordingProducer) eventTypes() []string {
	var types []string
	for _, e := range r.events {
		types = append(types, e.EventType)
	}
	return types
}

func newTestService() (*Service, *mockRepo, *recordingProducer) {
	repo := newMockRepo()
	producer := &recordingProducer{}
	return NewService(repo, NewPublisher(producer)), repo, producer
}

func TestService_CreateOrUpdate_CreateLowStock(t *testing.T) {
	svc, _, producer := newTestService()

	item, err := svc.CreateOrUpdate(context.Background(), UpsertInput{
		SKU:          "A1",
		WarehouseID:  "W1",
		AvailableQty: intp(5),
		Threshold:    intp(10),
	})

	require.NoError(t, err)
	require.NotNil(t, item.AvailableQty)
	assert.Equal(t, 5, *item.AvailableQty)
	assert.Equal(t, 10, item.Threshold)

	// 5 <= 10: STOCK_UPDATED plus exactly one derived LOW_STOCK.
	assert.Equal(t, []string{EventStockUpdated, EventLowStock}, producer.eventTypes())
	assert.Equal(t, []string{"A1:W1", "A1:W1"}, producer.keys)
}

func TestService_CreateOrUpdate_CreateAboveThreshold(t *testing.T) {
	svc, _, producer := newTestService()

	_, err := svc.CreateOrUpdate(context.Background(), UpsertInput{
		SKU:          "A1",
		WarehouseID:  "W1",
		AvailableQty: intp(50),
		Threshold:    intp(10),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{EventStockUpdated}, producer.eventTypes())
}

func TestService_CreateOrUpdate_DefaultsOnCreate(t *testing.T) {
	svc, _, producer := newTestService()

	item, err := svc.CreateOrUpdate(context.Background(), UpsertInput{
		SKU:         "A1",
		WarehouseID: "W1",
	})

	require.NoError(t, err)
	require.NotNil(t, item.AvailableQty)
	assert.Equal(t, 0, *item.AvailableQty)
	assert.Equal(t, 0, item.ReservedQty)
	assert.Equal(t, 0, item.Threshold)

	// 0 <= 0 fires the rule.
	assert.Equal(t, []string{EventStockUpdated, EventLowStock}, producer.eventTypes())
}

func TestService_CreateOrUpdate_PartialUpdateKeepsExisting(t *testing.T) {
	svc, _, producer := newTestService()

	_, err := svc.CreateOrUpdate(context.Background(), UpsertInput{
		SKU:          "A1",
		WarehouseID:  "W1",
		AvailableQty: intp(50),
		Threshold:    intp(10),
	})
	require.NoError(t, err)
	producer.events = nil
	producer.keys = nil

	item, err := svc.CreateOrUpdate(context.Background(), UpsertInput{
		SKU:         "A1",
		WarehouseID: "W1",
		IncomingQty: intp(7),
	})

	require.NoError(t, err)
	require.NotNil(t, item.AvailableQty)
	assert.Equal(t, 50, *item.AvailableQty)
	assert.Equal(t, 7, item.IncomingQty)
	assert.Equal(t, []string{EventStockUpdated}, producer.eventTypes())
}

func TestService_CreateOrUpdate_MissingKey(t *testing.T) {
	svc, _, producer := newTestService()

	_, err := svc.CreateOrUpdate(context.Background(), UpsertInput{SKU: "A1"})

	assert.ErrorIs(t, err, ErrMissingKey)
	assert.Empty(t, producer.events)
}

func TestService_AdjustStock_AboveThreshold(t *testing.T) {
	svc, _, producer := newTestService()

	created, err := svc.CreateOrUpdate(context.Background(), UpsertInput{
		SKU:          "A1",
		WarehouseID:  "W1",
		AvailableQty: intp(5),
		Threshold:    intp(10),
	})
	require.NoError(t, err)
	producer.events = nil

	item, err := svc.AdjustStock(context.Background(), created.ID, 10)

	require.NoError(t, err)
	require.NotNil(t, item.AvailableQty)
	assert.Equal(t, 15, *item.AvailableQty)

	// 15 > 10: no derived event.
	assert.Equal(t, []string{EventStockUpdated}, producer.eventTypes())
}

func TestService_AdjustStock_NegativeResultRejected(t *testing.T) {
	svc, repo, producer := newTestService()

	created, err := svc.CreateOrUpdate(context.Background(), UpsertInput{
		SKU:          "A1",
		WarehouseID:  "W1",
		AvailableQty: intp(5),
		Threshold:    intp(0),
	})
	require.NoError(t, err)
	producer.events = nil

	_, err = svc.AdjustStock(context.Background(), created.ID, -6)

	assert.ErrorIs(t, err, ErrNegativeQuantity)
	assert.Empty(t, producer.events)

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.AvailableQty)
	assert.Equal(t, 5, *stored.AvailableQty)
}

func TestService_AdjustStock_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.AdjustStock(context.Background(), 99, 1)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_UpdateThreshold_FiresAtMostOnce(t *testing.T) {
	svc, _, producer := newTestService()

	created, err := svc.CreateOrUpdate(context.Background(), UpsertInput{
		SKU:          "A1",
		WarehouseID:  "W1",
		AvailableQty: intp(5),
		Threshold:    intp(0),
	})
	require.NoError(t, err)
	producer.events = nil

	item, err := svc.UpdateThreshold(context.Background(), created.ID, 10)

	require.NoError(t, err)
	assert.Equal(t, 10, item.Threshold)

	// 5 <= 10: exactly one LOW_STOCK, never two.
	assert.Equal(t, []string{EventLowStock}, producer.eventTypes())
}

func TestService_UpdateThreshold_RuleDoesNotHold(t *testing.T) {
	svc, _, producer := newTestService()

	created, err := svc.CreateOrUpdate(context.Background(), UpsertInput{
		SKU:          "A1",
		WarehouseID:  "W1",
		AvailableQty: intp(50),
		Threshold:    intp(60),
	})
	require.NoError(t, err)
	producer.events = nil

	_, err = svc.UpdateThreshold(context.Background(), created.ID, 10)

	require.NoError(t, err)
	assert.Empty(t, producer.events)
}

func TestService_PublishFailureDoesNotFailMutation(t *testing.T) {
	repo := newMockRepo()
	producer := &recordingProducer{err: errors.New("broker unavailable")}
	svc := NewService(repo, NewPublisher(producer))

	item, err := svc.CreateOrUpdate(context.Background(), UpsertInput{
		SKU:          "A1",
		WarehouseID:  "W1",
		AvailableQty: intp(5),
	})

	// The write committed; the failed publish is logged and dropped.
	require.NoError(t, err)
	stored, err := repo.GetByID(context.Background(), item.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.AvailableQty)
	assert.Equal(t, 5, *stored.AvailableQty)
}

func TestService_EventSnapshotFields(t *testing.T) {
	svc, _, producer := newTestService()

	_, err := svc.CreateOrUpdate(context.Background(), UpsertInput{
		SKU:          "A1",
		WarehouseID:  "W1",
		AvailableQty: intp(5),
		ReservedQty:  intp(2),
		IncomingQty:  intp(3),
		Threshold:    intp(10),
	})
	require.NoError(t, err)

	require.NotEmpty(t, producer.events)
	e := producer.events[0]
	assert.Equal(t, EventStockUpdated, e.EventType)
	assert.Equal(t, "A1", e.SKU)
	assert.Equal(t, "W1", e.WarehouseID)
	require.NotNil(t, e.AvailableQty)
	assert.Equal(t, 5, *e.AvailableQty)
	assert.Equal(t, 2, e.ReservedQty)
	assert.Equal(t, 3, e.IncomingQty)
	assert.Equal(t, 10, e.Threshold)
	assert.False(t, e.EventTime.IsZero())
	assert.False(t, e.EventTime.Before(e.UpdatedAt))
}
