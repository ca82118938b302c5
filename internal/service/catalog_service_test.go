package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"store-catalog/config"
	"store-catalog/internal/models"
	"store-catalog/internal/store"
	"store-catalog/internal/util"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type memoryIdempotency struct {
	ids map[string]string
}

func (m *memoryIdempotency) Lookup(_ context.Context, scope, key string) (string, error) {
	return m.ids[scope+"/"+key], nil
}

func (m *memoryIdempotency) Remember(_ context.Context, scope, key, id string, _ time.Duration) error {
	m.ids[scope+"/"+key] = id
	return nil
}

type recordingPublisher struct {
	events []*models.CatalogEvent
	err    error
}

func (p *recordingPublisher) PublishCatalogEvent(_ context.Context, event *models.CatalogEvent) error {
	p.events = append(p.events, event)
	return p.err
}

func newTestService(t *testing.T) (*CatalogService, *recordingPublisher) {
	t.Helper()
	util.SetLogger(zaptest.NewLogger(t))

	st, err := store.NewStore(config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "store.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(context.Background()))

	publisher := &recordingPublisher{}
	idem := &memoryIdempotency{ids: map[string]string{}}
	return NewCatalogService(st, publisher, idem, time.Hour), publisher
}

func TestCreateCustomerIsIdempotent(t *testing.T) {
	svc, publisher := newTestService(t)
	ctx := context.Background()

	req := &CreateCustomerRequest{
		CustomerInput:  models.CustomerInput{Name: "Ada"},
		IdempotencyKey: "key-1",
	}

	first, err := svc.CreateCustomer(ctx, req)
	require.NoError(t, err)
	second, err := svc.CreateCustomer(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	customers, err := svc.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 1)
	assert.Len(t, publisher.events, 1)
}

func TestCreateWithoutKeyAlwaysCreates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	req := &CreateProductRequest{ProductInput: models.ProductInput{Name: "Pen", Price: decimal.NewFromInt(1)}}
	_, err := svc.CreateProduct(ctx, req)
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, req)
	require.NoError(t, err)

	products, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestDeleteCustomerPublishesCascadeCount(t *testing.T) {
	svc, publisher := newTestService(t)
	ctx := context.Background()

	c, err := svc.CreateCustomer(ctx, &CreateCustomerRequest{CustomerInput: models.CustomerInput{Name: "Ada"}})
	require.NoError(t, err)
	p, err := svc.CreateProduct(ctx, &CreateProductRequest{ProductInput: models.ProductInput{Name: "Pen", Price: decimal.NewFromInt(2)}})
	require.NoError(t, err)
	_, err = svc.CreateOrder(ctx, &CreateOrderRequest{OrderInput: models.OrderInput{CustomerID: c.ID, ProductID: p.ID, Quantity: 2}})
	require.NoError(t, err)

	cascaded, err := svc.DeleteCustomer(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cascaded)

	last := publisher.events[len(publisher.events)-1]
	assert.Equal(t, models.EventTypeCustomerDeleted, last.EventType)
	assert.Equal(t, c.ID, last.EntityID)
	assert.Equal(t, int64(1), last.CascadedOrders)

	orders, err := svc.ListOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestPublishFailureDoesNotFailOperation(t *testing.T) {
	svc, publisher := newTestService(t)
	publisher.err = errors.New("kafka unavailable")

	_, err := svc.CreateCustomer(context.Background(), &CreateCustomerRequest{CustomerInput: models.CustomerInput{Name: "Ada"}})
	assert.NoError(t, err)
	assert.Len(t, publisher.events, 1)
}

func TestFailedOperationPublishesNothing(t *testing.T) {
	svc, publisher := newTestService(t)

	_, err := svc.CreateOrder(context.Background(), &CreateOrderRequest{
		OrderInput: models.OrderInput{CustomerID: "c", ProductID: "p", Quantity: 1},
	})
	assert.ErrorIs(t, err, store.ErrReference)
	assert.Empty(t, publisher.events)
}

func TestCustomerOrdersUnknownCustomer(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CustomerOrders(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{&store.ValidationError{Field: "name"}, "validation"},
		{&store.ReferenceError{Entity: "product"}, "reference"},
		{fmt.Errorf("wrapped: %w", &store.NotFoundError{Entity: "order"}), "not_found"},
		{&store.ConnectionError{Op: "ping", Err: errors.New("refused")}, "connection"},
		{errors.New("boom"), "error"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Outcome(tt.err))
	}
}
