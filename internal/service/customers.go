package service

import (
	"context"
	"errors"
	"time"

	"store-catalog/internal/models"
	"store-catalog/internal/store"
	"store-catalog/internal/util"

	"go.uber.org/zap"
)

// CreateCustomerRequest represents a request to create a customer
type CreateCustomerRequest struct {
	models.CustomerInput
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

// CreateCustomer creates a customer. A repeated idempotency key returns
// the customer created by the first request.
func (s *CatalogService) CreateCustomer(ctx context.Context, req *CreateCustomerRequest) (customer *models.Customer, err error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.CreateCustomer")
	start := time.Now()
	defer func() { s.finish(span, models.EntityCustomer, opCreate, start, err) }()

	if id := s.replayed(ctx, models.EntityCustomer, req.IdempotencyKey); id != "" {
		existing, lookupErr := s.store.GetCustomer(ctx, id)
		if lookupErr == nil {
			s.logger.Info("Duplicate customer request detected",
				zap.String("idempotency_key", req.IdempotencyKey),
				zap.String("customer_id", id))
			return existing, nil
		}
		if !errors.Is(lookupErr, store.ErrNotFound) {
			return nil, lookupErr
		}
	}

	customer, err = s.store.CreateCustomer(ctx, req.CustomerInput)
	if err != nil {
		return nil, err
	}

	s.remember(ctx, models.EntityCustomer, req.IdempotencyKey, customer.ID)
	s.logger.Info("Customer created", zap.String("customer_id", customer.ID))
	s.publish(ctx, models.EntityCustomer, "created", customer.ID, 0)
	return customer, nil
}

// ListCustomers returns every customer, most recent first
func (s *CatalogService) ListCustomers(ctx context.Context) (customers []models.Customer, err error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.ListCustomers")
	start := time.Now()
	defer func() { s.finish(span, models.EntityCustomer, opList, start, err) }()

	return s.store.ListCustomers(ctx)
}

// GetCustomer retrieves a customer by ID
func (s *CatalogService) GetCustomer(ctx context.Context, id string) (customer *models.Customer, err error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.GetCustomer")
	start := time.Now()
	defer func() { s.finish(span, models.EntityCustomer, opGet, start, err) }()

	return s.store.GetCustomer(ctx, id)
}

// CustomerOrders returns the orders placed by a customer
func (s *CatalogService) CustomerOrders(ctx context.Context, id string) (orders []models.Order, err error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.CustomerOrders")
	start := time.Now()
	defer func() { s.finish(span, models.EntityCustomer, opList, start, err) }()

	if _, err = s.store.GetCustomer(ctx, id); err != nil {
		return nil, err
	}
	return s.store.ListOrdersByCustomer(ctx, id)
}

// UpdateCustomer applies a partial update
func (s *CatalogService) UpdateCustomer(ctx context.Context, id string, patch models.CustomerPatch) (customer *models.Customer, err error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.UpdateCustomer")
	start := time.Now()
	defer func() { s.finish(span, models.EntityCustomer, opUpdate, start, err) }()

	customer, err = s.store.UpdateCustomer(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Customer updated", zap.String("customer_id", id))
	s.publish(ctx, models.EntityCustomer, "updated", id, 0)
	return customer, nil
}

// DeleteCustomer deletes a customer and its orders, returning how many
// orders were removed with it.
func (s *CatalogService) DeleteCustomer(ctx context.Context, id string) (cascaded int64, err error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.DeleteCustomer")
	start := time.Now()
	defer func() { s.finish(span, models.EntityCustomer, opDelete, start, err) }()

	cascaded, err = s.store.DeleteCustomer(ctx, id)
	if err != nil {
		return 0, err
	}

	util.CascadedOrdersTotal.WithLabelValues(models.EntityCustomer).Add(float64(cascaded))
	s.logger.Info("Customer deleted",
		zap.String("customer_id", id),
		zap.Int64("cascaded_orders", cascaded))
	s.publish(ctx, models.EntityCustomer, "deleted", id, cascaded)
	return cascaded, nil
}
