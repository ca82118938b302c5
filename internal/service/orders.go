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

// CreateOrderRequest represents a request to create an order
type CreateOrderRequest struct {
	models.OrderInput
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

// CreateOrder creates an order whose total is snapshotted from the
// product's current price.
func (s *CatalogService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (order *models.Order, err error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.CreateOrder")
	start := time.Now()
	defer func() { s.finish(span, models.EntityOrder, opCreate, start, err) }()

	if id := s.replayed(ctx, models.EntityOrder, req.IdempotencyKey); id != "" {
		existing, lookupErr := s.store.GetOrder(ctx, id)
		if lookupErr == nil {
			s.logger.Info("Duplicate order request detected",
				zap.String("idempotency_key", req.IdempotencyKey),
				zap.String("order_id", id))
			return existing, nil
		}
		if !errors.Is(lookupErr, store.ErrNotFound) {
			return nil, lookupErr
		}
	}

	order, err = s.store.CreateOrder(ctx, req.OrderInput)
	if err != nil {
		return nil, err
	}

	s.remember(ctx, models.EntityOrder, req.IdempotencyKey, order.ID)
	s.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("customer_id", order.CustomerID),
		zap.String("product_id", order.ProductID),
		zap.String("total_amount", order.TotalAmount.String()))
	s.publish(ctx, models.EntityOrder, "created", order.ID, 0)
	return order, nil
}

// ListOrders returns every order, most recent first
func (s *CatalogService) ListOrders(ctx context.Context) (orders []models.Order, err error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.ListOrders")
	start := time.Now()
	defer func() { s.finish(span, models.EntityOrder, opList, start, err) }()

	return s.store.ListOrders(ctx)
}

// GetOrder retrieves an order by ID
func (s *CatalogService) GetOrder(ctx context.Context, id string) (order *models.Order, err error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.GetOrder")
	start := time.Now()
	defer func() { s.finish(span, models.EntityOrder, opGet, start, err) }()

	return s.store.GetOrder(ctx, id)
}

// UpdateOrder applies a partial update
func (s *CatalogService) UpdateOrder(ctx context.Context, id string, patch models.OrderPatch) (order *models.Order, err error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.UpdateOrder")
	start := time.Now()
	defer func() { s.finish(span, models.EntityOrder, opUpdate, start, err) }()

	order, err = s.store.UpdateOrder(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order updated", zap.String("order_id", id))
	s.publish(ctx, models.EntityOrder, "updated", id, 0)
	return order, nil
}

// DeleteOrder deletes a single order
func (s *CatalogService) DeleteOrder(ctx context.Context, id string) (err error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.DeleteOrder")
	start := time.Now()
	defer func() { s.finish(span, models.EntityOrder, opDelete, start, err) }()

	if err = s.store.DeleteOrder(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Order deleted", zap.String("order_id", id))
	s.publish(ctx, models.EntityOrder, "deleted", id, 0)
	return nil
}
