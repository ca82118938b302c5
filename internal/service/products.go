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

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	models.ProductInput
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

// CreateProduct creates a product
func (s *CatalogService) CreateProduct(ctx context.Context, req *CreateProductRequest) (product *models.Product, err error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.CreateProduct")
	start := time.Now()
	defer func() { s.finish(span, models.EntityProduct, opCreate, start, err) }()

	if id := s.replayed(ctx, models.EntityProduct, req.IdempotencyKey); id != "" {
		existing, lookupErr := s.store.GetProduct(ctx, id)
		if lookupErr == nil {
			s.logger.Info("Duplicate product request detected",
				zap.String("idempotency_key", req.IdempotencyKey),
				zap.String("product_id", id))
			return existing, nil
		}
		if !errors.Is(lookupErr, store.ErrNotFound) {
			return nil, lookupErr
		}
	}

	product, err = s.store.CreateProduct(ctx, req.ProductInput)
	if err != nil {
		return nil, err
	}

	s.remember(ctx, models.EntityProduct, req.IdempotencyKey, product.ID)
	s.logger.Info("Product created",
		zap.String("product_id", product.ID),
		zap.String("price", product.Price.String()))
	s.publish(ctx, models.EntityProduct, "created", product.ID, 0)
	return product, nil
}

// ListProducts returns every product, most recent first
func (s *CatalogService) ListProducts(ctx context.Context) (products []models.Product, err error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.ListProducts")
	start := time.Now()
	defer func() { s.finish(span, models.EntityProduct, opList, start, err) }()

	return s.store.ListProducts(ctx)
}

// GetProduct retrieves a product by ID
func (s *CatalogService) GetProduct(ctx context.Context, id string) (product *models.Product, err error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.GetProduct")
	start := time.Now()
	defer func() { s.finish(span, models.EntityProduct, opGet, start, err) }()

	return s.store.GetProduct(ctx, id)
}

// ProductOrders returns the orders for a product
func (s *CatalogService) ProductOrders(ctx context.Context, id string) (orders []models.Order, err error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.ProductOrders")
	start := time.Now()
	defer func() { s.finish(span, models.EntityProduct, opList, start, err) }()

	if _, err = s.store.GetProduct(ctx, id); err != nil {
		return nil, err
	}
	return s.store.ListOrdersByProduct(ctx, id)
}

// UpdateProduct applies a partial update. Totals of existing orders are
// left as they were.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (product *models.Product, err error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.UpdateProduct")
	start := time.Now()
	defer func() { s.finish(span, models.EntityProduct, opUpdate, start, err) }()

	product, err = s.store.UpdateProduct(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Product updated", zap.String("product_id", id))
	s.publish(ctx, models.EntityProduct, "updated", id, 0)
	return product, nil
}

// DeleteProduct deletes a product and its orders
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) (cascaded int64, err error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.DeleteProduct")
	start := time.Now()
	defer func() { s.finish(span, models.EntityProduct, opDelete, start, err) }()

	cascaded, err = s.store.DeleteProduct(ctx, id)
	if err != nil {
		return 0, err
	}

	util.CascadedOrdersTotal.WithLabelValues(models.EntityProduct).Add(float64(cascaded))
	s.logger.Info("Product deleted",
		zap.String("product_id", id),
		zap.Int64("cascaded_orders", cascaded))
	s.publish(ctx, models.EntityProduct, "deleted", id, cascaded)
	return cascaded, nil
}
