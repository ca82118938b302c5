package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"store-catalog/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// CreateProduct validates and inserts a new product
func (s *Store) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}

	now := s.stamp(time.Time{})
	product := &models.Product{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Description:    in.Description,
		Price:          in.Price,
		Stock:          in.Stock,
		CreatedDate:    now,
		LastUpdateDate: now,
	}

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, s.rebind(
			"INSERT INTO products ("+productColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)"),
			product.ID, product.Name, product.Description, product.Price, product.Stock,
			product.CreatedDate, product.LastUpdateDate)
		if err != nil {
			return storeError("insert product", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// ListProducts returns all products, most recently created first
func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	err := s.db.SelectContext(ctx, &products,
		"SELECT "+productColumns+" FROM products ORDER BY created_date DESC, id DESC")
	if err != nil {
		return nil, storeError("list products", err)
	}
	return products, nil
}

// GetProduct retrieves a product by ID
func (s *Store) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.getProduct(ctx, s.db, id)
}

// UpdateProduct applies the non-nil fields of patch. Existing orders keep
// the total they were created with.
func (s *Store) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	if err := validateProductPatch(patch); err != nil {
		return nil, err
	}

	var product *models.Product
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		product, err = s.getProduct(ctx, tx, id)
		if err != nil {
			return err
		}

		if patch.Name != nil {
			product.Name = *patch.Name
		}
		if patch.Description != nil {
			product.Description = *patch.Description
		}
		if patch.Price != nil {
			product.Price = *patch.Price
		}
		if patch.Stock != nil {
			product.Stock = *patch.Stock
		}
		product.LastUpdateDate = s.stamp(product.LastUpdateDate)

		_, err = tx.ExecContext(ctx, s.rebind(`
			UPDATE products
			SET name = ?, description = ?, price = ?, stock = ?, last_update_date = ?
			WHERE id = ?`),
			product.Name, product.Description, product.Price, product.Stock,
			product.LastUpdateDate, product.ID)
		if err != nil {
			return storeError("update product", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product together with every order that
// references it. It returns the number of orders removed.
func (s *Store) DeleteProduct(ctx context.Context, id string) (int64, error) {
	return s.cascadeDelete(ctx, productRef, id)
}

func (s *Store) getProduct(ctx context.Context, q sqlx.QueryerContext, id string) (*models.Product, error) {
	var product models.Product
	err := sqlx.GetContext(ctx, q, &product,
		s.rebind("SELECT "+productColumns+" FROM products WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Entity: models.EntityProduct, ID: id}
	}
	if err != nil {
		return nil, storeError("get product", err)
	}
	return &product, nil
}
