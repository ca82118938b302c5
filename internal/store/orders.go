package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"store-catalog/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// CreateOrder inserts an order for an existing customer and product.
// The total is computed from the product's price at this instant and is
// never recomputed afterwards.
func (s *Store) CreateOrder(ctx context.Context, in models.OrderInput) (*models.Order, error) {
	if err := validateOrderInput(in); err != nil {
		return nil, err
	}

	now := s.stamp(time.Time{})
	order := &models.Order{
		ID:             uuid.New().String(),
		CustomerID:     in.CustomerID,
		ProductID:      in.ProductID,
		Quantity:       in.Quantity,
		OrderDate:      now,
		CreatedDate:    now,
		LastUpdateDate: now,
	}
	if in.OrderDate != nil {
		order.OrderDate = in.OrderDate.UTC().Truncate(time.Microsecond)
	}

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.requireRef(ctx, tx, customerRef, in.CustomerID); err != nil {
			return err
		}

		product, err := s.getProduct(ctx, tx, in.ProductID)
		if err != nil {
			var nf *NotFoundError
			if errors.As(err, &nf) {
				return &ReferenceError{Entity: models.EntityProduct, ID: in.ProductID}
			}
			return err
		}
		order.TotalAmount = product.Price.Mul(decimal.NewFromInt(int64(in.Quantity)))

		_, err = tx.ExecContext(ctx, s.rebind(
			"INSERT INTO orders ("+orderColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)"),
			order.ID, order.CustomerID, order.ProductID, order.Quantity, order.TotalAmount,
			order.OrderDate, order.CreatedDate, order.LastUpdateDate)
		if err != nil {
			return storeError("insert order", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ListOrders returns all orders, most recently created first
func (s *Store) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.db.SelectContext(ctx, &orders,
		"SELECT "+orderColumns+" FROM orders ORDER BY created_date DESC, id DESC")
	if err != nil {
		return nil, storeError("list orders", err)
	}
	return orders, nil
}

// ListOrdersByCustomer returns the orders placed by a customer
func (s *Store) ListOrdersByCustomer(ctx context.Context, customerID string) ([]models.Order, error) {
	return s.listOrdersBy(ctx, customerRef, customerID)
}

// ListOrdersByProduct returns the orders for a product
func (s *Store) ListOrdersByProduct(ctx context.Context, productID string) ([]models.Order, error) {
	return s.listOrdersBy(ctx, productRef, productID)
}

func (s *Store) listOrdersBy(ctx context.Context, ref orderRef, id string) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.db.SelectContext(ctx, &orders, s.rebind(
		"SELECT "+orderColumns+" FROM orders WHERE "+ref.column+" = ? ORDER BY created_date DESC, id DESC"), id)
	if err != nil {
		return nil, storeError("list orders by "+ref.entity, err)
	}
	return orders, nil
}

// GetOrder retrieves an order by ID
func (s *Store) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return s.getOrder(ctx, s.db, id)
}

// UpdateOrder applies the non-nil fields of patch. New customer or product
// references must exist. The total only changes when the patch carries one.
func (s *Store) UpdateOrder(ctx context.Context, id string, patch models.OrderPatch) (*models.Order, error) {
	if err := validateOrderPatch(patch); err != nil {
		return nil, err
	}

	var order *models.Order
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		order, err = s.getOrder(ctx, tx, id)
		if err != nil {
			return err
		}

		if patch.CustomerID != nil {
			if err := s.requireRef(ctx, tx, customerRef, *patch.CustomerID); err != nil {
				return err
			}
			order.CustomerID = *patch.CustomerID
		}
		if patch.ProductID != nil {
			if err := s.requireRef(ctx, tx, productRef, *patch.ProductID); err != nil {
				return err
			}
			order.ProductID = *patch.ProductID
		}
		if patch.Quantity != nil {
			order.Quantity = *patch.Quantity
		}
		if patch.TotalAmount != nil {
			order.TotalAmount = *patch.TotalAmount
		}
		if patch.OrderDate != nil {
			order.OrderDate = patch.OrderDate.UTC().Truncate(time.Microsecond)
		}
		order.LastUpdateDate = s.stamp(order.LastUpdateDate)

		_, err = tx.ExecContext(ctx, s.rebind(`
			UPDATE orders
			SET customer_id = ?, product_id = ?, quantity = ?, total_amount = ?,
				order_date = ?, last_update_date = ?
			WHERE id = ?`),
			order.CustomerID, order.ProductID, order.Quantity, order.TotalAmount,
			order.OrderDate, order.LastUpdateDate, order.ID)
		if err != nil {
			return storeError("update order", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// DeleteOrder removes a single order
func (s *Store) DeleteOrder(ctx context.Context, id string) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, s.rebind("DELETE FROM orders WHERE id = ?"), id)
		if err != nil {
			return storeError("delete order", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return storeError("delete order", err)
		}
		if n == 0 {
			return &NotFoundError{Entity: models.EntityOrder, ID: id}
		}
		return nil
	})
}

func (s *Store) getOrder(ctx context.Context, q sqlx.QueryerContext, id string) (*models.Order, error) {
	var order models.Order
	err := sqlx.GetContext(ctx, q, &order,
		s.rebind("SELECT "+orderColumns+" FROM orders WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Entity: models.EntityOrder, ID: id}
	}
	if err != nil {
		return nil, storeError("get order", err)
	}
	return &order, nil
}
