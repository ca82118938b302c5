package store

import (
	"context"

	"store-catalog/internal/models"

	"github.com/jmoiron/sqlx"
)

// orderRef describes one of the foreign keys held by orders. Table and
// column names are fixed here and never come from callers.
type orderRef struct {
	entity string
	table  string
	column string
}

var (
	customerRef = orderRef{entity: models.EntityCustomer, table: "customers", column: "customer_id"}
	productRef  = orderRef{entity: models.EntityProduct, table: "products", column: "product_id"}
)

// cascadeDelete is the single delete policy for rows referenced by orders:
// the dependent orders go first, then the row itself, in one transaction.
// Deletion is never refused because of dependents.
func (s *Store) cascadeDelete(ctx context.Context, ref orderRef, id string) (int64, error) {
	var cascaded int64

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		found, err := s.exists(ctx, tx, ref, id)
		if err != nil {
			return err
		}
		if !found {
			return &NotFoundError{Entity: ref.entity, ID: id}
		}

		res, err := tx.ExecContext(ctx, s.rebind("DELETE FROM orders WHERE "+ref.column+" = ?"), id)
		if err != nil {
			return storeError("delete orders of "+ref.entity, err)
		}
		if cascaded, err = res.RowsAffected(); err != nil {
			return storeError("delete orders of "+ref.entity, err)
		}

		if _, err := tx.ExecContext(ctx, s.rebind("DELETE FROM "+ref.table+" WHERE id = ?"), id); err != nil {
			return storeError("delete "+ref.entity, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return cascaded, nil
}

// requireRef fails with *ReferenceError when id is not a row of ref.table
func (s *Store) requireRef(ctx context.Context, tx *sqlx.Tx, ref orderRef, id string) error {
	found, err := s.exists(ctx, tx, ref, id)
	if err != nil {
		return err
	}
	if !found {
		return &ReferenceError{Entity: ref.entity, ID: id}
	}
	return nil
}

func (s *Store) exists(ctx context.Context, tx *sqlx.Tx, ref orderRef, id string) (bool, error) {
	var count int
	err := tx.GetContext(ctx, &count, s.rebind("SELECT COUNT(1) FROM "+ref.table+" WHERE id = ?"), id)
	if err != nil {
		return false, storeError("look up "+ref.entity, err)
	}
	return count > 0, nil
}
