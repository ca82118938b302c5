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

// CreateCustomer validates and inserts a new customer
func (s *Store) CreateCustomer(ctx context.Context, in models.CustomerInput) (*models.Customer, error) {
	if err := validateCustomerInput(in); err != nil {
		return nil, err
	}

	now := s.stamp(time.Time{})
	customer := &models.Customer{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		Address:        in.Address,
		CreatedDate:    now,
		LastUpdateDate: now,
	}

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, s.rebind(
			"INSERT INTO customers ("+customerColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)"),
			customer.ID, customer.Name, customer.Email, customer.Phone, customer.Address,
			customer.CreatedDate, customer.LastUpdateDate)
		if err != nil {
			return storeError("insert customer", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// ListCustomers returns all customers, most recently created first
func (s *Store) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	customers := []models.Customer{}
	err := s.db.SelectContext(ctx, &customers,
		"SELECT "+customerColumns+" FROM customers ORDER BY created_date DESC, id DESC")
	if err != nil {
		return nil, storeError("list customers", err)
	}
	return customers, nil
}

// GetCustomer retrieves a customer by ID
func (s *Store) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	return s.getCustomer(ctx, s.db, id)
}

// UpdateCustomer applies the non-nil fields of patch and re-stamps
// last_update_date.
func (s *Store) UpdateCustomer(ctx context.Context, id string, patch models.CustomerPatch) (*models.Customer, error) {
	if err := validateCustomerPatch(patch); err != nil {
		return nil, err
	}

	var customer *models.Customer
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		customer, err = s.getCustomer(ctx, tx, id)
		if err != nil {
			return err
		}

		if patch.Name != nil {
			customer.Name = *patch.Name
		}
		if patch.Email != nil {
			customer.Email = *patch.Email
		}
		if patch.Phone != nil {
			customer.Phone = *patch.Phone
		}
		if patch.Address != nil {
			customer.Address = *patch.Address
		}
		customer.LastUpdateDate = s.stamp(customer.LastUpdateDate)

		_, err = tx.ExecContext(ctx, s.rebind(`
			UPDATE customers
			SET name = ?, email = ?, phone = ?, address = ?, last_update_date = ?
			WHERE id = ?`),
			customer.Name, customer.Email, customer.Phone, customer.Address,
			customer.LastUpdateDate, customer.ID)
		if err != nil {
			return storeError("update customer", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer removes a customer together with every order that
// references it. It returns the number of orders removed.
func (s *Store) DeleteCustomer(ctx context.Context, id string) (int64, error) {
	return s.cascadeDelete(ctx, customerRef, id)
}

func (s *Store) getCustomer(ctx context.Context, q sqlx.QueryerContext, id string) (*models.Customer, error) {
	var customer models.Customer
	err := sqlx.GetContext(ctx, q, &customer,
		s.rebind("SELECT "+customerColumns+" FROM customers WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Entity: models.EntityCustomer, ID: id}
	}
	if err != nil {
		return nil, storeError("get customer", err)
	}
	return &customer, nil
}
