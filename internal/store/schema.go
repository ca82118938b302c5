package store

import (
	"context"

	"store-catalog/config"
)

const (
	customerColumns = "id, name, email, phone, address, created_date, last_update_date"
	productColumns  = "id, name, description, price, stock, created_date, last_update_date"
	orderColumns    = "id, customer_id, product_id, quantity, total_amount, order_date, created_date, last_update_date"
)

// Prices are stored as TEXT in sqlite so decimals round-trip exactly.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		created_date TIMESTAMP NOT NULL,
		last_update_date TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price TEXT NOT NULL,
		stock INTEGER NOT NULL DEFAULT 0,
		created_date TIMESTAMP NOT NULL,
		last_update_date TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL REFERENCES customers(id),
		product_id TEXT NOT NULL REFERENCES products(id),
		quantity INTEGER NOT NULL,
		total_amount TEXT NOT NULL,
		order_date TIMESTAMP NOT NULL,
		created_date TIMESTAMP NOT NULL,
		last_update_date TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_customer_id ON orders (customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_product_id ON orders (product_id)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		created_date TIMESTAMPTZ NOT NULL,
		last_update_date TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price NUMERIC NOT NULL CHECK (price >= 0),
		stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
		created_date TIMESTAMPTZ NOT NULL,
		last_update_date TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL REFERENCES customers(id),
		product_id TEXT NOT NULL REFERENCES products(id),
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		total_amount NUMERIC NOT NULL,
		order_date TIMESTAMPTZ NOT NULL,
		created_date TIMESTAMPTZ NOT NULL,
		last_update_date TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_customer_id ON orders (customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_product_id ON orders (product_id)`,
}

// Migrate creates the catalog tables if they do not exist
func (s *Store) Migrate(ctx context.Context) error {
	ddl := postgresSchema
	if s.driver == config.DriverSQLite {
		ddl = sqliteSchema
	}

	for _, stmt := range ddl {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return storeError("apply schema", err)
		}
	}
	return nil
}
