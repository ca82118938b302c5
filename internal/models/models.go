package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entity names, used in errors, events and metrics
const (
	EntityCustomer = "customer"
	EntityProduct  = "product"
	EntityOrder    = "order"
)

// Customer represents a store customer
type Customer struct {
	ID             string    `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Email          string    `db:"email" json:"email"`
	Phone          string    `db:"phone" json:"phone"`
	Address        string    `db:"address" json:"address"`
	CreatedDate    time.Time `db:"created_date" json:"created_date"`
	LastUpdateDate time.Time `db:"last_update_date" json:"last_update_date"`
}

// Product represents a product in the catalog.
// Stock is informational; orders never decrement it.
type Product struct {
	ID             string          `db:"id" json:"id"`
	Name           string          `db:"name" json:"name"`
	Description    string          `db:"description" json:"description"`
	Price          decimal.Decimal `db:"price" json:"price"`
	Stock          int             `db:"stock" json:"stock"`
	CreatedDate    time.Time       `db:"created_date" json:"created_date"`
	LastUpdateDate time.Time       `db:"last_update_date" json:"last_update_date"`
}

// Order references exactly one customer and one product.
// TotalAmount is a snapshot of price * quantity taken at creation.
type Order struct {
	ID             string          `db:"id" json:"id"`
	CustomerID     string          `db:"customer_id" json:"customer_id"`
	ProductID      string          `db:"product_id" json:"product_id"`
	Quantity       int             `db:"quantity" json:"quantity"`
	TotalAmount    decimal.Decimal `db:"total_amount" json:"total_amount"`
	OrderDate      time.Time       `db:"order_date" json:"order_date"`
	CreatedDate    time.Time       `db:"created_date" json:"created_date"`
	LastUpdateDate time.Time       `db:"last_update_date" json:"last_update_date"`
}

// CustomerInput holds the fields accepted when creating a customer
type CustomerInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// ProductInput holds the fields accepted when creating a product
type ProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

// OrderInput holds the fields accepted when creating an order.
// A nil OrderDate means "now".
type OrderInput struct {
	CustomerID string     `json:"customer_id"`
	ProductID  string     `json:"product_id"`
	Quantity   int        `json:"quantity"`
	OrderDate  *time.Time `json:"order_date,omitempty"`
}

// CustomerPatch is a partial update; nil fields are left unchanged
type CustomerPatch struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// ProductPatch is a partial update; nil fields are left unchanged
type ProductPatch struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
}

// OrderPatch is a partial update. Changing the references does not
// recompute TotalAmount; callers must supply it explicitly.
type OrderPatch struct {
	CustomerID  *string          `json:"customer_id,omitempty"`
	ProductID   *string          `json:"product_id,omitempty"`
	Quantity    *int             `json:"quantity,omitempty"`
	TotalAmount *decimal.Decimal `json:"total_amount,omitempty"`
	OrderDate   *time.Time       `json:"order_date,omitempty"`
}
