package models

import "time"

// Event types
const (
	EventTypeCustomerCreated = "CUSTOMER_CREATED"
	EventTypeCustomerUpdated = "CUSTOMER_UPDATED"
	EventTypeCustomerDeleted = "CUSTOMER_DELETED"
	EventTypeProductCreated  = "PRODUCT_CREATED"
	EventTypeProductUpdated  = "PRODUCT_UPDATED"
	EventTypeProductDeleted  = "PRODUCT_DELETED"
	EventTypeOrderCreated    = "ORDER_CREATED"
	EventTypeOrderUpdated    = "ORDER_UPDATED"
	EventTypeOrderDeleted    = "ORDER_DELETED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// CatalogEvent is published after every successful catalog mutation
type CatalogEvent struct {
	BaseEvent
	Entity         string `json:"entity"`
	EntityID       string `json:"entity_id"`
	CascadedOrders int64  `json:"cascaded_orders,omitempty"`
}

// EventType returns the event type for a mutation of entity.
// op is one of "created", "updated" or "deleted".
func EventType(entity, op string) string {
	switch entity + "." + op {
	case EntityCustomer + ".created":
		return EventTypeCustomerCreated
	case EntityCustomer + ".updated":
		return EventTypeCustomerUpdated
	case EntityCustomer + ".deleted":
		return EventTypeCustomerDeleted
	case EntityProduct + ".created":
		return EventTypeProductCreated
	case EntityProduct + ".updated":
		return EventTypeProductUpdated
	case EntityProduct + ".deleted":
		return EventTypeProductDeleted
	case EntityOrder + ".created":
		return EventTypeOrderCreated
	case EntityOrder + ".updated":
		return EventTypeOrderUpdated
	case EntityOrder + ".deleted":
		return EventTypeOrderDeleted
	}
	return ""
}
