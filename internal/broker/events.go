package broker

import (
	"context"
	"fmt"

	"store-catalog/internal/models"
	"store-catalog/internal/util"
)

// EventPublisher handles publishing catalog events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishCatalogEvent publishes a catalog change event keyed by entity,
// so all events of one row land on the same partition.
func (ep *EventPublisher) PublishCatalogEvent(ctx context.Context, event *models.CatalogEvent) error {
	key := fmt.Sprintf("%s-%s", event.Entity, event.EntityID)

	if err := ep.producer.PublishEvent(ctx, key, event); err != nil {
		util.EventsPublishedTotal.WithLabelValues(event.EventType, "failed").Inc()
		return err
	}

	util.EventsPublishedTotal.WithLabelValues(event.EventType, "ok").Inc()
	return nil
}
