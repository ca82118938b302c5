package broker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"store-catalog/internal/models"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublishCatalogEvent(t *testing.T) {
	writer := &recordingWriter{}
	publisher := NewEventPublisher(NewProducerWithWriter(writer))

	event := &models.CatalogEvent{
		BaseEvent: models.BaseEvent{
			EventID:   "evt-1",
			EventType: models.EventTypeCustomerDeleted,
			Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		Entity:         models.EntityCustomer,
		EntityID:       "c-1",
		CascadedOrders: 3,
	}

	require.NoError(t, publisher.PublishCatalogEvent(context.Background(), event))
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, "customer-c-1", string(msg.Key))

	var decoded models.CatalogEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, models.EventTypeCustomerDeleted, decoded.EventType)
	assert.Equal(t, "c-1", decoded.EntityID)
	assert.Equal(t, int64(3), decoded.CascadedOrders)
}

func TestPublishCatalogEventWriteFailure(t *testing.T) {
	writer := &recordingWriter{err: errors.New("broker down")}
	publisher := NewEventPublisher(NewProducerWithWriter(writer))

	err := publisher.PublishCatalogEvent(context.Background(), &models.CatalogEvent{
		BaseEvent: models.BaseEvent{EventType: models.EventTypeOrderCreated},
		Entity:    models.EntityOrder,
		EntityID:  "o-1",
	})
	assert.ErrorContains(t, err, "broker down")
}

func TestProducerClose(t *testing.T) {
	writer := &recordingWriter{}
	require.NoError(t, NewProducerWithWriter(writer).Close())
	assert.True(t, writer.closed)
}
