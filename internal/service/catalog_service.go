package service

import (
	"context"
	"errors"
	"time"

	"store-catalog/internal/models"
	"store-catalog/internal/store"
	"store-catalog/internal/util"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	opCreate = "create"
	opList   = "list"
	opGet    = "get"
	opUpdate = "update"
	opDelete = "delete"
)

// EventPublisher publishes catalog change events
type EventPublisher interface {
	PublishCatalogEvent(ctx context.Context, event *models.CatalogEvent) error
}

// IdempotencyStore remembers which entity a create request produced
type IdempotencyStore interface {
	Lookup(ctx context.Context, scope, key string) (string, error)
	Remember(ctx context.Context, scope, key, id string, ttl time.Duration) error
}

// CatalogService exposes the catalog CRUD operations with tracing,
// metrics, logging and change events around the store.
type CatalogService struct {
	store          *store.Store
	eventPublisher EventPublisher
	idempotency    IdempotencyStore
	idempotencyTTL time.Duration
	logger         *zap.Logger
}

// NewCatalogService creates a new catalog service. eventPublisher and
// idempotency may be nil.
func NewCatalogService(
	store *store.Store,
	eventPublisher EventPublisher,
	idempotency IdempotencyStore,
	idempotencyTTL time.Duration,
) *CatalogService {
	return &CatalogService{
		store:          store,
		eventPublisher: eventPublisher,
		idempotency:    idempotency,
		idempotencyTTL: idempotencyTTL,
		logger:         util.GetLogger(),
	}
}

// Ping checks the backing store
func (s *CatalogService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// finish ends the span of one operation and records its outcome and latency
func (s *CatalogService) finish(span trace.Span, entity, op string, start time.Time, err error) {
	defer span.End()

	span.SetAttributes(
		attribute.String("catalog.entity", entity),
		attribute.String("catalog.op", op),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, Outcome(err))
	}

	util.CatalogOperationLatency.WithLabelValues(entity, op).Observe(time.Since(start).Seconds())
	util.CatalogOperationsTotal.WithLabelValues(entity, op, Outcome(err)).Inc()

	if err != nil {
		s.logger.Warn("Catalog operation failed",
			zap.String("entity", entity),
			zap.String("op", op),
			zap.Error(err))
	}
}

// publish emits a change event; failures are logged and swallowed
func (s *CatalogService) publish(ctx context.Context, entity, op, id string, cascaded int64) {
	if s.eventPublisher == nil {
		return
	}

	event := &models.CatalogEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventType(entity, op),
			Timestamp: time.Now(),
		},
		Entity:         entity,
		EntityID:       id,
		CascadedOrders: cascaded,
	}

	if err := s.eventPublisher.PublishCatalogEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish catalog event",
			zap.String("event_type", event.EventType),
			zap.String("entity_id", id),
			zap.Error(err))
	}
}

// replayed returns the id recorded for an idempotency key, or "".
// Lookup failures are treated as a miss.
func (s *CatalogService) replayed(ctx context.Context, scope, key string) string {
	if s.idempotency == nil || key == "" {
		return ""
	}

	id, err := s.idempotency.Lookup(ctx, scope, key)
	if err != nil {
		s.logger.Warn("Idempotency lookup failed",
			zap.String("scope", scope),
			zap.String("idempotency_key", key),
			zap.Error(err))
		return ""
	}
	return id
}

func (s *CatalogService) remember(ctx context.Context, scope, key, id string) {
	if s.idempotency == nil || key == "" {
		return
	}

	if err := s.idempotency.Remember(ctx, scope, key, id, s.idempotencyTTL); err != nil {
		s.logger.Warn("Failed to store idempotency key",
			zap.String("scope", scope),
			zap.String("idempotency_key", key),
			zap.Error(err))
	}
}

// Outcome classifies an error for metrics labels
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, store.ErrValidation):
		return "validation"
	case errors.Is(err, store.ErrReference):
		return "reference"
	case errors.Is(err, store.ErrNotFound):
		return "not_found"
	case errors.Is(err, store.ErrConnection):
		return "connection"
	default:
		return "error"
	}
}
