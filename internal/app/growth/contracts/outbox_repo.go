package contracts

import (
	"context"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/salesgrowth-service/internal/app/growth/domain"
)

// OutboxEvent represents an enriched domain event ready for persistence.
type OutboxEvent struct {
	EventID     string
	EventType   string
	AggregateID string
	Payload     string // JSON
	Status      string
	RetryCount  int64
	CreatedAt   time.Time
}

// OutboxRepository defines the interface for outbox event persistence.
type OutboxRepository interface {
	// InsertMut creates a mutation for inserting an outbox event
	InsertMut(event *OutboxEvent) *spanner.Mutation

	// EnrichEvent converts a domain event to an outbox event with metadata
	EnrichEvent(event domain.DomainEvent, payload string) *OutboxEvent

	// ListPending returns pending events, oldest first. Failed events are
	// included while their retry count is below maxRetries.
	ListPending(ctx context.Context, limit int, maxRetries int64) ([]*OutboxEvent, error)

	// CompletedMut marks an event as published.
	CompletedMut(eventID string) *spanner.Mutation

	// FailedMut records a publish failure and bumps the retry count.
	FailedMut(event *OutboxEvent, cause error) *spanner.Mutation
}

// EventPublisher delivers outbox events to a message broker.
type EventPublisher interface {
	Publish(ctx context.Context, event *OutboxEvent) error
}
