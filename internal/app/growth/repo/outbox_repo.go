package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/salesgrowth-service/internal/app/growth/contracts"
	"github.com/light-bringer/salesgrowth-service/internal/app/growth/domain"
	"github.com/light-bringer/salesgrowth-service/internal/models/m_outbox"
	"github.com/light-bringer/salesgrowth-service/internal/pkg/query"
)

// OutboxRepo implements OutboxRepository for Spanner.
type OutboxRepo struct {
	client *spanner.Client
	model  *m_outbox.Model
}

// NewOutboxRepo creates a new OutboxRepo.
func NewOutboxRepo(client *spanner.Client) *OutboxRepo {
	return &OutboxRepo{
		client: client,
		model:  m_outbox.NewModel(),
	}
}

// InsertMut creates a mutation for inserting an outbox event.
func (r *OutboxRepo) InsertMut(event *contracts.OutboxEvent) *spanner.Mutation {
	return r.model.InsertMut(EventToData(event))
}

// EnrichEvent converts a domain event to an outbox event with metadata.
func (r *OutboxRepo) EnrichEvent(event domain.DomainEvent, payload string) *contracts.OutboxEvent {
	return &contracts.OutboxEvent{
		EventID:     uuid.New().String(),
		EventType:   event.EventType(),
		AggregateID: event.AggregateID(),
		Payload:     payload,
		Status:      m_outbox.StatusPending,
	}
}

// PendingQuery selects events still waiting to be published, oldest first.
func PendingQuery(limit int, maxRetries int64) *query.Builder {
	return query.From(m_outbox.TableName).
		Select(m_outbox.Columns...).
		Where(query.Or(
			query.Eq(m_outbox.Status, m_outbox.StatusPending),
			query.And(
				query.Eq(m_outbox.Status, m_outbox.StatusFailed),
				query.Lt(m_outbox.RetryCount, maxRetries),
			),
		)).
		OrderBy(m_outbox.CreatedAt, query.Asc).
		Limit(int64(limit))
}

// ListPending returns events that still need publishing.
func (r *OutboxRepo) ListPending(ctx context.Context, limit int, maxRetries int64) ([]*contracts.OutboxEvent, error) {
	iter := r.client.Single().Query(ctx, PendingQuery(limit, maxRetries).Build())
	defer iter.Stop()

	var events []*contracts.OutboxEvent
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate events: %w", err)
		}

		var data m_outbox.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse event: %w", err)
		}

		event, err := DataToEvent(&data)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}

// CompletedMut marks an event as published.
func (r *OutboxRepo) CompletedMut(eventID string) *spanner.Mutation {
	return r.model.CompletedMut(eventID)
}

// FailedMut records a publish failure.
func (r *OutboxRepo) FailedMut(event *contracts.OutboxEvent, cause error) *spanner.Mutation {
	return r.model.FailedMut(event.EventID, event.RetryCount+1, cause.Error())
}

// Retention holds the cutoffs before which processed events are removed.
type Retention struct {
	CompletedBefore time.Time
	FailedBefore    time.Time
}

func (rt Retention) condition() query.Condition {
	return query.Or(
		query.And(query.Eq(m_outbox.Status, m_outbox.StatusCompleted), query.Lt(m_outbox.ProcessedAt, rt.CompletedBefore)),
		query.And(query.Eq(m_outbox.Status, m_outbox.StatusFailed), query.Lt(m_outbox.ProcessedAt, rt.FailedBefore)),
	)
}

// ExpiredDeleteStmt deletes the events the retention policy no longer keeps.
func ExpiredDeleteStmt(rt Retention) spanner.Statement {
	return query.From(m_outbox.TableName).Where(rt.condition()).Delete().Build()
}

// CountExpired counts the events ExpiredDeleteStmt would delete.
func (r *OutboxRepo) CountExpired(ctx context.Context, rt Retention) (int64, error) {
	stmt := query.From(m_outbox.TableName).Where(rt.condition()).Count().Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}

	var count int64
	if err := row.Columns(&count); err != nil {
		return 0, fmt.Errorf("failed to parse count: %w", err)
	}
	return count, nil
}

// EventToData converts an outbox event into its row.
func EventToData(event *contracts.OutboxEvent) *m_outbox.Data {
	payload := spanner.NullJSON{}
	if event.Payload != "" {
		payload = spanner.NullJSON{Value: json.RawMessage(event.Payload), Valid: true}
	}

	return &m_outbox.Data{
		EventID:     event.EventID,
		EventType:   event.EventType,
		AggregateID: event.AggregateID,
		Payload:     payload,
		Status:      event.Status,
		RetryCount:  event.RetryCount,
	}
}

// DataToEvent converts an outbox row into an event.
func DataToEvent(data *m_outbox.Data) (*contracts.OutboxEvent, error) {
	payload := ""
	if data.Payload.Valid {
		raw, err := json.Marshal(data.Payload.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode payload of event %s: %w", data.EventID, err)
		}
		payload = string(raw)
	}

	return &contracts.OutboxEvent{
		EventID:     data.EventID,
		EventType:   data.EventType,
		AggregateID: data.AggregateID,
		Payload:     payload,
		Status:      data.Status,
		RetryCount:  data.RetryCount,
		CreatedAt:   data.CreatedAt,
	}, nil
}
