package m_outbox

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the outbox_events table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting an outbox event.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		Columns,
		[]interface{}{
			data.EventID,
			data.EventType,
			data.AggregateID,
			data.Payload,
			data.Status,
			spanner.CommitTimestamp,
			data.ProcessedAt,
			data.RetryCount,
			data.ErrorMessage,
		},
	)
}

// CompletedMut marks an event as published at commit time.
func (m *Model) CompletedMut(eventID string) *spanner.Mutation {
	return spanner.Update(
		TableName,
		[]string{EventID, Status, ProcessedAt, ErrorMessage},
		[]interface{}{eventID, StatusCompleted, spanner.CommitTimestamp, spanner.NullString{}},
	)
}

// FailedMut records a failed publish attempt.
func (m *Model) FailedMut(eventID string, retryCount int64, message string) *spanner.Mutation {
	if len(message) > MaxErrorMessageLength {
		message = message[:MaxErrorMessageLength]
	}
	return spanner.Update(
		TableName,
		[]string{EventID, Status, ProcessedAt, RetryCount, ErrorMessage},
		[]interface{}{
			eventID,
			StatusFailed,
			spanner.CommitTimestamp,
			retryCount,
			spanner.NullString{StringVal: message, Valid: true},
		},
	)
}

// DeleteMut creates a Spanner mutation for deleting an outbox event.
func (m *Model) DeleteMut(eventID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{eventID})
}
