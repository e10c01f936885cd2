//go:build integration

package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/salesgrowth-service/internal/app/growth/contracts"
	"github.com/light-bringer/salesgrowth-service/internal/app/growth/repo"
	"github.com/light-bringer/salesgrowth-service/internal/app/growth/usecases/relay_events"
	"github.com/light-bringer/salesgrowth-service/internal/models/m_outbox"
	"github.com/light-bringer/salesgrowth-service/internal/pkg/committer"
	"github.com/light-bringer/salesgrowth-service/tests/testutil"
)

type recordingPublisher struct {
	fail map[string]bool
	sent []string
}

func (p *recordingPublisher) Publish(_ context.Context, event *contracts.OutboxEvent) error {
	if p.fail[event.EventID] {
		return errors.New("broker unavailable")
	}
	p.sent = append(p.sent, event.EventID)
	return nil
}

func TestOutboxRepository_ListPending(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	pending := testutil.InsertOutboxEvent(t, client, m_outbox.StatusPending, 0)
	retryable := testutil.InsertOutboxEvent(t, client, m_outbox.StatusFailed, 2)
	testutil.InsertOutboxEvent(t, client, m_outbox.StatusFailed, 5)
	testutil.InsertOutboxEvent(t, client, m_outbox.StatusCompleted, 0)

	events, err := repo.NewOutboxRepo(client).ListPending(ctx, 10, 5)
	require.NoError(t, err)

	ids := make([]string, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.EventID)
	}
	require.ElementsMatch(t, []string{pending, retryable}, ids)
	assert.JSONEq(t, `{"report_id":"x"}`, events[0].Payload)
}

func TestRelayEvents_MarksOutcomes(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	ok := testutil.InsertOutboxEvent(t, client, m_outbox.StatusPending, 0)
	bad := testutil.InsertOutboxEvent(t, client, m_outbox.StatusPending, 0)

	outboxRepo := repo.NewOutboxRepo(client)
	publisher := &recordingPublisher{fail: map[string]bool{bad: true}}

	result, err := relay_events.NewInteractor(outboxRepo, publisher, committer.NewCommitter(client)).
		Execute(ctx, &relay_events.Request{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Published)
	assert.Equal(t, 1, result.Failed)

	row, err := client.Single().ReadRow(ctx, m_outbox.TableName, spanner.Key{ok}, m_outbox.Columns)
	require.NoError(t, err)
	var completed m_outbox.Data
	require.NoError(t, row.ToStruct(&completed))
	assert.Equal(t, m_outbox.StatusCompleted, completed.Status)
	assert.True(t, completed.ProcessedAt.Valid)

	row, err = client.Single().ReadRow(ctx, m_outbox.TableName, spanner.Key{bad}, m_outbox.Columns)
	require.NoError(t, err)
	var failed m_outbox.Data
	require.NoError(t, row.ToStruct(&failed))
	assert.Equal(t, m_outbox.StatusFailed, failed.Status)
	assert.Equal(t, int64(1), failed.RetryCount)
	assert.Equal(t, "broker unavailable", failed.ErrorMessage.StringVal)
}

func TestOutboxRepository_Cleanup(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	done := testutil.InsertOutboxEvent(t, client, m_outbox.StatusPending, 0)
	testutil.InsertOutboxEvent(t, client, m_outbox.StatusPending, 0)

	outboxRepo := repo.NewOutboxRepo(client)
	_, err := client.Apply(ctx, []*spanner.Mutation{outboxRepo.CompletedMut(done)})
	require.NoError(t, err)

	// A cutoff in the future expires every completed event.
	future := time.Now().Add(time.Hour)
	rt := repo.Retention{CompletedBefore: future, FailedBefore: future}

	count, err := outboxRepo.CountExpired(ctx, rt)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	deleted, err := committer.NewCommitter(client).ApplyDML(ctx, repo.ExpiredDeleteStmt(rt))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	testutil.AssertRowCount(t, client, "outbox_events", 1)
}
