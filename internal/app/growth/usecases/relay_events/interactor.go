package relay_events

import (
	"context"
	"fmt"

	"github.com/light-bringer/salesgrowth-service/internal/app/growth/contracts"
	"github.com/light-bringer/salesgrowth-service/internal/pkg/committer"
)

const (
	defaultBatchSize  = 100
	defaultMaxRetries = 5
)

// Request bounds one relay pass.
type Request struct {
	BatchSize  int
	MaxRetries int64
}

// Result summarises one relay pass.
type Result struct {
	Published int
	Failed    int
}

// Interactor publishes pending outbox events to the broker.
type Interactor struct {
	outboxRepo contracts.OutboxRepository
	publisher  contracts.EventPublisher
	committer  committer.Applier
}

// NewInteractor creates a new relay events interactor.
func NewInteractor(
	outboxRepo contracts.OutboxRepository,
	publisher contracts.EventPublisher,
	committer committer.Applier,
) *Interactor {
	return &Interactor{
		outboxRepo: outboxRepo,
		publisher:  publisher,
		committer:  committer,
	}
}

// Execute publishes one batch. Every event's outcome is recorded in a single
// commit; a failed publish does not stop the batch.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Result, error) {
	batchSize := req.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	maxRetries := req.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	events, err := i.outboxRepo.ListPending(ctx, batchSize, maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending events: %w", err)
	}

	result := &Result{}
	plan := committer.NewPlan()

	for _, event := range events {
		if err := ctx.Err(); err != nil {
			break
		}
		if err := i.publisher.Publish(ctx, event); err != nil {
			plan.Add(i.outboxRepo.FailedMut(event, err))
			result.Failed++
			continue
		}
		plan.Add(i.outboxRepo.CompletedMut(event.EventID))
		result.Published++
	}

	// Events already handed to the broker are recorded even if ctx was
	// cancelled mid-batch, otherwise they would be published again.
	if err := i.committer.Apply(context.WithoutCancel(ctx), plan); err != nil {
		return result, fmt.Errorf("failed to record publish results: %w", err)
	}
	return result, nil
}
