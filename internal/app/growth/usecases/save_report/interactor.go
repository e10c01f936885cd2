package save_report

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/light-bringer/salesgrowth-service/internal/app/growth/contracts"
	"github.com/light-bringer/salesgrowth-service/internal/app/growth/domain"
	"github.com/light-bringer/salesgrowth-service/internal/pkg/committer"
)

// Interactor handles the save report use case.
type Interactor struct {
	repo       contracts.ReportRepository
	outboxRepo contracts.OutboxRepository
	committer  committer.Applier
}

// NewInteractor creates a new save report interactor.
func NewInteractor(
	repo contracts.ReportRepository,
	outboxRepo contracts.OutboxRepository,
	committer committer.Applier,
) *Interactor {
	return &Interactor{
		repo:       repo,
		outboxRepo: outboxRepo,
		committer:  committer,
	}
}

// Execute stores the report and its events in one commit.
func (i *Interactor) Execute(ctx context.Context, report *domain.Report) error {
	if report == nil || report.ID() == "" {
		return domain.ErrEmptyReportID
	}

	plan := committer.NewPlan()

	mut, err := i.repo.InsertMut(report)
	if err != nil {
		return fmt.Errorf("failed to build report mutation: %w", err)
	}
	plan.Add(mut)

	for _, event := range report.DomainEvents() {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to serialize event: %w", err)
		}
		plan.Add(i.outboxRepo.InsertMut(i.outboxRepo.EnrichEvent(event, string(payload))))
	}

	if err := i.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
