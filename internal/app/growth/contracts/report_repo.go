package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/salesgrowth-service/internal/app/growth/domain"
)

// ReportRepository defines the interface for report persistence.
// Repositories return mutations, they don't apply them.
type ReportRepository interface {
	// InsertMut creates a mutation for inserting a generated report.
	InsertMut(report *domain.Report) (*spanner.Mutation, error)

	// Exists checks if a report exists
	Exists(ctx context.Context, reportID string) (bool, error)
}
