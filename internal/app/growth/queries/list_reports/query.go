package list_reports

import (
	"context"

	"github.com/light-bringer/salesgrowth-service/internal/app/growth/contracts"
)

// Query handles the list reports query use case.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new list reports query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute retrieves report summaries, newest first.
func (q *Query) Execute(ctx context.Context, filter *contracts.ListFilter) (*contracts.ListResult, error) {
	if filter == nil {
		filter = &contracts.ListFilter{}
	}
	return q.readModel.ListReports(ctx, filter)
}
