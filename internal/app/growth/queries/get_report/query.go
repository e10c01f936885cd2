package get_report

import (
	"context"
	"strings"

	"github.com/light-bringer/salesgrowth-service/internal/app/growth/contracts"
	"github.com/light-bringer/salesgrowth-service/internal/app/growth/domain"
)

// Request contains the report ID to retrieve.
type Request struct {
	ReportID string
}

// Query handles the get report query use case.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new get report query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute retrieves a report by ID.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.ReportDTO, error) {
	if strings.TrimSpace(req.ReportID) == "" {
		return nil, domain.ErrEmptyReportID
	}
	return q.readModel.GetReportByID(ctx, req.ReportID)
}
