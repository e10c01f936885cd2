package get_report

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/salesgrowth-service/internal/app/growth/contracts"
	"github.com/light-bringer/salesgrowth-service/internal/app/growth/domain"
)

type fakeReadModel struct {
	reports map[string]*contracts.ReportDTO
}

func (f *fakeReadModel) GetReportByID(_ context.Context, id string) (*contracts.ReportDTO, error) {
	if r, ok := f.reports[id]; ok {
		return r, nil
	}
	return nil, domain.ErrReportNotFound
}

func (f *fakeReadModel) ListReports(context.Context, *contracts.ListFilter) (*contracts.ListResult, error) {
	return &contracts.ListResult{}, nil
}

func TestQuery_Execute(t *testing.T) {
	rm := &fakeReadModel{reports: map[string]*contracts.ReportDTO{
		"r-1": {ReportSummaryDTO: contracts.ReportSummaryDTO{ReportID: "r-1"}, Document: `{"PRODUCT":[],"BRAND":[]}`},
	}}
	q := NewQuery(rm)

	got, err := q.Execute(context.Background(), &Request{ReportID: "r-1"})
	require.NoError(t, err)
	assert.Equal(t, "r-1", got.ReportID)

	_, err = q.Execute(context.Background(), &Request{ReportID: "missing"})
	assert.ErrorIs(t, err, domain.ErrReportNotFound)

	_, err = q.Execute(context.Background(), &Request{ReportID: "  "})
	assert.ErrorIs(t, err, domain.ErrEmptyReportID)
}
