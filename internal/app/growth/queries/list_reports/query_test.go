package list_reports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/salesgrowth-service/internal/app/growth/contracts"
)

type fakeReadModel struct {
	gotFilter *contracts.ListFilter
}

func (f *fakeReadModel) GetReportByID(context.Context, string) (*contracts.ReportDTO, error) {
	return nil, nil
}

func (f *fakeReadModel) ListReports(_ context.Context, filter *contracts.ListFilter) (*contracts.ListResult, error) {
	f.gotFilter = filter
	return &contracts.ListResult{
		Reports:    []*contracts.ReportSummaryDTO{{ReportID: "r-2"}, {ReportID: "r-1"}},
		TotalCount: 2,
	}, nil
}

func TestQuery_Execute(t *testing.T) {
	rm := &fakeReadModel{}

	result, err := NewQuery(rm).Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, rm.gotFilter)
	assert.Equal(t, int64(2), result.TotalCount)
	assert.Equal(t, "r-2", result.Reports[0].ReportID)

	_, err = NewQuery(rm).Execute(context.Background(), &contracts.ListFilter{PageSize: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, rm.gotFilter.PageSize)
}
