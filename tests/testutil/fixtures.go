package testutil

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/salesgrowth-service/internal/app/growth/domain"
	"github.com/light-bringer/salesgrowth-service/internal/app/growth/repo"
	"github.com/light-bringer/salesgrowth-service/internal/models/m_outbox"
	"github.com/light-bringer/salesgrowth-service/internal/pkg/blob"
)

// ProductHeader and BrandHeader are the input CSV headers.
const (
	ProductHeader = "barcode_no,product_name,week_commencing_date,period_name,period_id,gross_sales,units_sold"
	BrandHeader   = "brand_id,brand,week_commencing_date,period_name,period_id,gross_sales,units_sold"
)

// WriteCSV writes header and rows to name under dir and returns the path.
func WriteCSV(t *testing.T, dir, name, header string, rows ...string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	content := header + "\n" + strings.Join(rows, "\n")
	if len(rows) > 0 {
		content += "\n"
	}
	require.NoError(t, blob.NewLocalStore().Write(context.Background(), path, []byte(content)))
	return path
}

// NewTestReport builds a report with one product row for week.
func NewTestReport(t *testing.T, week time.Time) *domain.Report {
	t.Helper()

	growth := 20.0
	report, err := domain.NewReport(
		uuid.New().String(),
		ReportTime,
		domain.Sources{ProductURI: "product.csv", BrandURI: "brand.csv"},
		domain.EntityResult{
			Entity: domain.ProductEntity(),
			Rows: []domain.GrowthRecord{{
				JoinedRecord: domain.JoinedRecord{
					Keys:              []string{"111", "Widget"},
					Marker:            domain.PeriodCurrent,
					PeriodID:          2,
					CurrentWeekStart:  week,
					PreviousWeekStart: domain.AlignISOWeek.Shift(week, -1),
					GrossSales:        120,
					PrevGrossSales:    100,
				},
				GrossSalesGrowth: &growth,
			}},
		},
		domain.EntityResult{Entity: domain.BrandEntity()},
	)
	require.NoError(t, err)
	return report
}

// InsertReport stores report directly, without outbox events.
func InsertReport(t *testing.T, client *spanner.Client, report *domain.Report) {
	t.Helper()

	mut, err := repo.NewReportRepo(client).InsertMut(report)
	require.NoError(t, err)
	_, err = client.Apply(context.Background(), []*spanner.Mutation{mut})
	require.NoError(t, err, "failed to insert test report")
}

// InsertOutboxEvent stores an outbox row with the given status and returns
// its id.
func InsertOutboxEvent(t *testing.T, client *spanner.Client, status string, retryCount int64) string {
	t.Helper()

	eventID := uuid.New().String()
	data := &m_outbox.Data{
		EventID:     eventID,
		EventType:   "report.generated",
		AggregateID: uuid.New().String(),
		Payload:     spanner.NullJSON{Value: map[string]interface{}{"report_id": "x"}, Valid: true},
		Status:      status,
		RetryCount:  retryCount,
	}

	_, err := client.Apply(context.Background(), []*spanner.Mutation{m_outbox.NewModel().InsertMut(data)})
	require.NoError(t, err, "failed to insert %s outbox event", status)
	return eventID
}
