package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/salesgrowth-service/internal/app/growth/contracts"
	"github.com/light-bringer/salesgrowth-service/internal/app/growth/domain"
	"github.com/light-bringer/salesgrowth-service/internal/models/m_report"
	"github.com/light-bringer/salesgrowth-service/internal/pkg/query"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// ReadModelImpl implements ReadModel for Spanner.
type ReadModelImpl struct {
	client *spanner.Client
}

// NewReadModel creates a new ReadModel implementation.
func NewReadModel(client *spanner.Client) contracts.ReadModel {
	return &ReadModelImpl{
		client: client,
	}
}

// GetReportByID retrieves a stored report with its document.
func (rm *ReadModelImpl) GetReportByID(ctx context.Context, reportID string) (*contracts.ReportDTO, error) {
	columns := append(append([]string(nil), m_report.SummaryColumns...), m_report.Document)

	row, err := rm.client.Single().ReadRow(ctx, m_report.TableName, spanner.Key{reportID}, columns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	var data m_report.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &contracts.ReportDTO{
		ReportSummaryDTO: *summaryToDTO(&m_report.Summary{
			ReportID:      data.ReportID,
			ProductRows:   data.ProductRows,
			BrandRows:     data.BrandRows,
			FirstWeek:     data.FirstWeek,
			LastWeek:      data.LastWeek,
			ProductSource: data.ProductSource,
			BrandSource:   data.BrandSource,
			GeneratedAt:   data.GeneratedAt,
			CreatedAt:     data.CreatedAt,
		}),
		Document: data.Document,
	}, nil
}

// ListQuery builds the report listing statement for filter.
func ListQuery(filter *contracts.ListFilter) *query.Builder {
	b := query.From(m_report.TableName).Select(m_report.SummaryColumns...)

	if filter.CoversWeek != nil {
		week := civil.DateOf(*filter.CoversWeek)
		b = b.Where(query.Lte(m_report.FirstWeek, week)).
			Where(query.Gte(m_report.LastWeek, week))
	}

	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return b.OrderBy(m_report.CreatedAt, query.Desc).
		OrderBy(m_report.ReportID, query.Asc).
		Limit(int64(pageSize))
}

// ListReports retrieves report summaries, newest first.
func (rm *ReadModelImpl) ListReports(ctx context.Context, filter *contracts.ListFilter) (*contracts.ListResult, error) {
	builder := ListQuery(filter)

	txn := rm.client.ReadOnlyTransaction()
	defer txn.Close()

	iter := txn.Query(ctx, builder.Build())
	defer iter.Stop()

	reports := make([]*contracts.ReportSummaryDTO, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate reports: %w", err)
		}

		var data m_report.Summary
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse report: %w", err)
		}
		reports = append(reports, summaryToDTO(&data))
	}

	countIter := txn.Query(ctx, builder.Count().Build())
	defer countIter.Stop()

	row, err := countIter.Next()
	if err != nil {
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}
	var total int64
	if err := row.Columns(&total); err != nil {
		return nil, fmt.Errorf("failed to parse count: %w", err)
	}

	return &contracts.ListResult{
		Reports:    reports,
		TotalCount: total,
	}, nil
}

func summaryToDTO(data *m_report.Summary) *contracts.ReportSummaryDTO {
	return &contracts.ReportSummaryDTO{
		ReportID:      data.ReportID,
		ProductRows:   data.ProductRows,
		BrandRows:     data.BrandRows,
		FirstWeek:     m_report.FromNullDate(data.FirstWeek),
		LastWeek:      m_report.FromNullDate(data.LastWeek),
		ProductSource: data.ProductSource,
		BrandSource:   data.BrandSource,
		GeneratedAt:   data.GeneratedAt,
		CreatedAt:     data.CreatedAt,
	}
}
