package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/salesgrowth-service/internal/app/growth/contracts"
	"github.com/light-bringer/salesgrowth-service/internal/app/growth/domain"
	"github.com/light-bringer/salesgrowth-service/internal/models/m_report"
)

// ReportRepo implements ReportRepository for Spanner.
type ReportRepo struct {
	client *spanner.Client
	model  *m_report.Model
}

// NewReportRepo creates a new ReportRepo.
func NewReportRepo(client *spanner.Client) contracts.ReportRepository {
	return &ReportRepo{
		client: client,
		model:  m_report.NewModel(),
	}
}

// InsertMut creates a mutation for inserting a report.
func (r *ReportRepo) InsertMut(report *domain.Report) (*spanner.Mutation, error) {
	data, err := ReportToData(report)
	if err != nil {
		return nil, err
	}
	return r.model.InsertMut(data), nil
}

// Exists checks if a report exists.
func (r *ReportRepo) Exists(ctx context.Context, reportID string) (bool, error) {
	_, err := r.client.Single().ReadRow(ctx, m_report.TableName, spanner.Key{reportID}, []string{m_report.ReportID})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to check report existence: %w", err)
	}
	return true, nil
}

// ReportToData converts a domain Report to database Data.
func ReportToData(report *domain.Report) (*m_report.Data, error) {
	doc, err := report.Document().Encode("")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report document: %w", err)
	}

	first, last := report.WeekRange()
	sources := report.Sources()

	return &m_report.Data{
		ReportID:      report.ID(),
		ProductRows:   int64(report.ProductRows()),
		BrandRows:     int64(report.BrandRows()),
		FirstWeek:     m_report.ToNullDate(first),
		LastWeek:      m_report.ToNullDate(last),
		ProductSource: sources.ProductURI,
		BrandSource:   sources.BrandURI,
		Document:      string(doc),
		GeneratedAt:   report.GeneratedAt(),
	}, nil
}
