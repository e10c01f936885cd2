package contracts

import (
	"context"
	"time"
)

// ReportSummaryDTO describes a stored report without its document.
type ReportSummaryDTO struct {
	ReportID      string
	ProductRows   int64
	BrandRows     int64
	FirstWeek     *time.Time
	LastWeek      *time.Time
	ProductSource string
	BrandSource   string
	GeneratedAt   time.Time
	CreatedAt     time.Time
}

// ReportDTO is a stored report with its published JSON document.
type ReportDTO struct {
	ReportSummaryDTO
	Document string
}

// ListFilter defines filtering options for listing reports.
type ListFilter struct {
	// CoversWeek keeps reports whose week range includes the given date.
	CoversWeek *time.Time
	PageSize   int
}

// ListResult contains report list results, newest first.
type ListResult struct {
	Reports    []*ReportSummaryDTO
	TotalCount int64
}

// ReadModel defines the interface for report queries.
type ReadModel interface {
	GetReportByID(ctx context.Context, reportID string) (*ReportDTO, error)
	ListReports(ctx context.Context, filter *ListFilter) (*ListResult, error)
}
