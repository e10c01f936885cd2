package m_report

// Field name constants for the growth_reports table.
const (
	TableName = "growth_reports"

	ReportID      = "report_id"
	ProductRows   = "product_rows"
	BrandRows     = "brand_rows"
	FirstWeek     = "first_week"
	LastWeek      = "last_week"
	ProductSource = "product_source"
	BrandSource   = "brand_source"
	Document      = "document"
	GeneratedAt   = "generated_at"
	CreatedAt     = "created_at"
)

// SummaryColumns lists every column except the document.
var SummaryColumns = []string{
	ReportID,
	ProductRows,
	BrandRows,
	FirstWeek,
	LastWeek,
	ProductSource,
	BrandSource,
	GeneratedAt,
	CreatedAt,
}
