package m_report

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the growth_reports table.
type Data struct {
	ReportID      string           `spanner:"report_id"`
	ProductRows   int64            `spanner:"product_rows"`
	BrandRows     int64            `spanner:"brand_rows"`
	FirstWeek     spanner.NullDate `spanner:"first_week"`
	LastWeek      spanner.NullDate `spanner:"last_week"`
	ProductSource string           `spanner:"product_source"`
	BrandSource   string           `spanner:"brand_source"`
	Document      string           `spanner:"document"` // JSON text, key order preserved
	GeneratedAt   time.Time        `spanner:"generated_at"`
	CreatedAt     time.Time        `spanner:"created_at"`
}

// Summary is Data without the document column.
type Summary struct {
	ReportID      string           `spanner:"report_id"`
	ProductRows   int64            `spanner:"product_rows"`
	BrandRows     int64            `spanner:"brand_rows"`
	FirstWeek     spanner.NullDate `spanner:"first_week"`
	LastWeek      spanner.NullDate `spanner:"last_week"`
	ProductSource string           `spanner:"product_source"`
	BrandSource   string           `spanner:"brand_source"`
	GeneratedAt   time.Time        `spanner:"generated_at"`
	CreatedAt     time.Time        `spanner:"created_at"`
}
