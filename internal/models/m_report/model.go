package m_report

import (
	"time"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the growth_reports table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting a report. Reports are
// immutable once written.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		[]string{
			ReportID,
			ProductRows,
			BrandRows,
			FirstWeek,
			LastWeek,
			ProductSource,
			BrandSource,
			Document,
			GeneratedAt,
			CreatedAt,
		},
		[]interface{}{
			data.ReportID,
			data.ProductRows,
			data.BrandRows,
			data.FirstWeek,
			data.LastWeek,
			data.ProductSource,
			data.BrandSource,
			data.Document,
			data.GeneratedAt,
			spanner.CommitTimestamp,
		},
	)
}

// DeleteMut creates a Spanner mutation for deleting a report.
func (m *Model) DeleteMut(reportID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{reportID})
}

// ToNullDate converts a week start into a DATE column value. The zero time
// maps to NULL.
func ToNullDate(t time.Time) spanner.NullDate {
	if t.IsZero() {
		return spanner.NullDate{}
	}
	return spanner.NullDate{Date: civil.DateOf(t), Valid: true}
}

// FromNullDate converts a DATE column value back into a UTC midnight time.
func FromNullDate(d spanner.NullDate) *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Date.In(time.UTC)
	return &t
}
