package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_MarshalJSON(t *testing.T) {
	t.Run("empty document keeps both keys", func(t *testing.T) {
		data, err := json.Marshal(Document{})
		require.NoError(t, err)
		assert.Equal(t, `{"PRODUCT":[],"BRAND":[]}`, string(data))
	})

	t.Run("sections are arrays", func(t *testing.T) {
		doc := Document{
			Brand: Format(BrandEntity(), []GrowthRecord{
				growthRow([]string{"1", "Acme"}, Date(2024, time.July, 1), nil, nil),
			}),
		}

		data, err := json.Marshal(doc)
		require.NoError(t, err)

		var decoded map[string][]map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Len(t, decoded, 2)
		assert.Empty(t, decoded["PRODUCT"])
		require.Len(t, decoded["BRAND"], 1)
		assert.Nil(t, decoded["BRAND"][0][ColPercGrossSalesGrowth])
		assert.Contains(t, decoded["BRAND"][0], ColPercGrossSalesGrowth)
		assert.Equal(t, "Acme", decoded["BRAND"][0]["brand_name"])
	})
}

func TestDocument_Section(t *testing.T) {
	doc := Document{
		Product: []OutputRecord{{CurrentWeekCommencingDate: "p"}},
		Brand:   []OutputRecord{{CurrentWeekCommencingDate: "b"}},
	}
	assert.Equal(t, "p", doc.Section(EntityProduct)[0].CurrentWeekCommencingDate)
	assert.Equal(t, "b", doc.Section(EntityBrand)[0].CurrentWeekCommencingDate)
}

func TestNewReport(t *testing.T) {
	generatedAt := time.Date(2024, time.July, 10, 9, 0, 0, 0, time.UTC)
	sources := Sources{ProductURI: "product.csv", BrandURI: "s3://bucket/brand.csv"}

	product := EntityResult{Entity: ProductEntity(), Rows: []GrowthRecord{
		growthRow([]string{"1", "Apple"}, Date(2024, time.July, 8), pct(20), pct(0)),
		growthRow([]string{"1", "Apple"}, Date(2024, time.July, 1), pct(10), nil),
	}}
	brand := EntityResult{Entity: BrandEntity(), Rows: []GrowthRecord{
		growthRow([]string{"4", "Acme"}, Date(2024, time.June, 24), nil, nil),
	}}

	t.Run("builds both sections", func(t *testing.T) {
		r, err := NewReport("r-1", generatedAt, sources, product, brand)
		require.NoError(t, err)

		assert.Equal(t, "r-1", r.ID())
		assert.Equal(t, generatedAt, r.GeneratedAt())
		assert.Equal(t, sources, r.Sources())
		assert.Equal(t, 2, r.ProductRows())
		assert.Equal(t, 1, r.BrandRows())
		assert.Equal(t, "01/07/2024", r.Document().Product[0].CurrentWeekCommencingDate)

		first, last := r.WeekRange()
		assert.Equal(t, Date(2024, time.June, 24), first)
		assert.Equal(t, Date(2024, time.July, 8), last)
	})

	t.Run("records generated event", func(t *testing.T) {
		r, err := NewReport("r-1", generatedAt, sources, product, brand)
		require.NoError(t, err)

		events := r.DomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, "report.generated", events[0].EventType())
		assert.Equal(t, "r-1", events[0].AggregateID())

		ev, ok := events[0].(*ReportGeneratedEvent)
		require.True(t, ok)
		assert.Equal(t, 2, ev.ProductRows)
		assert.Equal(t, 1, ev.BrandRows)
		assert.Equal(t, Date(2024, time.June, 24), ev.FirstWeek)
	})

	t.Run("empty id", func(t *testing.T) {
		_, err := NewReport("", generatedAt, sources, product, brand)
		assert.ErrorIs(t, err, ErrEmptyReportID)
	})

	t.Run("empty report", func(t *testing.T) {
		r, err := NewReport("r-2", generatedAt, sources, EntityResult{Entity: ProductEntity()}, EntityResult{Entity: BrandEntity()})
		require.NoError(t, err)

		first, last := r.WeekRange()
		assert.True(t, first.IsZero())
		assert.True(t, last.IsZero())

		data, err := r.MarshalIndent()
		require.NoError(t, err)
		assert.Equal(t, "{\n    \"PRODUCT\": [],\n    \"BRAND\": []\n}", string(data))
	})

	t.Run("indented output keeps one decimal", func(t *testing.T) {
		r, err := NewReport("r-3", generatedAt, sources, product, brand)
		require.NoError(t, err)

		data, err := r.MarshalIndent()
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(data), `"perc_gross_sales_growth": 20.0`))
		assert.True(t, strings.Contains(string(data), "\n        {\n            \"barcode_no\": \"1\""))
	})
}
