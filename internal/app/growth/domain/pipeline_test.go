package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func salesRow(keys []string, week time.Time, marker PeriodMarker, periodID int32, gross float64, units int32) SalesRecord {
	return SalesRecord{
		Keys:       keys,
		WeekStart:  week,
		Marker:     marker,
		PeriodID:   periodID,
		GrossSales: gross,
		UnitsSold:  units,
	}
}

func TestPipeline_EndToEnd(t *testing.T) {
	widget := []string{"5012345678900", "Widget"}
	records := []SalesRecord{
		salesRow(widget, Date(2024, time.July, 1), PeriodCurrent, 2, 120, 19),
		salesRow(widget, Date(2023, time.July, 3), PeriodPrevious, 1, 100, 19),
	}

	out, err := NewPipeline(ProductEntity()).Run(records)
	require.NoError(t, err)
	require.Len(t, out, 1)

	rec := out[0]
	assert.Equal(t, "01/07/2024", rec.CurrentWeekCommencingDate)
	assert.Equal(t, "03/07/2023", rec.PreviousWeekCommencingDate)
	require.NotNil(t, rec.GrossSalesGrowth)
	require.NotNil(t, rec.UnitSalesGrowth)
	assert.Equal(t, 20.0, *rec.GrossSalesGrowth)
	assert.Equal(t, 0.0, *rec.UnitSalesGrowth)

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t,
		`{"barcode_no":"5012345678900","product_name":"Widget",`+
			`"current_week_commencing_date":"01/07/2024","previous_week_commencing_date":"03/07/2023",`+
			`"perc_gross_sales_growth":20.0,"perc_unit_sales_growth":0.0}`,
		string(data))
}

func TestPipeline_JoinCompleteness(t *testing.T) {
	records := []SalesRecord{
		salesRow([]string{"1", "Apple"}, Date(2024, time.July, 1), PeriodCurrent, 2, 50, 5),
	}

	rows, err := NewPipeline(ProductEntity()).Compute(records)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, 0.0, row.PrevGrossSales)
	assert.Equal(t, int32(0), row.PrevUnitsSold)
	assert.Nil(t, row.GrossSalesGrowth)
	assert.Nil(t, row.UnitSalesGrowth)
	assert.True(t, row.CurrentMatched)
	assert.False(t, row.PreviousMatched)
	assert.Equal(t, Date(2023, time.July, 3), row.PreviousWeekStart)
}

func TestPipeline_PreviousOnlyRow(t *testing.T) {
	records := []SalesRecord{
		salesRow([]string{"1", "Apple"}, Date(2023, time.July, 3), PeriodPrevious, 1, 100, 19),
	}

	rows, err := NewPipeline(ProductEntity()).Compute(records)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, PeriodCurrent, row.Marker)
	assert.Equal(t, DefaultCurrentPeriodID, row.PeriodID)
	assert.Equal(t, Date(2024, time.July, 1), row.CurrentWeekStart)
	assert.Equal(t, 0.0, row.GrossSales)
	assert.False(t, row.CurrentMatched)
	assert.True(t, row.PreviousMatched)
	require.NotNil(t, row.GrossSalesGrowth)
	assert.Equal(t, -100.0, *row.GrossSalesGrowth)
	require.NotNil(t, row.UnitSalesGrowth)
	assert.Equal(t, -100.0, *row.UnitSalesGrowth)
}

func TestPipeline_DuplicateKeysCrossProduct(t *testing.T) {
	k := []string{"1", "Apple"}
	records := []SalesRecord{
		salesRow(k, Date(2024, time.July, 1), PeriodCurrent, 2, 120, 10),
		salesRow(k, Date(2024, time.July, 1), PeriodCurrent, 2, 130, 10),
		salesRow(k, Date(2023, time.July, 3), PeriodPrevious, 1, 100, 10),
		salesRow(k, Date(2023, time.July, 3), PeriodPrevious, 1, 50, 10),
	}

	rows, err := NewPipeline(ProductEntity()).Compute(records)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	var growth []float64
	for _, row := range rows {
		require.NotNil(t, row.GrossSalesGrowth)
		growth = append(growth, *row.GrossSalesGrowth)
	}
	assert.Equal(t, []float64{20, 140, 30, 160}, growth)
}

func TestPipeline_CalendarAlignment(t *testing.T) {
	k := []string{"1", "Apple"}
	records := []SalesRecord{
		salesRow(k, Date(2024, time.July, 1), PeriodCurrent, 2, 120, 19),
		salesRow(k, Date(2023, time.July, 1), PeriodPrevious, 1, 100, 19),
	}

	out, err := NewPipeline(ProductEntity(), WithAlignment(AlignCalendarDate)).Run(records)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "01/07/2023", out[0].PreviousWeekCommencingDate)
	assert.Equal(t, 20.0, *out[0].GrossSalesGrowth)

	// The same dates do not pair up by ISO week.
	out, err = NewPipeline(ProductEntity()).Run(records)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestPipeline_CurrentPeriodID(t *testing.T) {
	k := []string{"1", "Apple"}
	records := []SalesRecord{
		salesRow(k, Date(2024, time.July, 1), PeriodCurrent, 7, 120, 19),
		salesRow(k, Date(2023, time.July, 3), PeriodPrevious, 6, 100, 19),
	}

	t.Run("default id leaves rows unmatched", func(t *testing.T) {
		rows, err := NewPipeline(ProductEntity()).Compute(records)
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("configured id matches", func(t *testing.T) {
		rows, err := NewPipeline(ProductEntity(), WithCurrentPeriodID(7)).Compute(records)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, 20.0, *rows[0].GrossSalesGrowth)
	})

	t.Run("non-positive id keeps default", func(t *testing.T) {
		p := NewPipeline(ProductEntity(), WithCurrentPeriodID(0))
		assert.Equal(t, DefaultCurrentPeriodID, p.currentPeriodID)
	})
}

func TestPipeline_EmptyInput(t *testing.T) {
	out, err := NewPipeline(BrandEntity()).Run(nil)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestPipeline_InvalidRecords(t *testing.T) {
	valid := salesRow([]string{"1", "Apple"}, Date(2024, time.July, 1), PeriodCurrent, 2, 1, 1)

	t.Run("negative sales", func(t *testing.T) {
		bad := valid
		bad.GrossSales = -1
		bad.SourceRow = 4

		_, err := NewPipeline(ProductEntity()).Run([]SalesRecord{valid, bad})
		assert.ErrorIs(t, err, ErrNegativeValue)
		assert.Contains(t, err.Error(), "entity PRODUCT: row 4")
	})

	t.Run("unknown marker", func(t *testing.T) {
		bad := valid
		bad.Marker = "next"

		_, err := NewPipeline(ProductEntity()).Run([]SalesRecord{bad})
		assert.ErrorIs(t, err, ErrUnknownPeriodMarker)
	})

	t.Run("wrong key count", func(t *testing.T) {
		bad := valid
		bad.Keys = []string{"1"}

		_, err := NewPipeline(ProductEntity()).Run([]SalesRecord{bad})
		assert.ErrorIs(t, err, ErrKeyArity)
	})

	t.Run("missing date", func(t *testing.T) {
		bad := valid
		bad.WeekStart = time.Time{}

		_, err := NewPipeline(ProductEntity()).Run([]SalesRecord{bad})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}
