package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// GrowthPlaces is the number of decimal places growth percentages keep.
const GrowthPlaces = 2

var hundred = decimal.NewFromInt(100)

// GrowthRecord is a joined row with its period-over-period growth. A nil
// percentage means the previous value was not positive.
type GrowthRecord struct {
	JoinedRecord
	GrossSalesGrowth *float64
	UnitSalesGrowth  *float64
}

// PercentGrowth returns ((current - previous) / previous) * 100 rounded to two
// places with round-half-to-even, or nil when previous is not strictly
// positive.
//
// The arithmetic runs on the shortest decimal representation of each input,
// so 100.125 against 100 is exactly 0.125 and rounds to 0.12.
func PercentGrowth(current, previous float64) *float64 {
	if !(previous > 0) || math.IsInf(previous, 0) || math.IsNaN(current) || math.IsInf(current, 0) {
		return nil
	}
	return percent(decimal.NewFromFloat(current), decimal.NewFromFloat(previous))
}

// PercentGrowthUnits is PercentGrowth for unit counts.
func PercentGrowthUnits(current, previous int32) *float64 {
	if previous <= 0 {
		return nil
	}
	return percent(decimal.NewFromInt32(current), decimal.NewFromInt32(previous))
}

func percent(current, previous decimal.Decimal) *float64 {
	// Multiply before dividing so that whole-number results stay exact.
	growth := current.Sub(previous).Mul(hundred).Div(previous).RoundBank(GrowthPlaces)
	f, _ := growth.Float64()
	return &f
}

// CalculateGrowth derives both growth percentages for every joined row.
func CalculateGrowth(rows []JoinedRecord) []GrowthRecord {
	out := make([]GrowthRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, GrowthRecord{
			JoinedRecord:     row,
			GrossSalesGrowth: PercentGrowth(row.GrossSales, row.PrevGrossSales),
			UnitSalesGrowth:  PercentGrowthUnits(row.UnitsSold, row.PrevUnitsSold),
		})
	}
	return out
}
