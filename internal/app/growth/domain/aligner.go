package domain

import "time"

// AlignedRecord is a sales row laid out with both current and previous
// period columns so that the two periods can be joined as peers.
type AlignedRecord struct {
	Keys              []string
	Marker            PeriodMarker
	PeriodID          int32
	CurrentWeekStart  time.Time
	PreviousWeekStart time.Time
	GrossSales        float64
	UnitsSold         int32
	PrevGrossSales    float64
	PrevUnitsSold     int32
}

// AlignPeriods produces the two join inputs.
//
// The current side holds every input row (previous rows included) with
// PreviousWeekStart set one year before its week, as mode defines a year. The previous side holds the
// previous-period rows with their week moved into PreviousWeekStart, their
// values moved into the Prev* columns, CurrentWeekStart set one year later and
// the marker and period id retagged to the current period.
func AlignPeriods(all, previous []SalesRecord, currentPeriodID int32, mode AlignmentMode) (currentSide, previousSide []AlignedRecord) {
	currentSide = make([]AlignedRecord, 0, len(all))
	for _, rec := range all {
		currentSide = append(currentSide, AlignedRecord{
			Keys:              rec.Keys,
			Marker:            rec.Marker,
			PeriodID:          rec.PeriodID,
			CurrentWeekStart:  rec.WeekStart,
			PreviousWeekStart: mode.Shift(rec.WeekStart, -1),
			GrossSales:        rec.GrossSales,
			UnitsSold:         rec.UnitsSold,
		})
	}

	previousSide = make([]AlignedRecord, 0, len(previous))
	for _, rec := range previous {
		previousSide = append(previousSide, AlignedRecord{
			Keys:              rec.Keys,
			Marker:            PeriodCurrent,
			PeriodID:          currentPeriodID,
			CurrentWeekStart:  mode.Shift(rec.WeekStart, 1),
			PreviousWeekStart: rec.WeekStart,
			PrevGrossSales:    rec.GrossSales,
			PrevUnitsSold:     rec.UnitsSold,
		})
	}

	return currentSide, previousSide
}
