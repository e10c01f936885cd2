package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// PeriodMarker tags a sales row as belonging to the current or the previous
// reporting period.
type PeriodMarker string

const (
	PeriodCurrent  PeriodMarker = "current"
	PeriodPrevious PeriodMarker = "previous"
)

// DefaultCurrentPeriodID is the period id carried by current-period rows in the
// reference data. Previous rows are retagged with it before the join.
const DefaultCurrentPeriodID int32 = 2

// ParseCurrentPeriodID parses a configured current period id. An empty string
// selects DefaultCurrentPeriodID; anything that is not a positive 32-bit
// integer is rejected rather than truncated.
func ParseCurrentPeriodID(raw string) (int32, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultCurrentPeriodID, nil
	}
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: current period id %q", ErrInvalidNumber, raw)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%w: current period id must be positive, got %d", ErrInvalidNumber, id)
	}
	return int32(id), nil
}

// ParsePeriodMarker converts a raw period_name value into a PeriodMarker.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParsePeriodMarker(raw string) (PeriodMarker, error) {
	switch PeriodMarker(strings.ToLower(strings.TrimSpace(raw))) {
	case PeriodCurrent:
		return PeriodCurrent, nil
	case PeriodPrevious:
		return PeriodPrevious, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPeriodMarker, raw)
	}
}

// Valid reports whether m is one of the two recognised markers.
func (m PeriodMarker) Valid() bool {
	return m == PeriodCurrent || m == PeriodPrevious
}

// String returns the marker as it appears in input files.
func (m PeriodMarker) String() string {
	return string(m)
}

// ShiftYears moves t by the given number of calendar years, keeping month and
// day. When the day does not exist in the target month (29 February in a
// non-leap year) it is clamped to the last day of that month instead of
// rolling over into the next month.
//
//	ShiftYears(2024-02-29, -1) == 2023-02-28
//	ShiftYears(2023-02-28, +1) == 2024-02-28
func ShiftYears(t time.Time, years int) time.Time {
	year, month, day := t.Date()
	target := year + years

	if last := daysIn(month, target); day > last {
		day = last
	}

	h, m, s := t.Clock()
	return time.Date(target, month, day, h, m, s, t.Nanosecond(), t.Location())
}

// daysIn returns the number of days in month of year.
func daysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ShiftISOWeekYears moves t by the given number of ISO week-numbering years,
// keeping the ISO week number and weekday. Week 53 becomes week 52 when the
// target year has only 52 weeks.
//
//	ShiftISOWeekYears(2024-07-01, -1) == 2023-07-03 (Monday of week 27)
func ShiftISOWeekYears(t time.Time, years int) time.Time {
	year, week := t.ISOWeek()
	target := year + years

	if week > isoWeeksIn(target) {
		week = isoWeeksIn(target)
	}

	weekday := int(t.Weekday()+6) % 7 // Monday == 0
	y, m, d := isoWeekOneMonday(target).AddDate(0, 0, (week-1)*7+weekday).Date()

	h, mi, s := t.Clock()
	return time.Date(y, m, d, h, mi, s, t.Nanosecond(), t.Location())
}

// isoWeekOneMonday returns the Monday of ISO week 1, the week holding 4 January.
func isoWeekOneMonday(year int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	return jan4.AddDate(0, 0, -(int(jan4.Weekday()+6) % 7))
}

// isoWeeksIn returns 52 or 53.
func isoWeeksIn(year int) int {
	_, week := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return week
}

// AlignmentMode selects how a week is matched with its year-ago counterpart.
type AlignmentMode int

const (
	// AlignISOWeek pairs the same ISO week and weekday one year apart, so a
	// Monday always lines up with a Monday. AlignCalendarDate is the mode that
	// matches a pandas DateOffset(years=1) shift.
	AlignISOWeek AlignmentMode = iota
	// AlignCalendarDate pairs the same month and day one year apart.
	AlignCalendarDate
)

// ParseAlignmentMode accepts "iso-week" or "calendar". An empty string selects
// AlignISOWeek.
func ParseAlignmentMode(raw string) (AlignmentMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "iso-week", "week":
		return AlignISOWeek, nil
	case "calendar", "calendar-date":
		return AlignCalendarDate, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlignment, raw)
	}
}

func (a AlignmentMode) String() string {
	if a == AlignCalendarDate {
		return "calendar"
	}
	return "iso-week"
}

// Shift moves t by years according to the mode.
func (a AlignmentMode) Shift(t time.Time, years int) time.Time {
	if a == AlignCalendarDate {
		return ShiftYears(t, years)
	}
	return ShiftISOWeekYears(t, years)
}

// Date builds a UTC midnight timestamp. Week start dates are always stored
// this way so that equality in join keys is exact.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
