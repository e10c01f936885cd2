package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriodMarker(t *testing.T) {
	t.Run("case insensitive", func(t *testing.T) {
		m, err := ParsePeriodMarker("CURRENT")
		require.NoError(t, err)
		assert.Equal(t, PeriodCurrent, m)

		m, err = ParsePeriodMarker(" Previous ")
		require.NoError(t, err)
		assert.Equal(t, PeriodPrevious, m)
	})

	t.Run("unknown marker", func(t *testing.T) {
		_, err := ParsePeriodMarker("next")
		assert.ErrorIs(t, err, ErrUnknownPeriodMarker)
	})
}

func TestShiftYears(t *testing.T) {
	t.Run("same month and day", func(t *testing.T) {
		d := Date(2024, time.July, 1)
		prev := ShiftYears(d, -1)
		assert.Equal(t, Date(2023, time.July, 1), prev)
		assert.Equal(t, d, ShiftYears(prev, 1))
	})

	t.Run("29 February clamps to 28 February", func(t *testing.T) {
		prev := ShiftYears(Date(2024, time.February, 29), -1)
		assert.Equal(t, Date(2023, time.February, 28), prev)

		// No exact round trip for a leap day.
		assert.Equal(t, Date(2024, time.February, 28), ShiftYears(prev, 1))
	})

	t.Run("leap day to leap day", func(t *testing.T) {
		assert.Equal(t, Date(2020, time.February, 29), ShiftYears(Date(2024, time.February, 29), -4))
	})
}

func TestShiftISOWeekYears(t *testing.T) {
	t.Run("monday of week 27", func(t *testing.T) {
		prev := ShiftISOWeekYears(Date(2024, time.July, 1), -1)
		assert.Equal(t, Date(2023, time.July, 3), prev)
		assert.Equal(t, time.Monday, prev.Weekday())
		assert.Equal(t, Date(2024, time.July, 1), ShiftISOWeekYears(prev, 1))
	})

	t.Run("keeps the weekday", func(t *testing.T) {
		for _, d := range []time.Time{
			Date(2024, time.January, 1),
			Date(2024, time.March, 13),
			Date(2023, time.October, 29),
			Date(2021, time.January, 10),
		} {
			shifted := ShiftISOWeekYears(d, -1)
			assert.Equal(t, d.Weekday(), shifted.Weekday(), d.String())

			_, w1 := d.ISOWeek()
			_, w2 := shifted.ISOWeek()
			assert.Equal(t, w1, w2, d.String())
		}
	})

	t.Run("leap day", func(t *testing.T) {
		assert.Equal(t, Date(2023, time.March, 2), ShiftISOWeekYears(Date(2024, time.February, 29), -1))
	})

	t.Run("week 53 falls back to week 52", func(t *testing.T) {
		d := Date(2020, time.December, 31)
		_, week := d.ISOWeek()
		require.Equal(t, 53, week)

		prev := ShiftISOWeekYears(d, -1)
		assert.Equal(t, Date(2019, time.December, 26), prev)

		// No exact round trip from week 53.
		assert.Equal(t, Date(2020, time.December, 24), ShiftISOWeekYears(prev, 1))
	})
}

func TestParseAlignmentMode(t *testing.T) {
	tests := []struct {
		raw  string
		want AlignmentMode
	}{
		{"", AlignISOWeek},
		{"iso-week", AlignISOWeek},
		{"Calendar", AlignCalendarDate},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseAlignmentMode(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseAlignmentMode("fiscal")
	assert.ErrorIs(t, err, ErrUnknownAlignment)
}

func TestAlignmentMode_Shift(t *testing.T) {
	d := Date(2024, time.July, 1)
	assert.Equal(t, Date(2023, time.July, 3), AlignISOWeek.Shift(d, -1))
	assert.Equal(t, Date(2023, time.July, 1), AlignCalendarDate.Shift(d, -1))
}

func TestParseCurrentPeriodID(t *testing.T) {
	tests := []struct {
		raw  string
		want int32
	}{
		{"", DefaultCurrentPeriodID},
		{" 5 ", 5},
		{"2147483647", 2147483647},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseCurrentPeriodID(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"4294967298", "2147483648", "0", "-1", "two", "2.5"} {
		_, err := ParseCurrentPeriodID(bad)
		assert.ErrorIs(t, err, ErrInvalidNumber, bad)
	}
}
