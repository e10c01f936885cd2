package source

import (
	"fmt"
	"strings"
	"time"

	"github.com/light-bringer/salesgrowth-service/internal/app/growth/domain"
)

// DateOrder resolves ambiguous numeric dates such as 03/07/2023.
type DateOrder int

const (
	DayFirst DateOrder = iota
	MonthFirst
)

// ParseDateOrder accepts "day-first" or "month-first". An empty string selects
// DayFirst.
func ParseDateOrder(raw string) (DateOrder, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "day-first", "dayfirst", "dmy":
		return DayFirst, nil
	case "month-first", "monthfirst", "mdy":
		return MonthFirst, nil
	default:
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownDateOrder, raw)
	}
}

func (o DateOrder) String() string {
	if o == MonthFirst {
		return "month-first"
	}
	return "day-first"
}

var (
	dayFirstLayouts   = []string{"2/1/2006", "2-1-2006", "2.1.2006"}
	monthFirstLayouts = []string{"1/2/2006", "1-2-2006"}

	// Year-first dates are never ambiguous.
	isoLayouts = []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339}
)

// ParseDate parses a week commencing date and truncates it to UTC midnight.
func (o DateOrder) ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)

	layouts := dayFirstLayouts
	if o == MonthFirst {
		layouts = monthFirstLayouts
	}

	for _, group := range [][]string{isoLayouts, layouts} {
		for _, layout := range group {
			if t, err := time.Parse(layout, raw); err == nil {
				return domain.Date(t.Year(), t.Month(), t.Day()), nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, raw)
}
