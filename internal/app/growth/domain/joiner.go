package domain

import (
	"strconv"
	"strings"
	"time"
)

// JoinedRecord is the result of outer-joining the current and previous sides.
// Sales values missing on either side are zero.
type JoinedRecord struct {
	Keys              []string
	Marker            PeriodMarker
	PeriodID          int32
	CurrentWeekStart  time.Time
	PreviousWeekStart time.Time
	GrossSales        float64
	UnitsSold         int32
	PrevGrossSales    float64
	PrevUnitsSold     int32

	// CurrentMatched and PreviousMatched record which sides contributed to
	// the row. Zero-filled values look identical to genuine zero sales, these
	// flags are the only way to tell them apart. They are not serialised.
	CurrentMatched  bool
	PreviousMatched bool
}

// joinKey is the composite equality key: identifiers, marker, period id and
// both week dates.
func joinKey(r AlignedRecord) string {
	var b strings.Builder
	for _, k := range r.Keys {
		b.WriteString(k)
		b.WriteByte(0x1f)
	}
	b.WriteString(string(r.Marker))
	b.WriteByte(0x1f)
	b.WriteString(strconv.FormatInt(int64(r.PeriodID), 10))
	b.WriteByte(0x1f)
	b.WriteString(r.CurrentWeekStart.Format(time.DateOnly))
	b.WriteByte(0x1f)
	b.WriteString(r.PreviousWeekStart.Format(time.DateOnly))
	return b.String()
}

// OuterJoin performs a full outer join of left (current side) and right
// (previous side) on the composite key.
//
// Duplicate keys follow relational semantics: every matching pair produces
// one row. Output order is left rows in input order, each followed by its
// matches in right order, then the unmatched right rows in input order.
func OuterJoin(left, right []AlignedRecord) []JoinedRecord {
	rightByKey := make(map[string][]int, len(right))
	for i, r := range right {
		key := joinKey(r)
		rightByKey[key] = append(rightByKey[key], i)
	}

	matchedRight := make([]bool, len(right))
	joined := make([]JoinedRecord, 0, len(left)+len(right))

	for _, l := range left {
		matches := rightByKey[joinKey(l)]
		if len(matches) == 0 {
			joined = append(joined, fromLeft(l))
			continue
		}
		for _, idx := range matches {
			matchedRight[idx] = true
			row := fromLeft(l)
			row.PrevGrossSales = right[idx].PrevGrossSales
			row.PrevUnitsSold = right[idx].PrevUnitsSold
			row.PreviousMatched = true
			joined = append(joined, row)
		}
	}

	for i, r := range right {
		if matchedRight[i] {
			continue
		}
		joined = append(joined, JoinedRecord{
			Keys:              r.Keys,
			Marker:            r.Marker,
			PeriodID:          r.PeriodID,
			CurrentWeekStart:  r.CurrentWeekStart,
			PreviousWeekStart: r.PreviousWeekStart,
			PrevGrossSales:    r.PrevGrossSales,
			PrevUnitsSold:     r.PrevUnitsSold,
			PreviousMatched:   true,
		})
	}

	return joined
}

func fromLeft(l AlignedRecord) JoinedRecord {
	return JoinedRecord{
		Keys:              l.Keys,
		Marker:            l.Marker,
		PeriodID:          l.PeriodID,
		CurrentWeekStart:  l.CurrentWeekStart,
		PreviousWeekStart: l.PreviousWeekStart,
		GrossSales:        l.GrossSales,
		UnitsSold:         l.UnitsSold,
		CurrentMatched:    true,
	}
}

// FilterCurrent keeps the rows whose marker is current. Original
// previous-period rows never match anything and are dropped here.
func FilterCurrent(rows []JoinedRecord) []JoinedRecord {
	out := make([]JoinedRecord, 0, len(rows))
	for _, row := range rows {
		if row.Marker == PeriodCurrent {
			out = append(out, row)
		}
	}
	return out
}
