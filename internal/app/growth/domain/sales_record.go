package domain

import (
	"fmt"
	"time"
)

// SalesRecord is one row of raw weekly sales input.
type SalesRecord struct {
	Keys       []string // identifier values, ordered as EntityConfig.IdentifierColumns
	WeekStart  time.Time
	Marker     PeriodMarker
	PeriodID   int32
	GrossSales float64
	UnitsSold  int32
	SourceRow  int // 1-based data row in the input file, 0 when not file-backed
}

// Validate checks the record against the entity configuration.
func (r SalesRecord) Validate(entity EntityConfig) error {
	if len(r.Keys) != len(entity.identifierColumns) {
		return fmt.Errorf("%w: got %d, want %d", ErrKeyArity, len(r.Keys), len(entity.identifierColumns))
	}
	if !r.Marker.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPeriodMarker, r.Marker)
	}
	if r.GrossSales < 0 || r.UnitsSold < 0 {
		return ErrNegativeValue
	}
	if r.WeekStart.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// rowError annotates err with the record's source row when it has one.
func (r SalesRecord) rowError(err error) error {
	if r.SourceRow > 0 {
		return fmt.Errorf("row %d: %w", r.SourceRow, err)
	}
	return err
}

// SplitPeriods returns the previous-period subset alongside the full,
// unmodified input. Current rows are not split out here: they are recovered
// after the join by filtering on the marker.
func SplitPeriods(records []SalesRecord) (previous []SalesRecord, all []SalesRecord, err error) {
	previous = make([]SalesRecord, 0)
	for _, rec := range records {
		switch rec.Marker {
		case PeriodPrevious:
			previous = append(previous, rec)
		case PeriodCurrent:
		default:
			return nil, nil, rec.rowError(fmt.Errorf("%w: %q", ErrUnknownPeriodMarker, rec.Marker))
		}
	}
	return previous, records, nil
}
