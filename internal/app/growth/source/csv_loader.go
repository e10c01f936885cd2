// Package source reads sales files and writes report documents.
package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/light-bringer/salesgrowth-service/internal/app/growth/domain"
	"github.com/light-bringer/salesgrowth-service/internal/pkg/blob"
	"github.com/light-bringer/salesgrowth-service/internal/pkg/textenc"
)

// Input column names shared by every entity file.
const (
	ColWeekCommencingDate = "week_commencing_date"
	ColPeriodName         = "period_name"
	ColPeriodID           = "period_id"
	ColGrossSales         = "gross_sales"
	ColUnitsSold          = "units_sold"
)

var valueColumns = []string{
	ColWeekCommencingDate,
	ColPeriodName,
	ColPeriodID,
	ColGrossSales,
	ColUnitsSold,
}

// CSVLoader loads sales records from CSV files held in a blob store.
type CSVLoader struct {
	store     blob.Store
	dateOrder DateOrder
}

// NewCSVLoader creates a CSVLoader.
func NewCSVLoader(store blob.Store, dateOrder DateOrder) *CSVLoader {
	return &CSVLoader{
		store:     store,
		dateOrder: dateOrder,
	}
}

// Load reads uri and parses it as a sales file for entity.
func (l *CSVLoader) Load(ctx context.Context, uri string, entity domain.EntityConfig) ([]domain.SalesRecord, error) {
	data, err := l.store.Read(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", uri, err)
	}

	records, err := l.Parse(data, entity)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", uri, err)
	}
	return records, nil
}

// Parse converts raw CSV bytes into sales records. A file with a header and no
// rows yields an empty slice.
func (l *CSVLoader) Parse(data []byte, entity domain.EntityConfig) ([]domain.SalesRecord, error) {
	decoded, _, err := textenc.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("encoding detection failed: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, domain.ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.TrimSpace(h)] = i
	}

	identifiers := entity.IdentifierColumns()
	var missing []string
	for _, col := range append(append([]string(nil), identifiers...), valueColumns...) {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingColumn, strings.Join(missing, ", "))
	}

	records := make([]domain.SalesRecord, 0)
	for row := 1; ; row++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		rec, err := l.parseRow(fields, index, identifiers, entity)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		rec.SourceRow = row
		records = append(records, rec)
	}

	return records, nil
}

func (l *CSVLoader) parseRow(fields []string, index map[string]int, identifiers []string, entity domain.EntityConfig) (domain.SalesRecord, error) {
	cell := func(col string) string {
		return strings.TrimSpace(fields[index[col]])
	}

	keys := make([]string, 0, len(identifiers))
	for _, col := range identifiers {
		key, err := entity.NormalizeIdentifier(col, cell(col))
		if err != nil {
			return domain.SalesRecord{}, err
		}
		keys = append(keys, key)
	}

	week, err := l.dateOrder.ParseDate(cell(ColWeekCommencingDate))
	if err != nil {
		return domain.SalesRecord{}, err
	}

	marker, err := domain.ParsePeriodMarker(cell(ColPeriodName))
	if err != nil {
		return domain.SalesRecord{}, err
	}

	periodID, err := parseInt32(ColPeriodID, cell(ColPeriodID))
	if err != nil {
		return domain.SalesRecord{}, err
	}

	gross, err := strconv.ParseFloat(cell(ColGrossSales), 64)
	if err != nil || math.IsNaN(gross) || math.IsInf(gross, 0) {
		return domain.SalesRecord{}, fmt.Errorf("%w: column %s value %q", domain.ErrInvalidNumber, ColGrossSales, cell(ColGrossSales))
	}

	units, err := parseInt32(ColUnitsSold, cell(ColUnitsSold))
	if err != nil {
		return domain.SalesRecord{}, err
	}

	if gross < 0 || units < 0 {
		return domain.SalesRecord{}, domain.ErrNegativeValue
	}

	return domain.SalesRecord{
		Keys:       keys,
		WeekStart:  week,
		Marker:     marker,
		PeriodID:   periodID,
		GrossSales: gross,
		UnitsSold:  units,
	}, nil
}

// parseInt32 accepts plain integers and integral floats such as "19.0", which
// spreadsheet exports commonly produce.
func parseInt32(col, raw string) (int32, error) {
	if v, err := strconv.ParseInt(raw, 10, 32); err == nil {
		return int32(v), nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("%w: column %s value %q", domain.ErrInvalidNumber, col, raw)
	}
	return int32(f), nil
}
