package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DisplayDateLayout is the DD/MM/YYYY layout used for published dates.
const DisplayDateLayout = "02/01/2006"

// Output column names.
const (
	ColCurrentWeekCommencingDate  = "current_week_commencing_date"
	ColPreviousWeekCommencingDate = "previous_week_commencing_date"
	ColPercGrossSalesGrowth       = "perc_gross_sales_growth"
	ColPercUnitSalesGrowth        = "perc_unit_sales_growth"
)

// IdentifierField is one published identifier column.
type IdentifierField struct {
	Name  string
	Value interface{}
}

// OutputRecord is a published report row. It marshals to a JSON object whose
// keys are the identifier columns followed by the four report columns.
type OutputRecord struct {
	Identifiers                []IdentifierField
	CurrentWeekCommencingDate  string
	PreviousWeekCommencingDate string
	GrossSalesGrowth           *float64
	UnitSalesGrowth            *float64
}

// Format projects growth rows onto the published column set and sorts them by
// (sort column, current week) ascending. Sorting happens on real dates before
// they are rendered as strings.
func Format(entity EntityConfig, rows []GrowthRecord) []OutputRecord {
	sorted := make([]GrowthRecord, len(rows))
	copy(sorted, rows)

	idx := entity.SortKeyIndex()
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if ka, kb := keyAt(a.Keys, idx), keyAt(b.Keys, idx); ka != kb {
			return ka < kb
		}
		return a.CurrentWeekStart.Before(b.CurrentWeekStart)
	})

	columns := entity.IdentifierColumns()
	out := make([]OutputRecord, 0, len(sorted))
	for _, row := range sorted {
		ids := make([]IdentifierField, 0, len(columns))
		for i, col := range columns {
			ids = append(ids, IdentifierField{
				Name:  entity.DisplayName(col),
				Value: entity.TypedIdentifier(col, keyAt(row.Keys, i)),
			})
		}
		out = append(out, OutputRecord{
			Identifiers:                ids,
			CurrentWeekCommencingDate:  row.CurrentWeekStart.Format(DisplayDateLayout),
			PreviousWeekCommencingDate: row.PreviousWeekStart.Format(DisplayDateLayout),
			GrossSalesGrowth:           row.GrossSalesGrowth,
			UnitSalesGrowth:            row.UnitSalesGrowth,
		})
	}
	return out
}

// NormalizeOutput re-sorts already published records. Applying it to the
// output of Format, or to its own output, changes nothing.
func NormalizeOutput(entity EntityConfig, records []OutputRecord) ([]OutputRecord, error) {
	sortName := entity.DisplayName(entity.SortColumn())

	type keyed struct {
		rec  OutputRecord
		name string
		week time.Time
	}

	items := make([]keyed, 0, len(records))
	for _, rec := range records {
		week, err := time.Parse(DisplayDateLayout, rec.CurrentWeekCommencingDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, rec.CurrentWeekCommencingDate)
		}
		name := ""
		for _, id := range rec.Identifiers {
			if id.Name == sortName {
				name = fmt.Sprint(id.Value)
			}
		}
		items = append(items, keyed{rec: rec, name: name, week: week})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].name != items[j].name {
			return items[i].name < items[j].name
		}
		return items[i].week.Before(items[j].week)
	})

	out := make([]OutputRecord, 0, len(items))
	for _, it := range items {
		out = append(out, it.rec)
	}
	return out, nil
}

// Columns returns the JSON keys of r in order.
func (r OutputRecord) Columns() []string {
	cols := make([]string, 0, len(r.Identifiers)+4)
	for _, id := range r.Identifiers {
		cols = append(cols, id.Name)
	}
	return append(cols,
		ColCurrentWeekCommencingDate,
		ColPreviousWeekCommencingDate,
		ColPercGrossSalesGrowth,
		ColPercUnitSalesGrowth,
	)
}

// MarshalJSON writes the record with a stable key order. Null growth is
// written as null and whole percentages keep one decimal place (20.0).
func (r OutputRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	writeKey := func(first bool, name string) error {
		if !first {
			buf.WriteByte(',')
		}
		k, err := EncodeJSON(name, "")
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		return nil
	}

	for i, id := range r.Identifiers {
		if err := writeKey(i == 0, id.Name); err != nil {
			return nil, err
		}
		v, err := EncodeJSON(id.Value, "")
		if err != nil {
			return nil, fmt.Errorf("identifier %s: %w", id.Name, err)
		}
		buf.Write(v)
	}

	first := len(r.Identifiers) == 0
	for _, pair := range []struct {
		name  string
		value string
	}{
		{ColCurrentWeekCommencingDate, strconv.Quote(r.CurrentWeekCommencingDate)},
		{ColPreviousWeekCommencingDate, strconv.Quote(r.PreviousWeekCommencingDate)},
		{ColPercGrossSalesGrowth, formatGrowth(r.GrossSalesGrowth)},
		{ColPercUnitSalesGrowth, formatGrowth(r.UnitSalesGrowth)},
	} {
		if err := writeKey(first, pair.name); err != nil {
			return nil, err
		}
		first = false
		buf.WriteString(pair.value)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// EncodeJSON marshals v like json.Marshal, or json.MarshalIndent when indent
// is set, but leaves <, > and & unescaped so names such as "M&S" are
// published as written.
func EncodeJSON(v interface{}, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func formatGrowth(v *float64) string {
	if v == nil {
		return "null"
	}
	s := strconv.FormatFloat(*v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func keyAt(keys []string, i int) string {
	if i < len(keys) {
		return keys[i]
	}
	return ""
}
