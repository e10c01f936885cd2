package e2e

import (
	"context"
	"fmt"
	"sync"

	"github.com/light-bringer/salesgrowth-service/internal/app/growth/contracts"
)

// SalesRow describes one input CSV row.
type SalesRow struct {
	ID, Name  string
	Week      string // DD/MM/YYYY
	Period    string
	PeriodID  int
	Gross     float64
	UnitsSold int
}

// Current builds a current-period row.
func Current(id, name, week string, gross float64, units int) SalesRow {
	return SalesRow{ID: id, Name: name, Week: week, Period: "current", PeriodID: 2, Gross: gross, UnitsSold: units}
}

// Previous builds a previous-period row.
func Previous(id, name, week string, gross float64, units int) SalesRow {
	return SalesRow{ID: id, Name: name, Week: week, Period: "previous", PeriodID: 1, Gross: gross, UnitsSold: units}
}

// CSV renders the row in input column order.
func (r SalesRow) CSV() string {
	return fmt.Sprintf("%s,%s,%s,%s,%d,%g,%d", r.ID, r.Name, r.Week, r.Period, r.PeriodID, r.Gross, r.UnitsSold)
}

// Lines renders rows for testutil.WriteCSV.
func Lines(rows ...SalesRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.CSV())
	}
	return out
}

// memoryPublisher collects published events.
type memoryPublisher struct {
	mu     sync.Mutex
	events []*contracts.OutboxEvent
}

func (p *memoryPublisher) Publish(_ context.Context, event *contracts.OutboxEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}
