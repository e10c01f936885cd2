package domain

import "time"

// DomainEvent is the base interface for all domain events.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// ReportGeneratedEvent is emitted when a growth report has been built.
type ReportGeneratedEvent struct {
	ReportID    string    `json:"report_id"`
	ProductRows int       `json:"product_rows"`
	BrandRows   int       `json:"brand_rows"`
	FirstWeek   time.Time `json:"first_week"`
	LastWeek    time.Time `json:"last_week"`
	GeneratedAt time.Time `json:"generated_at"`
}

func (e *ReportGeneratedEvent) EventType() string {
	return "report.generated"
}

func (e *ReportGeneratedEvent) AggregateID() string {
	return e.ReportID
}
