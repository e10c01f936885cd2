package domain

import "time"

// Document is the combined publication: exactly a PRODUCT and a BRAND array.
type Document struct {
	Product []OutputRecord
	Brand   []OutputRecord
}

// MarshalJSON always emits both keys, with [] in place of a missing section.
func (d Document) MarshalJSON() ([]byte, error) {
	product, brand := d.Product, d.Brand
	if product == nil {
		product = []OutputRecord{}
	}
	if brand == nil {
		brand = []OutputRecord{}
	}
	return EncodeJSON(struct {
		Product []OutputRecord `json:"PRODUCT"`
		Brand   []OutputRecord `json:"BRAND"`
	}{product, brand}, "")
}

// Encode renders the document, indented when indent is set. Unlike
// json.Marshal it does not escape HTML characters in identifier values.
func (d Document) Encode(indent string) ([]byte, error) {
	return EncodeJSON(d, indent)
}

// Section returns the records published under entity.
func (d Document) Section(entity EntityType) []OutputRecord {
	if entity == EntityBrand {
		return d.Brand
	}
	return d.Product
}

// Sources records where a report's inputs were read from.
type Sources struct {
	ProductURI string
	BrandURI   string
}

// Report is one generated growth report.
type Report struct {
	id          string
	generatedAt time.Time
	sources     Sources
	document    Document
	firstWeek   time.Time
	lastWeek    time.Time

	events []DomainEvent
}

// EntityResult is one pipeline's growth rows together with the entity they
// were computed for.
type EntityResult struct {
	Entity EntityConfig
	Rows   []GrowthRecord
}

// NewReport assembles a report from both entities' growth rows and records a
// ReportGeneratedEvent.
func NewReport(id string, generatedAt time.Time, sources Sources, product, brand EntityResult) (*Report, error) {
	if id == "" {
		return nil, ErrEmptyReportID
	}

	r := &Report{
		id:          id,
		generatedAt: generatedAt,
		sources:     sources,
		document: Document{
			Product: Format(product.Entity, product.Rows),
			Brand:   Format(brand.Entity, brand.Rows),
		},
	}

	for _, rows := range [][]GrowthRecord{product.Rows, brand.Rows} {
		for _, row := range rows {
			if r.firstWeek.IsZero() || row.CurrentWeekStart.Before(r.firstWeek) {
				r.firstWeek = row.CurrentWeekStart
			}
			if row.CurrentWeekStart.After(r.lastWeek) {
				r.lastWeek = row.CurrentWeekStart
			}
		}
	}

	r.events = append(r.events, &ReportGeneratedEvent{
		ReportID:    id,
		ProductRows: len(r.document.Product),
		BrandRows:   len(r.document.Brand),
		FirstWeek:   r.firstWeek,
		LastWeek:    r.lastWeek,
		GeneratedAt: generatedAt,
	})

	return r, nil
}

// ID returns the report id.
func (r *Report) ID() string {
	return r.id
}

// GeneratedAt returns when the report was built.
func (r *Report) GeneratedAt() time.Time {
	return r.generatedAt
}

func (r *Report) Sources() Sources {
	return r.sources
}

// Document returns the published document.
func (r *Report) Document() Document {
	return r.document
}

func (r *Report) ProductRows() int {
	return len(r.document.Product)
}

func (r *Report) BrandRows() int {
	return len(r.document.Brand)
}

// DomainEvents returns the events raised while building the report.
func (r *Report) DomainEvents() []DomainEvent {
	return r.events
}

// WeekRange returns the earliest and latest current week in the report. Both
// are zero when the report has no rows.
func (r *Report) WeekRange() (first, last time.Time) {
	return r.firstWeek, r.lastWeek
}

// MarshalIndent renders the document the way it is written to disk.
func (r *Report) MarshalIndent() ([]byte, error) {
	return r.document.Encode("    ")
}
