package generate_report

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/light-bringer/salesgrowth-service/internal/app/growth/contracts"
	"github.com/light-bringer/salesgrowth-service/internal/app/growth/domain"
	"github.com/light-bringer/salesgrowth-service/internal/pkg/clock"
)

// Request names the two input files and, optionally, where to write the
// combined document.
type Request struct {
	ProductURI string
	BrandURI   string
	OutputURI  string // empty: do not write
	ReportID   string // empty: generate one
}

// Interactor handles the generate report use case.
type Interactor struct {
	source  contracts.SalesSource
	sink    contracts.ReportSink
	product *domain.Pipeline
	brand   *domain.Pipeline
	clock   clock.Clock
	logger  *slog.Logger
}

// NewInteractor creates a new generate report interactor.
func NewInteractor(
	source contracts.SalesSource,
	sink contracts.ReportSink,
	product *domain.Pipeline,
	brand *domain.Pipeline,
	clock clock.Clock,
	logger *slog.Logger,
) *Interactor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Interactor{
		source:  source,
		sink:    sink,
		product: product,
		brand:   brand,
		clock:   clock,
		logger:  logger,
	}
}

// Execute runs the product and brand pipelines and assembles the report.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Report, error) {
	if strings.TrimSpace(req.ProductURI) == "" || strings.TrimSpace(req.BrandURI) == "" {
		return nil, domain.ErrMissingSource
	}

	product, err := i.run(ctx, i.product, req.ProductURI)
	if err != nil {
		return nil, err
	}

	brand, err := i.run(ctx, i.brand, req.BrandURI)
	if err != nil {
		return nil, err
	}

	reportID := req.ReportID
	if reportID == "" {
		reportID = uuid.New().String()
	}

	report, err := domain.NewReport(
		reportID,
		i.clock.Now(),
		domain.Sources{ProductURI: req.ProductURI, BrandURI: req.BrandURI},
		product,
		brand,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}

	if req.OutputURI != "" {
		if err := i.sink.Write(ctx, req.OutputURI, report.Document()); err != nil {
			return nil, fmt.Errorf("failed to publish report: %w", err)
		}
		i.logger.InfoContext(ctx, "report written",
			"report_id", report.ID(),
			"output", req.OutputURI,
		)
	}

	return report, nil
}

func (i *Interactor) run(ctx context.Context, pipeline *domain.Pipeline, uri string) (domain.EntityResult, error) {
	entity := pipeline.Entity()
	start := time.Now()

	records, err := i.source.Load(ctx, uri, entity)
	if err != nil {
		return domain.EntityResult{}, fmt.Errorf("entity %s: %w", entity.Name(), err)
	}

	rows, err := pipeline.Compute(records)
	if err != nil {
		i.logger.ErrorContext(ctx, "pipeline failed",
			"entity", string(entity.Name()),
			"source", uri,
			"error", err.Error(),
		)
		return domain.EntityResult{}, err
	}

	unmatched := 0
	for _, row := range rows {
		if !row.PreviousMatched {
			unmatched++
		}
	}

	i.logger.InfoContext(ctx, "pipeline completed",
		"entity", string(entity.Name()),
		"source", uri,
		"rows_in", len(records),
		"rows_out", len(rows),
		"without_previous", unmatched,
		"duration", time.Since(start),
	)

	return domain.EntityResult{Entity: entity, Rows: rows}, nil
}
