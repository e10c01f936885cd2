package services

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/salesgrowth-service/internal/app/growth/domain"
	"github.com/light-bringer/salesgrowth-service/internal/app/growth/queries/get_report"
	"github.com/light-bringer/salesgrowth-service/internal/app/growth/queries/list_reports"
	"github.com/light-bringer/salesgrowth-service/internal/app/growth/repo"
	"github.com/light-bringer/salesgrowth-service/internal/app/growth/source"
	"github.com/light-bringer/salesgrowth-service/internal/app/growth/usecases/generate_report"
	"github.com/light-bringer/salesgrowth-service/internal/app/growth/usecases/save_report"
	"github.com/light-bringer/salesgrowth-service/internal/pkg/blob"
	"github.com/light-bringer/salesgrowth-service/internal/pkg/clock"
	"github.com/light-bringer/salesgrowth-service/internal/pkg/committer"
	"github.com/light-bringer/salesgrowth-service/internal/transport/grpc/report"
)

// PipelineConfig holds the settings shared by the product and brand pipelines.
type PipelineConfig struct {
	DateOrder       source.DateOrder
	Alignment       domain.AlignmentMode
	CurrentPeriodID int32
}

// Config holds everything needed to wire the service.
type Config struct {
	SpannerDB string
	DataRoot  string // local paths from callers resolve below this directory
	S3        blob.S3Config
	Pipeline  PipelineConfig
	Logger    *slog.Logger
}

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient  *spanner.Client
	Store          blob.Store
	GenerateReport *generate_report.Interactor
	SaveReport     *save_report.Interactor
	ReportHandler  *report.Handler
}

// NewStore returns a store that reads and writes local paths and s3:// URIs.
// A non-empty dataRoot confines local paths to that directory.
func NewStore(ctx context.Context, cfg blob.S3Config, dataRoot string) (blob.Store, error) {
	local := blob.NewLocalStore()
	if dataRoot != "" {
		rooted, err := blob.NewRootedLocalStore(dataRoot)
		if err != nil {
			return nil, err
		}
		local = rooted
	}

	s3Store, err := blob.NewS3Store(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return blob.NewRouter(local, s3Store), nil
}

// NewGenerateReport wires the generate report use case over store.
func NewGenerateReport(store blob.Store, cfg PipelineConfig, clk clock.Clock, logger *slog.Logger) *generate_report.Interactor {
	opts := []domain.PipelineOption{
		domain.WithAlignment(cfg.Alignment),
		domain.WithCurrentPeriodID(cfg.CurrentPeriodID),
	}
	return generate_report.NewInteractor(
		source.NewCSVLoader(store, cfg.DateOrder),
		source.NewJSONSink(store),
		domain.NewPipeline(domain.ProductEntity(), opts...),
		domain.NewPipeline(domain.BrandEntity(), opts...),
		clk,
		logger,
	)
}

// NewSaveReport wires the save report use case against a Spanner client.
func NewSaveReport(client *spanner.Client) *save_report.Interactor {
	return save_report.NewInteractor(
		repo.NewReportRepo(client),
		repo.NewOutboxRepo(client),
		committer.NewCommitter(client),
	)
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg Config) (*ServiceOptions, error) {
	if cfg.DataRoot == "" {
		return nil, fmt.Errorf("data root is required: %w", blob.ErrInvalidURI)
	}

	// 1. Initialize Spanner client
	spannerClient, err := spanner.NewClient(ctx, cfg.SpannerDB)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}

	// 2. Create infrastructure components
	store, err := NewStore(ctx, cfg.S3, cfg.DataRoot)
	if err != nil {
		spannerClient.Close()
		return nil, fmt.Errorf("failed to create blob store: %w", err)
	}
	clk := clock.NewRealClock()

	// 3. Create repositories
	readModel := repo.NewReadModel(spannerClient)

	// 4. Create command use cases (write operations)
	generateReport := NewGenerateReport(store, cfg.Pipeline, clk, cfg.Logger)
	saveReport := NewSaveReport(spannerClient)

	// 5. Create query use cases (read operations)
	getReportQuery := get_report.NewQuery(readModel)
	listReportsQuery := list_reports.NewQuery(readModel)

	// 6. Create gRPC handler
	reportHandler := report.NewHandler(
		generateReport,
		saveReport,
		getReportQuery,
		listReportsQuery,
	)

	return &ServiceOptions{
		SpannerClient:  spannerClient,
		Store:          store,
		GenerateReport: generateReport,
		SaveReport:     saveReport,
		ReportHandler:  reportHandler,
	}, nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
