// Command report computes weekly year-over-year sales growth for the product
// and brand files and writes the combined JSON document.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/salesgrowth-service/internal/app/growth/domain"
	"github.com/light-bringer/salesgrowth-service/internal/app/growth/source"
	"github.com/light-bringer/salesgrowth-service/internal/app/growth/usecases/generate_report"
	"github.com/light-bringer/salesgrowth-service/internal/pkg/blob"
	"github.com/light-bringer/salesgrowth-service/internal/pkg/clock"
	"github.com/light-bringer/salesgrowth-service/internal/services"
)

// Config holds the command line options.
type Config struct {
	ProductURI      string
	BrandURI        string
	OutputURI       string
	ReportID        string
	DateOrder       string
	Alignment       string
	CurrentPeriodID string
	SpannerDB       string
	S3              blob.S3Config
	Verbose         bool
}

func main() {
	config := Config{}
	flag.StringVar(&config.ProductURI, "product", "", "Product sales CSV (path or s3://bucket/key, required)")
	flag.StringVar(&config.BrandURI, "brand", "", "Brand sales CSV (path or s3://bucket/key, required)")
	flag.StringVar(&config.OutputURI, "output", "", "Where to write the JSON document (default: stdout)")
	flag.StringVar(&config.ReportID, "report-id", "", "Report ID (default: random UUID)")
	flag.StringVar(&config.DateOrder, "date-order", "day-first", "Order of ambiguous dates: day-first or month-first")
	flag.StringVar(&config.Alignment, "align", "iso-week", "Year-ago week alignment: iso-week or calendar")
	flag.StringVar(&config.CurrentPeriodID, "current-period-id", strconv.Itoa(int(domain.DefaultCurrentPeriodID)), "Period ID given to aligned previous-period rows")
	flag.StringVar(&config.SpannerDB, "spanner-db", os.Getenv("SPANNER_DATABASE"), "Also store the report in this Spanner database")
	flag.StringVar(&config.S3.Region, "aws-region", os.Getenv("AWS_REGION"), "AWS region for s3:// URIs")
	flag.StringVar(&config.S3.Profile, "aws-profile", os.Getenv("AWS_PROFILE"), "AWS shared config profile")
	flag.StringVar(&config.S3.Endpoint, "s3-endpoint", os.Getenv("S3_ENDPOINT"), "Custom S3 endpoint (e.g. a local MinIO)")
	flag.BoolVar(&config.Verbose, "v", false, "Log pipeline progress")
	flag.Parse()

	if config.ProductURI == "" || config.BrandURI == "" {
		flag.Usage()
		log.Fatal("Error: -product and -brand are required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config); err != nil {
		log.Fatalf("Report failed: %v", err)
	}
}

func run(ctx context.Context, config Config) error {
	pipeline, err := pipelineConfig(config)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if config.Verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	store, err := services.NewStore(ctx, config.S3, "")
	if err != nil {
		return fmt.Errorf("failed to create blob store: %w", err)
	}

	interactor := services.NewGenerateReport(store, pipeline, clock.NewRealClock(), logger)
	report, err := interactor.Execute(ctx, &generate_report.Request{
		ProductURI: config.ProductURI,
		BrandURI:   config.BrandURI,
		OutputURI:  config.OutputURI,
		ReportID:   config.ReportID,
	})
	if err != nil {
		return err
	}

	if config.OutputURI == "" {
		data, err := report.MarshalIndent()
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		if _, err := fmt.Fprintf(os.Stdout, "%s\n", data); err != nil {
			return err
		}
	} else {
		log.Printf("Wrote report %s to %s (%d product rows, %d brand rows)",
			report.ID(), config.OutputURI, report.ProductRows(), report.BrandRows())
	}

	if config.SpannerDB != "" {
		if err := persist(ctx, config.SpannerDB, report); err != nil {
			return err
		}
		log.Printf("Stored report %s in %s", report.ID(), config.SpannerDB)
	}

	return nil
}

func pipelineConfig(config Config) (services.PipelineConfig, error) {
	dateOrder, err := source.ParseDateOrder(config.DateOrder)
	if err != nil {
		return services.PipelineConfig{}, err
	}
	alignment, err := domain.ParseAlignmentMode(config.Alignment)
	if err != nil {
		return services.PipelineConfig{}, err
	}
	periodID, err := domain.ParseCurrentPeriodID(config.CurrentPeriodID)
	if err != nil {
		return services.PipelineConfig{}, fmt.Errorf("-current-period-id: %w", err)
	}
	return services.PipelineConfig{
		DateOrder:       dateOrder,
		Alignment:       alignment,
		CurrentPeriodID: periodID,
	}, nil
}

func persist(ctx context.Context, spannerDB string, report *domain.Report) error {
	client, err := spanner.NewClient(ctx, spannerDB)
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	if err := services.NewSaveReport(client).Execute(ctx, report); err != nil {
		return fmt.Errorf("failed to store report: %w", err)
	}
	return nil
}
