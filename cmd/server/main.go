package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/light-bringer/salesgrowth-service/internal/app/growth/domain"
	"github.com/light-bringer/salesgrowth-service/internal/app/growth/source"
	"github.com/light-bringer/salesgrowth-service/internal/pkg/blob"
	"github.com/light-bringer/salesgrowth-service/internal/services"
	"github.com/light-bringer/salesgrowth-service/internal/transport/grpc/report"
	httphandler "github.com/light-bringer/salesgrowth-service/internal/transport/http"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Load configuration from environment variables
	config, err := loadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log.Printf("Starting Sales Growth Service...")
	log.Printf("Spanner Database: %s", config.SpannerDB)
	log.Printf("Data Root: %s", config.DataRoot)
	log.Printf("gRPC Port: %s", config.GRPCPort)
	log.Printf("HTTP Port: %s", config.HTTPPort)
	log.Printf("Pipeline: date order %s, alignment %s, current period id %d",
		config.Pipeline.DateOrder, config.Pipeline.Alignment, config.Pipeline.CurrentPeriodID)

	// 2. Initialize service dependencies (DI container)
	serviceOpts, err := services.NewServiceOptions(ctx, services.Config{
		SpannerDB: config.SpannerDB,
		DataRoot:  config.DataRoot,
		S3:        config.S3,
		Pipeline:  config.Pipeline,
		Logger:    slog.New(slog.NewJSONHandler(os.Stderr, nil)),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	// 3. Create gRPC server and register services
	grpcServer := grpc.NewServer()
	report.RegisterReportServiceServer(grpcServer, serviceOpts.ReportHandler)

	lis, err := net.Listen("tcp", ":"+config.GRPCPort)
	if err != nil {
		return fmt.Errorf("failed to listen on gRPC port: %w", err)
	}

	go func() {
		log.Printf("gRPC server listening on :%s", config.GRPCPort)
		if err := grpcServer.Serve(lis); err != nil {
			log.Printf("gRPC server error: %v", err)
		}
	}()

	// 4. HTTP edge forwards to the gRPC service over one shared connection
	grpcConn, err := grpc.NewClient("localhost:"+config.GRPCPort, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("failed to connect to gRPC: %w", err)
	}
	defer grpcConn.Close()

	httpMux := http.NewServeMux()
	httphandler.NewReportsHandler(report.NewClient(grpcConn)).Register(httpMux)

	httpServer := &http.Server{
		Addr:    ":" + config.HTTPPort,
		Handler: httpMux,
	}

	go func() {
		log.Printf("HTTP server listening on :%s", config.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	// 5. Graceful shutdown handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down gracefully...")

	if err := httpServer.Shutdown(context.Background()); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	grpcServer.GracefulStop()

	return nil
}

// Config holds application configuration.
type Config struct {
	SpannerDB string
	DataRoot  string
	GRPCPort  string
	HTTPPort  string
	S3        blob.S3Config
	Pipeline  services.PipelineConfig
}

// loadConfig loads configuration from environment variables with defaults.
func loadConfig() (Config, error) {
	dateOrder, err := source.ParseDateOrder(os.Getenv("DATE_ORDER"))
	if err != nil {
		return Config{}, err
	}
	alignment, err := domain.ParseAlignmentMode(os.Getenv("WEEK_ALIGNMENT"))
	if err != nil {
		return Config{}, err
	}
	periodID, err := domain.ParseCurrentPeriodID(os.Getenv("CURRENT_PERIOD_ID"))
	if err != nil {
		return Config{}, fmt.Errorf("CURRENT_PERIOD_ID: %w", err)
	}

	return Config{
		// Default for local development with emulator
		SpannerDB: getEnvOrDefault("SPANNER_DATABASE", "projects/test-project/instances/dev-instance/databases/salesgrowth-db"),
		DataRoot:  getEnvOrDefault("DATA_ROOT", "data"),
		GRPCPort:  getEnvOrDefault("GRPC_PORT", "9090"),
		HTTPPort:  getEnvOrDefault("HTTP_PORT", "8080"),
		S3: blob.S3Config{
			Region:   os.Getenv("AWS_REGION"),
			Profile:  os.Getenv("AWS_PROFILE"),
			Endpoint: os.Getenv("S3_ENDPOINT"),
		},
		Pipeline: services.PipelineConfig{
			DateOrder:       dateOrder,
			Alignment:       alignment,
			CurrentPeriodID: periodID,
		},
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
