package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/salesgrowth-service/internal/app/growth/repo"
	"github.com/light-bringer/salesgrowth-service/internal/pkg/committer"
)

// Configuration for outbox cleanup job
type Config struct {
	SpannerDB              string
	CompletedRetentionDays int
	FailedRetentionDays    int
	DryRun                 bool
}

func main() {
	config := Config{}
	flag.StringVar(&config.SpannerDB, "database", "", "Spanner database (required, format: projects/PROJECT/instances/INSTANCE/databases/DATABASE)")
	flag.IntVar(&config.CompletedRetentionDays, "completed-retention", 30, "Retention days for completed events")
	flag.IntVar(&config.FailedRetentionDays, "failed-retention", 90, "Retention days for failed events")
	flag.BoolVar(&config.DryRun, "dry-run", false, "Show what would be deleted without actually deleting")
	flag.Parse()

	if config.SpannerDB == "" {
		log.Fatal("Error: -database flag is required")
	}

	if err := cleanupOutbox(context.Background(), config); err != nil {
		log.Fatalf("Cleanup failed: %v", err)
	}

	log.Println("Cleanup completed successfully")
}

// retention converts the configured day counts into cutoffs relative to now.
func retention(config Config, now time.Time) repo.Retention {
	return repo.Retention{
		CompletedBefore: now.AddDate(0, 0, -config.CompletedRetentionDays),
		FailedBefore:    now.AddDate(0, 0, -config.FailedRetentionDays),
	}
}

func cleanupOutbox(ctx context.Context, config Config) error {
	client, err := spanner.NewClient(ctx, config.SpannerDB)
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	rt := retention(config, time.Now().UTC())

	log.Printf("Starting outbox cleanup...")
	log.Printf("  Completed events cutoff: %s (retention: %d days)", rt.CompletedBefore.Format(time.RFC3339), config.CompletedRetentionDays)
	log.Printf("  Failed events cutoff: %s (retention: %d days)", rt.FailedBefore.Format(time.RFC3339), config.FailedRetentionDays)
	log.Printf("  Dry run: %v", config.DryRun)

	count, err := repo.NewOutboxRepo(client).CountExpired(ctx, rt)
	if err != nil {
		return err
	}

	if config.DryRun {
		log.Printf("DRY RUN: Would delete %d events", count)
		log.Println("Run without -dry-run to actually delete events")
		return nil
	}

	if count == 0 {
		log.Println("No old events to delete")
		return nil
	}

	log.Printf("Deleting %d old events...", count)
	deleted, err := committer.NewCommitter(client).ApplyDML(ctx, repo.ExpiredDeleteStmt(rt))
	if err != nil {
		return fmt.Errorf("cleanup transaction failed: %w", err)
	}
	log.Printf("Successfully deleted %d events", deleted)

	return nil
}
