// Command relay_outbox publishes pending outbox events to RabbitMQ.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/salesgrowth-service/internal/app/growth/repo"
	"github.com/light-bringer/salesgrowth-service/internal/app/growth/usecases/relay_events"
	"github.com/light-bringer/salesgrowth-service/internal/pkg/committer"
	"github.com/light-bringer/salesgrowth-service/internal/transport/amqp"
)

// Config for the outbox relay
type Config struct {
	SpannerDB  string
	AMQPURL    string
	Exchange   string
	BatchSize  int
	MaxRetries int64
	Interval   time.Duration
	ListOnly   bool
}

func main() {
	config := Config{}
	flag.StringVar(&config.SpannerDB, "database", os.Getenv("SPANNER_DATABASE"), "Spanner database (required, format: projects/PROJECT/instances/INSTANCE/databases/DATABASE)")
	flag.StringVar(&config.AMQPURL, "amqp-url", getEnvOrDefault("AMQP_URL", amqp.DefaultURL), "RabbitMQ URL")
	flag.StringVar(&config.Exchange, "exchange", "salesgrowth.events", "Exchange events are published to")
	flag.IntVar(&config.BatchSize, "batch-size", 100, "Events published per pass")
	flag.Int64Var(&config.MaxRetries, "max-retries", 5, "Give up on an event after this many failed publishes")
	flag.DurationVar(&config.Interval, "interval", 0, "Poll interval; 0 runs a single pass")
	flag.BoolVar(&config.ListOnly, "list", false, "Print pending events without publishing them")
	flag.Parse()

	if config.SpannerDB == "" {
		log.Fatal("Error: -database flag is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config); err != nil {
		log.Fatalf("Relay failed: %v", err)
	}
}

func run(ctx context.Context, config Config) error {
	client, err := spanner.NewClient(ctx, config.SpannerDB)
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	outboxRepo := repo.NewOutboxRepo(client)

	if config.ListOnly {
		return listPending(ctx, outboxRepo, config)
	}

	publisher, err := amqp.Dial(amqp.Config{URL: config.AMQPURL, Exchange: config.Exchange})
	if err != nil {
		return err
	}
	defer publisher.Close()

	relay := relay_events.NewInteractor(outboxRepo, publisher, committer.NewCommitter(client))
	req := &relay_events.Request{BatchSize: config.BatchSize, MaxRetries: config.MaxRetries}

	for {
		result, err := relay.Execute(ctx, req)
		if err != nil {
			return err
		}
		log.Printf("Published %d events, %d failed", result.Published, result.Failed)

		if config.Interval <= 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			log.Println("Stopping relay")
			return nil
		case <-time.After(config.Interval):
		}
	}
}

func listPending(ctx context.Context, outboxRepo *repo.OutboxRepo, config Config) error {
	events, err := outboxRepo.ListPending(ctx, config.BatchSize, config.MaxRetries)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		fmt.Println("No pending events")
		return nil
	}

	for i, event := range events {
		fmt.Printf("%d. %s - %s (aggregate: %s, status: %s, retries: %d)\n",
			i+1, event.EventType, event.EventID, event.AggregateID, event.Status, event.RetryCount)
	}
	fmt.Printf("\nTotal: %d events\n", len(events))
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
