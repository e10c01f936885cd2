//go:build integration

package e2e

import (
	"io"
	"log/slog"
	"testing"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/salesgrowth-service/internal/app/growth/queries/get_report"
	"github.com/light-bringer/salesgrowth-service/internal/app/growth/queries/list_reports"
	"github.com/light-bringer/salesgrowth-service/internal/app/growth/repo"
	"github.com/light-bringer/salesgrowth-service/internal/app/growth/usecases/generate_report"
	"github.com/light-bringer/salesgrowth-service/internal/app/growth/usecases/relay_events"
	"github.com/light-bringer/salesgrowth-service/internal/app/growth/usecases/save_report"
	"github.com/light-bringer/salesgrowth-service/internal/pkg/blob"
	"github.com/light-bringer/salesgrowth-service/internal/pkg/clock"
	"github.com/light-bringer/salesgrowth-service/internal/pkg/committer"
	"github.com/light-bringer/salesgrowth-service/internal/services"
	"github.com/light-bringer/salesgrowth-service/tests/testutil"
)

// Services holds all use cases and queries for E2E tests.
type Services struct {
	// Commands
	GenerateReport *generate_report.Interactor
	SaveReport     *save_report.Interactor

	// Queries
	GetReport   *get_report.Query
	ListReports *list_reports.Query

	// Infrastructure
	OutboxRepo *repo.OutboxRepo
	Committer  *committer.Committer
	Clock      *clock.MockClock
	Client     *spanner.Client
}

// setupTest initializes all dependencies for E2E testing.
func setupTest(t *testing.T) (*Services, func()) {
	t.Helper()

	client, cleanup := testutil.SetupSpannerTest(t)

	clk := testutil.NewFixedClock(testutil.ReportTime)
	readModel := repo.NewReadModel(client)

	return &Services{
		GenerateReport: services.NewGenerateReport(
			blob.NewLocalStore(),
			services.PipelineConfig{CurrentPeriodID: 2},
			clk,
			slog.New(slog.NewTextHandler(io.Discard, nil)),
		),
		SaveReport:  services.NewSaveReport(client),
		GetReport:   get_report.NewQuery(readModel),
		ListReports: list_reports.NewQuery(readModel),
		OutboxRepo:  repo.NewOutboxRepo(client),
		Committer:   committer.NewCommitter(client),
		Clock:       clk,
		Client:      client,
	}, cleanup
}

// relay returns a relay interactor publishing through publisher.
func (s *Services) relay(publisher *memoryPublisher) *relay_events.Interactor {
	return relay_events.NewInteractor(s.OutboxRepo, publisher, s.Committer)
}
