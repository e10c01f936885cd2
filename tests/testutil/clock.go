package testutil

import (
	"time"

	"github.com/light-bringer/salesgrowth-service/internal/pkg/clock"
)

// ReportTime is the generation time used by test reports.
var ReportTime = time.Date(2024, time.July, 10, 9, 0, 0, 0, time.UTC)

// NewFixedClock creates a mock clock fixed at the given time.
func NewFixedClock(t time.Time) *clock.MockClock {
	return clock.NewMockClock(t)
}
