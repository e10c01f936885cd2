package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/salesgrowth-service/internal/app/growth/domain"
	"github.com/light-bringer/salesgrowth-service/internal/app/growth/source"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, key := range []string{"SPANNER_DATABASE", "GRPC_PORT", "HTTP_PORT", "DATE_ORDER", "WEEK_ALIGNMENT", "CURRENT_PERIOD_ID", "DATA_ROOT"} {
			t.Setenv(key, "")
		}

		cfg, err := loadConfig()
		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.GRPCPort)
		assert.Equal(t, "8080", cfg.HTTPPort)
		assert.Contains(t, cfg.SpannerDB, "salesgrowth-db")
		assert.Equal(t, source.DayFirst, cfg.Pipeline.DateOrder)
		assert.Equal(t, domain.AlignISOWeek, cfg.Pipeline.Alignment)
		assert.Equal(t, int32(2), cfg.Pipeline.CurrentPeriodID)
		assert.Equal(t, "data", cfg.DataRoot)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("GRPC_PORT", "7000")
		t.Setenv("DATE_ORDER", "month-first")
		t.Setenv("WEEK_ALIGNMENT", "calendar")
		t.Setenv("CURRENT_PERIOD_ID", "5")
		t.Setenv("S3_ENDPOINT", "http://localhost:9000")

		cfg, err := loadConfig()
		require.NoError(t, err)
		assert.Equal(t, "7000", cfg.GRPCPort)
		assert.Equal(t, source.MonthFirst, cfg.Pipeline.DateOrder)
		assert.Equal(t, domain.AlignCalendarDate, cfg.Pipeline.Alignment)
		assert.Equal(t, int32(5), cfg.Pipeline.CurrentPeriodID)
		assert.Equal(t, "http://localhost:9000", cfg.S3.Endpoint)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Setenv("WEEK_ALIGNMENT", "lunar")
		_, err := loadConfig()
		assert.ErrorIs(t, err, domain.ErrUnknownAlignment)
	})

	t.Run("period id out of range", func(t *testing.T) {
		t.Setenv("CURRENT_PERIOD_ID", "4294967298")
		_, err := loadConfig()
		assert.ErrorIs(t, err, domain.ErrInvalidNumber)
	})
}
