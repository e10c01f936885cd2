package contracts

import (
	"context"

	"github.com/light-bringer/salesgrowth-service/internal/app/growth/domain"
)

// SalesSource loads the raw sales rows of one entity file.
type SalesSource interface {
	Load(ctx context.Context, uri string, entity domain.EntityConfig) ([]domain.SalesRecord, error)
}

// ReportSink publishes a finished report document.
type ReportSink interface {
	Write(ctx context.Context, uri string, doc domain.Document) error
}
