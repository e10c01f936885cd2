package source

import (
	"context"
	"fmt"

	"github.com/light-bringer/salesgrowth-service/internal/app/growth/domain"
	"github.com/light-bringer/salesgrowth-service/internal/pkg/blob"
)

// JSONSink writes report documents as indented JSON.
type JSONSink struct {
	store blob.Store
}

// NewJSONSink creates a JSONSink.
func NewJSONSink(store blob.Store) *JSONSink {
	return &JSONSink{store: store}
}

// Write replaces uri with the document.
func (s *JSONSink) Write(ctx context.Context, uri string, doc domain.Document) error {
	data, err := doc.Encode("    ")
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if err := s.store.Write(ctx, uri, append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}
