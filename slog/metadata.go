// Package slog provides logging decorators for curio services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/ayumu-h/curio"
)

// Ensure LoggingMetadataService implements curio.MetadataService.
var _ curio.MetadataService = (*LoggingMetadataService)(nil)

// LoggingMetadataService wraps a MetadataService with operation logging.
type LoggingMetadataService struct {
	next   curio.MetadataService
	logger *slog.Logger
}

// NewLoggingMetadataService creates a new LoggingMetadataService.
func NewLoggingMetadataService(next curio.MetadataService, logger *slog.Logger) *LoggingMetadataService {
	return &LoggingMetadataService{next: next, logger: logger}
}

// Extract delegates to the wrapped service and logs the operation.
func (s *LoggingMetadataService) Extract(ctx context.Context, pageURL string) (meta *curio.Metadata, err error) {
	defer func(begin time.Time) {
		hasTitle := meta != nil && meta.PrimaryTitle != ""
		creators := 0
		if meta != nil {
			creators = len(meta.Creators)
		}
		s.logger.Info("metadata extraction",
			"url", pageURL,
			"title", hasTitle,
			"creators", creators,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Extract(ctx, pageURL)
}
