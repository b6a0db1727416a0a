package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/ayumu-h/curio"
)

// Ensure LoggingPreviewService implements curio.PreviewService.
var _ curio.PreviewService = (*LoggingPreviewService)(nil)

// LoggingPreviewService wraps a PreviewService with operation logging.
type LoggingPreviewService struct {
	next   curio.PreviewService
	logger *slog.Logger
}

// NewLoggingPreviewService creates a new LoggingPreviewService.
func NewLoggingPreviewService(next curio.PreviewService, logger *slog.Logger) *LoggingPreviewService {
	return &LoggingPreviewService{next: next, logger: logger}
}

// Preview delegates to the wrapped service and logs the operation.
func (s *LoggingPreviewService) Preview(ctx context.Context, pageURL string) (p *curio.Preview, err error) {
	defer func(begin time.Time) {
		s.logger.Info("link preview",
			"url", pageURL,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Preview(ctx, pageURL)
}
