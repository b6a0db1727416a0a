package mock

import (
	"context"

	"github.com/ayumu-h/curio"
)

var _ curio.MetadataService = (*MetadataService)(nil)

// MetadataService is a mock implementation of curio.MetadataService.
type MetadataService struct {
	ExtractFn func(ctx context.Context, pageURL string) (*curio.Metadata, error)
}

func (s *MetadataService) Extract(ctx context.Context, pageURL string) (*curio.Metadata, error) {
	return s.ExtractFn(ctx, pageURL)
}

var _ curio.PreviewService = (*PreviewService)(nil)

// PreviewService is a mock implementation of curio.PreviewService.
type PreviewService struct {
	PreviewFn func(ctx context.Context, pageURL string) (*curio.Preview, error)
}

func (s *PreviewService) Preview(ctx context.Context, pageURL string) (*curio.Preview, error) {
	return s.PreviewFn(ctx, pageURL)
}
