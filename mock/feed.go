package mock

import (
	"context"

	"github.com/ayumu-h/curio"
)

var _ curio.FeedParser = (*FeedParser)(nil)

// FeedParser is a mock implementation of curio.FeedParser.
type FeedParser struct {
	ParseFn func(data []byte, contentType string) (*curio.FeedSummary, error)
}

func (p *FeedParser) Parse(data []byte, contentType string) (*curio.FeedSummary, error) {
	return p.ParseFn(data, contentType)
}

var _ curio.FeedResolver = (*FeedResolver)(nil)

// FeedResolver is a mock implementation of curio.FeedResolver.
type FeedResolver struct {
	ResolveFn func(ctx context.Context, links []curio.FeedLink) (*curio.FeedSummary, string, error)
}

func (r *FeedResolver) Resolve(ctx context.Context, links []curio.FeedLink) (*curio.FeedSummary, string, error) {
	return r.ResolveFn(ctx, links)
}
