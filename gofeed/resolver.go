package gofeed

import (
	"context"
	"strings"
	"time"

	"github.com/ayumu-h/curio"
)

// DefaultFeedTimeout bounds each feed candidate fetch.
const DefaultFeedTimeout = 7 * time.Second

// Ensure Resolver implements curio.FeedResolver at compile time.
var _ curio.FeedResolver = (*Resolver)(nil)

// recognizedFeedTypes are the type-attribute substrings that mark a
// <link rel="alternate"> as a syndication feed.
var recognizedFeedTypes = []string{"xml", "json", "atom", "rss"}

// Resolver tries candidate feed links in document order and stops at the
// first that both fetches and parses. Failures along the way are misses,
// not errors: a page without a working feed is normal.
type Resolver struct {
	Fetcher curio.Fetcher
	Parser  curio.FeedParser
	Timeout time.Duration
}

// NewResolver creates a Resolver with the default per-candidate timeout.
func NewResolver(fetcher curio.Fetcher, parser curio.FeedParser) *Resolver {
	return &Resolver{Fetcher: fetcher, Parser: parser, Timeout: DefaultFeedTimeout}
}

// Resolve implements curio.FeedResolver.
func (r *Resolver) Resolve(ctx context.Context, links []curio.FeedLink) (*curio.FeedSummary, string, error) {
	for _, link := range links {
		if !isFeedType(link.Type) {
			continue
		}

		summary := r.tryCandidate(ctx, link)
		if summary != nil {
			return summary, link.URL, nil
		}
	}
	return nil, "", nil
}

func (r *Resolver) tryCandidate(ctx context.Context, link curio.FeedLink) *curio.FeedSummary {
	fetchCtx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	result, err := r.Fetcher.Fetch(fetchCtx, link.URL)
	if err != nil {
		return nil
	}

	// The response header knows better than the link attribute what the
	// document actually is.
	contentType := result.ContentType
	if contentType == "" {
		contentType = link.Type
	}

	summary, err := r.Parser.Parse([]byte(result.Body), contentType)
	if err != nil {
		return nil
	}
	return summary
}

func isFeedType(linkType string) bool {
	lower := strings.ToLower(linkType)
	for _, marker := range recognizedFeedTypes {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
