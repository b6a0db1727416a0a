// Package http provides the HTTP implementations of curio: the outbound
// document fetcher used by the extraction pipeline, and the API server
// consumed by the CRUD screens.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/ayumu-h/curio"
)

// DefaultFetchTimeout caps a single outbound request when the caller's
// context carries no tighter deadline.
const DefaultFetchTimeout = 10 * time.Second

// maxBodySize bounds how much of a response body is read.
const maxBodySize = 10 * 1024 * 1024

// Accept headers for the two kinds of documents the pipeline fetches.
const (
	AcceptHTML = "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8"
	AcceptFeed = "application/rss+xml,application/atom+xml,application/feed+json,application/json;q=0.9,application/xml;q=0.8,text/xml;q=0.7"
)

// Ensure Fetcher implements curio.Fetcher at compile time.
var _ curio.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves documents with a fixed identifying User-Agent and a
// per-purpose Accept header. Transport failures, timeouts and non-2xx
// responses surface as EUNAVAILABLE so callers can downgrade them to
// "no data from this source".
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	accept    string
	limiter   curio.HostLimiter
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the hard request timeout.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the client signature sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithAccept sets the Accept header. Defaults to AcceptHTML.
func WithAccept(accept string) Option {
	return func(f *Fetcher) {
		f.accept = accept
	}
}

// WithLimiter throttles outbound requests per host.
func WithLimiter(limiter curio.HostLimiter) Option {
	return func(f *Fetcher) {
		f.limiter = limiter
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
		accept:  AcceptHTML,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the document at the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*curio.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, curio.Errorf(curio.EINVALID, "invalid URL %q: %v", url, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", f.accept)

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, req.URL.Host); err != nil {
			return nil, curio.Errorf(curio.EUNAVAILABLE, "rate limit wait for %s: %v", req.URL.Host, err)
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, curio.Errorf(curio.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, curio.Errorf(curio.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, curio.Errorf(curio.EUNAVAILABLE, "read %s: %v", url, err)
	}

	return &curio.FetchResult{
		Body:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}, nil
}
