package curio

import "context"

// FetchResult is the outcome of a successful document fetch. The response
// content type is carried alongside the body because feed parsing sniffs
// it to choose a parser.
type FetchResult struct {
	Body        string
	ContentType string
	StatusCode  int
}

// Fetcher retrieves documents over HTTP with a fixed client signature.
// Implementations apply their own Accept header and hard timeout; the
// context controls cancellation. Non-2xx responses and transport failures
// surface as EUNAVAILABLE errors, never as panics.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// HostLimiter throttles outbound requests per host.
type HostLimiter interface {
	// Wait blocks until the limiter allows a request to the host,
	// or the context is canceled.
	Wait(ctx context.Context, host string) error
}
