package mock

import (
	"context"

	"github.com/ayumu-h/curio"
)

var _ curio.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of curio.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*curio.FetchResult, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*curio.FetchResult, error) {
	return f.FetchFn(ctx, url)
}

var _ curio.HostLimiter = (*HostLimiter)(nil)

// HostLimiter is a mock implementation of curio.HostLimiter.
type HostLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	return l.WaitFn(ctx, host)
}
