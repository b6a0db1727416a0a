package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ayumu-h/curio"
	curiohttp "github.com/ayumu-h/curio/http"
	"github.com/ayumu-h/curio/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns body content type and status", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html></html>"))
		}))
		defer srv.Close()

		f := curiohttp.NewFetcher()
		result, err := f.Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", result.Body)
		assert.Equal(t, "text/html; charset=utf-8", result.ContentType)
		assert.Equal(t, http.StatusOK, result.StatusCode)
	})

	t.Run("sends the configured headers", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "curio-test/1.0", r.Header.Get("User-Agent"))
			assert.Equal(t, curiohttp.AcceptFeed, r.Header.Get("Accept"))
		}))
		defer srv.Close()

		f := curiohttp.NewFetcher(
			curiohttp.WithUserAgent("curio-test/1.0"),
			curiohttp.WithAccept(curiohttp.AcceptFeed),
		)
		_, err := f.Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
	})

	t.Run("non-2xx is EUNAVAILABLE", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		f := curiohttp.NewFetcher()
		_, err := f.Fetch(context.Background(), srv.URL)

		require.Error(t, err)
		assert.Equal(t, curio.EUNAVAILABLE, curio.ErrorCode(err))
	})

	t.Run("connection failure is EUNAVAILABLE", func(t *testing.T) {
		t.Parallel()

		f := curiohttp.NewFetcher(curiohttp.WithTimeout(time.Second))
		_, err := f.Fetch(context.Background(), "http://127.0.0.1:1/unreachable")

		require.Error(t, err)
		assert.Equal(t, curio.EUNAVAILABLE, curio.ErrorCode(err))
	})

	t.Run("malformed URL is EINVALID", func(t *testing.T) {
		t.Parallel()

		f := curiohttp.NewFetcher()
		_, err := f.Fetch(context.Background(), "http://exa mple.com/")

		require.Error(t, err)
		assert.Equal(t, curio.EINVALID, curio.ErrorCode(err))
	})

	t.Run("waits on the host limiter before the request", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer srv.Close()

		var waited string
		limiter := &mock.HostLimiter{
			WaitFn: func(ctx context.Context, host string) error {
				waited = host
				return nil
			},
		}

		f := curiohttp.NewFetcher(curiohttp.WithLimiter(limiter))
		_, err := f.Fetch(context.Background(), srv.URL+"/page")

		require.NoError(t, err)
		assert.NotEmpty(t, waited)
	})

	t.Run("limiter failure is EUNAVAILABLE", func(t *testing.T) {
		t.Parallel()

		limiter := &mock.HostLimiter{
			WaitFn: func(ctx context.Context, host string) error {
				return context.DeadlineExceeded
			},
		}

		f := curiohttp.NewFetcher(curiohttp.WithLimiter(limiter))
		_, err := f.Fetch(context.Background(), "http://example.com/")

		require.Error(t, err)
		assert.Equal(t, curio.EUNAVAILABLE, curio.ErrorCode(err))
	})
}
