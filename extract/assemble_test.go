package extract_test

import (
	"context"
	"testing"
	"time"

	"github.com/ayumu-h/curio"
	"github.com/ayumu-h/curio/extract"
	"github.com/ayumu-h/curio/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const heroPage = `<!DOCTYPE html>
<html lang="ja">
<head>
	<meta property="og:site_name" content="MyComicSite">
	<meta property="og:title" content="第12話 新たな旅 - MyComicSite">
	<meta property="og:image" content="/assets/og-image-default.png">
	<meta name="author" content="山田太郎">
	<meta name="description" content="<b>勇者</b>の冒険の物語">
	<link rel="alternate" type="application/rss+xml" href="/feed.xml">
	<title>第12話 新たな旅 - MyComicSite</title>
</head>
<body>
	<script type="application/ld+json">{"@type": "ComicSeries", "name": "英雄物語", "author": {"@type": "Person", "name": "山田太郎"}, "datePublished": "2024-01-15"}</script>
	<h1>第12話 新たな旅</h1>
	<img src="/covers/hero-12.jpg">
	<div>作者：山田太郎</div>
</body>
</html>`

func pageFetcher(t *testing.T, body string) *mock.Fetcher {
	t.Helper()
	return &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (*curio.FetchResult, error) {
			return &curio.FetchResult{Body: body, ContentType: "text/html; charset=utf-8", StatusCode: 200}, nil
		},
	}
}

func TestAssembler_Extract(t *testing.T) {
	t.Parallel()

	t.Run("fuses page schema feed and text signals", func(t *testing.T) {
		t.Parallel()

		resolver := &mock.FeedResolver{
			ResolveFn: func(ctx context.Context, links []curio.FeedLink) (*curio.FeedSummary, string, error) {
				require.Len(t, links, 1)
				assert.Equal(t, "https://mycomicsite.com/feed.xml", links[0].URL)
				assert.Equal(t, "application/rss+xml", links[0].Type)
				return &curio.FeedSummary{Title: "英雄物語", Author: "山田太郎"}, links[0].URL, nil
			},
		}

		a := extract.NewAssembler(pageFetcher(t, heroPage), resolver, extract.DefaultConfig())
		meta, err := a.Extract(context.Background(), "https://mycomicsite.com/hero/12")

		require.NoError(t, err)
		assert.Equal(t, "英雄物語", meta.PrimaryTitle)
		assert.Equal(t, "MyComicSite", meta.SourceName)
		assert.Equal(t, "https://mycomicsite.com/feed.xml", meta.FeedURL)
		assert.Equal(t, "ja", meta.Language)
		assert.Equal(t, "勇者の冒険の物語", meta.Description)
		assert.Equal(t, "https://mycomicsite.com/covers/hero-12.jpg", meta.Image)

		assert.Equal(t, "山田太郎", meta.Author)
		require.NotEmpty(t, meta.Creators)
		top := meta.Creators[0]
		assert.Equal(t, "山田太郎", top.Name)
		assert.Equal(t, "author", top.Role)
		assert.Equal(t, 1.0, top.Confidence)
		assert.Len(t, top.Sources, 4)

		require.NotNil(t, meta.PublishedAt)
		assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), *meta.PublishedAt)

		assert.Contains(t, meta.Facts, curio.Fact{Type: curio.FactAuthor, Label: "作者", Value: "山田太郎"})
	})

	t.Run("episode parsed from the primary title", func(t *testing.T) {
		t.Parallel()

		page := `<html><head><title>第12話 新たな旅 - MyComicSite</title></head><body></body></html>`
		a := extract.NewAssembler(pageFetcher(t, page), nil, extract.DefaultConfig())

		meta, err := a.Extract(context.Background(), "https://mycomicsite.com/hero/12")

		require.NoError(t, err)
		assert.Equal(t, "第12話 新たな旅", meta.PrimaryTitle)
		require.NotNil(t, meta.Episode)
		assert.Equal(t, "第12話", meta.Episode.Raw)
		require.NotNil(t, meta.Episode.Number)
		assert.Equal(t, 12, *meta.Episode.Number)
	})

	t.Run("schema episode wins over the title pattern", func(t *testing.T) {
		t.Parallel()

		page := `<html><head><title>第12話</title></head><body>
<script type="application/ld+json">{"@type": "TVEpisode", "episodeNumber": "第３話"}</script>
</body></html>`
		a := extract.NewAssembler(pageFetcher(t, page), nil, extract.DefaultConfig())

		meta, err := a.Extract(context.Background(), "https://example.com/x")

		require.NoError(t, err)
		require.NotNil(t, meta.Episode)
		assert.Equal(t, "第３話", meta.Episode.Raw)
		require.NotNil(t, meta.Episode.Number)
		assert.Equal(t, 3, *meta.Episode.Number)
	})

	t.Run("unparseable date meta falls through to the next key", func(t *testing.T) {
		t.Parallel()

		page := `<html><head><title>英雄物語</title>
<meta property="article:published_time" content="soon">
<meta name="date" content="2024-01-15">
</head><body></body></html>`
		a := extract.NewAssembler(pageFetcher(t, page), nil, extract.DefaultConfig())

		meta, err := a.Extract(context.Background(), "https://example.com/x")

		require.NoError(t, err)
		require.NotNil(t, meta.PublishedAt)
		assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), *meta.PublishedAt)
	})

	t.Run("rejects non-http targets before fetching", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*curio.FetchResult, error) {
				t.Fatal("fetch should not be called")
				return nil, nil
			},
		}
		a := extract.NewAssembler(fetcher, nil, extract.DefaultConfig())

		_, err := a.Extract(context.Background(), "ftp://example.com/x")

		assert.Equal(t, curio.EINVALID, curio.ErrorCode(err))
	})

	t.Run("page fetch failure aborts the run", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*curio.FetchResult, error) {
				return nil, curio.Errorf(curio.EUNAVAILABLE, "connection refused")
			},
		}
		a := extract.NewAssembler(fetcher, nil, extract.DefaultConfig())

		_, err := a.Extract(context.Background(), "https://example.com/x")

		assert.Equal(t, curio.EUNAVAILABLE, curio.ErrorCode(err))
	})

	t.Run("feed resolution failure degrades to an absent feed", func(t *testing.T) {
		t.Parallel()

		resolver := &mock.FeedResolver{
			ResolveFn: func(ctx context.Context, links []curio.FeedLink) (*curio.FeedSummary, string, error) {
				return nil, "", curio.Errorf(curio.EUNAVAILABLE, "feed down")
			},
		}
		a := extract.NewAssembler(pageFetcher(t, heroPage), resolver, extract.DefaultConfig())

		meta, err := a.Extract(context.Background(), "https://mycomicsite.com/hero/12")

		require.NoError(t, err)
		assert.Empty(t, meta.FeedURL)
		assert.Equal(t, "英雄物語", meta.PrimaryTitle)
	})

	t.Run("long descriptions truncate with an ellipsis", func(t *testing.T) {
		t.Parallel()

		cfg := extract.DefaultConfig()
		cfg.DescriptionLimit = 5
		page := `<html><head><meta name="description" content="一二三四五六七八九十"></head><body></body></html>`
		a := extract.NewAssembler(pageFetcher(t, page), nil, cfg)

		meta, err := a.Extract(context.Background(), "https://example.com/x")

		require.NoError(t, err)
		assert.Equal(t, "一二三四五…", meta.Description)
	})

	t.Run("empty page yields empty containers not nil", func(t *testing.T) {
		t.Parallel()

		a := extract.NewAssembler(pageFetcher(t, "<html><head></head><body></body></html>"), nil, extract.DefaultConfig())

		meta, err := a.Extract(context.Background(), "https://example.com/x")

		require.NoError(t, err)
		assert.Empty(t, meta.PrimaryTitle)
		assert.NotNil(t, meta.AlternateTitles)
		assert.NotNil(t, meta.Creators)
		assert.NotNil(t, meta.Keywords)
		assert.NotNil(t, meta.Facts)
	})
}
