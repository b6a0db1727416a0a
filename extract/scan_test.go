package extract_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/ayumu-h/curio/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanPage(t *testing.T) {
	t.Parallel()

	t.Run("head metadata", func(t *testing.T) {
		t.Parallel()

		markup := `<!DOCTYPE html>
<html lang="ja">
<head>
	<meta property="OG:Title" content="英雄物語">
	<meta name="description" content="a story">
	<meta name="empty" content="">
	<link rel="alternate" type="application/rss+xml" href="/feed.xml" title="Feed">
	<title>英雄物語 - MyComicSite</title>
</head>
<body></body>
</html>`

		scan := extract.ScanPage(markup, "https://example.com/hero", 30)

		assert.Equal(t, "ja", scan.Lang)
		assert.Equal(t, "英雄物語 - MyComicSite", scan.Title)

		require.Len(t, scan.Meta, 2)
		assert.Equal(t, extract.MetaTag{Property: "og:title", Content: "英雄物語"}, scan.Meta[0])
		assert.Equal(t, extract.MetaTag{Name: "description", Content: "a story"}, scan.Meta[1])

		require.Len(t, scan.Links, 1)
		assert.Equal(t, "alternate", scan.Links[0].Rel)
		assert.Equal(t, "application/rss+xml", scan.Links[0].Type)
		assert.Equal(t, "/feed.xml", scan.Links[0].Href)
	})

	t.Run("missing head falls back to document start", func(t *testing.T) {
		t.Parallel()

		markup := `<meta property="og:title" content="Headless"><p>body</p>`
		scan := extract.ScanPage(markup, "https://example.com/", 30)

		require.Len(t, scan.Meta, 1)
		assert.Equal(t, "Headless", scan.Meta[0].Content)
	})

	t.Run("header element does not open the head section", func(t *testing.T) {
		t.Parallel()

		markup := `<html><header><meta name="in-header" content="x"></header></html>`
		scan := extract.ScanPage(markup, "https://example.com/", 30)

		// No <head>: the fallback window covers the whole short document.
		require.Len(t, scan.Meta, 1)
	})

	t.Run("unterminated head is capped at the fallback window", func(t *testing.T) {
		t.Parallel()

		markup := `<html><head><meta name="near" content="yes">` +
			strings.Repeat("<p>filler</p>", 2000) +
			`<meta name="far" content="no"></html>`
		scan := extract.ScanPage(markup, "https://example.com/", 30)

		require.Len(t, scan.Meta, 1)
		assert.Equal(t, "near", scan.Meta[0].Name)
	})

	t.Run("meta outside head is ignored when head exists", func(t *testing.T) {
		t.Parallel()

		markup := `<html><head><meta name="inside" content="yes"></head><body><meta name="outside" content="no"></body></html>`
		scan := extract.ScanPage(markup, "https://example.com/", 30)

		require.Len(t, scan.Meta, 1)
		assert.Equal(t, "inside", scan.Meta[0].Name)
	})

	t.Run("ld+json blocks decode individually", func(t *testing.T) {
		t.Parallel()

		markup := `<html><head></head><body>
<script type="application/ld+json">{"@type": "Book", "name": "ok"}</script>
<script type="application/ld+json">{not json</script>
<script type="application/ld+json">{"@type": "Article", "name": "also ok"}</script>
<script>var ignored = {};</script>
</body></html>`

		scan := extract.ScanPage(markup, "https://example.com/", 30)

		assert.Len(t, scan.Schema, 2)
	})

	t.Run("first acceptable heading wins", func(t *testing.T) {
		t.Parallel()

		markup := `<body><h1>作者：山田</h1><h2>英雄物語 第3話</h2><h1>後の見出し</h1></body>`
		scan := extract.ScanPage(markup, "https://example.com/", 30)

		assert.Equal(t, "英雄物語 第3話", scan.Heading)
	})

	t.Run("inline images resolve dedupe and cap", func(t *testing.T) {
		t.Parallel()

		markup := `<body>
<img src="/a.jpg">
<img data-src="/b.jpg">
<img src="/a.jpg">
<img src="data:image/png;base64,xxxx">
<img srcset="/c-small.jpg 480w, /c-large.jpg 1080w">
</body>`

		scan := extract.ScanPage(markup, "https://example.com/page", 30)

		assert.Equal(t, []string{
			"https://example.com/a.jpg",
			"https://example.com/b.jpg",
			"https://example.com/c-small.jpg",
		}, scan.Images)
	})

	t.Run("image cap is enforced", func(t *testing.T) {
		t.Parallel()

		var b strings.Builder
		b.WriteString("<body>")
		for i := 0; i < 10; i++ {
			fmt.Fprintf(&b, `<img src="/img-%d.jpg">`, i)
		}
		b.WriteString("</body>")

		scan := extract.ScanPage(b.String(), "https://example.com/", 3)

		assert.Len(t, scan.Images, 3)
	})

	t.Run("noscript content is ignored", func(t *testing.T) {
		t.Parallel()

		markup := `<body><noscript><img src="/tracking.gif"><h1>noscript heading</h1></noscript><h2>real heading</h2></body>`
		scan := extract.ScanPage(markup, "https://example.com/", 30)

		assert.Empty(t, scan.Images)
		assert.Equal(t, "real heading", scan.Heading)
	})
}
