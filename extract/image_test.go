package extract_test

import (
	"testing"

	"github.com/ayumu-h/curio/extract"
	"github.com/stretchr/testify/assert"
)

func TestIsGenericImage(t *testing.T) {
	t.Parallel()

	tokens := []string{"mycomicsite"}

	tests := []struct {
		name  string
		url   string
		want  bool
	}{
		{"cover art", "https://cdn.example.com/covers/cover-art.jpg", false},
		{"webp cover", "https://cdn.example.com/art/hero.webp", false},
		{"og default", "https://example.com/assets/og-image-default.png", true},
		{"logo keyword", "https://example.com/img/site-logo.png", true},
		{"favicon", "https://example.com/favicon.ico", true},
		{"no extension", "https://example.com/image", true},
		{"site token in filename", "https://example.com/img/mycomicsite-banner.png", true},
		{"site token in directory only", "https://mycomicsite.com/covers/hero.jpg", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, extract.IsGenericImage(tt.url, tokens))
		})
	}
}

func TestSelectImage(t *testing.T) {
	t.Parallel()

	base := "https://mycomicsite.com/hero/3"
	tokens := []string{"mycomicsite"}

	t.Run("generic metadata image loses to strong inline image", func(t *testing.T) {
		t.Parallel()

		got := extract.SelectImage(
			[]string{"https://mycomicsite.com/assets/og-image-default.png"},
			[]string{"/covers/cover-art.jpg"},
			tokens, base)

		assert.Equal(t, "https://mycomicsite.com/covers/cover-art.jpg", got)
	})

	t.Run("metadata image wins when not generic", func(t *testing.T) {
		t.Parallel()

		got := extract.SelectImage(
			[]string{"https://cdn.mycomicsite.com/hero-cover.jpg"},
			[]string{"/covers/other.jpg"},
			tokens, base)

		assert.Equal(t, "https://cdn.mycomicsite.com/hero-cover.jpg", got)
	})

	t.Run("all generic falls back to the first candidate", func(t *testing.T) {
		t.Parallel()

		got := extract.SelectImage(
			[]string{"https://mycomicsite.com/assets/og-image-default.png"},
			[]string{"/img/site-logo.png"},
			tokens, base)

		assert.Equal(t, "https://mycomicsite.com/assets/og-image-default.png", got)
	})

	t.Run("relative inline images resolve against the page", func(t *testing.T) {
		t.Parallel()

		got := extract.SelectImage(nil, []string{"../art/panel.png"}, tokens, base)

		assert.Equal(t, "https://mycomicsite.com/art/panel.png", got)
	})

	t.Run("no candidates yields empty", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, extract.SelectImage(nil, nil, tokens, base))
	})
}
