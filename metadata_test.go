package curio_test

import (
	"testing"
	"time"

	"github.com/ayumu-h/curio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTargetURL(t *testing.T) {
	t.Parallel()

	t.Run("accepts http and https", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, curio.ValidateTargetURL("http://example.com/page"))
		assert.NoError(t, curio.ValidateTargetURL("https://example.com/page"))
	})

	t.Run("rejects other schemes", func(t *testing.T) {
		t.Parallel()
		for _, raw := range []string{
			"ftp://example.com/file",
			"file:///etc/passwd",
			"javascript:alert(1)",
		} {
			err := curio.ValidateTargetURL(raw)
			require.Error(t, err, raw)
			assert.Equal(t, curio.EINVALID, curio.ErrorCode(err))
		}
	})

	t.Run("rejects relative and empty URLs", func(t *testing.T) {
		t.Parallel()
		for _, raw := range []string{"", "/relative/path", "example.com/page"} {
			err := curio.ValidateTargetURL(raw)
			require.Error(t, err, raw)
			assert.Equal(t, curio.EINVALID, curio.ErrorCode(err))
		}
	})
}

func TestNewItemFromMetadata(t *testing.T) {
	t.Parallel()

	published := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	num := 12
	meta := &curio.Metadata{
		PrimaryTitle:  "英雄物語",
		OriginalTitle: "Hero Story",
		Author:        "山田太郎",
		Creators: []curio.Creator{
			{Name: "山田太郎", Role: "author", Confidence: 0.9},
		},
		Image:       "https://example.com/cover.jpg",
		Language:    "ja",
		Episode:     &curio.Episode{Raw: "第12話", Number: &num},
		Description: "a story",
		Keywords:    []string{"fantasy"},
		SourceName:  "Example",
		FeedURL:     "https://example.com/feed.xml",
		PublishedAt: &published,
	}

	item := curio.NewItemFromMetadata("https://example.com/hero", meta)

	assert.Equal(t, "英雄物語", item.Title)
	assert.Equal(t, "Hero Story", item.OriginalTitle)
	assert.Equal(t, "https://example.com/hero", item.URL)
	assert.Equal(t, "山田太郎", item.Author)
	assert.Equal(t, "第12話", item.Episode)
	assert.Equal(t, "https://example.com/feed.xml", item.FeedURL)
	require.NotNil(t, item.PublishedAt)
	assert.Equal(t, published, *item.PublishedAt)
	assert.Empty(t, item.CabinetID, "cabinet is assigned by the caller")
}

func TestItemValidate(t *testing.T) {
	t.Parallel()

	t.Run("requires cabinet and title", func(t *testing.T) {
		t.Parallel()

		err := (&curio.Item{Title: "t"}).Validate()
		assert.Equal(t, curio.EINVALID, curio.ErrorCode(err))

		err = (&curio.Item{CabinetID: "c1"}).Validate()
		assert.Equal(t, curio.EINVALID, curio.ErrorCode(err))
	})

	t.Run("rejects non-http item URL", func(t *testing.T) {
		t.Parallel()

		item := &curio.Item{CabinetID: "c1", Title: "t", URL: "ftp://example.com"}
		assert.Equal(t, curio.EINVALID, curio.ErrorCode(item.Validate()))
	})
}
