package extract_test

import (
	"testing"

	"github.com/ayumu-h/curio"
	"github.com/ayumu-h/curio/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testWeights = map[curio.Source]float64{
	curio.SourceSchema:  0.9,
	curio.SourceMeta:    0.8,
	curio.SourceTwitter: 0.6,
	curio.SourceFeed:    0.5,
	curio.SourcePage:    0.45,
}

func TestCreatorSet(t *testing.T) {
	t.Parallel()

	t.Run("single mention opens entry at source weight", func(t *testing.T) {
		t.Parallel()

		set := extract.NewCreatorSet(testWeights)
		set.Add(extract.CreatorMention{Name: "山田太郎", Source: curio.SourceSchema, Role: "author"})

		creators := set.Creators()
		require.Len(t, creators, 1)
		assert.Equal(t, "山田太郎", creators[0].Name)
		assert.Equal(t, "author", creators[0].Role)
		assert.InDelta(t, 0.9, creators[0].Confidence, 1e-9)
		assert.Equal(t, []curio.Source{curio.SourceSchema}, creators[0].Sources)
	})

	t.Run("repeated mentions accumulate and clamp at one", func(t *testing.T) {
		t.Parallel()

		set := extract.NewCreatorSet(testWeights)
		set.Add(extract.CreatorMention{Name: "山田太郎", Source: curio.SourceSchema})
		set.Add(extract.CreatorMention{Name: "山田太郎", Source: curio.SourceMeta})
		set.Add(extract.CreatorMention{Name: "山田太郎", Source: curio.SourcePage})

		creators := set.Creators()
		require.Len(t, creators, 1)
		assert.Equal(t, 1.0, creators[0].Confidence)
		assert.Len(t, creators[0].Sources, 3)
	})

	t.Run("first non-empty role wins", func(t *testing.T) {
		t.Parallel()

		set := extract.NewCreatorSet(testWeights)
		set.Add(extract.CreatorMention{Name: "山田太郎", Source: curio.SourceMeta})
		set.Add(extract.CreatorMention{Name: "山田太郎", Source: curio.SourceSchema, Role: "author"})
		set.Add(extract.CreatorMention{Name: "山田太郎", Source: curio.SourceFeed, Role: "editor"})

		creators := set.Creators()
		require.Len(t, creators, 1)
		assert.Equal(t, "author", creators[0].Role)
	})

	t.Run("provenance set holds each source once", func(t *testing.T) {
		t.Parallel()

		set := extract.NewCreatorSet(testWeights)
		set.Add(extract.CreatorMention{Name: "山田太郎", Source: curio.SourcePage})
		set.Add(extract.CreatorMention{Name: "山田太郎", Source: curio.SourcePage})

		creators := set.Creators()
		require.Len(t, creators, 1)
		assert.InDelta(t, 0.9, creators[0].Confidence, 1e-9)
		assert.Equal(t, []curio.Source{curio.SourcePage}, creators[0].Sources)
	})

	t.Run("explicit organization flag overrides lexicon", func(t *testing.T) {
		t.Parallel()

		yes := true
		set := extract.NewCreatorSet(testWeights)
		set.Add(extract.CreatorMention{Name: "山田太郎", Source: curio.SourceSchema, IsOrganization: &yes})

		creators := set.Creators()
		require.Len(t, creators, 1)
		assert.True(t, creators[0].IsOrganization)
	})

	t.Run("lexicon classifies organizations by marker", func(t *testing.T) {
		t.Parallel()

		set := extract.NewCreatorSet(testWeights)
		set.Add(extract.CreatorMention{Name: "未来出版社", Source: curio.SourceSchema, Role: "publisher"})

		creators := set.Creators()
		require.Len(t, creators, 1)
		assert.True(t, creators[0].IsOrganization)
	})

	t.Run("sorted by descending confidence with stable ties", func(t *testing.T) {
		t.Parallel()

		set := extract.NewCreatorSet(testWeights)
		set.Add(extract.CreatorMention{Name: "佐藤", Source: curio.SourceFeed})
		set.Add(extract.CreatorMention{Name: "山田", Source: curio.SourceSchema})
		set.Add(extract.CreatorMention{Name: "鈴木", Source: curio.SourceFeed})

		creators := set.Creators()
		require.Len(t, creators, 3)
		assert.Equal(t, "山田", creators[0].Name)
		assert.Equal(t, "佐藤", creators[1].Name)
		assert.Equal(t, "鈴木", creators[2].Name)
	})

	t.Run("blank names are ignored", func(t *testing.T) {
		t.Parallel()

		set := extract.NewCreatorSet(testWeights)
		set.Add(extract.CreatorMention{Name: "   ", Source: curio.SourceSchema})

		assert.Empty(t, set.Creators())
	})
}
