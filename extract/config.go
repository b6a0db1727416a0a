// Package extract implements the multi-source metadata extraction
// pipeline: it scans a fetched page for head metadata, embedded
// structured data, inline images and labeled text facts, resolves a
// linked syndication feed, and fuses all sources into one
// curio.Metadata record with documented priority and tie-break rules.
package extract

import (
	"time"

	"github.com/ayumu-h/curio"
)

// Config carries the tunables of the pipeline. Constructing it explicitly
// (rather than reading package-level constants) keeps the pipeline
// context-free and testable with alternate weights and timeouts.
type Config struct {
	// UserAgent is the fixed identifying client signature sent with
	// every outbound request.
	UserAgent string

	// PageTimeout bounds the primary page fetch.
	PageTimeout time.Duration
	// FeedTimeout bounds each feed candidate fetch.
	FeedTimeout time.Duration
	// PreviewTimeout bounds the reduced preview fetch.
	PreviewTimeout time.Duration

	// Weights are the per-source confidence weights for creator mentions.
	Weights map[curio.Source]float64

	// MaxTextLines caps the flattened text the fact scanner inspects.
	MaxTextLines int
	// MaxInlineImages caps the inline <img> candidates collected.
	MaxInlineImages int
	// DescriptionLimit is the truncation length for descriptions.
	DescriptionLimit int
}

// DefaultConfig returns the production configuration.
func DefaultConfig() Config {
	return Config{
		UserAgent:      "curio/1.0 (+https://github.com/ayumu-h/curio)",
		PageTimeout:    8 * time.Second,
		FeedTimeout:    7 * time.Second,
		PreviewTimeout: 7 * time.Second,
		Weights: map[curio.Source]float64{
			curio.SourceSchema:  0.9,
			curio.SourceMeta:    0.8,
			curio.SourceTwitter: 0.6,
			curio.SourceFeed:    0.5,
			curio.SourcePage:    0.45,
		},
		MaxTextLines:     800,
		MaxInlineImages:  30,
		DescriptionLimit: 500,
	}
}
