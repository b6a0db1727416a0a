package curio

import (
	"context"
	"net/url"
	"time"
)

// Source identifies which signal source contributed a piece of metadata.
type Source string

// Signal sources, in rough order of reliability.
const (
	SourceSchema  Source = "schema"  // embedded structured data (JSON-LD)
	SourceMeta    Source = "meta"    // Open Graph and plain meta tags
	SourceTwitter Source = "twitter" // Twitter Card meta tags
	SourceFeed    Source = "feed"    // linked syndication feed
	SourcePage    Source = "page"    // visible page text
)

// Creator is one attributed creator of a work, with an accumulated
// confidence score and the set of sources that mentioned the name.
type Creator struct {
	Name           string   `json:"name"`
	Role           string   `json:"role,omitempty"`
	IsOrganization bool     `json:"isOrganization"`
	Confidence     float64  `json:"confidence"`
	Sources        []Source `json:"sources"`
}

// FactType classifies a labeled fact found on a page.
type FactType string

// Fact types recognized by the text scanner and schema summarizer.
const (
	FactAuthor    FactType = "author"
	FactPublisher FactType = "publisher"
	FactPages     FactType = "pages"
	FactTag       FactType = "tag"
	FactDate      FactType = "date"
	FactTitle     FactType = "title"
	FactName      FactType = "name"
	FactOther     FactType = "other"
)

// Fact is a typed, labeled value extracted from a page.
// Facts are deduplicated by the case-insensitive (type, label, value) key.
type Fact struct {
	Type  FactType `json:"type"`
	Label string   `json:"label"`
	Value string   `json:"value"`
}

// Episode describes an episode/chapter reference. Raw preserves the
// matched text; Number is nil when the raw text carries no usable number.
type Episode struct {
	Raw    string `json:"raw,omitempty"`
	Number *int   `json:"number"`
}

// Metadata is the assembled description of the creative work a page
// represents. Every field is best-effort: absent signals leave the zero
// value (empty string, nil pointer, empty slice).
type Metadata struct {
	PrimaryTitle    string     `json:"primaryTitle,omitempty"`
	OriginalTitle   string     `json:"originalTitle,omitempty"`
	AlternateTitles []string   `json:"alternateTitles"`
	Image           string     `json:"image,omitempty"`
	Language        string     `json:"language,omitempty"`
	Creators        []Creator  `json:"creators"`
	Author          string     `json:"author,omitempty"`
	Episode         *Episode   `json:"episode,omitempty"`
	FeedURL         string     `json:"feedUrl,omitempty"`
	SourceName      string     `json:"sourceName,omitempty"`
	Description     string     `json:"description,omitempty"`
	NextUpdateAt    *time.Time `json:"nextUpdateAt"`
	PublishedAt     *time.Time `json:"publishedAt"`
	UpdatedAt       *time.Time `json:"updatedAt"`
	Keywords        []string   `json:"keywords"`
	Facts           []Fact     `json:"facts"`
}

// Preview is the reduced record produced by the lightweight link-preview
// path, which skips feeds, structured data and text scanning.
type Preview struct {
	Image    string `json:"image,omitempty"`
	Title    string `json:"title,omitempty"`
	Author   string `json:"author,omitempty"`
	SiteName string `json:"siteName,omitempty"`
}

// MetadataService runs the full extraction pipeline against a page URL.
type MetadataService interface {
	// Extract fetches the page and assembles a metadata record.
	// Only a failure of the page fetch itself returns an error;
	// failures of secondary sources degrade to absent fields.
	Extract(ctx context.Context, pageURL string) (*Metadata, error)
}

// PreviewService produces a link preview using the reduced heuristic.
type PreviewService interface {
	Preview(ctx context.Context, pageURL string) (*Preview, error)
}

// ValidateTargetURL rejects URLs the pipeline must never fetch: anything
// that is not an absolute http or https URL. Returns EINVALID.
func ValidateTargetURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return Errorf(EINVALID, "malformed URL %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "unsupported URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return Errorf(EINVALID, "URL %q has no host", raw)
	}
	return nil
}
