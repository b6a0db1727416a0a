package curio

import "context"

// FeedLink is a resolved, absolute syndication feed URL together with its
// declared MIME type from the page's <link rel="alternate"> element.
type FeedLink struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

// FeedSummary is the normalized shape shared by all feed flavors
// (RSS, Atom, JSON Feed). Date fields hold the raw strings found in the
// feed; the assembler normalizes them. All fields are optional.
type FeedSummary struct {
	Title           string
	AlternateTitles []string
	Author          string
	Language        string
	Image           string
	Episode         string
	Summary         string
	SiteName        string
	Published       string
	Updated         string
	NextUpdate      string
}

// FeedParser parses raw feed bytes into a FeedSummary. The content type
// (response header first, declared link type as fallback) selects the
// JSON Feed or XML parser. A parse failure returns an error; the caller
// treats it as "no result for this feed".
type FeedParser interface {
	Parse(data []byte, contentType string) (*FeedSummary, error)
}

// FeedResolver tries candidate feed links in document order and returns
// the summary of the first one that fetches and parses successfully,
// along with its URL. A fully unsuccessful resolution returns
// (nil, "", nil): feed absence is not an error.
type FeedResolver interface {
	Resolve(ctx context.Context, links []FeedLink) (*FeedSummary, string, error)
}
