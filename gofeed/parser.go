// Package gofeed provides gofeed-based implementations of
// curio.FeedParser and curio.FeedResolver, normalizing RSS, Atom and
// JSON Feed documents into the shared curio.FeedSummary shape.
package gofeed

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/ayumu-h/curio"
	"github.com/beevik/etree"
	"github.com/mmcdole/gofeed"
)

// Ensure Parser implements curio.FeedParser at compile time.
var _ curio.FeedParser = (*Parser)(nil)

// Parser normalizes feed documents of any flavor. gofeed covers the
// standard fields; a second pass over the raw document picks up the
// nonstandard episode and next-update extensions some comic/novel sites
// publish, which gofeed does not surface.
type Parser struct {
	parser *gofeed.Parser
}

// NewParser creates a Parser.
func NewParser() *Parser {
	return &Parser{parser: gofeed.NewParser()}
}

// Parse implements curio.FeedParser. The content type decides how the
// extension pass reads the raw document; gofeed sniffs the flavor on its
// own. A parse failure returns EINVALID.
func (p *Parser) Parse(data []byte, contentType string) (*curio.FeedSummary, error) {
	feed, err := p.parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, curio.Errorf(curio.EINVALID, "unparsable feed: %v", err)
	}

	sum := &curio.FeedSummary{
		SiteName:  strings.TrimSpace(feed.Title),
		Language:  strings.TrimSpace(feed.Language),
		Title:     strings.TrimSpace(feed.Title),
		Published: feed.Published,
		Updated:   feed.Updated,
	}
	if feed.Image != nil {
		sum.Image = feed.Image.URL
	}

	var item *gofeed.Item
	if len(feed.Items) > 0 {
		item = feed.Items[0]
	}
	if item != nil {
		summarizeItem(item, sum)
	}

	if isJSONFeed(contentType, data) {
		applyJSONExtensions(data, sum)
	} else {
		applyXMLExtensions(data, sum)
	}
	if sum.Episode == "" && item != nil && item.ITunesExt != nil {
		sum.Episode = item.ITunesExt.Episode
	}

	return sum, nil
}

func summarizeItem(item *gofeed.Item, sum *curio.FeedSummary) {
	if title := strings.TrimSpace(item.Title); title != "" {
		// The feed title stays available as an alternate when the first
		// item carries its own title.
		if sum.Title != "" && sum.Title != title {
			sum.AlternateTitles = append(sum.AlternateTitles, sum.Title)
		}
		sum.Title = title
	}

	switch {
	case len(item.Authors) > 0 && item.Authors[0] != nil:
		sum.Author = strings.TrimSpace(item.Authors[0].Name)
	case item.Author != nil:
		sum.Author = strings.TrimSpace(item.Author.Name)
	}

	if item.Image != nil && item.Image.URL != "" {
		sum.Image = item.Image.URL
	} else if enclosure := firstImageEnclosure(item); enclosure != "" {
		sum.Image = enclosure
	} else if mediaURL := mediaContentURL(item); mediaURL != "" {
		sum.Image = mediaURL
	}

	if item.Description != "" {
		sum.Summary = item.Description
	} else if item.Content != "" {
		sum.Summary = item.Content
	}

	if item.Published != "" {
		sum.Published = item.Published
	}
	if item.Updated != "" {
		sum.Updated = item.Updated
	}
}

func firstImageEnclosure(item *gofeed.Item) string {
	for _, enclosure := range item.Enclosures {
		if enclosure != nil && enclosure.URL != "" {
			return enclosure.URL
		}
	}
	return ""
}

func mediaContentURL(item *gofeed.Item) string {
	media, ok := item.Extensions["media"]
	if !ok {
		return ""
	}
	for _, content := range media["content"] {
		if u := content.Attrs["url"]; u != "" {
			return u
		}
	}
	return ""
}

func isJSONFeed(contentType string, data []byte) bool {
	if strings.Contains(strings.ToLower(contentType), "json") {
		return true
	}
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// applyXMLExtensions picks up <episode>, <episodeNumber>, <nextUpdate>
// and <next_update> elements from the first item/entry or the channel.
func applyXMLExtensions(data []byte, sum *curio.FeedSummary) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return
	}

	item := doc.FindElement("//item")
	if item == nil {
		item = doc.FindElement("//entry")
	}
	if item != nil && sum.Episode == "" {
		for _, tag := range []string{"episode", "episodeNumber"} {
			if el := item.FindElement(tag); el != nil {
				if text := strings.TrimSpace(el.Text()); text != "" {
					sum.Episode = text
					break
				}
			}
		}
	}
	if sum.NextUpdate == "" {
		for _, path := range []string{"//nextUpdate", "//next_update"} {
			if el := doc.FindElement(path); el != nil {
				if text := strings.TrimSpace(el.Text()); text != "" {
					sum.NextUpdate = text
					break
				}
			}
		}
	}
}

// applyJSONExtensions reads the nonstandard next_update/nextUpdate and
// per-item episode keys of a JSON Feed.
func applyJSONExtensions(data []byte, sum *curio.FeedSummary) {
	var doc struct {
		NextUpdate  string `json:"next_update"`
		NextUpdate2 string `json:"nextUpdate"`
		Items       []struct {
			Episode json.RawMessage `json:"episode"`
			Number  *float64        `json:"number"`
		} `json:"items"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return
	}

	if sum.NextUpdate == "" {
		if doc.NextUpdate != "" {
			sum.NextUpdate = doc.NextUpdate
		} else {
			sum.NextUpdate = doc.NextUpdate2
		}
	}
	if sum.Episode == "" && len(doc.Items) > 0 {
		first := doc.Items[0]
		if len(first.Episode) > 0 {
			var asString string
			var asNumber float64
			if err := json.Unmarshal(first.Episode, &asString); err == nil {
				sum.Episode = strings.TrimSpace(asString)
			} else if err := json.Unmarshal(first.Episode, &asNumber); err == nil {
				sum.Episode = strconv.FormatFloat(asNumber, 'f', -1, 64)
			}
		}
		if sum.Episode == "" && first.Number != nil {
			sum.Episode = strconv.FormatFloat(*first.Number, 'f', -1, 64)
		}
	}
}
