package extract

import (
	"context"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ayumu-h/curio"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// Ensure Assembler implements curio.MetadataService at compile time.
var _ curio.MetadataService = (*Assembler)(nil)

// Assembler runs the full extraction pipeline: fetch, tag scan, schema
// summary, feed resolution and text scan, then fuses every signal into
// one curio.Metadata record. Each sub-extractor is isolated: only a
// failed page fetch aborts the run.
type Assembler struct {
	Pages  curio.Fetcher
	Feeds  curio.FeedResolver
	Config Config

	sanitizer *bluemonday.Policy
}

// NewAssembler creates an Assembler. Feeds may be nil, in which case feed
// signals are simply absent.
func NewAssembler(pages curio.Fetcher, feeds curio.FeedResolver, cfg Config) *Assembler {
	return &Assembler{
		Pages:     pages,
		Feeds:     feeds,
		Config:    cfg,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Extract implements curio.MetadataService.
func (a *Assembler) Extract(ctx context.Context, pageURL string) (*curio.Metadata, error) {
	if err := curio.ValidateTargetURL(pageURL); err != nil {
		return nil, err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, a.Config.PageTimeout)
	defer cancel()
	page, err := a.Pages.Fetch(fetchCtx, pageURL)
	if err != nil {
		return nil, err
	}

	scan := ScanPage(page.Body, pageURL, a.Config.MaxInlineImages)
	schema := SummarizeSchema(scan.Schema, pageURL)
	feed, feedURL := a.resolveFeed(ctx, scan, pageURL)
	textFacts := ScanTextFacts(page.Body, a.Config.MaxTextLines)

	meta := &curio.Metadata{FeedURL: feedURL}
	meta.SourceName = resolveSiteName(scan, feed, pageURL)

	tokens := SiteTokens(pageURL, append([]string{meta.SourceName}, schema.SiteNames...)...)

	titles := ResolveTitles(
		titleCandidates(scan, schema, feed, textFacts),
		alternateCandidates(schema, feed, textFacts),
		tokens,
	)
	meta.PrimaryTitle = titles.Primary
	meta.OriginalTitle = titles.Original
	meta.AlternateTitles = titles.Alternates

	creators := a.aggregateCreators(scan, schema, feed, textFacts)
	meta.Creators = creators
	if len(creators) > 0 {
		meta.Author = creators[0].Name
	}

	meta.Image = SelectImage(imageCandidates(scan, schema, feed), scan.Images, tokens, pageURL)
	meta.Description = a.resolveDescription(scan, schema, feed)
	meta.Language = resolveLanguage(scan, schema, feed, titles)
	meta.PublishedAt = firstDate(schema.Published, feed.Published, scan.Meta,
		"article:published_time", "book:release_date", "og:published_time", "pubdate", "date", "dc.date", "dc.date.issued")
	meta.UpdatedAt = firstDate(schema.Updated, feed.Updated, scan.Meta,
		"article:modified_time", "og:updated_time", "last-modified", "dc.date.modified")
	meta.NextUpdateAt = firstDate(schema.NextUpdate, feed.NextUpdate, scan.Meta,
		"next_update", "nextupdate", "og:expiry", "expires")
	meta.Episode = resolveEpisode(schema, feed, titles.Primary)
	meta.Keywords = resolveKeywords(scan, schema, textFacts)
	meta.Facts = DedupFacts(append(append([]curio.Fact{}, schema.Facts...), textFacts...))

	fillContainers(meta)
	return meta, nil
}

// resolveFeed hands the page's alternate links to the feed resolver.
// Resolution failures degrade to an absent feed, never an error.
func (a *Assembler) resolveFeed(ctx context.Context, scan *PageScan, pageURL string) (*curio.FeedSummary, string) {
	if a.Feeds == nil {
		return &curio.FeedSummary{}, ""
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return &curio.FeedSummary{}, ""
	}
	var links []curio.FeedLink
	for _, link := range scan.Links {
		if !strings.Contains(link.Rel, "alternate") {
			continue
		}
		resolved := resolveURL(base, link.Href)
		if resolved == "" {
			continue
		}
		links = append(links, curio.FeedLink{URL: resolved, Type: link.Type})
	}
	if len(links) == 0 {
		return &curio.FeedSummary{}, ""
	}
	summary, feedURL, err := a.Feeds.Resolve(ctx, links)
	if err != nil || summary == nil {
		return &curio.FeedSummary{}, ""
	}
	return summary, feedURL
}

func titleCandidates(scan *PageScan, schema *SchemaSummary, feed *curio.FeedSummary, facts []curio.Fact) []TitleCandidate {
	var out []TitleCandidate
	for i, title := range schema.Titles {
		out = append(out, TitleCandidate{Text: title, Priority: PrioritySchema + float64(i)*0.01})
	}
	if v := metaValue(scan.Meta, "og:title"); v != "" {
		out = append(out, TitleCandidate{Text: v, Priority: PriorityOpenGraph})
	}
	if v := metaValue(scan.Meta, "twitter:title"); v != "" {
		out = append(out, TitleCandidate{Text: v, Priority: PriorityTwitter})
	}
	if scan.Title != "" {
		out = append(out, TitleCandidate{Text: scan.Title, Priority: PriorityTitleTag})
	}
	if scan.Heading != "" {
		out = append(out, TitleCandidate{Text: scan.Heading, Priority: PriorityHeading})
	}
	for _, fact := range facts {
		if fact.Type == curio.FactTitle || fact.Type == curio.FactName {
			out = append(out, TitleCandidate{Text: fact.Value, Priority: PriorityTextFact})
		}
	}
	if feed.Title != "" {
		out = append(out, TitleCandidate{Text: feed.Title, Priority: PriorityFeed})
	}
	return out
}

func alternateCandidates(schema *SchemaSummary, feed *curio.FeedSummary, facts []curio.Fact) []string {
	var out []string
	out = append(out, schema.Titles...)
	out = append(out, schema.AlternateTitles...)
	out = append(out, feed.AlternateTitles...)
	for _, fact := range facts {
		if fact.Type == curio.FactTitle || fact.Type == curio.FactName {
			out = append(out, fact.Value)
		}
	}
	return out
}

func (a *Assembler) aggregateCreators(scan *PageScan, schema *SchemaSummary, feed *curio.FeedSummary, facts []curio.Fact) []curio.Creator {
	set := NewCreatorSet(a.Config.Weights)

	for _, c := range schema.Creators {
		isOrg := c.IsOrganization
		set.Add(CreatorMention{Name: c.Name, Source: curio.SourceSchema, Role: c.Role, IsOrganization: &isOrg})
	}
	if v := metaValue(scan.Meta, "author", "article:author", "book:author"); v != "" {
		set.Add(CreatorMention{Name: v, Source: curio.SourceMeta, Role: "author"})
	}
	if v := strings.TrimPrefix(metaValue(scan.Meta, "twitter:creator"), "@"); v != "" {
		set.Add(CreatorMention{Name: v, Source: curio.SourceTwitter})
	}
	if feed.Author != "" {
		set.Add(CreatorMention{Name: feed.Author, Source: curio.SourceFeed, Role: "author"})
	}
	for _, fact := range facts {
		if fact.Type == curio.FactAuthor {
			set.Add(CreatorMention{Name: fact.Value, Source: curio.SourcePage, Role: "author"})
		}
	}

	return set.Creators()
}

func imageCandidates(scan *PageScan, schema *SchemaSummary, feed *curio.FeedSummary) []string {
	return []string{
		schema.Image,
		metaValue(scan.Meta, "og:image", "og:image:secure_url"),
		metaValue(scan.Meta, "twitter:image", "twitter:image:src"),
		feed.Image,
	}
}

// resolveSiteName walks the documented candidate list: site-name meta
// keys, the application name, the Twitter site handle, the feed's own
// title, then the bare hostname.
func resolveSiteName(scan *PageScan, feed *curio.FeedSummary, pageURL string) string {
	candidates := []func() string{
		func() string { return metaValue(scan.Meta, "og:site_name") },
		func() string { return metaValue(scan.Meta, "application-name") },
		func() string { return metaValue(scan.Meta, "site_name") },
		func() string { return strings.TrimPrefix(metaValue(scan.Meta, "twitter:site"), "@") },
		func() string { return feed.SiteName },
		func() string {
			u, err := url.Parse(pageURL)
			if err != nil {
				return ""
			}
			return u.Hostname()
		},
	}
	for _, candidate := range candidates {
		if v := strings.TrimSpace(candidate()); v != "" {
			return v
		}
	}
	return ""
}

// resolveDescription picks the first non-empty description source, strips
// any markup, and truncates with an ellipsis marker.
func (a *Assembler) resolveDescription(scan *PageScan, schema *SchemaSummary, feed *curio.FeedSummary) string {
	candidates := []string{
		schema.Description,
		metaValue(scan.Meta, "description", "og:description", "twitter:description", "summary"),
		feed.Summary,
	}
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		text := collapseSpace(html.UnescapeString(a.sanitizer.Sanitize(candidate)))
		if text == "" {
			continue
		}
		if runes := []rune(text); len(runes) > a.Config.DescriptionLimit {
			text = string(runes[:a.Config.DescriptionLimit]) + "…"
		}
		return text
	}
	return ""
}

// resolveLanguage walks the language sources in priority order,
// normalizing each to its 2-letter base. With no source at all it falls
// back to the detected script of the primary title; a Chinese detection
// there defers to a non-Chinese alternate title when one exists.
func resolveLanguage(scan *PageScan, schema *SchemaSummary, feed *curio.FeedSummary, titles *TitleResolution) string {
	for _, raw := range []string{
		schema.Language,
		metaValue(scan.Meta, "og:locale"),
		scan.Lang,
		feed.Language,
	} {
		if lang := NormalizeLanguageTag(raw); lang != "" {
			return lang
		}
	}

	detected := DetectLanguage(titles.Primary)
	if detected == LangChinese {
		for _, alt := range titles.Alternates {
			if altLang := DetectLanguage(alt); altLang != LangChinese && altLang != LangUnknown {
				return string(altLang)
			}
		}
	}
	return string(detected)
}

// firstDate normalizes each candidate in order and returns the first
// that parses. Every meta value matching the keys is a candidate of its
// own, so an unparseable value falls through to the next key rather than
// masking it.
func firstDate(schemaValue, feedValue string, tags []MetaTag, keys ...string) *time.Time {
	candidates := []string{schemaValue, feedValue}
	candidates = append(candidates, metaValues(tags, keys...)...)
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if t := NormalizeDate(candidate); t != nil {
			return t
		}
	}
	return nil
}

// episodePatterns match episode references in titles: CJK counter forms,
// "EP"/"Episode" forms, then bare "#N".
var episodePatterns = []*regexp.Regexp{
	regexp.MustCompile(`第\s*([0-9０-９]+)\s*[話话集回章卷巻期]`),
	regexp.MustCompile(`(?i)(?:\b|^)(?:ep|episode)\.?\s*([0-9]+)\b`),
	regexp.MustCompile(`#([0-9]+)`),
}

func resolveEpisode(schema *SchemaSummary, feed *curio.FeedSummary, primaryTitle string) *curio.Episode {
	if schema.Episode != "" {
		return episodeFromRaw(schema.Episode)
	}
	if feed.Episode != "" {
		return episodeFromRaw(feed.Episode)
	}
	for _, pattern := range episodePatterns {
		if m := pattern.FindStringSubmatch(primaryTitle); m != nil {
			return &curio.Episode{Raw: m[0], Number: parseEpisodeNumber(m[1])}
		}
	}
	return nil
}

// episodeFromRaw keeps the original text and parses its digits, leaving
// Number nil for non-numeric episode markers.
func episodeFromRaw(raw string) *curio.Episode {
	return &curio.Episode{Raw: raw, Number: parseEpisodeNumber(raw)}
}

func parseEpisodeNumber(raw string) *int {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= '０' && r <= '９':
			b.WriteRune('0' + (r - '０'))
		}
	}
	if b.Len() == 0 {
		return nil
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return nil
	}
	return &n
}

func resolveKeywords(scan *PageScan, schema *SchemaSummary, facts []curio.Fact) []string {
	var all []string
	all = append(all, schema.Keywords...)
	all = append(all, SplitKeywords(metaValue(scan.Meta, "keywords"))...)
	for _, fact := range facts {
		if fact.Type == curio.FactTag {
			all = append(all, fact.Value)
		}
	}

	seen := make(map[string]struct{}, len(all))
	var out []string
	for _, kw := range all {
		key := strings.ToLower(kw)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, kw)
	}
	return out
}

// metaValue returns the content of the first meta tag whose name or
// property matches one of the keys, in key order.
func metaValue(tags []MetaTag, keys ...string) string {
	for _, key := range keys {
		for _, tag := range tags {
			if tag.Name == key || tag.Property == key {
				return tag.Content
			}
		}
	}
	return ""
}

// metaValues returns the contents of every meta tag matching one of the
// keys, in key order.
func metaValues(tags []MetaTag, keys ...string) []string {
	var out []string
	for _, key := range keys {
		for _, tag := range tags {
			if tag.Name == key || tag.Property == key {
				out = append(out, tag.Content)
			}
		}
	}
	return out
}

// fillContainers replaces nil container fields with empty slices so the
// JSON shape is stable for callers.
func fillContainers(meta *curio.Metadata) {
	if meta.AlternateTitles == nil {
		meta.AlternateTitles = []string{}
	}
	if meta.Creators == nil {
		meta.Creators = []curio.Creator{}
	}
	if meta.Keywords == nil {
		meta.Keywords = []string{}
	}
	if meta.Facts == nil {
		meta.Facts = []curio.Fact{}
	}
}
