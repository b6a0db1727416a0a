package extract

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ayumu-h/curio"
)

// SchemaCreator is a creator entry found in structured data, tagged with
// the role implied by the property that carried it.
type SchemaCreator struct {
	Name           string
	IsOrganization bool
	Role           string
}

// SchemaSummary accumulates everything of interest across all
// structured-data nodes of a page. Scalar fields are first-wins across
// nodes; collections accumulate.
type SchemaSummary struct {
	Titles          []string
	AlternateTitles []string
	Language        string
	Image           string
	Creators        []SchemaCreator
	Episode         string
	Description     string
	SiteNames       []string
	Published       string
	Updated         string
	NextUpdate      string
	Keywords        []string
	Facts           []curio.Fact
}

// creatorProperties maps schema.org properties to the role recorded on
// the creators they carry. Order matters only for stable output.
var creatorProperties = []struct {
	Property string
	Role     string
}{
	{"author", "author"},
	{"creator", "author"},
	{"illustrator", "illustrator"},
	{"editor", "editor"},
	{"translator", "translator"},
	{"contributor", "contributor"},
	{"producer", "producer"},
	{"director", "director"},
	{"musicBy", "music"},
	{"actor", "actor"},
	{"brand", "brand"},
	{"manufacturer", "manufacturer"},
	{"productionCompany", "studio"},
	{"publisher", "publisher"},
}

// organizationTypes are @type values that mark a creator as an
// organization explicitly.
var organizationTypes = map[string]struct{}{
	"organization": {},
	"corporation":  {},
	"company":      {},
	"newsmediaorganization": {},
}

// organizationMarkers is a small multilingual lexicon of substrings that
// mark a name as an organization rather than a person.
var organizationMarkers = []string{
	"工作室", "出版社", "出版會", "株式会社", "有限", "株式會社", "편집부", "스튜디오",
	"studio", "inc.", "inc ", "ltd", "llc", "gmbh", "press", "publishing",
	"editions", "媒體", "媒体", "文化",
}

// IsOrganizationName reports whether a bare name looks like an
// organization per the multilingual marker lexicon.
func IsOrganizationName(name string) bool {
	lower := strings.ToLower(name)
	for _, marker := range organizationMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// SummarizeSchema walks the decoded structured-data payloads of a page
// and folds every typed node into one summary. The walk is a typed
// visitor over the decoded JSON shapes (map, slice, scalar); dynamic
// property probing stays confined to the small helpers below.
func SummarizeSchema(blocks []any, baseURL string) *SchemaSummary {
	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}

	var nodes []map[string]any
	for _, block := range blocks {
		collectSchemaNodes(block, &nodes)
	}

	sum := &SchemaSummary{}
	for _, node := range nodes {
		summarizeNode(node, base, sum)
	}
	return sum
}

// collectSchemaNodes gathers, in document order, every object carrying
// @type or @context, descending through arrays and @graph containers.
func collectSchemaNodes(v any, out *[]map[string]any) {
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			collectSchemaNodes(item, out)
		}
	case map[string]any:
		_, hasType := t["@type"]
		_, hasContext := t["@context"]
		if hasType || hasContext {
			*out = append(*out, t)
		}
		if graph, ok := t["@graph"]; ok {
			collectSchemaNodes(graph, out)
		}
	}
}

func summarizeNode(node map[string]any, base *url.URL, sum *SchemaSummary) {
	for _, key := range []string{"headline", "name", "title"} {
		if title := firstString(node[key]); title != "" {
			sum.Titles = append(sum.Titles, title)
			sum.AlternateTitles = append(sum.AlternateTitles, ExtractAliases(title)...)
		}
	}
	for _, alt := range allStrings(node["alternativeHeadline"]) {
		sum.AlternateTitles = append(sum.AlternateTitles, alt)
	}

	if sum.Language == "" {
		for _, key := range []string{"inLanguage", "language"} {
			if lang := firstString(node[key]); lang != "" {
				sum.Language = lang
				break
			}
		}
	}

	if sum.Image == "" {
		for _, key := range []string{"image", "thumbnailUrl"} {
			if img := firstImage(node[key]); img != "" {
				sum.Image = resolveURL(base, img)
				break
			}
		}
	}

	for _, prop := range creatorProperties {
		sum.Creators = append(sum.Creators, schemaCreators(node[prop.Property], prop.Role)...)
	}

	for _, key := range []string{"publisher", "isPartOf"} {
		if name := firstString(node[key]); name != "" {
			sum.SiteNames = append(sum.SiteNames, name)
		}
	}

	if sum.Description == "" {
		sum.Description = firstString(node["description"])
	}
	if sum.Published == "" {
		sum.Published = firstString(node["datePublished"])
	}
	if sum.Updated == "" {
		sum.Updated = firstString(node["dateModified"])
	}
	if sum.NextUpdate == "" {
		for _, key := range []string{"endDate", "availabilityEnds", "expires"} {
			if v := firstString(node[key]); v != "" {
				sum.NextUpdate = v
				break
			}
		}
	}
	if sum.Episode == "" {
		for _, key := range []string{"episodeNumber", "episode", "position"} {
			if v := firstString(node[key]); v != "" {
				sum.Episode = v
				break
			}
		}
	}

	for _, key := range []string{"keywords", "genre", "about", "tag", "category"} {
		for _, raw := range allStrings(node[key]) {
			sum.Keywords = append(sum.Keywords, SplitKeywords(raw)...)
		}
	}

	if pages := firstString(node["numberOfPages"]); pages != "" {
		sum.Facts = append(sum.Facts, curio.Fact{Type: curio.FactPages, Label: "numberOfPages", Value: pages})
	}
	for _, award := range allStrings(node["award"]) {
		sum.Facts = append(sum.Facts, curio.Fact{Type: curio.FactOther, Label: "award", Value: award})
	}
	for _, isbn := range allStrings(node["isbn"]) {
		sum.Facts = append(sum.Facts, curio.Fact{Type: curio.FactOther, Label: "isbn", Value: isbn})
	}
}

// schemaCreators normalizes a creator-bearing property value (string,
// object with name, or array of either) into role-tagged entries.
func schemaCreators(v any, role string) []SchemaCreator {
	var out []SchemaCreator
	switch t := v.(type) {
	case string:
		if name := strings.TrimSpace(t); name != "" {
			out = append(out, SchemaCreator{Name: name, IsOrganization: IsOrganizationName(name), Role: role})
		}
	case []any:
		for _, item := range t {
			out = append(out, schemaCreators(item, role)...)
		}
	case map[string]any:
		name := strings.TrimSpace(firstString(t["name"]))
		if name == "" {
			return nil
		}
		isOrg := IsOrganizationName(name)
		if typ, ok := t["@type"].(string); ok {
			if _, explicit := organizationTypes[strings.ToLower(typ)]; explicit {
				isOrg = true
			}
		}
		out = append(out, SchemaCreator{Name: name, IsOrganization: isOrg, Role: role})
	}
	return out
}

// firstString extracts the first usable string from a scalar, an array,
// or an object carrying name/url. Numbers are formatted without exponent.
func firstString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case []any:
		for _, item := range t {
			if s := firstString(item); s != "" {
				return s
			}
		}
	case map[string]any:
		for _, key := range []string{"name", "@id", "url"} {
			if s, ok := t[key].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// allStrings flattens a scalar or array value into all its string forms.
func allStrings(v any) []string {
	switch t := v.(type) {
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return []string{s}
		}
	case float64:
		return []string{firstString(t)}
	case []any:
		var out []string
		for _, item := range t {
			out = append(out, allStrings(item)...)
		}
		return out
	case map[string]any:
		if s := firstString(t); s != "" {
			return []string{s}
		}
	}
	return nil
}

// firstImage handles the image value shapes schema.org allows: a URL
// string, an array of URL strings, or an ImageObject with url.
func firstImage(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []any:
		for _, item := range t {
			if s := firstImage(item); s != "" {
				return s
			}
		}
	case map[string]any:
		for _, key := range []string{"url", "contentUrl"} {
			if s, ok := t[key].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// keywordSeparators splits folded keyword strings, covering both ASCII
// and fullwidth CJK separators.
var keywordSeparators = []rune{',', '，', ';', '；', '|', '｜', '/', '／'}

// SplitKeywords explodes a folded keyword string into trimmed,
// non-empty keywords.
func SplitKeywords(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		for _, sep := range keywordSeparators {
			if r == sep {
				return true
			}
		}
		return false
	})
	var out []string
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
