package extract

import (
	"encoding/json"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// MetaTag is one parsed <meta> element. Name and Property are lowercased;
// lookups match either key.
type MetaTag struct {
	Name     string
	Property string
	Content  string
}

// LinkTag is one parsed <link> element.
type LinkTag struct {
	Rel   string
	Href  string
	Type  string
	Title string
}

// PageScan is everything the tag scanner pulls out of raw markup: head
// metadata, decoded structured-data blocks, the first acceptable heading,
// and inline image candidates resolved to absolute URLs.
type PageScan struct {
	Meta    []MetaTag
	Links   []LinkTag
	Title   string
	Lang    string
	Heading string
	Images  []string
	Schema  []any
}

// headFallbackSize bounds tag scanning when the document has no <head>.
const headFallbackSize = 20000

// ScanPage extracts tags from raw markup without building a DOM tree.
// Meta, link and title extraction is confined to the <head> (or the first
// 20k characters when none is found) to bound cost; heading, image and
// structured-data scanning covers the whole document with
// script/style/noscript content ignored.
func ScanPage(markup, baseURL string, maxImages int) *PageScan {
	scan := &PageScan{}
	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}

	scanHead(headSection(markup), scan)
	scanBody(markup, base, maxImages, scan)
	return scan
}

// headSection returns the markup between <head> and </head>, falling back
// to the first headFallbackSize characters.
func headSection(markup string) string {
	lower := strings.ToLower(markup)
	start := -1
	for i := 0; ; {
		idx := strings.Index(lower[i:], "<head")
		if idx < 0 {
			break
		}
		idx += i
		after := idx + len("<head")
		if after < len(lower) && (lower[after] == '>' || lower[after] == ' ' || lower[after] == '\t' || lower[after] == '\n') {
			start = idx
			break
		}
		i = after
	}
	if start < 0 {
		if len(markup) > headFallbackSize {
			return markup[:headFallbackSize]
		}
		return markup
	}
	end := strings.Index(lower[start:], "</head")
	if end < 0 {
		// Unterminated <head>: keep the cost bound instead of scanning
		// to end of document.
		end = len(markup) - start
		if end > headFallbackSize {
			end = headFallbackSize
		}
	}
	return markup[start : start+end]
}

func scanHead(head string, scan *PageScan) {
	z := html.NewTokenizer(strings.NewReader(head))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		tok := z.Token()
		switch tok.Data {
		case "meta":
			tag := MetaTag{}
			for _, a := range tok.Attr {
				switch a.Key {
				case "name":
					tag.Name = strings.ToLower(strings.TrimSpace(a.Val))
				case "property":
					tag.Property = strings.ToLower(strings.TrimSpace(a.Val))
				case "content":
					tag.Content = strings.TrimSpace(a.Val)
				}
			}
			if (tag.Name != "" || tag.Property != "") && tag.Content != "" {
				scan.Meta = append(scan.Meta, tag)
			}
		case "link":
			tag := LinkTag{}
			for _, a := range tok.Attr {
				switch a.Key {
				case "rel":
					tag.Rel = strings.ToLower(strings.TrimSpace(a.Val))
				case "href":
					tag.Href = strings.TrimSpace(a.Val)
				case "type":
					tag.Type = strings.ToLower(strings.TrimSpace(a.Val))
				case "title":
					tag.Title = strings.TrimSpace(a.Val)
				}
			}
			if tag.Href != "" {
				scan.Links = append(scan.Links, tag)
			}
		case "title":
			if scan.Title != "" || tt != html.StartTagToken {
				continue
			}
			if z.Next() == html.TextToken {
				scan.Title = collapseSpace(z.Token().Data)
			}
		}
	}
}

func scanBody(markup string, base *url.URL, maxImages int, scan *PageScan) {
	z := html.NewTokenizer(strings.NewReader(markup))
	seenImages := make(map[string]struct{})
	noscriptDepth := 0
	var headingTag string
	var headingText strings.Builder

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return
		}
		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			switch tok.Data {
			case "html":
				if scan.Lang == "" {
					scan.Lang = strings.TrimSpace(attrValue(tok, "lang"))
				}
			case "noscript":
				if tt == html.StartTagToken {
					noscriptDepth++
				}
			case "script":
				// Script content is a single raw-text token; keep it only
				// for ld+json blocks, which are decoded individually so a
				// malformed block never poisons the rest.
				isLD := strings.Contains(strings.ToLower(attrValue(tok, "type")), "ld+json")
				if tt == html.SelfClosingTagToken {
					continue
				}
				if z.Next() == html.TextToken && isLD && noscriptDepth == 0 {
					var v any
					if err := json.Unmarshal([]byte(z.Token().Data), &v); err == nil {
						scan.Schema = append(scan.Schema, v)
					}
				}
			case "h1", "h2":
				if scan.Heading == "" && headingTag == "" && tt == html.StartTagToken && noscriptDepth == 0 {
					headingTag = tok.Data
					headingText.Reset()
				}
			case "img":
				if noscriptDepth > 0 || len(scan.Images) >= maxImages {
					continue
				}
				src := imageSource(tok)
				if src == "" || strings.HasPrefix(strings.ToLower(src), "data:") {
					continue
				}
				resolved := resolveURL(base, src)
				if resolved == "" {
					continue
				}
				if _, ok := seenImages[resolved]; ok {
					continue
				}
				seenImages[resolved] = struct{}{}
				scan.Images = append(scan.Images, resolved)
			}
		case html.TextToken:
			if headingTag != "" {
				headingText.WriteString(z.Token().Data)
			}
		case html.EndTagToken:
			tok := z.Token()
			switch tok.Data {
			case "noscript":
				if noscriptDepth > 0 {
					noscriptDepth--
				}
			case "h1", "h2":
				if tok.Data == headingTag {
					text := collapseSpace(headingText.String())
					if text != "" && !isNonTitle(text) {
						scan.Heading = text
					}
					headingTag = ""
				}
			}
		}
	}
}

// imageSource picks the best source attribute of an <img>, honoring the
// common lazy-loading attributes and the first srcset candidate.
func imageSource(tok html.Token) string {
	for _, key := range []string{"src", "data-src", "data-original", "data-lazy-src", "data-zoom-src"} {
		if v := strings.TrimSpace(attrValue(tok, key)); v != "" && !strings.HasPrefix(strings.ToLower(v), "data:") {
			return v
		}
	}
	if srcset := strings.TrimSpace(attrValue(tok, "srcset")); srcset != "" {
		first := srcset
		if idx := strings.Index(first, ","); idx >= 0 {
			first = first[:idx]
		}
		fields := strings.Fields(first)
		if len(fields) > 0 {
			return fields[0]
		}
	}
	return ""
}

func attrValue(tok html.Token, key string) string {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// resolveURL resolves a possibly-relative reference against the page URL.
// Returns "" for unparseable input or non-http(s) results.
func resolveURL(base *url.URL, ref string) string {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return ""
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}

// collapseSpace trims a string and collapses internal whitespace runs to
// single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
