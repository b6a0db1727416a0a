package extract

import (
	"net/url"
	"path"
	"strings"
)

// acceptedImageExtensions is the raster/vector set a content image may
// carry; anything else (including no extension) classifies as generic.
var acceptedImageExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".webp": {},
	".avif": {}, ".bmp": {}, ".svg": {},
}

// genericImageKeywords flag site decoration in an image path.
var genericImageKeywords = []string{
	"logo", "favicon", "icon", "sprite", "placeholder", "default",
	"opengraph", "og-image", "twitter", "share", "social", "apple-touch",
}

// SelectImage merges image candidates (metadata-sourced candidates in
// priority order, then inline images with strong ones promoted over
// generic ones), deduplicates after absolute resolution, and returns the
// first non-generic candidate, falling back to the first generic one.
// Returns "" when there are no candidates at all.
func SelectImage(primary, inline []string, tokens []string, baseURL string) string {
	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}

	var candidates []string
	seen := make(map[string]struct{})
	add := func(raw string) {
		resolved := resolveURL(base, raw)
		if resolved == "" {
			return
		}
		if _, ok := seen[resolved]; ok {
			return
		}
		seen[resolved] = struct{}{}
		candidates = append(candidates, resolved)
	}

	for _, c := range primary {
		if c != "" {
			add(c)
		}
	}

	var strong, generic []string
	for _, c := range inline {
		if c == "" {
			continue
		}
		if IsGenericImage(c, tokens) {
			generic = append(generic, c)
		} else {
			strong = append(strong, c)
		}
	}
	for _, c := range strong {
		add(c)
	}
	for _, c := range generic {
		add(c)
	}

	for _, c := range candidates {
		if !IsGenericImage(c, tokens) {
			return c
		}
	}
	if len(candidates) > 0 {
		return candidates[0]
	}
	return ""
}

// IsGenericImage classifies an image URL as site decoration: an
// unaccepted file extension, a generic keyword anywhere in the path, or
// a filename containing a site token of at least 4 characters.
func IsGenericImage(rawURL string, tokens []string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return true
	}
	p := strings.ToLower(u.Path)

	if _, ok := acceptedImageExtensions[path.Ext(p)]; !ok {
		return true
	}
	for _, kw := range genericImageKeywords {
		if strings.Contains(p, kw) {
			return true
		}
	}
	filename := path.Base(p)
	for _, token := range tokens {
		if len([]rune(token)) >= 4 && strings.Contains(filename, token) {
			return true
		}
	}
	return false
}
