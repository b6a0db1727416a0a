package extract

import (
	"net/url"
	"strings"
)

// Title candidate priorities: lower is preferred. Schema titles after the
// first get a small increment so their original order survives sorting.
const (
	PrioritySchema    = 1.0
	PriorityOpenGraph = 2.0
	PriorityTwitter   = 2.1
	PriorityTitleTag  = 3.0
	PriorityHeading   = 3.2
	PriorityTextFact  = 3.5
	PriorityFeed      = 4.0
)

// TitleCandidate is a possible title tagged with a numeric priority.
type TitleCandidate struct {
	Text     string
	Priority float64
}

// TitleResolution is the outcome of title selection.
type TitleResolution struct {
	Primary    string
	Original   string
	Alternates []string
}

// decorationSeparators may join a site token to the real title.
var decorationSeparators = map[rune]struct{}{
	':': {}, '：': {}, '-': {}, '–': {}, '—': {}, '|': {}, '｜': {},
}

// roleKeywords mark creator-attribution strings that must never be
// mistaken for titles.
var roleKeywords = []string{
	"作者", "著者", "作畫", "作画", "原作", "出版社", "出版",
	"編集", "编辑", "翻譯", "翻訳", "翻译",
	"author", "publisher", "editor", "translator", "illustrator",
}

// rolePrefixWords reject candidates that open with an attribution.
var rolePrefixWords = []string{"by", "author", "publisher", "illustrator", "translator"}

// rolePrefixPhrases reject candidates that open with a phrase form.
var rolePrefixPhrases = []string{"edited by", "translated by", "written by"}

// SiteTokens derives the decoration tokens stripped from title
// candidates: the resolved site name(s), the page host, the host without
// "www.", the registrable domain minus its TLD, and the second-level
// label. All tokens are lowercased; blanks and one-character tokens are
// dropped.
func SiteTokens(pageURL string, siteNames ...string) []string {
	var tokens []string
	add := func(t string) {
		t = strings.ToLower(strings.TrimSpace(t))
		if len([]rune(t)) < 2 {
			return
		}
		for _, existing := range tokens {
			if existing == t {
				return
			}
		}
		tokens = append(tokens, t)
	}

	for _, name := range siteNames {
		add(name)
	}
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		host := strings.ToLower(u.Hostname())
		add(host)
		bare := strings.TrimPrefix(host, "www.")
		add(bare)
		if parts := strings.Split(bare, "."); len(parts) >= 2 {
			add(strings.Join(parts[:len(parts)-1], "."))
			add(parts[len(parts)-2])
		}
	}
	return tokens
}

// ResolveTitles merges all title candidates, strips site decoration,
// filters non-titles and picks a primary title by language preference
// (Chinese, Japanese, English, Korean, then scriptless), plus the
// alternate-title set and the derived original title. Empty input yields
// an empty resolution, not an error.
func ResolveTitles(candidates []TitleCandidate, altCandidates []string, tokens []string) *TitleResolution {
	sortCandidates(candidates)

	var processed, fallback []string
	for _, cand := range candidates {
		cleaned := collapseSpace(cand.Text)
		if cleaned == "" {
			continue
		}
		sanitized := StripSiteTokens(cleaned, tokens)
		if sanitized != "" && !isNonTitle(sanitized) {
			processed = append(processed, sanitized)
		} else if !isNonTitle(cleaned) {
			fallback = append(fallback, cleaned)
		}
	}

	primary := pickPrimary(processed, fallback, tokens)

	res := &TitleResolution{Primary: primary}
	res.Alternates = resolveAlternates(altCandidates, primary, tokens)
	res.Original = deriveOriginal(primary, res.Alternates)
	return res
}

// languagePreference orders primary-title selection.
var languagePreference = []Lang{LangChinese, LangJapanese, LangEnglish, LangKorean, LangUnknown}

func pickPrimary(processed, fallback []string, tokens []string) string {
	var primary string
	switch {
	case len(processed) > 0:
		primary = pickByLanguage(processed)
		if primary == "" {
			primary = processed[0]
		}
	default:
		// Processed list exhausted: retry over fallback entries that
		// are not themselves site decoration.
		var clean []string
		for _, cand := range fallback {
			if !matchesSiteToken(cand, tokens) {
				clean = append(clean, cand)
			}
		}
		switch {
		case len(clean) > 0:
			primary = pickByLanguage(clean)
			if primary == "" {
				primary = clean[0]
			}
		case len(fallback) > 0:
			primary = fallback[0]
		}
	}
	return ensureNotToken(primary, processed, fallback, tokens)
}

func pickByLanguage(candidates []string) string {
	for _, pref := range languagePreference {
		for _, cand := range candidates {
			if DetectLanguage(cand) == pref {
				return cand
			}
		}
	}
	return ""
}

// ensureNotToken swaps a primary that is itself a site token for the
// first candidate, from either list, that is not.
func ensureNotToken(primary string, processed, fallback []string, tokens []string) string {
	if !matchesSiteToken(primary, tokens) {
		return primary
	}
	for _, cand := range append(append([]string{}, processed...), fallback...) {
		if !matchesSiteToken(cand, tokens) {
			return cand
		}
	}
	return primary
}

func resolveAlternates(candidates []string, primary string, tokens []string) []string {
	candidates = append(append([]string{}, candidates...), ExtractAliases(primary)...)

	var out []string
	seen := map[string]struct{}{strings.ToLower(primary): {}}
	for _, cand := range candidates {
		sanitized := StripSiteTokens(collapseSpace(cand), tokens)
		if sanitized == "" || isNonTitle(sanitized) || sanitized == primary {
			continue
		}
		key := strings.ToLower(sanitized)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, sanitized)
	}
	return out
}

// deriveOriginal picks the original-language title: a non-Chinese primary
// is its own original; a Chinese primary defers to a Japanese, English or
// Korean alternate, then any non-Chinese one, then itself.
func deriveOriginal(primary string, alternates []string) string {
	if primary == "" {
		return ""
	}
	if DetectLanguage(primary) != LangChinese {
		return primary
	}
	for _, pref := range []Lang{LangJapanese, LangEnglish, LangKorean} {
		for _, alt := range alternates {
			if DetectLanguage(alt) == pref {
				return alt
			}
		}
	}
	for _, alt := range alternates {
		if DetectLanguage(alt) != LangChinese {
			return alt
		}
	}
	return primary
}

func sortCandidates(candidates []TitleCandidate) {
	// Insertion sort keeps equal priorities in input order.
	for i := 1; i < len(candidates); i++ {
		for j := i; j > 0 && candidates[j].Priority < candidates[j-1].Priority; j-- {
			candidates[j], candidates[j-1] = candidates[j-1], candidates[j]
		}
	}
}

// StripSiteTokens removes site-name decoration from a title candidate: a
// leading or trailing "token <sep>" pattern, a trailing parenthesized
// token, or an exact token match (which empties the candidate).
func StripSiteTokens(s string, tokens []string) string {
	for _, token := range tokens {
		s = stripToken(s, token)
		if s == "" {
			return ""
		}
	}
	return s
}

func stripToken(s, token string) string {
	lower := strings.ToLower(s)
	if lower == token {
		return ""
	}

	// Leading "Token: " / "Token - " etc.
	if strings.HasPrefix(lower, token) {
		rest := strings.TrimLeft(s[len(token):], " \t")
		if r, size := firstRune(rest); r != 0 {
			if _, ok := decorationSeparators[r]; ok {
				return strings.TrimSpace(rest[size:])
			}
		}
	}

	// Trailing " - Token" etc.
	if strings.HasSuffix(lower, token) {
		rest := strings.TrimRight(s[:len(s)-len(token)], " \t")
		if r, size := lastRune(rest); r != 0 {
			if _, ok := decorationSeparators[r]; ok {
				return strings.TrimSpace(rest[:len(rest)-size])
			}
		}
	}

	// Trailing "(Token)" in either bracket width.
	for _, wrap := range [][2]string{{"(", ")"}, {"（", "）"}} {
		suffix := wrap[0] + token + wrap[1]
		if strings.HasSuffix(lower, suffix) {
			return strings.TrimSpace(s[:len(s)-len(suffix)])
		}
	}

	return s
}

// matchesSiteToken reports whether a candidate still is (or contains)
// site decoration. Short tokens only match exactly, so a two-letter
// domain label cannot swallow real titles.
func matchesSiteToken(s string, tokens []string) bool {
	lower := strings.ToLower(strings.TrimSpace(s))
	for _, token := range tokens {
		if lower == token {
			return true
		}
		if len([]rune(token)) >= 3 && strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

// isNonTitle rejects strings that cannot be titles: empties, bare URLs,
// ISBN strings, attribution lines, and strings that are nothing but role
// keywords.
func isNonTitle(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	lower := strings.ToLower(s)

	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "www.") {
		return true
	}
	if strings.HasPrefix(lower, "isbn") {
		return true
	}

	for _, phrase := range rolePrefixPhrases {
		if strings.HasPrefix(lower, phrase) {
			return true
		}
	}
	for _, word := range rolePrefixWords {
		if strings.HasPrefix(lower, word) {
			rest := lower[len(word):]
			if rest == "" || rest[0] == ' ' || rest[0] == ':' || strings.HasPrefix(rest, "：") {
				return true
			}
		}
	}

	// "作者：田中" style lines: a separator with a role keyword on
	// either side is an attribution, not a title.
	for i, r := range s {
		switch r {
		case '：', ':', '/', '／':
			left := strings.TrimSpace(s[:i])
			right := strings.TrimSpace(s[i+len(string(r)):])
			if containsRoleKeyword(left) || containsRoleKeyword(right) {
				return true
			}
		}
	}

	return removeRoleKeywords(s) == ""
}

func containsRoleKeyword(s string) bool {
	lower := strings.ToLower(s)
	for _, kw := range roleKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// removeRoleKeywords strips every role-keyword occurrence plus leftover
// separators and spaces; an empty result means the string carried no
// title content at all.
func removeRoleKeywords(s string) string {
	lower := strings.ToLower(s)
	for _, kw := range roleKeywords {
		for {
			idx := strings.Index(lower, kw)
			if idx < 0 {
				break
			}
			s = s[:idx] + s[idx+len(kw):]
			lower = lower[:idx] + lower[idx+len(kw):]
		}
	}
	return strings.Trim(s, " \t:：-–—|｜/／")
}

// aliasBrackets are the bracket pairs alias extraction unwraps.
var aliasBrackets = [][2]rune{
	{'(', ')'}, {'（', '）'}, {'[', ']'}, {'【', '】'}, {'「', '」'},
}

// ExtractAliases pulls alternate-title candidates out of a title string:
// parenthesized or bracketed segments, and slash/pipe-separated segments.
func ExtractAliases(s string) []string {
	var out []string

	for _, pair := range aliasBrackets {
		rest := s
		for {
			open := strings.IndexRune(rest, pair[0])
			if open < 0 {
				break
			}
			closing := strings.IndexRune(rest[open:], pair[1])
			if closing < 0 {
				break
			}
			inner := strings.TrimSpace(rest[open+len(string(pair[0])) : open+closing])
			if inner != "" {
				out = append(out, inner)
			}
			rest = rest[open+closing+len(string(pair[1])):]
		}
	}

	if strings.ContainsAny(s, "/／|｜") {
		parts := strings.FieldsFunc(s, func(r rune) bool {
			return r == '/' || r == '／' || r == '|' || r == '｜'
		})
		if len(parts) > 1 {
			for _, part := range parts {
				if part = strings.TrimSpace(part); part != "" {
					out = append(out, part)
				}
			}
		}
	}

	return out
}

func firstRune(s string) (rune, int) {
	if s == "" {
		return 0, 0
	}
	for _, r := range s {
		return r, len(string(r))
	}
	return 0, 0
}

func lastRune(s string) (rune, int) {
	if s == "" {
		return 0, 0
	}
	var last rune
	for _, r := range s {
		last = r
	}
	return last, len(string(last))
}
