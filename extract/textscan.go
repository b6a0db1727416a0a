package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/ayumu-h/curio"
	"golang.org/x/net/html"
)

// maxFactValueLen clips same-line fact values.
const maxFactValueLen = 160

// factLabels is the multilingual label dictionary, keyed by fact type.
// Order matters: the first matching (type, label) wins for a line.
var factLabels = []struct {
	Type   curio.FactType
	Labels []string
}{
	{curio.FactAuthor, []string{
		"作者", "著者", "作畫", "作画", "原作", "漫画", "脚本", "著",
		"작가", "글", "그림",
		"author", "written by", "story by", "art by",
	}},
	{curio.FactPublisher, []string{
		"出版社", "發行", "発行", "连载", "連載", "掲載誌", "掲載",
		"출판사", "연재처",
		"publisher", "published by", "serialized in",
	}},
	{curio.FactPages, []string{
		"頁數", "页数", "ページ数", "페이지",
		"pages", "page count",
	}},
	{curio.FactTag, []string{
		"標籤", "标签", "タグ", "ジャンル", "類型", "类型",
		"태그", "장르",
		"tags", "tag", "genre", "genres", "categories", "category",
	}},
	{curio.FactDate, []string{
		"發售日", "発売日", "出版日期", "更新日", "發布日期",
		"발매일", "출간일",
		"release date", "published on", "updated on",
	}},
	{curio.FactTitle, []string{
		"書名", "书名", "作品名", "タイトル", "題名",
		"제목",
		"title",
	}},
	{curio.FactName, []string{
		"原名", "原題", "原作名", "別名", "别名",
		"원제",
		"original title", "also known as", "alias",
	}},
}

// ScanTextFacts flattens the visible text of a page into lines and
// matches the label dictionary against each line (same-line
// "Label: value" form) or, when a line equals a label exactly, against
// its successor. Tag facts are exploded per keyword; the result is
// deduplicated by the case-insensitive (type, label, value) key.
func ScanTextFacts(markup string, maxLines int) []curio.Fact {
	lines := FlattenText(markup, maxLines)

	var facts []curio.Fact
	for i := 0; i < len(lines); i++ {
		fact, consumedNext := matchLine(lines, i)
		if fact == nil {
			continue
		}
		if fact.Type == curio.FactTag {
			for _, keyword := range SplitKeywords(fact.Value) {
				facts = append(facts, curio.Fact{Type: curio.FactTag, Label: fact.Label, Value: keyword})
			}
		} else {
			facts = append(facts, *fact)
		}
		if consumedNext {
			i++
		}
	}
	return DedupFacts(facts)
}

// matchLine tests every label of every type, in dictionary order,
// against the line at index i. Returns the matched fact (nil if none)
// and whether the successor line was consumed as the value.
func matchLine(lines []string, i int) (*curio.Fact, bool) {
	line := lines[i]
	lower := strings.ToLower(line)
	for _, entry := range factLabels {
		for _, label := range entry.Labels {
			ll := strings.ToLower(label)
			if lower == ll {
				if i+1 < len(lines) && lines[i+1] != "" {
					return &curio.Fact{Type: entry.Type, Label: label, Value: clipRunes(lines[i+1], maxFactValueLen)}, true
				}
				continue
			}
			if !strings.HasPrefix(lower, ll) {
				continue
			}
			rest := strings.TrimLeft(line[len(ll):], " \t")
			if rest == "" {
				continue
			}
			sep, size := utf8.DecodeRuneInString(rest)
			if sep != ':' && sep != '：' {
				continue
			}
			value := strings.TrimSpace(rest[size:])
			if value == "" {
				continue
			}
			return &curio.Fact{Type: entry.Type, Label: label, Value: clipRunes(value, maxFactValueLen)}, false
		}
	}
	return nil, false
}

// DedupFacts removes duplicates by the case-insensitive
// (type, label, value) key, preserving first-seen order.
func DedupFacts(facts []curio.Fact) []curio.Fact {
	seen := make(map[string]struct{}, len(facts))
	out := facts[:0:0]
	for _, f := range facts {
		key := strings.ToLower(string(f.Type)) + "\x00" + strings.ToLower(f.Label) + "\x00" + strings.ToLower(f.Value)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, f)
	}
	return out
}

// blockBoundaryTags end a flattened line when their element closes.
var blockBoundaryTags = map[string]struct{}{
	"p": {}, "div": {}, "li": {}, "tr": {}, "td": {}, "th": {},
	"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
	"section": {}, "article": {}, "header": {}, "footer": {},
	"dt": {}, "dd": {}, "blockquote": {}, "figcaption": {},
}

// FlattenText turns markup into at most maxLines non-empty,
// whitespace-normalized lines of visible text. Script, style and
// noscript subtrees are removed first; <br> and block element
// boundaries become line breaks.
func FlattenText(markup string, maxLines int) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil
	}
	doc.Find("script, style, noscript").Remove()

	var b strings.Builder
	for _, node := range doc.Selection.Nodes {
		flattenNode(node, &b)
	}

	var lines []string
	for _, raw := range strings.Split(b.String(), "\n") {
		line := collapseSpace(raw)
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) >= maxLines {
			break
		}
	}
	return lines
}

func flattenNode(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.CommentNode:
		return
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if n.Data == "br" {
			b.WriteByte('\n')
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		flattenNode(c, b)
	}
	if n.Type == html.ElementNode {
		if _, ok := blockBoundaryTags[n.Data]; ok {
			b.WriteByte('\n')
		}
	}
}

func clipRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

