package extract

import (
	"strings"
	"unicode"

	"golang.org/x/text/language"
)

// Lang is a detected script/language family, as a 2-letter code.
// The empty value means no script was detected.
type Lang string

// Detectable languages.
const (
	LangChinese  Lang = "zh"
	LangJapanese Lang = "ja"
	LangKorean   Lang = "ko"
	LangEnglish  Lang = "en"
	LangUnknown  Lang = ""
)

// Punctuation that only Japanese text uses; Han characters alone cannot
// separate Japanese from Chinese, these marks can.
var japanesePunctuation = map[rune]struct{}{
	'「': {}, '」': {}, '『': {}, '』': {}, '・': {}, 'ー': {}, '〜': {},
}

// DetectLanguage classifies a string by script presence: kana or Japanese
// punctuation → ja, else hangul → ko, else han → zh, else enough dominant
// Latin letters → en, else unknown.
func DetectLanguage(s string) Lang {
	var han, hangul, latin, nonASCII int
	for _, r := range s {
		if unicode.In(r, unicode.Hiragana, unicode.Katakana) {
			return LangJapanese
		}
		if _, ok := japanesePunctuation[r]; ok {
			return LangJapanese
		}
		switch {
		case unicode.In(r, unicode.Hangul):
			hangul++
		case unicode.In(r, unicode.Han):
			han++
		case r < 128 && unicode.IsLetter(r):
			latin++
		case r >= 128:
			nonASCII++
		}
	}
	if hangul > 0 {
		return LangKorean
	}
	if han > 0 {
		return LangChinese
	}
	if latin >= 3 && (nonASCII == 0 || float64(latin)/float64(latin+nonASCII) >= 0.6) {
		return LangEnglish
	}
	return LangUnknown
}

// NormalizeLanguageTag reduces a BCP-47 tag or locale string (e.g.
// "zh_TW", "ja-JP", "en") to its 2-letter base code. Returns "" when the
// tag is unparseable.
func NormalizeLanguageTag(tag string) string {
	tag = strings.TrimSpace(strings.ReplaceAll(tag, "_", "-"))
	if tag == "" {
		return ""
	}
	t, err := language.Parse(tag)
	if err != nil {
		return ""
	}
	base, conf := t.Base()
	if conf == language.No {
		return ""
	}
	return base.String()
}
