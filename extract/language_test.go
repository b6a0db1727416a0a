package extract_test

import (
	"testing"

	"github.com/ayumu-h/curio/extract"
	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  extract.Lang
	}{
		{"hiragana", "ぼくの物語", extract.LangJapanese},
		{"katakana", "ヒーロー", extract.LangJapanese},
		{"japanese punctuation with han", "英雄物語・外伝", extract.LangJapanese},
		{"corner brackets", "「英雄」", extract.LangJapanese},
		{"hangul", "영웅 이야기", extract.LangKorean},
		{"han only", "英雄物語", extract.LangChinese},
		{"hangul beats han", "영웅 物語", extract.LangKorean},
		{"latin", "Hero Story", extract.LangEnglish},
		{"too few latin letters", "ab", extract.LangUnknown},
		{"latin diluted by symbols", "ab cd ééééééé", extract.LangUnknown},
		{"empty", "", extract.LangUnknown},
		{"digits only", "12345", extract.LangUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, extract.DetectLanguage(tt.input))
		})
	}
}

func TestNormalizeLanguageTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"ja", "ja"},
		{"ja-JP", "ja"},
		{"zh_TW", "zh"},
		{"en-US", "en"},
		{"ko", "ko"},
		{"  en  ", "en"},
		{"", ""},
		{"not a tag!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, extract.NormalizeLanguageTag(tt.input))
		})
	}
}
