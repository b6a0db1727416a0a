package extract

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// NormalizeDate turns a raw date string into a UTC instant. Compact
// YYYYMMDD strings (common in CJK metadata, e.g. "2024年1月15日" stripped
// of labels) are handled first; anything else goes through generic
// calendar parsing. Unparseable input yields nil, never an error.
func NormalizeDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	digits := keepDigits(raw)
	if len(digits) == 8 {
		year := atoi(digits[:4])
		month := atoi(digits[4:6])
		day := atoi(digits[6:8])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
			return &t
		}
	}

	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}

func keepDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
