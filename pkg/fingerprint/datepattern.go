package fingerprint

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// dayMonthWords covers bare day-of-week and month names in English (the
// element-stream language the OCR boundary most commonly produces).
var dayMonthWords = map[string]struct{}{
	"monday": {}, "tuesday": {}, "wednesday": {}, "thursday": {}, "friday": {},
	"saturday": {}, "sunday": {},
	"january": {}, "february": {}, "march": {}, "april": {}, "may": {}, "june": {},
	"july": {}, "august": {}, "september": {}, "october": {}, "november": {}, "december": {},
}

// shortMonthDigits matches "<short-month> <digits>" (e.g. "Jan 14", "Mar. 3")
// with a negative lookahead so "Jan 2024" (a year, not a day-of-month) does
// not match — RE2 (Go's stdlib regexp) cannot express the lookahead, so this
// one pattern uses regexp2 (grounded: other_examples fluffy-ui's chroma
// lexer stack, which leans on regexp2 for the same reason).
var shortMonthDigits = regexp2.MustCompile(
	`(?i)\b(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\.?\s+\d{1,2}\b(?!\d)`,
	regexp2.None,
)

func isDatePattern(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	if _, ok := dayMonthWords[lower]; ok {
		return true
	}
	if matched, _ := shortMonthDigits.MatchString(text); matched {
		return true
	}
	return false
}
