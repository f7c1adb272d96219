package detect

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

var foldCaser = cases.Fold()

// NormalizeText collapses whitespace and case-folds detected text so that
// consecutive observations of the same line compare equal despite OCR jitter
// in spacing or capitalization.
func NormalizeText(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return foldCaser.String(strings.Join(fields, " "))
}

// AlphaRatio returns the fraction of letter runes among the non-space runes of
// text. Empty input yields 0.
func AlphaRatio(text string) float64 {
	letters, total := 0, 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(letters) / float64(total)
}
