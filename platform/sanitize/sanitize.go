// Package sanitize provides text cleanup for untrusted completion output.
package sanitize

import (
	"regexp"
	"strings"

	"golang.org/x/text/width"
)

var (
	lineBreaks = strings.NewReplacer("\r", "", "\n", "")
	// disallowed matches characters outside the permitted scripts: word
	// characters, whitespace, hiragana, katakana and CJK ideographs.
	// Underscores count as word characters and are stripped separately.
	disallowed = regexp.MustCompile(`[^\w\sぁ-んァ-ン一-龯]|_`)
)

// CompletionLine reduces a completion response to a single plausible
// place-name string. The completion service occasionally prepends
// disclaimers or decorates the answer with punctuation; everything outside
// the permitted script ranges is dropped. Full-width compatibility
// characters are folded first so full-width digits and Latin letters
// survive the filter.
func CompletionLine(s string) string {
	folded := width.Fold.String(s)
	folded = lineBreaks.Replace(folded)
	return strings.TrimSpace(disallowed.ReplaceAllString(folded, ""))
}
