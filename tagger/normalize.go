package tagger

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText performs Unicode normalization and trims whitespace.
func NormalizeText(text string) string {
	normed := norm.NFKC.String(text)
	normed = strings.TrimSpace(normed)
	// Collapse internal control characters except newlines.
	normed = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, normed)
	return normed
}

// NormalizeWord normalizes a single vocabulary item: seeds, neighbours and lemmas all
// go through it so they compare equal regardless of source encoding.
func NormalizeWord(word string) string {
	word = NormalizeText(word)
	if strings.ContainsAny(word, "\n\t") {
		word = strings.Join(strings.Fields(word), " ")
	}
	return word
}
