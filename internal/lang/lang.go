// Package lang wraps language detection behind a small contract so the
// classifier stays a swappable black box.
package lang

import (
	"strings"
	"unicode"

	"golang.org/x/text/language"
)

// Detector classifies the language of short snippets of text.
type Detector interface {
	// Detect returns the first of candidates the detector recognizes in
	// text, or "" when none matches. Candidates are ISO 639-1 codes in
	// order of preference.
	Detect(text string, candidates []string) string

	// Confidence returns a value in [0, 1] expressing how confident the
	// detector is that text is written in lang.
	Confidence(text string, lang string) float64
}

// ParseAcceptLanguage parses an Accept-Language header into a ranked list of
// ISO 639-1 codes, highest quality first. Header order is preserved for equal
// quality values. A malformed header yields nil.
func ParseAcceptLanguage(header string) []string {
	if header == "" {
		return nil
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return nil
	}

	var codes []string
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		base, _ := tag.Base()
		code := strings.ToLower(base.String())
		if len(code) != 2 || seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}
	return codes
}

// ContainsHan reports whether text contains any CJK ideograph.
func ContainsHan(text string) bool {
	for _, r := range text {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}
