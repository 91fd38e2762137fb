// Package textnorm holds the pure text transforms shared by every detector
// that compares user-written text: accent stripping, case folding and
// whitespace/punctuation collapsing. All functions are total; empty input
// yields an empty output.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	decomposer   = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	nonNameRe    = regexp.MustCompile(`[^a-z0-9]+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// StripAccents decomposes s and drops combining marks plus anything else
// outside ASCII, e.g. "Écolé" -> "Ecole".
func StripAccents(s string) string {
	out, _, err := transform.String(decomposer, s)
	if err != nil {
		out = s
	}

	var b strings.Builder
	b.Grow(len(out))
	for _, r := range out {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeName lower-cases an accent-stripped name and collapses every run
// of characters outside [a-z0-9] to a single space.
func NormalizeName(s string) string {
	s = strings.ToLower(StripAccents(s))
	return strings.TrimSpace(nonNameRe.ReplaceAllString(s, " "))
}

// NormalizeText is the comparable form used for duplicate and top-word
// detection: accent-stripped, lower-cased, punctuation replaced by spaces,
// whitespace collapsed. Idempotent.
func NormalizeText(s string) string {
	s = strings.ToLower(StripAccents(s))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			b.WriteRune(r)
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(b.String(), " "))
}
