package service

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugHyphens = regexp.MustCompile(`-+`)
	deaccenter  = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// GenerateSlug derives a URL-safe slug from a title: accents stripped,
// lowercased, non-alphanumerics dropped, whitespace collapsed to single
// hyphens. Uniqueness is the caller's concern.
func GenerateSlug(text string) string {
	if out, _, err := transform.String(deaccenter, text); err == nil {
		text = out
	}
	s := strings.ToLower(text)
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
