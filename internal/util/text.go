package util

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	reSpaces = regexp.MustCompile(`\s+`)
	reMarkup = regexp.MustCompile(`[<&]`)
)

// NormaliseSpaces collapses internal whitespace runs to single spaces and
// trims the ends.
func NormaliseSpaces(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}

// StripMarkup removes embedded HTML markup (tags such as <i>...</i> and
// character entities) from a register field and canonicalizes whitespace.
// Returns "" when nothing survives. Plain text passes through untouched,
// so the function is a fixed point on its own output.
func StripMarkup(input string) string {
	s := input
	if reMarkup.MatchString(s) {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
			s = doc.Text()
		}
	}
	return NormaliseSpaces(s)
}

// OptString returns nil for an empty value, keeping staged rows sparse.
func OptString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func Deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
