package utils

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9_\s-]`)
	slugSeparators   = regexp.MustCompile(`[-\s]+`)
)

// GenerateSlug turns a display name into a URL-safe base slug.
//
//	"Андрей Миронов" -> "andrej-mironov"
//	"Penélope Cruz"  -> "penelope-cruz"
func GenerateSlug(name string) string {
	s := Transliterate(name)
	s = stripDiacritics(s)
	s = strings.ToLower(s)
	s = slugInvalidChars.ReplaceAllString(s, "")
	s = slugSeparators.ReplaceAllString(strings.TrimSpace(s), "-")
	return strings.Trim(s, "-_")
}

// stripDiacritics decomposes to NFKD, drops combining marks and anything left outside ASCII.
func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, out)
}

// SlugExistsFunc reports whether slug is already taken for one entity type.
type SlugExistsFunc func(ctx context.Context, slug string) (bool, error)

// UniqueSlug probes base, base-1, base-2, ... until exists reports a free value.
// An empty base is replaced by fallback.
//
// The check and the later insert are not atomic. Callers rely on the unique
// index to reject a concurrent duplicate.
func UniqueSlug(ctx context.Context, base, fallback string, exists SlugExistsFunc) (string, error) {
	if base == "" {
		base = fallback
	}

	candidate := base
	for n := 1; ; n++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}
