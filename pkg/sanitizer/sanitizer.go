package sanitizer

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var reNonSlug = regexp.MustCompile(`[^a-z0-9]+`)

func trimAndLower(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return s
}

func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Slugify turns a display name into a directory id.
func Slugify(input string) string {
	p := Pipeline{
		trimAndLower,
		stripDiacritics,
		func(s string) string { return strings.ReplaceAll(s, "&", " and ") },
		func(s string) string { return reNonSlug.ReplaceAllString(s, "-") },
		func(s string) string { return strings.Trim(s, "-") },
	}
	return p.Apply(input)
}

// FoldForSearch reduces s to a key for case- and accent-insensitive
// substring matching.
func FoldForSearch(input string) string {
	p := Pipeline{
		stripDiacritics,
		TrimAndNormalize,
		strings.ToLower,
	}
	return p.Apply(input)
}

func NormalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

func SanitizeSlice(values []string, strategy Strategy) []string {
	seen := make(map[string]struct{})
	out := []string{}

	for _, v := range values {
		s := strategy(v)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	return out
}
