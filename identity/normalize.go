package identity

import (
	"strings"
	"unicode"
)

// placeholders are strings that look like names to a scraper but never
// are: caller-ID sentinels, page chrome, and navigation labels.
var placeholders = map[string]bool{
	"unknown": true, "private": true, "blocked": true, "restricted": true,
	"anonymous": true, "unavailable": true, "withheld": true, "caller": true,
	"number": true, "phone": true, "search": true, "results": true,
	"name": true, "address": true, "related": true, "view": true,
	"profile": true, "details": true, "more": true, "info": true,
	"contact": true,
}

// Normalize cleans a raw name string as returned by a source.
//
// A comma is interpreted as "Last, First" and reordered. Everything
// except letters, digits, whitespace, hyphen, and period is stripped
// and whitespace is collapsed. The result is rejected if it is shorter
// than three characters, still contains a digit, or matches a known
// placeholder. Returns the title-cased name and true, or "" and false
// when the input is not a usable name.
func Normalize(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}

	// "LINDLEY, DAVID" -> "DAVID LINDLEY"
	if before, after, ok := strings.Cut(raw, ","); ok {
		raw = strings.TrimSpace(after) + " " + strings.TrimSpace(before)
	}

	var b strings.Builder
	for _, r := range raw {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '.':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	fields := strings.Fields(b.String())
	cleaned := strings.Join(fields, " ")

	if len([]rune(cleaned)) < 3 {
		return "", false
	}
	if strings.ContainsFunc(cleaned, unicode.IsDigit) {
		return "", false
	}
	if placeholders[strings.ToLower(cleaned)] {
		return "", false
	}

	for i, f := range fields {
		fields[i] = capitalize(f)
	}
	return strings.Join(fields, " "), true
}

// capitalize upper-cases the first rune and lower-cases the rest,
// so "LINDLEY" and "lindley" both become "Lindley".
func capitalize(s string) string {
	runes := []rune(strings.ToLower(s))
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
