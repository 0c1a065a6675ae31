package identity

import (
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"
)

// Similarity computes a [0,1] Ratcliff/Obershelp matching ratio
// between two names. Both inputs are lower-cased and stripped of
// punctuation before comparison, so "O'Brien" and "obrien" compare
// cleanly. Symmetric and deterministic; equal non-empty inputs
// score 1.0.
func Similarity(a, b string) float64 {
	na := foldName(a)
	nb := foldName(b)

	if na == "" || nb == "" {
		if na == nb {
			return 1.0
		}
		return 0.0
	}

	// The matcher indexes its second argument, which makes the raw
	// ratio order-sensitive in edge cases. Canonicalize the argument
	// order so callers always see a symmetric score.
	if na > nb {
		na, nb = nb, na
	}

	m := difflib.NewMatcher(explode(na), explode(nb))
	return m.Ratio()
}

// foldName lower-cases s and keeps only letters, digits, underscores,
// and single spaces.
func foldName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.TrimSpace(b.String())
}

// explode splits a string into per-rune elements for the sequence
// matcher, which operates on string slices.
func explode(s string) []string {
	runes := []rune(s)
	out := make([]string, len(runes))
	for i, r := range runes {
		out[i] = string(r)
	}
	return out
}
