// Package textnorm turns display names into storage-safe path segments.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize decomposes s, drops combining marks, lowercases it and replaces
// spaces with hyphens. "Glúteos Médio" becomes "gluteos-medio".
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	stripped, _, err := transform.String(t, s)
	if err != nil {
		// The chain only fails on invalid transformer state; fall back to the input.
		stripped = s
	}
	return strings.ReplaceAll(strings.ToLower(stripped), " ", "-")
}

var parens = strings.NewReplacer("(", "", ")", "")

// Slug derives the exercise slug from a filename stem.
func Slug(name string) string {
	s := strings.ReplaceAll(strings.ToLower(name), " ", "-")
	return Normalize(parens.Replace(s))
}

// TitleCase upper-cases the first letter of every run of letters and lower-cases
// the rest, so "tricep dip" gives "Tricep Dip" and "incline-dumbbell" gives
// "Incline-Dumbbell".
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inWord := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if inWord {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToTitle(r))
			}
			inWord = true
			continue
		}
		b.WriteRune(r)
		inWord = false
	}
	return b.String()
}
