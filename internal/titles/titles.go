// Package titles builds the comparable keys used to match movie titles
// across catalogs.
package titles

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// isKeyRune reports whether r survives normalization: letters, numbers,
// underscore and whitespace.
func isKeyRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' || unicode.IsSpace(r)
}

func stripPunctuation(s string) string {
	t := runes.Remove(runes.Predicate(func(r rune) bool { return !isKeyRune(r) }))
	result, _, _ := transform.String(t, s)
	return result
}

// Normalize strips every rune that is not a word character or whitespace
// and lowercases the rest. Whitespace runs are kept as they are.
//
//	Normalize("The Matrix!") == "the matrix"
func Normalize(title string) string {
	s := stripPunctuation(title)
	s = cases.Lower(language.Und).String(s)
	// Lowercasing can introduce combining marks (İ -> i̇), strip them so
	// the key is a fixed point.
	return stripPunctuation(s)
}
