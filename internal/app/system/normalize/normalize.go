// internal/app/system/normalize/normalize.go

// Package normalize canonicalizes user-entered strings before they are stored
// or compared.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Email trims and lowercases an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims and collapses internal whitespace but preserves case.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Role trims and lowercases a role string.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Fold returns a case- and diacritic-insensitive key for sorting and search,
// e.g. "Ádé  Putri" -> "ade putri".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, Name(s))
	if err != nil {
		out = Name(s)
	}
	return strings.ToLower(out)
}
