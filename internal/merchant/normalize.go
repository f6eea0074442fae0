// Package merchant provides merchant-name normalization and the persistent
// merchant→category map used to remember resolved categorizations.
package merchant

import (
	"strings"
	"unicode"
)

// punctuation is the ASCII punctuation set stripped from key boundaries.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Normalize canonicalizes a raw merchant name into its lookup key: trim,
// lowercase, strip punctuation at the string boundaries only (interior
// punctuation is part of the merchant identity), collapse runs of spaces.
// Idempotent; empty and whitespace-only input normalize to the empty
// string, which is never a valid key.
func Normalize(raw string) string {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	cleaned = strings.TrimFunc(cleaned, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(punctuation, r)
	})
	for strings.Contains(cleaned, "  ") {
		cleaned = strings.ReplaceAll(cleaned, "  ", " ")
	}
	return cleaned
}
