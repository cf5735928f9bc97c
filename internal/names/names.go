// Package names canonicalises free-text ingredient and drink names.
package names

import (
	"strings"

	"golang.org/x/text/cases"
)

// Normalize trims surrounding whitespace and collapses internal runs of
// whitespace into a single space.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Key returns the identity key for a name: the case-folded normalized form.
// Two names are the same record iff their keys are equal.
func Key(text string) string {
	return cases.Fold().String(Normalize(text))
}

// Equal reports whether a and b name the same record.
func Equal(a, b string) bool {
	return Key(a) == Key(b)
}

// Dedupe normalizes every entry, drops empties and removes case-insensitive
// duplicates keeping the first occurrence.
func Dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, value := range values {
		clean := Normalize(value)
		if clean == "" {
			continue
		}
		key := Key(clean)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, clean)
	}
	return result
}

// Fold case-folds text without normalizing whitespace, for substring search.
func Fold(text string) string {
	return cases.Fold().String(text)
}
