// Package names provides the name-comparison primitives used by the
// import matching engine: normalization, phonetic encoding, edit-distance
// similarity, nickname resolution, and misspelling detection.
package names

import "strings"

// Normalize lowercases a name token and strips every character outside
// [a-z0-9]. Empty input yields empty output; callers treat an empty
// normalized name as no signal, not an error.
func Normalize(s string) string {
	s = strings.ToLower(s)
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			result.WriteRune(r)
		}
	}
	return result.String()
}
