package names

import "strings"

// vowelMarker is the symbol every vowel run collapses to, so that names
// differing only in vowel choice ("Jon"/"Jan") encode identically up to
// consonant structure.
const vowelMarker = "a"

// digraphRules are applied in order before single-letter rewrites. Order
// matters: each rule sees the output of the previous one, and reordering
// changes codes for real names (e.g. "ch" must rewrite before "h" could
// be considered on its own).
var digraphRules = [][2]string{
	{"ph", "f"},
	{"gh", "g"},
	{"wh", "w"},
	{"ck", "k"},
	{"sh", "s"},
	{"ch", "k"},
	{"th", "t"},
}

// letterRules fold single letters that are transcribed interchangeably.
var letterRules = [][2]string{
	{"c", "k"},
	{"q", "k"},
	{"x", "s"},
	{"z", "s"},
	{"y", "i"},
}

// Encoder maps normalized name tokens to coarse phonetic codes. Two
// tokens with the same code are treated as sounding identical.
type Encoder struct {
	scorer *Scorer
}

// NewEncoder creates a new Encoder
func NewEncoder() *Encoder {
	return &Encoder{scorer: NewScorer()}
}

// Encode produces the phonetic code for a normalized token. Empty input
// yields an empty code.
func (e *Encoder) Encode(token string) string {
	if token == "" {
		return ""
	}

	for _, rule := range digraphRules {
		token = strings.ReplaceAll(token, rule[0], rule[1])
	}
	for _, rule := range letterRules {
		token = strings.ReplaceAll(token, rule[0], rule[1])
	}

	token = collapseRuns(token)
	token = collapseVowels(token)
	return collapseRuns(token)
}

// Similarity returns 1.0 when two tokens encode identically, otherwise
// the edit-distance similarity of their codes.
func (e *Encoder) Similarity(a, b string) float64 {
	codeA := e.Encode(a)
	codeB := e.Encode(b)
	if codeA == codeB {
		return 1.0
	}
	return e.scorer.Similarity(codeA, codeB)
}

// collapseRuns reduces every run of a repeated character to one occurrence.
func collapseRuns(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	var prev byte
	for i := 0; i < len(s); i++ {
		if i > 0 && s[i] == prev {
			continue
		}
		result.WriteByte(s[i])
		prev = s[i]
	}
	return result.String()
}

// collapseVowels replaces every vowel with the marker symbol.
func collapseVowels(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'a', 'e', 'i', 'o', 'u':
			result.WriteString(vowelMarker)
		default:
			result.WriteByte(s[i])
		}
	}
	return result.String()
}
