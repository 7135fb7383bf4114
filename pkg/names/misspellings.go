package names

import "strings"

// ConfusablePair is a letter sequence pair commonly swapped during manual
// transcription of names.
type ConfusablePair struct {
	A string
	B string
}

// DefaultConfusablePairs lists the substitutions the detector checks.
var DefaultConfusablePairs = []ConfusablePair{
	{"c", "k"},
	{"s", "c"},
	{"s", "z"},
	{"f", "ph"},
	{"i", "y"},
	{"l", "ll"},
	{"m", "mm"},
	{"n", "nn"},
	{"t", "tt"},
	{"r", "rr"},
	{"s", "ss"},
	{"p", "pp"},
}

// Detector identifies token pairs that differ only by a known
// transcription error. Immutable after construction.
type Detector struct {
	pairs []ConfusablePair
}

// NewDetector creates a Detector over the given confusable pairs.
func NewDetector(pairs []ConfusablePair) *Detector {
	return &Detector{pairs: pairs}
}

// NewDefaultDetector creates a Detector over the built-in pair table.
func NewDefaultDetector() *Detector {
	return NewDetector(DefaultConfusablePairs)
}

// LooksLikeMisspelling reports whether a and b differ only by a confusable
// substitution, a doubled-l collapse, or a single adjacent transposition.
func (d *Detector) LooksLikeMisspelling(a, b string) bool {
	if a == "" || b == "" || a == b {
		return false
	}
	if d.substitutionMatches(a, b) {
		return true
	}
	// doubled-l shows up often enough in hand-typed rosters to warrant its
	// own check independent of the pair table
	if strings.ReplaceAll(a, "ll", "l") == b || strings.ReplaceAll(b, "ll", "l") == a {
		return true
	}
	return isTransposition(a, b)
}

// IsDoubledLetterCollapse reports whether collapsing one doubled letter in
// either token reproduces the other exactly.
func (d *Detector) IsDoubledLetterCollapse(a, b string) bool {
	if a == b {
		return false
	}
	return collapsesTo(a, b) || collapsesTo(b, a)
}

func (d *Detector) substitutionMatches(a, b string) bool {
	for _, pair := range d.pairs {
		if strings.ReplaceAll(a, pair.A, pair.B) == b {
			return true
		}
		if strings.ReplaceAll(a, pair.B, pair.A) == b {
			return true
		}
	}
	return false
}

// collapsesTo reports whether replacing a doubled letter in long with its
// single form yields short.
func collapsesTo(long, short string) bool {
	for c := byte('a'); c <= 'z'; c++ {
		doubled := string([]byte{c, c})
		if !strings.Contains(long, doubled) {
			continue
		}
		if strings.ReplaceAll(long, doubled, string(c)) == short {
			return true
		}
	}
	return false
}

// isTransposition reports whether swapping one adjacent character pair in
// a reproduces b. Only defined for equal-length strings.
func isTransposition(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i+1 < len(a); i++ {
		if a[i] == b[i] {
			continue
		}
		if a[i] != b[i+1] || a[i+1] != b[i] {
			return false
		}
		// remainder must match exactly after the single swap
		return a[i+2:] == b[i+2:]
	}
	return false
}
