package names

// Scorer computes normalized string similarity scores.
type Scorer struct{}

// NewScorer creates a new Scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Similarity returns a Levenshtein-based similarity between 0.0 and 1.0:
// 1 - distance/max(len(a), len(b)). Both-empty inputs score 1.0, one-empty
// scores 0.0. Symmetric for all inputs.
func (s *Scorer) Similarity(a, b string) float64 {
	distance := s.Distance(a, b)
	maxLen := max(len(a), len(b))
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/float64(maxLen)
}

// Distance calculates the Levenshtein edit distance between two strings.
// Insertion, deletion, and substitution each cost 1.
func (s *Scorer) Distance(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Two rows are enough for the DP table
	row := make([]int, len(b)+1)
	prevRow := make([]int, len(b)+1)

	for j := 0; j <= len(b); j++ {
		prevRow[j] = j
	}

	for i := 1; i <= len(a); i++ {
		row[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			row[j] = min(min(row[j-1]+1, prevRow[j]+1), prevRow[j-1]+cost)
		}
		row, prevRow = prevRow, row
	}

	return prevRow[len(b)]
}
