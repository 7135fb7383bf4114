package models

// MatchStatus identifies which variant of a MatchOutcome is populated.
type MatchStatus string

const (
	MatchStatusMatched         MatchStatus = "matched"
	MatchStatusMultipleMatches MatchStatus = "multiple_matches"
	MatchStatusUnmatched       MatchStatus = "unmatched"
)

// MatchCandidate pairs a roster member with the confidence the engine
// assigned it for a query, 0-100.
type MatchCandidate struct {
	Member     RosterMember `json:"member"`
	Confidence int          `json:"confidence"`
}

// MatchOutcome is the tagged result of classifying one query against the
// roster. Exactly one variant is populated: Member for Matched, Candidates
// (sorted by confidence descending) for MultipleMatches, neither for
// Unmatched.
type MatchOutcome struct {
	Status     MatchStatus      `json:"status"`
	Member     *RosterMember    `json:"member,omitempty"`
	Candidates []MatchCandidate `json:"candidates,omitempty"`
}

// Matched builds a Matched outcome for a single resolved member.
func Matched(member RosterMember) MatchOutcome {
	return MatchOutcome{Status: MatchStatusMatched, Member: &member}
}

// MultipleMatches builds an ambiguous outcome carrying every surviving
// candidate for a human to pick from.
func MultipleMatches(candidates []MatchCandidate) MatchOutcome {
	return MatchOutcome{Status: MatchStatusMultipleMatches, Candidates: candidates}
}

// Unmatched builds an outcome with no viable candidate.
func Unmatched() MatchOutcome {
	return MatchOutcome{Status: MatchStatusUnmatched}
}
