package matching

import (
	"sort"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/names"
)

// Classifier thresholds. The "common" variants apply when the query's
// given name is on the common-name list, which demands stronger evidence.
const (
	dropThreshold       = 30
	dropThresholdCommon = 40

	highConfidenceThreshold = 95

	topFloor       = 80
	topFloorCommon = 85

	decisiveGap       = 25
	decisiveGapCommon = 30

	exactFamilyOverride = 70
)

// Classifier turns a set of roster candidates for one query into a
// MatchOutcome. Stateless apart from its Scorer; safe for concurrent use.
type Classifier struct {
	scorer *Scorer
}

// NewClassifier creates a Classifier over the given Scorer.
func NewClassifier(scorer *Scorer) *Classifier {
	return &Classifier{scorer: scorer}
}

// Classify scores every candidate against the query name and decides
// between Matched, MultipleMatches, and Unmatched. Inputs are raw name
// strings; normalization happens here. Deterministic for a given input.
func (c *Classifier) Classify(queryGiven, queryFamily string, candidates []models.RosterMember) models.MatchOutcome {
	queryGiven = names.Normalize(queryGiven)
	queryFamily = names.Normalize(queryFamily)
	if queryGiven == "" && queryFamily == "" {
		return models.Unmatched()
	}

	commonGiven := c.scorer.IsCommonGiven(queryGiven)
	drop := dropThreshold
	if commonGiven {
		drop = dropThresholdCommon
	}

	scored := make([]models.MatchCandidate, 0, len(candidates))
	for _, member := range candidates {
		confidence := c.scorer.Score(
			queryGiven, queryFamily,
			names.Normalize(member.GivenName), names.Normalize(member.FamilyName),
		)
		if confidence <= drop {
			continue
		}
		scored = append(scored, models.MatchCandidate{Member: member, Confidence: confidence})
	}

	return decide(queryFamily, commonGiven, scored)
}

// decide picks the outcome for an already-scored, drop-filtered candidate
// list. queryFamily must be normalized.
func decide(queryFamily string, commonGiven bool, scored []models.MatchCandidate) models.MatchOutcome {
	if len(scored) == 0 {
		return models.Unmatched()
	}

	// a lone high-confidence candidate wins even when weaker ones survived
	// the drop filter
	if high := singleHighConfidence(scored); high != nil {
		return models.Matched(high.Member)
	}

	if len(scored) == 1 {
		return models.Matched(scored[0].Member)
	}

	// stable order: confidence descending, employee number as tie-break so
	// repeated runs classify identically
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Confidence != scored[j].Confidence {
			return scored[i].Confidence > scored[j].Confidence
		}
		return scored[i].Member.EmployeeNumber < scored[j].Member.EmployeeNumber
	})

	floor, gap := topFloor, decisiveGap
	if commonGiven {
		floor, gap = topFloorCommon, decisiveGapCommon
	}

	top := scored[0]
	if top.Confidence > floor && top.Confidence-scored[1].Confidence > gap {
		return models.Matched(top.Member)
	}

	if names.Normalize(top.Member.FamilyName) == queryFamily && top.Confidence >= exactFamilyOverride {
		return models.Matched(top.Member)
	}

	return models.MultipleMatches(scored)
}

// singleHighConfidence returns the sole candidate at or above the
// high-confidence threshold, or nil when there are zero or several.
func singleHighConfidence(scored []models.MatchCandidate) *models.MatchCandidate {
	var found *models.MatchCandidate
	for i := range scored {
		if scored[i].Confidence >= highConfidenceThreshold {
			if found != nil {
				return nil
			}
			found = &scored[i]
		}
	}
	return found
}
