// Package matching fuses the name-comparison signals into confidence
// scores and classifies roster candidates for an imported record.
package matching

import (
	"math"

	"github.com/Ramsey-B/fern/pkg/names"
)

// Confidence levels returned by the short-circuiting rule cascade. The
// values mirror observed behavior of the import tooling this replaces and
// are tunable, not principled.
const (
	ConfidenceExactMatch     = 100 // both tokens equal, or equal family + nickname given
	ConfidenceDoubledFamily  = 98  // doubled-letter family collapse + nickname given
	ConfidenceExactFamily    = 95  // family equal, given similar or a nickname
	ConfidenceAdjacentFamily = 92  // family misspelled or phonetically identical-ish
	ConfidencePhoneticFamily = 85  // family phonetically close
)

// Cascade thresholds and blend parameters.
const (
	givenSimilarExactFamily    = 0.5
	givenSimilarAdjacentFamily = 0.6
	phoneticAdjacentThreshold  = 0.9
	phoneticCloseThreshold     = 0.8

	weightGivenCommon  = 0.2
	weightFamilyCommon = 0.8
	weightGiven        = 0.3
	weightFamily       = 0.7

	prefixBoost        = 0.8
	variantBoost       = 0.9
	misspellingBoost   = 0.85
	phoneticBlendScale = 0.9
	doubledFamilyFloor = 0.95

	familyGateCommon = 0.6
	familyGate       = 0.4
)

// Scorer computes an integer confidence in [0,100] for a query name
// against a candidate roster name. Immutable after construction and safe
// for concurrent use.
type Scorer struct {
	sim       *names.Scorer
	encoder   *names.Encoder
	nicknames *names.Resolver
	detector  *names.Detector
	common    map[string]struct{}
}

// NewScorer creates a Scorer over the given lookup tables.
func NewScorer(nicknames *names.Resolver, detector *names.Detector, commonGivenNames []string) *Scorer {
	common := make(map[string]struct{}, len(commonGivenNames))
	for _, name := range commonGivenNames {
		common[names.Normalize(name)] = struct{}{}
	}
	return &Scorer{
		sim:       names.NewScorer(),
		encoder:   names.NewEncoder(),
		nicknames: nicknames,
		detector:  detector,
		common:    common,
	}
}

// NewDefaultScorer creates a Scorer over the built-in tables.
func NewDefaultScorer() *Scorer {
	return NewScorer(names.NewDefaultResolver(), names.NewDefaultDetector(), names.DefaultCommonGivenNames)
}

// IsCommonGiven reports whether the normalized given name is frequent
// enough that it carries little identifying signal on its own.
func (s *Scorer) IsCommonGiven(given string) bool {
	_, ok := s.common[given]
	return ok
}

// Score returns the confidence that the candidate names identify the same
// person as the query names. All four tokens must already be normalized.
// The cascade returns on the first rule that fires; rule order matters
// and must not be rearranged.
func (s *Scorer) Score(queryGiven, queryFamily, candGiven, candFamily string) int {
	givenVariant := s.nicknames.IsVariant(queryGiven, candGiven)
	familyEqual := queryFamily == candFamily

	// 1. exact identity
	if familyEqual && (queryGiven == candGiven || givenVariant) {
		return ConfidenceExactMatch
	}

	givenSim := s.sim.Similarity(queryGiven, candGiven)

	// 2. exact family, close given
	if familyEqual && (givenSim > givenSimilarExactFamily || givenVariant) {
		return ConfidenceExactFamily
	}

	familyPhonetic := s.encoder.Similarity(queryFamily, candFamily)
	familyMisspelled := s.detector.LooksLikeMisspelling(queryFamily, candFamily)
	givenClose := givenVariant || givenSim > givenSimilarAdjacentFamily

	// 3. family misspelled or phonetically adjacent; the doubled-letter
	// variant is the most specific rule and wins over the generic one
	if (familyMisspelled || familyPhonetic > phoneticAdjacentThreshold) && givenClose {
		if s.detector.IsDoubledLetterCollapse(queryFamily, candFamily) && givenVariant {
			return ConfidenceDoubledFamily
		}
		return ConfidenceAdjacentFamily
	}

	// 4. family phonetically close
	if familyPhonetic > phoneticCloseThreshold && givenClose {
		return ConfidencePhoneticFamily
	}

	// 5. weighted blend
	commonGiven := s.IsCommonGiven(queryGiven)
	weightG, weightF := weightGiven, weightFamily
	if commonGiven {
		weightG, weightF = weightGivenCommon, weightFamilyCommon
	}

	givenComponent := s.componentSimilarity(queryGiven, candGiven, givenSim, givenVariant)
	familyComponent := s.componentSimilarity(queryFamily, candFamily, s.sim.Similarity(queryFamily, candFamily), false)
	familyComponent = math.Max(familyComponent, phoneticBlendScale*familyPhonetic)
	if s.detector.IsDoubledLetterCollapse(queryFamily, candFamily) {
		familyComponent = math.Max(familyComponent, doubledFamilyFloor)
	}

	score := givenComponent*weightG + familyComponent*weightF

	// 6. a weak family match must not hide behind a strong given match
	if queryGiven != "" && queryFamily != "" {
		gate := familyGate
		if commonGiven {
			gate = familyGateCommon
		}
		if familyComponent < gate {
			score = score * (familyComponent / gate)
		}
	}

	confidence := int(math.Round(score * 100))
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 100 {
		confidence = 100
	}
	return confidence
}

// componentSimilarity applies the blend boosts to a raw edit-distance
// similarity: prefix containment, nickname variance, and detected
// misspellings each establish a floor.
func (s *Scorer) componentSimilarity(a, b string, sim float64, isVariant bool) float64 {
	if a != "" && b != "" && a != b {
		if hasPrefixEitherWay(a, b) {
			sim = math.Max(sim, prefixBoost)
		}
		if s.detector.LooksLikeMisspelling(a, b) {
			sim = math.Max(sim, misspellingBoost)
		}
	}
	if isVariant {
		sim = math.Max(sim, variantBoost)
	}
	return sim
}

func hasPrefixEitherWay(a, b string) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	return b[:len(a)] == a
}
