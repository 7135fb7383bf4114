package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/pkg/models"
)

func member(employeeNumber int, given, family string) models.RosterMember {
	return models.RosterMember{
		EmployeeNumber: employeeNumber,
		GivenName:      given,
		FamilyName:     family,
		Status:         models.MemberStatusActive,
	}
}

func TestClassifier_Classify(t *testing.T) {
	classifier := NewClassifier(NewDefaultScorer())

	t.Run("exact match against a noisy roster", func(t *testing.T) {
		outcome := classifier.Classify("Wilbur", "Smith", []models.RosterMember{
			member(101, "Wilbur", "Smith"),
			member(102, "Walter", "Smithers"),
			member(103, "Roberta", "Quimby"),
		})
		require.Equal(t, models.MatchStatusMatched, outcome.Status)
		assert.Equal(t, 101, outcome.Member.EmployeeNumber)
	})

	t.Run("doubled letter family still matches", func(t *testing.T) {
		outcome := classifier.Classify("Wilbur", "Hendricks", []models.RosterMember{
			member(201, "Wilbur", "Hendrickss"),
			member(202, "Greta", "Voss"),
		})
		require.Equal(t, models.MatchStatusMatched, outcome.Status)
		assert.Equal(t, 201, outcome.Member.EmployeeNumber)
	})

	t.Run("no viable candidate", func(t *testing.T) {
		outcome := classifier.Classify("Wilbur", "Smith", []models.RosterMember{
			member(301, "Greta", "Voss"),
			member(302, "Hiro", "Tanaka"),
		})
		assert.Equal(t, models.MatchStatusUnmatched, outcome.Status)
		assert.Nil(t, outcome.Member)
		assert.Empty(t, outcome.Candidates)
	})

	t.Run("empty names never reach scoring", func(t *testing.T) {
		outcome := classifier.Classify("", "", []models.RosterMember{
			member(401, "Wilbur", "Smith"),
		})
		assert.Equal(t, models.MatchStatusUnmatched, outcome.Status)
	})

	t.Run("empty candidate set", func(t *testing.T) {
		outcome := classifier.Classify("Wilbur", "Smith", nil)
		assert.Equal(t, models.MatchStatusUnmatched, outcome.Status)
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		candidates := []models.RosterMember{
			member(501, "Tom", "Wilbur"),
			member(502, "Tom", "Wilson"),
			member(503, "Thomas", "Wilber"),
		}
		first := classifier.Classify("Tom", "Willbur", candidates)
		second := classifier.Classify("Tom", "Willbur", candidates)
		assert.Equal(t, first, second)
	})
}

func TestDecide(t *testing.T) {
	t.Run("decisive gap picks the top candidate", func(t *testing.T) {
		scored := []models.MatchCandidate{
			{Member: member(1, "Wilbur", "Smyth"), Confidence: 96},
			{Member: member(2, "Wilbert", "Smart"), Confidence: 50},
		}
		outcome := decide("smith", false, scored)
		require.Equal(t, models.MatchStatusMatched, outcome.Status)
		assert.Equal(t, 1, outcome.Member.EmployeeNumber)
	})

	t.Run("insufficient gap with a common given name", func(t *testing.T) {
		scored := []models.MatchCandidate{
			{Member: member(1, "John", "Smyth"), Confidence: 72},
			{Member: member(2, "John", "Smythe"), Confidence: 68},
		}
		outcome := decide("smith", true, scored)
		require.Equal(t, models.MatchStatusMultipleMatches, outcome.Status)
		require.Len(t, outcome.Candidates, 2)
		assert.Equal(t, 72, outcome.Candidates[0].Confidence)
		assert.Equal(t, 68, outcome.Candidates[1].Confidence)
	})

	t.Run("exact family override below the gap", func(t *testing.T) {
		scored := []models.MatchCandidate{
			{Member: member(1, "John", "Smith"), Confidence: 72},
			{Member: member(2, "John", "Smythe"), Confidence: 68},
		}
		outcome := decide("smith", true, scored)
		require.Equal(t, models.MatchStatusMatched, outcome.Status)
		assert.Equal(t, 1, outcome.Member.EmployeeNumber)
	})

	t.Run("override needs the minimum confidence", func(t *testing.T) {
		scored := []models.MatchCandidate{
			{Member: member(1, "John", "Smith"), Confidence: 65},
			{Member: member(2, "John", "Smythe"), Confidence: 60},
		}
		outcome := decide("smith", true, scored)
		assert.Equal(t, models.MatchStatusMultipleMatches, outcome.Status)
	})

	t.Run("single high confidence wins over surviving noise", func(t *testing.T) {
		scored := []models.MatchCandidate{
			{Member: member(1, "Wilma", "Smithson"), Confidence: 55},
			{Member: member(2, "Wilbur", "Smith"), Confidence: 97},
			{Member: member(3, "Willa", "Smithers"), Confidence: 60},
		}
		outcome := decide("smith", false, scored)
		require.Equal(t, models.MatchStatusMatched, outcome.Status)
		assert.Equal(t, 2, outcome.Member.EmployeeNumber)
	})

	t.Run("two high confidence candidates stay ambiguous", func(t *testing.T) {
		scored := []models.MatchCandidate{
			{Member: member(1, "John", "Smith"), Confidence: 100},
			{Member: member(2, "Jon", "Smith"), Confidence: 100},
		}
		outcome := decide("jones", false, scored)
		assert.Equal(t, models.MatchStatusMultipleMatches, outcome.Status)
	})

	t.Run("sole survivor matches", func(t *testing.T) {
		scored := []models.MatchCandidate{
			{Member: member(1, "Wilbur", "Smythe"), Confidence: 72},
		}
		outcome := decide("smith", false, scored)
		require.Equal(t, models.MatchStatusMatched, outcome.Status)
		assert.Equal(t, 1, outcome.Member.EmployeeNumber)
	})
}
