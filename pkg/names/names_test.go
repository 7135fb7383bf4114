package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase passthrough", "wilbur", "wilbur"},
		{"mixed case", "WilBur", "wilbur"},
		{"strips punctuation", "o'brien", "obrien"},
		{"strips spaces and hyphens", "van der-Berg", "vanderberg"},
		{"keeps digits", "area51", "area51"},
		{"empty", "", ""},
		{"only punctuation", "--'.", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestScorer_Similarity(t *testing.T) {
	scorer := NewScorer()

	t.Run("reflexive", func(t *testing.T) {
		for _, s := range []string{"a", "wilbur", "katherine"} {
			assert.Equal(t, 1.0, scorer.Similarity(s, s))
		}
	})

	t.Run("symmetric", func(t *testing.T) {
		pairs := [][2]string{
			{"wilbur", "willbur"},
			{"smith", "smyth"},
			{"kate", "katherine"},
			{"", "abc"},
		}
		for _, p := range pairs {
			assert.Equal(t, scorer.Similarity(p[0], p[1]), scorer.Similarity(p[1], p[0]))
		}
	})

	t.Run("both empty", func(t *testing.T) {
		assert.Equal(t, 1.0, scorer.Similarity("", ""))
	})

	t.Run("one empty", func(t *testing.T) {
		assert.Equal(t, 0.0, scorer.Similarity("", "abc"))
	})

	t.Run("single substitution", func(t *testing.T) {
		// distance 1 over length 5
		assert.InDelta(t, 0.8, scorer.Similarity("smith", "smyth"), 0.0001)
	})

	t.Run("single insertion", func(t *testing.T) {
		// distance 1 over length 7
		assert.InDelta(t, 1.0-1.0/7.0, scorer.Similarity("wilbur", "willbur"), 0.0001)
	})
}

func TestScorer_Distance(t *testing.T) {
	scorer := NewScorer()

	assert.Equal(t, 0, scorer.Distance("anna", "anna"))
	assert.Equal(t, 3, scorer.Distance("", "abc"))
	assert.Equal(t, 3, scorer.Distance("abc", ""))
	assert.Equal(t, 1, scorer.Distance("smith", "smyth"))
	assert.Equal(t, 2, scorer.Distance("kitten", "sittin"))
	assert.Equal(t, 3, scorer.Distance("kitten", "sitting"))
}

func TestEncoder_Encode(t *testing.T) {
	encoder := NewEncoder()

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, "", encoder.Encode(""))
	})

	t.Run("same-sounding spellings share a code", func(t *testing.T) {
		pairs := [][2]string{
			{"philip", "filip"},
			{"catherine", "katherine"},
			{"stephen", "stefen"},
			{"nick", "nik"},
			{"smith", "smyth"},
			{"wilbur", "willbur"},
			{"izak", "isaac"},
		}
		for _, p := range pairs {
			assert.Equal(t, encoder.Encode(p[0]), encoder.Encode(p[1]),
				"%q and %q should encode identically", p[0], p[1])
		}
	})

	t.Run("distinct names keep distinct codes", func(t *testing.T) {
		assert.NotEqual(t, encoder.Encode("wilbur"), encoder.Encode("walter"))
		assert.NotEqual(t, encoder.Encode("smith"), encoder.Encode("jones"))
	})
}

func TestEncoder_Similarity(t *testing.T) {
	encoder := NewEncoder()

	t.Run("identical codes score 1", func(t *testing.T) {
		assert.Equal(t, 1.0, encoder.Similarity("catherine", "katherine"))
	})

	t.Run("different codes score fractionally", func(t *testing.T) {
		sim := encoder.Similarity("wilbur", "walter")
		assert.Greater(t, sim, 0.0)
		assert.Less(t, sim, 1.0)
	})
}

func TestResolver_IsVariant(t *testing.T) {
	resolver := NewDefaultResolver()

	t.Run("equal tokens", func(t *testing.T) {
		assert.True(t, resolver.IsVariant("zelda", "zelda"))
	})

	t.Run("canonical to variant", func(t *testing.T) {
		assert.True(t, resolver.IsVariant("michael", "mike"))
		assert.True(t, resolver.IsVariant("mike", "michael"))
		assert.True(t, resolver.IsVariant("elizabeth", "beth"))
	})

	t.Run("two variants of the same canonical", func(t *testing.T) {
		assert.True(t, resolver.IsVariant("bill", "will"))
		assert.True(t, resolver.IsVariant("liz", "betty"))
	})

	t.Run("case insensitive", func(t *testing.T) {
		assert.True(t, resolver.IsVariant("Mike", "MICHAEL"))
	})

	t.Run("variant shared by two canonicals", func(t *testing.T) {
		assert.True(t, resolver.IsVariant("pat", "patrick"))
		assert.True(t, resolver.IsVariant("pat", "patricia"))
		assert.True(t, resolver.IsVariant("ted", "edward"))
		assert.True(t, resolver.IsVariant("ted", "theodore"))
	})

	t.Run("unrelated names", func(t *testing.T) {
		assert.False(t, resolver.IsVariant("mike", "robert"))
		assert.False(t, resolver.IsVariant("patrick", "patricia"))
	})

	t.Run("injected table", func(t *testing.T) {
		resolver := NewResolver(map[string][]string{"wilhelmina": {"mina"}})
		assert.True(t, resolver.IsVariant("mina", "wilhelmina"))
		assert.False(t, resolver.IsVariant("mike", "michael"))
	})
}

func TestDetector_LooksLikeMisspelling(t *testing.T) {
	detector := NewDefaultDetector()

	t.Run("confusable substitution", func(t *testing.T) {
		assert.True(t, detector.LooksLikeMisspelling("clark", "klark"))
		assert.True(t, detector.LooksLikeMisspelling("smith", "smyth"))
		assert.True(t, detector.LooksLikeMisspelling("isak", "izak"))
	})

	t.Run("doubled letter collapse", func(t *testing.T) {
		assert.True(t, detector.LooksLikeMisspelling("wilbur", "willbur"))
		assert.True(t, detector.LooksLikeMisspelling("hammond", "hamond"))
	})

	t.Run("adjacent transposition", func(t *testing.T) {
		assert.True(t, detector.LooksLikeMisspelling("wilbur", "wiblur"))
		assert.True(t, detector.LooksLikeMisspelling("brian", "brain"))
	})

	t.Run("not a known pattern", func(t *testing.T) {
		assert.False(t, detector.LooksLikeMisspelling("wilbur", "walter"))
		assert.False(t, detector.LooksLikeMisspelling("smith", "jones"))
	})

	t.Run("equal or empty tokens are not misspellings", func(t *testing.T) {
		assert.False(t, detector.LooksLikeMisspelling("wilbur", "wilbur"))
		assert.False(t, detector.LooksLikeMisspelling("", "wilbur"))
		assert.False(t, detector.LooksLikeMisspelling("wilbur", ""))
	})
}

func TestDetector_IsDoubledLetterCollapse(t *testing.T) {
	detector := NewDefaultDetector()

	assert.True(t, detector.IsDoubledLetterCollapse("willbur", "wilbur"))
	assert.True(t, detector.IsDoubledLetterCollapse("wilbur", "willbur"))
	assert.True(t, detector.IsDoubledLetterCollapse("hamond", "hammond"))
	assert.False(t, detector.IsDoubledLetterCollapse("wilbur", "wilbur"))
	assert.False(t, detector.IsDoubledLetterCollapse("smith", "smyth"))
}
