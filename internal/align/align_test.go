package align_test

import (
	"testing"

	"lingoTrackAPI/internal/align"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordSimilarity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		target string
		spoken string
		want   int
	}{
		{"exact match", "chat", "chat", 100},
		{"case insensitive", "Chat", "chat", 100},
		{"trailing punctuation", "chat", "chat.", 95},
		{"punctuation both sides", "chat!", "chat,", 95},
		{"containment", "unhappy", "happy", 80},
		{"containment reversed", "happy", "unhappy", 80},
		{"edit distance one off", "noir", "nair", 75},
		{"close words", "bonjour", "bonsoir", 71},
		{"no letters in common", "chien", "xyz", 0},
		{"both empty", "", "", 0},
		{"one empty", "chat", "", 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, align.WordSimilarity(tt.target, tt.spoken))
		})
	}
}

func TestWordSimilarity_EditDistanceSymmetric(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{{"noir", "loir"}, {"bonjour", "bonsoir"}, {"merci", "mardi"}}
	for _, p := range pairs {
		assert.Equal(t, align.WordSimilarity(p[0], p[1]), align.WordSimilarity(p[1], p[0]),
			"similarity of %q/%q should be symmetric", p[0], p[1])
	}
}

func TestCompare_MissingTrailingWord(t *testing.T) {
	t.Parallel()

	a := align.NewGreedyAligner()
	entries := a.Compare("le chat noir", "le chat")

	require.Len(t, entries, 3)

	assert.Equal(t, align.ComparisonEntry{Target: "le", Spoken: "le", Score: 100}, entries[0])
	assert.Equal(t, align.ComparisonEntry{Target: "chat", Spoken: "chat", Score: 100}, entries[1])
	assert.Equal(t, align.ComparisonEntry{Target: "noir", Spoken: "", Score: 0, Missing: true}, entries[2])
}

func TestCompare_GreedyClaim(t *testing.T) {
	t.Parallel()

	// Both target words compete for the single spoken "a"; the first
	// target word wins the claim and the second is left missing.
	a := align.NewGreedyAligner()
	entries := a.Compare("a a", "a")

	require.Len(t, entries, 2)
	assert.Equal(t, 100, entries[0].Score)
	assert.False(t, entries[0].Missing)
	assert.True(t, entries[1].Missing)
	assert.Equal(t, "", entries[1].Spoken)
}

func TestCompare_BelowThresholdIsMissing(t *testing.T) {
	t.Parallel()

	a := align.NewGreedyAligner()
	entries := a.Compare("bonjour", "xyz")

	require.Len(t, entries, 1)
	assert.True(t, entries[0].Missing)
	assert.Equal(t, 0, entries[0].Score)
}

func TestCompare_TieGoesToFirstSpokenWord(t *testing.T) {
	t.Parallel()

	a := align.NewGreedyAligner()
	entries := a.Compare("chat chat", "chat chat")

	require.Len(t, entries, 2)
	assert.Equal(t, 100, entries[0].Score)
	assert.Equal(t, 100, entries[1].Score)
	assert.False(t, entries[1].Missing, "second identical spoken word should remain claimable")
}

func TestCompare_WhitespaceRuns(t *testing.T) {
	t.Parallel()

	a := align.NewGreedyAligner()
	entries := a.Compare("  le   chat ", "le  chat")

	require.Len(t, entries, 2)
	assert.False(t, entries[0].Missing)
	assert.False(t, entries[1].Missing)
}

func TestSessionIncrement(t *testing.T) {
	t.Parallel()

	entries := []align.ComparisonEntry{
		{Target: "le", Spoken: "le", Score: 100},
		{Target: "chat", Spoken: "chat", Score: 100},
	}
	// Mean score 100 scaled by the 0.05 round weight.
	assert.InDelta(t, 5.0, align.SessionIncrement(entries), 1e-9)

	entries[1].Score = 0
	entries[1].Missing = true
	assert.InDelta(t, 2.5, align.SessionIncrement(entries), 1e-9)

	assert.Zero(t, align.SessionIncrement(nil))
}
