package gamification_test

import (
	"testing"

	"lingoTrackAPI/internal/activity"
	"lingoTrackAPI/internal/gamification"

	"github.com/stretchr/testify/assert"
)

func TestXPForLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 100, gamification.XPForLevel(1))
	assert.Equal(t, 150, gamification.XPForLevel(2))
	assert.Equal(t, 225, gamification.XPForLevel(3))
	assert.Equal(t, 337, gamification.XPForLevel(4))
}

func TestLevelFromXP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		totalXP int
		want    int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{249, 2},
		{250, 3},
		{474, 3},
		{475, 4},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, gamification.LevelFromXP(tt.totalXP), "totalXP=%d", tt.totalXP)
	}
}

func TestLevelFromXP_RoundTrip(t *testing.T) {
	t.Parallel()

	// The inverse must bracket the forward curve for any XP amount.
	for _, x := range []int{0, 1, 50, 100, 101, 249, 250, 1000, 12345, 987654} {
		level := gamification.LevelFromXP(x)
		assert.LessOrEqual(t, gamification.TotalXPForLevel(level), x, "x=%d", x)
		assert.Greater(t, gamification.TotalXPForLevel(level+1), x, "x=%d", x)
	}
}

func TestSpeakingXP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		duration  int
		score     float64
		completed bool
		want      int
	}{
		// 2 min * 10 = 20 base, score 85 -> floor(15/10)*5 = 5, +20 done.
		{"base plus bonus plus completion", 120, 85, true, 45},
		{"score below bonus threshold", 120, 69, false, 20},
		{"score exactly at threshold", 60, 70, false, 10},
		{"zero duration incomplete", 0, 0, false, 0},
		{"completion only", 0, 0, true, 20},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, gamification.SpeakingXP(tt.duration, tt.score, tt.completed))
		})
	}
}

func TestListeningXP(t *testing.T) {
	t.Parallel()

	// 2 min * 8 = 16 base, accuracy 90 -> floor(20/10)*5 = 10, +25 done.
	assert.Equal(t, 51, gamification.ListeningXP(120, 90, true))
	assert.Equal(t, 16, gamification.ListeningXP(120, 50, false))
	assert.Equal(t, 25, gamification.ListeningXP(0, 0, true))
}

func TestVocabularyXP(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, gamification.VocabularyXP(0, 0, 0))
	assert.Equal(t, 5, gamification.VocabularyXP(1, 0, 0))
	// 10 learned + 20 reviewed + 3 perfect = 50 + 40 + 9.
	assert.Equal(t, 99, gamification.VocabularyXP(10, 20, 3))
}

func TestStarRating(t *testing.T) {
	t.Parallel()

	tests := []struct {
		count        int
		activityType string
		want         int
	}{
		{0, activity.TypeSpeaking, 1},
		{9, activity.TypeSpeaking, 1},
		{10, activity.TypeSpeaking, 2},
		{25, activity.TypeSpeaking, 3},
		{50, activity.TypeListening, 4},
		{100, activity.TypeListening, 5},
		{49, activity.TypeVocabulary, 1},
		{50, activity.TypeVocabulary, 2},
		{500, activity.TypeVocabulary, 5},
		{30, "unknown", 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, gamification.StarRating(tt.count, tt.activityType),
			"count=%d type=%s", tt.count, tt.activityType)
	}
}

func TestXPToNextLevel(t *testing.T) {
	t.Parallel()

	// At 0 XP a fresh level-1 user needs the full 100.
	assert.Equal(t, 100, gamification.XPToNextLevel(0))
	// At 100 XP the user just hit level 2 and needs the full 150.
	assert.Equal(t, 150, gamification.XPToNextLevel(100))
	// Partway through level 2.
	assert.Equal(t, 100, gamification.XPToNextLevel(150))
}
