package gamification_test

import (
	"testing"
	"time"

	"lingoTrackAPI/internal/activity"
	"lingoTrackAPI/internal/gamification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWeek(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)

	entries := []activity.Entry{
		{ActivityType: activity.TypeSpeaking, Duration: 600, Date: now},
		{ActivityType: activity.TypeListening, Duration: 300, Date: now.AddDate(0, 0, -1)},
		{ActivityType: activity.TypeVocabulary, Duration: 100, Date: now.AddDate(0, 0, -1)},
		{ActivityType: activity.TypeCourse, Duration: 200, Date: now.AddDate(0, 0, -3)},
		// Outside the 7-day window; must be ignored.
		{ActivityType: activity.TypeSpeaking, Duration: 999, Date: now.AddDate(0, 0, -8)},
	}

	days, challenge, breakdown := gamification.BuildWeek(entries, now)

	require.Len(t, days, 7)
	assert.Equal(t, "2026-03-04", days[0].Date, "oldest day first")
	assert.Equal(t, "2026-03-10", days[6].Date, "today last")

	assert.Equal(t, 600, days[6].Speaking)
	assert.True(t, days[6].Completed)
	assert.Equal(t, 300, days[5].Listening)
	assert.Equal(t, 100, days[5].Vocabulary)
	// Course time flips the completed flag without a category bucket.
	assert.True(t, days[3].Completed)
	assert.Zero(t, days[3].Speaking+days[3].Listening+days[3].Vocabulary)

	assert.Equal(t, 5, challenge.Target)
	assert.Equal(t, 3, challenge.Completed)
	assert.Equal(t, 100, challenge.Reward)

	assert.Equal(t, 1, breakdown.Speaking.Sessions)
	assert.Equal(t, 1, breakdown.Listening.Sessions)
	assert.Equal(t, 1, breakdown.Vocabulary.Sessions)
}

func TestBuildWeek_EmptyWindow(t *testing.T) {
	t.Parallel()

	days, challenge, breakdown := gamification.BuildWeek(nil, time.Now())

	require.Len(t, days, 7)
	for _, d := range days {
		assert.False(t, d.Completed)
	}
	assert.Zero(t, challenge.Completed)
	assert.Zero(t, breakdown.Speaking.Percentage)
	assert.Zero(t, breakdown.Listening.Percentage)
	assert.Zero(t, breakdown.Vocabulary.Percentage)
}
