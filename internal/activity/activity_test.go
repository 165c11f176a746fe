package activity_test

import (
	"testing"
	"time"

	"lingoTrackAPI/internal/activity"

	"github.com/stretchr/testify/assert"
)

func f(v float64) *float64 { return &v }

func TestSummarize(t *testing.T) {
	t.Parallel()

	monday := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	entries := []activity.Entry{
		{ActivityType: activity.TypeSpeaking, Duration: 300, Details: activity.Details{Score: f(80)}, Date: monday},
		{ActivityType: activity.TypeSpeaking, Duration: 300, Details: activity.Details{Score: f(90)}, Date: tuesday},
		{ActivityType: activity.TypeListening, Duration: 200, Details: activity.Details{Accuracy: f(75)}, Date: monday},
		{ActivityType: activity.TypeVocabulary, Duration: 200, Details: activity.Details{WordsLearned: 12}, Date: tuesday},
	}

	s := activity.Summarize(entries)

	assert.Equal(t, 1000, s.TotalDuration)

	assert.Equal(t, 2, s.Speaking.Count)
	assert.Equal(t, 600, s.Speaking.Duration)
	assert.Equal(t, 85, s.Speaking.AvgScore)
	assert.Equal(t, 60, s.Speaking.Percentage)

	assert.Equal(t, 1, s.Listening.Count)
	assert.Equal(t, 75, s.Listening.AvgAccuracy)
	assert.Equal(t, 20, s.Listening.Percentage)

	assert.Equal(t, 1, s.Vocabulary.Count)
	assert.Equal(t, 12, s.Vocabulary.WordsLearned)
	assert.Equal(t, 20, s.Vocabulary.Percentage)

	assert.Equal(t, activity.DayDurations{Speaking: 300, Listening: 200}, s.DailyBreakdown["2026-03-02"])
	assert.Equal(t, activity.DayDurations{Speaking: 300, Vocabulary: 200}, s.DailyBreakdown["2026-03-03"])
}

func TestSummarize_EmptyWindow(t *testing.T) {
	t.Parallel()

	s := activity.Summarize(nil)

	assert.Zero(t, s.TotalDuration)
	assert.Zero(t, s.Speaking.Percentage, "percentage share is 0 when total duration is 0")
	assert.Zero(t, s.Listening.Percentage)
	assert.Zero(t, s.Vocabulary.Percentage)
	assert.Empty(t, s.DailyBreakdown)
}

func TestSummarize_MissingDetailFields(t *testing.T) {
	t.Parallel()

	now := time.Now()
	entries := []activity.Entry{
		{ActivityType: activity.TypeSpeaking, Duration: 60, Date: now},
		{ActivityType: activity.TypeListening, Duration: 60, Date: now},
	}

	s := activity.Summarize(entries)

	// Sessions without a score/accuracy still count but average as 0.
	assert.Equal(t, 1, s.Speaking.Count)
	assert.Equal(t, 0, s.Speaking.AvgScore)
	assert.Equal(t, 1, s.Listening.Count)
	assert.Equal(t, 0, s.Listening.AvgAccuracy)
}

func TestValidType(t *testing.T) {
	t.Parallel()

	assert.True(t, activity.ValidType(activity.TypeSpeaking))
	assert.True(t, activity.ValidType(activity.TypeCourse))
	assert.False(t, activity.ValidType("gaming"))
	assert.False(t, activity.ValidType(""))
}
