package gamification_test

import (
	"testing"

	"lingoTrackAPI/internal/gamification"

	"github.com/stretchr/testify/assert"
)

func TestCatalogIDsUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool, len(gamification.Catalog))
	for _, a := range gamification.Catalog {
		assert.False(t, seen[a.ID], "duplicate achievement id %q", a.ID)
		seen[a.ID] = true
		assert.NotEmpty(t, a.Name)
		assert.Positive(t, a.XPReward)
	}
}

func TestRequirementSatisfied(t *testing.T) {
	t.Parallel()

	m := gamification.UserMetrics{
		WordsLearned:     150,
		SpeakingSessions: 1,
		LessonsCompleted: 9,
		Streak:           7,
		PerfectScore:     false,
		TotalActivities:  100,
		TotalTimeSeconds: 3600,
	}

	tests := []struct {
		req  gamification.Requirement
		want bool
	}{
		{gamification.Requirement{Type: gamification.ReqWordsLearned, Value: 50}, true},
		{gamification.Requirement{Type: gamification.ReqWordsLearned, Value: 151}, false},
		{gamification.Requirement{Type: gamification.ReqSessions, Value: 1}, true},
		{gamification.Requirement{Type: gamification.ReqLessonsCompleted, Value: 10}, false},
		{gamification.Requirement{Type: gamification.ReqStreak, Value: 7}, true},
		{gamification.Requirement{Type: gamification.ReqPerfectScore, Value: 100}, false},
		{gamification.Requirement{Type: gamification.ReqTotalActivities, Value: 100}, true},
		{gamification.Requirement{Type: gamification.ReqTotalTime, Value: 180000}, false},
		{gamification.Requirement{Type: "bogus", Value: 1}, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.req.Satisfied(m), "req %+v", tt.req)
	}
}

func TestRequirementProgress(t *testing.T) {
	t.Parallel()

	m := gamification.UserMetrics{WordsLearned: 75, Streak: 3}

	assert.Equal(t, 100,
		gamification.Requirement{Type: gamification.ReqWordsLearned, Value: 50}.Progress(m))
	assert.Equal(t, 50,
		gamification.Requirement{Type: gamification.ReqWordsLearned, Value: 150}.Progress(m))
	assert.Equal(t, 42,
		gamification.Requirement{Type: gamification.ReqStreak, Value: 7}.Progress(m))
	// Flag requirements report nothing until satisfied.
	assert.Equal(t, 0,
		gamification.Requirement{Type: gamification.ReqPerfectScore, Value: 100}.Progress(m))
}
