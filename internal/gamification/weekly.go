package gamification

import (
	"time"

	"lingoTrackAPI/internal/activity"
)

// Weekly challenge: practice on 5 distinct days of the trailing week for
// a 100 point reward.
const (
	weeklyChallengeTarget = 5
	weeklyChallengeReward = 100
)

// BuildWeek folds the trailing seven days of log entries into the
// weekly dashboard view: one slot per calendar day (oldest first, today
// last), per-category seconds, a completed flag for any-activity days,
// the fixed weekly challenge and the percentage breakdown.
func BuildWeek(entries []activity.Entry, now time.Time) ([]DaySlot, WeeklyChallenge, Breakdown) {
	days := make([]DaySlot, 0, 7)
	index := make(map[string]int, 7)

	for i := 6; i >= 0; i-- {
		d := now.AddDate(0, 0, -i)
		key := d.Format("2006-01-02")
		index[key] = len(days)
		days = append(days, DaySlot{Date: key})
	}

	window := make([]activity.Entry, 0, len(entries))
	for _, e := range entries {
		i, ok := index[e.Date.Format("2006-01-02")]
		if !ok {
			continue
		}
		window = append(window, e)
		switch e.ActivityType {
		case activity.TypeSpeaking:
			days[i].Speaking += e.Duration
		case activity.TypeListening:
			days[i].Listening += e.Duration
		case activity.TypeVocabulary:
			days[i].Vocabulary += e.Duration
		}
		days[i].Completed = true
	}

	completedDays := 0
	for _, d := range days {
		if d.Completed {
			completedDays++
		}
	}

	challenge := WeeklyChallenge{
		Target:    weeklyChallengeTarget,
		Completed: completedDays,
		Reward:    weeklyChallengeReward,
	}

	summary := activity.Summarize(window)
	breakdown := Breakdown{
		Speaking:   CategoryShare{Sessions: summary.Speaking.Count, Percentage: summary.Speaking.Percentage},
		Listening:  CategoryShare{Sessions: summary.Listening.Count, Percentage: summary.Listening.Percentage},
		Vocabulary: CategoryShare{Sessions: summary.Vocabulary.Count, Percentage: summary.Vocabulary.Percentage},
	}

	return days, challenge, breakdown
}
