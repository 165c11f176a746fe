package gamification

import "time"

// Profile is the gamification slice of a user record.
type Profile struct {
	Level         int                   `json:"level"`
	XP            int                   `json:"xp"`
	TotalXP       int                   `json:"totalXP"`
	XPToNextLevel int                   `json:"xpToNextLevel"`
	Achievements  []UnlockedAchievement `json:"achievements"`
	Streaks       Streaks               `json:"streaks"`
	DailyGoals    DailyGoals            `json:"dailyGoals"`
}

// Streaks is the activity streak, independent of the score-commit streak.
type Streaks struct {
	Current          int        `json:"current"`
	Longest          int        `json:"longest"`
	LastActivityDate *time.Time `json:"lastActivityDate"`
}

// DailyGoals tracks activities completed against a per-day target.
type DailyGoals struct {
	Target        int        `json:"target"`
	Completed     int        `json:"completed"`
	LastResetDate *time.Time `json:"lastResetDate"`
}

// UnlockedAchievement is one earned catalog entry on a user profile.
// An achievement id appears at most once per user.
type UnlockedAchievement struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	UnlockedAt time.Time `json:"unlockedAt"`
	Progress   int       `json:"progress"`
}

// AwardXPRequest is the body of POST /gamification/award-xp.
type AwardXPRequest struct {
	ActivityType   string  `json:"activityType"`
	Duration       int     `json:"duration"`
	Score          float64 `json:"score"`
	Accuracy       float64 `json:"accuracy"`
	Completed      bool    `json:"completed"`
	WordsLearned   int     `json:"wordsLearned"`
	WordsReviewed  int     `json:"wordsReviewed"`
	PerfectRecalls int     `json:"perfectRecalls"`
}

// AwardResult is the snapshot returned after an XP award.
type AwardResult struct {
	XPAwarded       int                   `json:"xpAwarded"`
	TotalXP         int                   `json:"totalXP"`
	Level           int                   `json:"level"`
	XPToNextLevel   int                   `json:"xpToNextLevel"`
	LeveledUp       bool                  `json:"leveledUp"`
	NewAchievements []UnlockedAchievement `json:"newAchievements"`
}

// AchievementsResponse is the body of GET /gamification/achievements.
type AchievementsResponse struct {
	Unlocked  []UnlockedAchievement  `json:"unlocked"`
	Available []AvailableAchievement `json:"available"`
}

// AvailableAchievement is a catalog entry the user has not unlocked yet,
// annotated with progress toward its requirement.
type AvailableAchievement struct {
	Achievement
	Progress int `json:"progress"`
}

// UserMetrics are the lifetime aggregates achievement requirements are
// evaluated against.
type UserMetrics struct {
	WordsLearned     int
	SpeakingSessions int
	LessonsCompleted int
	Streak           int
	PerfectScore     bool
	PerfectAccuracy  bool
	TotalActivities  int
	TotalTimeSeconds int
}

// WeeklyResponse is the body of GET /gamification/weekly.
type WeeklyResponse struct {
	Days            []DaySlot       `json:"days"`
	Streak          int             `json:"streak"`
	WeeklyChallenge WeeklyChallenge `json:"weeklyChallenge"`
	Breakdown       Breakdown       `json:"breakdown"`
}

// DaySlot is one calendar day of the weekly view, seconds per category.
type DaySlot struct {
	Date       string `json:"date"`
	Speaking   int    `json:"speaking"`
	Listening  int    `json:"listening"`
	Vocabulary int    `json:"vocabulary"`
	Completed  bool   `json:"completed"`
}

// WeeklyChallenge is the fixed practice-5-days-a-week challenge.
type WeeklyChallenge struct {
	Target    int `json:"target"`
	Completed int `json:"completed"`
	Reward    int `json:"reward"`
}

// Breakdown is the per-category share of the week's practice time.
type Breakdown struct {
	Speaking   CategoryShare `json:"speaking"`
	Listening  CategoryShare `json:"listening"`
	Vocabulary CategoryShare `json:"vocabulary"`
}

// CategoryShare pairs a category's session count with its percentage of
// total practice time.
type CategoryShare struct {
	Sessions   int `json:"sessions"`
	Percentage int `json:"percentage"`
}
