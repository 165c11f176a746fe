package user

import "time"

// User is the durable per-user profile row. Score and gamification
// state live on this single record so same-user mutations can be
// serialized with one row lock.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Score record, mutated only by the score tracker.
	LastScore      int        `json:"lastScore"`
	BestScore      int        `json:"bestScore"`
	CurrentStreak  int        `json:"currentStreak"`
	LongestStreak  int        `json:"longestStreak"`
	LastActiveDate *time.Time `json:"lastActiveDate"`

	// Cumulative practice time in minutes.
	PracticeTime int `json:"practiceTime"`

	// Gamification profile.
	Level            int        `json:"level"`
	XP               int        `json:"xp"`
	TotalXP          int        `json:"totalXP"`
	ActivityStreak   int        `json:"activityStreak"`
	ActivityLongest  int        `json:"activityLongestStreak"`
	LastActivityDate *time.Time `json:"lastActivityDate"`

	DailyGoalTarget    int        `json:"dailyGoalTarget"`
	DailyGoalCompleted int        `json:"dailyGoalCompleted"`
	DailyGoalResetDate *time.Time `json:"dailyGoalResetDate"`
}

// LanguageProgress is one entry of the per-language progress map.
// At most one entry exists per language identifier.
type LanguageProgress struct {
	LessonsCompleted  int `json:"lessonsCompleted"`
	VocabularyLearned int `json:"vocabularyLearned"`
	Fluency           int `json:"fluency"`
}
