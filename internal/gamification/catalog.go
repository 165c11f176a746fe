package gamification

// Requirement types an achievement can test against UserMetrics.
const (
	ReqWordsLearned     = "wordsLearned"
	ReqSessions         = "sessions"
	ReqLessonsCompleted = "lessonsCompleted"
	ReqStreak           = "streak"
	ReqPerfectScore     = "perfectScore"
	ReqPerfectAccuracy  = "perfectAccuracy"
	ReqTotalActivities  = "totalActivities"
	ReqTotalTime        = "totalTime"
)

// Requirement is the unlock condition of a catalog entry.
type Requirement struct {
	Type  string `json:"type"`
	Value int    `json:"value"`
}

// Achievement is one static catalog entry. The catalog is configuration
// data, immutable at runtime; user state only references it by id.
type Achievement struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	XPReward    int         `json:"xpReward"`
	Requirement Requirement `json:"requirement"`
	Icon        string      `json:"icon"`
}

// Catalog is the full achievement set, ordered by category then
// difficulty. Ids are unique.
var Catalog = []Achievement{
	{
		ID:          "vocab_starter_50",
		Name:        "Vocabulary Starter",
		Description: "Learn your first 50 words",
		Category:    "vocabulary",
		XPReward:    50,
		Requirement: Requirement{Type: ReqWordsLearned, Value: 50},
		Icon:        "📚",
	},
	{
		ID:          "vocab_master_150",
		Name:        "Vocabulary Master",
		Description: "Learn 150 words",
		Category:    "vocabulary",
		XPReward:    150,
		Requirement: Requirement{Type: ReqWordsLearned, Value: 150},
		Icon:        "📖",
	},
	{
		ID:          "vocab_expert_500",
		Name:        "Vocabulary Expert",
		Description: "Learn 500 words",
		Category:    "vocabulary",
		XPReward:    500,
		Requirement: Requirement{Type: ReqWordsLearned, Value: 500},
		Icon:        "🎓",
	},
	{
		ID:          "polyglot_1000",
		Name:        "Polyglot",
		Description: "Learn 1000 words",
		Category:    "vocabulary",
		XPReward:    1000,
		Requirement: Requirement{Type: ReqWordsLearned, Value: 1000},
		Icon:        "🌍",
	},
	{
		ID:          "first_words",
		Name:        "First Words",
		Description: "Complete your first speaking session",
		Category:    "speaking",
		XPReward:    25,
		Requirement: Requirement{Type: ReqSessions, Value: 1},
		Icon:        "🎤",
	},
	{
		ID:          "speaking_streak_7",
		Name:        "Speaking Streak",
		Description: "Practice speaking for 7 consecutive days",
		Category:    "speaking",
		XPReward:    100,
		Requirement: Requirement{Type: ReqStreak, Value: 7},
		Icon:        "🔥",
	},
	{
		ID:          "speaking_marathon_50",
		Name:        "Speaking Marathon",
		Description: "Complete 50 speaking sessions",
		Category:    "speaking",
		XPReward:    250,
		Requirement: Requirement{Type: ReqSessions, Value: 50},
		Icon:        "🏃",
	},
	{
		ID:          "perfect_score",
		Name:        "Perfect Score",
		Description: "Achieve 100% accuracy in a session",
		Category:    "speaking",
		XPReward:    150,
		Requirement: Requirement{Type: ReqPerfectScore, Value: 100},
		Icon:        "⭐",
	},
	{
		ID:          "listening_enthusiast_10",
		Name:        "Listening Enthusiast",
		Description: "Complete 10 listening lessons",
		Category:    "listening",
		XPReward:    75,
		Requirement: Requirement{Type: ReqLessonsCompleted, Value: 10},
		Icon:        "🎧",
	},
	{
		ID:          "listening_master_50",
		Name:        "Listening Master",
		Description: "Complete 50 listening lessons",
		Category:    "listening",
		XPReward:    300,
		Requirement: Requirement{Type: ReqLessonsCompleted, Value: 50},
		Icon:        "🎵",
	},
	{
		ID:          "perfect_listener",
		Name:        "Perfect Listener",
		Description: "Achieve 100% accuracy in a lesson",
		Category:    "listening",
		XPReward:    200,
		Requirement: Requirement{Type: ReqPerfectAccuracy, Value: 100},
		Icon:        "👂",
	},
	{
		ID:          "week_warrior",
		Name:        "Week Warrior",
		Description: "Maintain a 7-day streak",
		Category:    "streak",
		XPReward:    100,
		Requirement: Requirement{Type: ReqStreak, Value: 7},
		Icon:        "🔥",
	},
	{
		ID:          "month_master",
		Name:        "Month Master",
		Description: "Maintain a 30-day streak",
		Category:    "streak",
		XPReward:    500,
		Requirement: Requirement{Type: ReqStreak, Value: 30},
		Icon:        "🏆",
	},
	{
		ID:          "year_champion",
		Name:        "Year Champion",
		Description: "Maintain a 365-day streak",
		Category:    "streak",
		XPReward:    5000,
		Requirement: Requirement{Type: ReqStreak, Value: 365},
		Icon:        "👑",
	},
	{
		ID:          "dedicated_learner",
		Name:        "Dedicated Learner",
		Description: "Complete 100 total activities",
		Category:    "overall",
		XPReward:    300,
		Requirement: Requirement{Type: ReqTotalActivities, Value: 100},
		Icon:        "💪",
	},
	{
		ID:          "time_master",
		Name:        "Time Master",
		Description: "Practice for 50 hours total",
		Category:    "overall",
		XPReward:    400,
		Requirement: Requirement{Type: ReqTotalTime, Value: 180000},
		Icon:        "⏰",
	},
}

// Satisfied reports whether the user's aggregates meet the requirement.
func (r Requirement) Satisfied(m UserMetrics) bool {
	switch r.Type {
	case ReqWordsLearned:
		return m.WordsLearned >= r.Value
	case ReqSessions:
		return m.SpeakingSessions >= r.Value
	case ReqLessonsCompleted:
		return m.LessonsCompleted >= r.Value
	case ReqStreak:
		return m.Streak >= r.Value
	case ReqPerfectScore:
		return m.PerfectScore
	case ReqPerfectAccuracy:
		return m.PerfectAccuracy
	case ReqTotalActivities:
		return m.TotalActivities >= r.Value
	case ReqTotalTime:
		return m.TotalTimeSeconds >= r.Value
	}
	return false
}

// Progress returns how far the user is toward the requirement, in
// percent, capped at 100. Flag-style requirements are all-or-nothing.
func (r Requirement) Progress(m UserMetrics) int {
	if r.Satisfied(m) {
		return 100
	}

	var current int
	switch r.Type {
	case ReqWordsLearned:
		current = m.WordsLearned
	case ReqSessions:
		current = m.SpeakingSessions
	case ReqLessonsCompleted:
		current = m.LessonsCompleted
	case ReqStreak:
		current = m.Streak
	case ReqTotalActivities:
		current = m.TotalActivities
	case ReqTotalTime:
		current = m.TotalTimeSeconds
	default:
		return 0
	}

	if r.Value <= 0 {
		return 0
	}
	pct := current * 100 / r.Value
	if pct > 100 {
		pct = 100
	}
	return pct
}
