// Package activity holds the append-only activity log model and the
// pure aggregation fold behind the weekly summary endpoints.
package activity

import (
	"time"

	"github.com/google/uuid"
)

// Activity types accepted by the log.
const (
	TypeSpeaking   = "speaking"
	TypeListening  = "listening"
	TypeVocabulary = "vocabulary"
	TypeCourse     = "course"
)

// ValidType reports whether t is one of the accepted activity types.
func ValidType(t string) bool {
	switch t {
	case TypeSpeaking, TypeListening, TypeVocabulary, TypeCourse:
		return true
	}
	return false
}

// Details carries the per-type payload of a logged activity.
type Details struct {
	Score          *float64 `json:"score,omitempty"`
	Accuracy       *float64 `json:"accuracy,omitempty"`
	WordsLearned   int      `json:"wordsLearned,omitempty"`
	WordsReviewed  int      `json:"wordsReviewed,omitempty"`
	PerfectRecalls int      `json:"perfectRecalls,omitempty"`
	Completed      bool     `json:"completed,omitempty"`
}

// Entry is one logged activity. Rows are created per event and never
// mutated.
type Entry struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"userId"`
	ActivityType string    `json:"activityType"`
	Duration     int       `json:"duration"`
	Details      Details   `json:"details"`
	Date         time.Time `json:"date"`
}

// LogRequest is the body of POST /activity.
type LogRequest struct {
	ActivityType string  `json:"activityType"`
	Duration     int     `json:"duration"`
	Details      Details `json:"details"`
}

// ListResponse is the paginated body of GET /activity/all.
type ListResponse struct {
	Activities []Entry `json:"activities"`
	Total      int     `json:"total"`
	HasMore    bool    `json:"hasMore"`
}

// CategorySummary aggregates one activity category over a window.
type CategorySummary struct {
	Count        int `json:"count"`
	Duration     int `json:"duration"`
	AvgScore     int `json:"avgScore,omitempty"`
	AvgAccuracy  int `json:"avgAccuracy,omitempty"`
	WordsLearned int `json:"wordsLearned,omitempty"`
	Percentage   int `json:"percentage"`
}

// DayDurations is the per-category seconds of a single calendar day.
type DayDurations struct {
	Speaking   int `json:"speaking"`
	Listening  int `json:"listening"`
	Vocabulary int `json:"vocabulary"`
}

// WeeklySummary is the aggregated window consumed by the presentation
// layer. DailyBreakdown is keyed by "2006-01-02" dates.
type WeeklySummary struct {
	TotalDuration  int                     `json:"totalDuration"`
	Speaking       CategorySummary         `json:"speaking"`
	Listening      CategorySummary         `json:"listening"`
	Vocabulary     CategorySummary         `json:"vocabulary"`
	DailyBreakdown map[string]DayDurations `json:"dailyBreakdown"`
}

// Summarize folds a window of log entries into per-category totals,
// averages and percentage shares. Pure; the caller bounds the window.
func Summarize(entries []Entry) WeeklySummary {
	summary := WeeklySummary{
		DailyBreakdown: make(map[string]DayDurations),
	}

	var totalScore, totalAccuracy float64

	for _, e := range entries {
		summary.TotalDuration += e.Duration

		dayKey := e.Date.Format("2006-01-02")
		day := summary.DailyBreakdown[dayKey]

		switch e.ActivityType {
		case TypeSpeaking:
			summary.Speaking.Count++
			summary.Speaking.Duration += e.Duration
			if e.Details.Score != nil {
				totalScore += *e.Details.Score
			}
			day.Speaking += e.Duration
		case TypeListening:
			summary.Listening.Count++
			summary.Listening.Duration += e.Duration
			if e.Details.Accuracy != nil {
				totalAccuracy += *e.Details.Accuracy
			}
			day.Listening += e.Duration
		case TypeVocabulary:
			summary.Vocabulary.Count++
			summary.Vocabulary.Duration += e.Duration
			summary.Vocabulary.WordsLearned += e.Details.WordsLearned
			day.Vocabulary += e.Duration
		}

		summary.DailyBreakdown[dayKey] = day
	}

	if summary.Speaking.Count > 0 {
		summary.Speaking.AvgScore = roundDiv(totalScore, summary.Speaking.Count)
	}
	if summary.Listening.Count > 0 {
		summary.Listening.AvgAccuracy = roundDiv(totalAccuracy, summary.Listening.Count)
	}

	summary.Speaking.Percentage = share(summary.Speaking.Duration, summary.TotalDuration)
	summary.Listening.Percentage = share(summary.Listening.Duration, summary.TotalDuration)
	summary.Vocabulary.Percentage = share(summary.Vocabulary.Duration, summary.TotalDuration)

	return summary
}

func roundDiv(sum float64, count int) int {
	return int(sum/float64(count) + 0.5)
}

// share returns part's percentage of total, 0 when total is 0.
func share(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(float64(part)/float64(total)*100 + 0.5)
}
