// Package score holds the pronunciation score record, the day-granular
// streak transition and the month-grid calendar projection.
package score

import "time"

// Entry is one committed session score. History is append-only.
type Entry struct {
	Score int       `json:"score"`
	Date  time.Time `json:"date"`
}

// Record is the score slice of a user profile. BestScore equals the
// maximum over all committed scores; the streak counts consecutive
// calendar days with at least one commit.
type Record struct {
	LastScore      int        `json:"lastScore"`
	BestScore      int        `json:"bestScore"`
	CurrentStreak  int        `json:"currentStreak"`
	LongestStreak  int        `json:"longestStreak"`
	LastActiveDate *time.Time `json:"lastActiveDate"`
}

// SaveRequest is the body of POST /save/score. The user id travels in
// the body; the practice UI submits on the learner's behalf.
type SaveRequest struct {
	Score float64 `json:"score"`
	ID    string  `json:"id"`
}

// SaveResponse is the body returned after a commit.
type SaveResponse struct {
	Message   string `json:"message"`
	LastScore int    `json:"lastScore"`
	BestScore int    `json:"bestScore"`
}

// CalendarDay is one cell of a month grid.
type CalendarDay struct {
	Day  int  `json:"day"`
	Done bool `json:"done"`
}

// DetailResponse is the body of GET /save/fetchdetail: the score record
// plus the current and previous month grids in ascending day order.
type DetailResponse struct {
	Message       string        `json:"message"`
	LastScore     int           `json:"lastScore"`
	BestScore     int           `json:"bestScore"`
	CurrentStreak int           `json:"currentStreak"`
	LongestStreak int           `json:"longestStreak"`
	CurrentMonth  []CalendarDay `json:"currentMonth"`
	LastMonth     []CalendarDay `json:"lastMonth"`
}

// Truncate drops the time-of-day component, keeping t's location.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// NextStreak applies the day-gap policy: same day leaves the streak
// unchanged, exactly one day increments it, anything else (first-ever
// activity included) resets to 1.
func NextStreak(current int, lastActive *time.Time, now time.Time) int {
	today := Truncate(now)
	if lastActive == nil {
		return 1
	}
	last := Truncate(*lastActive)
	switch {
	case last.Equal(today):
		return current
	case last.AddDate(0, 0, 1).Equal(today):
		return current + 1
	default:
		return 1
	}
}

// MonthGrid projects score-history entries onto the given month: one
// {day, done} cell per calendar day, 1st through the last day, done when
// at least one entry falls on that day. Ascending day order.
func MonthGrid(entries []Entry, year int, month time.Month) []CalendarDay {
	active := make(map[int]bool)
	for _, e := range entries {
		d := e.Date
		if d.Year() == year && d.Month() == month {
			active[d.Day()] = true
		}
	}

	// Day 0 of the next month is this month's last day.
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	grid := make([]CalendarDay, 0, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		grid = append(grid, CalendarDay{Day: day, Done: active[day]})
	}
	return grid
}
