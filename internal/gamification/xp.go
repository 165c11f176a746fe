package gamification

import (
	"math"

	"lingoTrackAPI/internal/activity"
)

// Leveling follows an exponential curve: advancing from level n to n+1
// costs floor(100 * 1.5^(n-1)) XP.

// XPForLevel returns the XP required to advance from level n to n+1.
func XPForLevel(level int) int {
	return int(math.Floor(100 * math.Pow(1.5, float64(level-1))))
}

// TotalXPForLevel returns the cumulative XP required to reach a level
// from level 1.
func TotalXPForLevel(level int) int {
	total := 0
	for i := 1; i < level; i++ {
		total += XPForLevel(i)
	}
	return total
}

// LevelFromXP inverts the curve: the returned level is the last one the
// given lifetime XP fully pays for, so
// TotalXPForLevel(LevelFromXP(x)) <= x < TotalXPForLevel(LevelFromXP(x)+1).
func LevelFromXP(totalXP int) int {
	level := 1
	xpNeeded := 0
	for {
		xpNeeded += XPForLevel(level)
		if xpNeeded > totalXP {
			return level
		}
		level++
	}
}

// XPToNextLevel returns how much XP within the current level is still
// missing before the next level.
func XPToNextLevel(totalXP int) int {
	level := LevelFromXP(totalXP)
	return TotalXPForLevel(level+1) - totalXP
}

// SpeakingXP scores a speaking session: 10 XP per minute, +5 per 10%
// of score above 70%, +20 on completion. Never negative.
func SpeakingXP(durationSeconds int, score float64, completed bool) int {
	xp := int(math.Floor(float64(durationSeconds) / 60 * 10))
	if score >= 70 {
		xp += int(math.Floor((score-70)/10)) * 5
	}
	if completed {
		xp += 20
	}
	if xp < 0 {
		return 0
	}
	return xp
}

// ListeningXP scores a listening lesson: 8 XP per minute, +5 per 10%
// of accuracy above 70%, +25 on completion. Never negative.
func ListeningXP(durationSeconds int, accuracy float64, completed bool) int {
	xp := int(math.Floor(float64(durationSeconds) / 60 * 8))
	if accuracy >= 70 {
		xp += int(math.Floor((accuracy-70)/10)) * 5
	}
	if completed {
		xp += 25
	}
	if xp < 0 {
		return 0
	}
	return xp
}

// VocabularyXP scores a vocabulary session: 5 XP per new word, 2 per
// review, 3 per perfect recall. Never negative.
func VocabularyXP(wordsLearned, wordsReviewed, perfectRecalls int) int {
	xp := wordsLearned*5 + wordsReviewed*2 + perfectRecalls*3
	if xp < 0 {
		return 0
	}
	return xp
}

var starThresholds = map[string][]int{
	activity.TypeSpeaking:   {0, 10, 25, 50, 100},
	activity.TypeListening:  {0, 10, 25, 50, 100},
	activity.TypeVocabulary: {0, 50, 100, 200, 500},
}

// StarRating maps a lifetime activity count to 1-5 stars: the highest
// threshold index the count meets or exceeds, minimum 1 star. Unknown
// activity types use the speaking thresholds.
func StarRating(count int, activityType string) int {
	levels, ok := starThresholds[activityType]
	if !ok {
		levels = starThresholds[activity.TypeSpeaking]
	}
	for i := len(levels) - 1; i >= 0; i-- {
		if count >= levels[i] {
			return i + 1
		}
	}
	return 1
}
