package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"lingoTrackAPI/internal/activity"
	"lingoTrackAPI/internal/apperr"
	"lingoTrackAPI/internal/gamification"
	"lingoTrackAPI/internal/score"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GamificationService owns XP accounting, achievement grants, the
// activity streak and the weekly dashboard view.
type GamificationService struct {
	db *pgxpool.Pool
}

func NewGamificationService(db *pgxpool.Pool) *GamificationService {
	return &GamificationService{db: db}
}

// rowQuerier lets metric aggregation run on the pool or inside a
// transaction.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// AwardXP converts a finished activity into XP, rolls the daily goal,
// evaluates the achievement catalog and persists the resulting level
// state, all under the user's profile lock. Achievement XP rewards feed
// the same total before the level is recomputed, so a session can
// trigger a multi-level jump.
func (s *GamificationService) AwardXP(ctx context.Context, userID string, req *gamification.AwardXPRequest) (*gamification.AwardResult, error) {
	if !activity.ValidType(req.ActivityType) {
		return nil, fmt.Errorf("activity type %q: %w", req.ActivityType, apperr.ErrInvalidInput)
	}
	if req.Duration < 0 {
		return nil, fmt.Errorf("duration %d: %w", req.Duration, apperr.ErrInvalidInput)
	}

	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	var xpAwarded int
	switch req.ActivityType {
	case activity.TypeSpeaking:
		xpAwarded = gamification.SpeakingXP(req.Duration, req.Score, req.Completed)
	case activity.TypeListening:
		xpAwarded = gamification.ListeningXP(req.Duration, req.Accuracy, req.Completed)
	case activity.TypeVocabulary:
		xpAwarded = gamification.VocabularyXP(req.WordsLearned, req.WordsReviewed, req.PerfectRecalls)
	case activity.TypeCourse:
		// Course completions earn achievements and goal credit only.
		xpAwarded = 0
	}

	now := time.Now()
	result := &gamification.AwardResult{XPAwarded: xpAwarded}

	err = runProfileTx(ctx, s.db, id, func(tx pgx.Tx) error {
		var (
			level, totalXP, streak int
			goalTarget, goalDone   int
			goalReset              *time.Time
		)
		err := tx.QueryRow(ctx, `
		SELECT level, total_xp, activity_streak,
			daily_goal_target, daily_goal_completed, daily_goal_reset_date
		FROM users
		WHERE id = $1
		`, id).Scan(&level, &totalXP, &streak, &goalTarget, &goalDone, &goalReset)
		if err != nil {
			return fmt.Errorf("failed to read gamification state: %w", err)
		}

		totalXP += xpAwarded

		// Daily goal rolls over at local midnight.
		today := score.Truncate(now)
		if goalReset == nil || !score.Truncate(*goalReset).Equal(today) {
			goalDone = 0
		}
		goalDone++

		metrics, err := userMetrics(ctx, tx, id, streak)
		if err != nil {
			return err
		}

		newAchievements, rewardXP, err := s.grantAchievements(ctx, tx, id, metrics, now)
		if err != nil {
			return err
		}
		totalXP += rewardXP

		newLevel := gamification.LevelFromXP(totalXP)
		_, err = tx.Exec(ctx, `
		UPDATE users
		SET level = $2,
			xp = $3,
			total_xp = $4,
			daily_goal_completed = $5,
			daily_goal_reset_date = $6,
			updated_at = NOW()
		WHERE id = $1
		`, id, newLevel, totalXP-gamification.TotalXPForLevel(newLevel), totalXP, goalDone, today)
		if err != nil {
			return fmt.Errorf("failed to update gamification state: %w", err)
		}

		result.TotalXP = totalXP
		result.Level = newLevel
		result.XPToNextLevel = gamification.XPToNextLevel(totalXP)
		result.LeveledUp = newLevel > level
		result.NewAchievements = newAchievements
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("AwardXP: user %s earned %d XP (%s), level %d", id, result.XPAwarded, req.ActivityType, result.Level)
	return result, nil
}

// grantAchievements inserts every newly satisfied catalog entry. The
// primary key on (user_id, achievement_id) makes the grant idempotent;
// only rows actually inserted pay their XP reward.
func (s *GamificationService) grantAchievements(ctx context.Context, tx pgx.Tx, id uuid.UUID, m gamification.UserMetrics, now time.Time) ([]gamification.UnlockedAchievement, int, error) {
	unlocked := []gamification.UnlockedAchievement{}
	rewardXP := 0

	for _, a := range gamification.Catalog {
		if !a.Requirement.Satisfied(m) {
			continue
		}
		tag, err := tx.Exec(ctx, `
		INSERT INTO user_achievements (user_id, achievement_id, unlocked_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, achievement_id) DO NOTHING
		`, id, a.ID, now)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to unlock achievement %s: %w", a.ID, err)
		}
		if tag.RowsAffected() == 0 {
			continue
		}
		rewardXP += a.XPReward
		unlocked = append(unlocked, gamification.UnlockedAchievement{
			ID:         a.ID,
			Name:       a.Name,
			UnlockedAt: now,
			Progress:   100,
		})
	}

	return unlocked, rewardXP, nil
}

// UpdateStreak applies the day-gap policy to the activity streak and
// returns the new streak state.
func (s *GamificationService) UpdateStreak(ctx context.Context, userID string) (*gamification.Streaks, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	streaks := &gamification.Streaks{}

	err = runProfileTx(ctx, s.db, id, func(tx pgx.Tx) error {
		var (
			current, longest int
			lastActivity     *time.Time
		)
		err := tx.QueryRow(ctx, `
		SELECT activity_streak, activity_longest_streak, last_activity_date
		FROM users
		WHERE id = $1
		`, id).Scan(&current, &longest, &lastActivity)
		if err != nil {
			return fmt.Errorf("failed to read streak state: %w", err)
		}

		current = score.NextStreak(current, lastActivity, now)
		if current > longest {
			longest = current
		}
		today := score.Truncate(now)

		_, err = tx.Exec(ctx, `
		UPDATE users
		SET activity_streak = $2,
			activity_longest_streak = $3,
			last_activity_date = $4,
			updated_at = NOW()
		WHERE id = $1
		`, id, current, longest, today)
		if err != nil {
			return fmt.Errorf("failed to update streak state: %w", err)
		}

		streaks.Current = current
		streaks.Longest = longest
		streaks.LastActivityDate = &today
		return nil
	})
	if err != nil {
		return nil, err
	}

	return streaks, nil
}

// Achievements returns the user's unlocked achievements plus the rest
// of the catalog annotated with progress percentages.
func (s *GamificationService) Achievements(ctx context.Context, userID string) (*gamification.AchievementsResponse, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	var streak int
	err = s.db.QueryRow(ctx, `SELECT activity_streak FROM users WHERE id = $1`, id).Scan(&streak)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", id, apperr.ErrNotFound)
		}
		return nil, storeErr("failed to read streak", err)
	}

	unlocked, err := unlockedAchievements(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	metrics, err := userMetrics(ctx, s.db, id, streak)
	if err != nil {
		return nil, err
	}

	unlockedIDs := make(map[string]bool, len(unlocked))
	for _, u := range unlocked {
		unlockedIDs[u.ID] = true
	}

	available := []gamification.AvailableAchievement{}
	for _, a := range gamification.Catalog {
		if unlockedIDs[a.ID] {
			continue
		}
		available = append(available, gamification.AvailableAchievement{
			Achievement: a,
			Progress:    a.Requirement.Progress(metrics),
		})
	}

	return &gamification.AchievementsResponse{
		Unlocked:  unlocked,
		Available: available,
	}, nil
}

// Weekly builds the seven-day dashboard view from the activity log.
func (s *GamificationService) Weekly(ctx context.Context, userID string) (*gamification.WeeklyResponse, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	var streak int
	err = s.db.QueryRow(ctx, `SELECT activity_streak FROM users WHERE id = $1`, id).Scan(&streak)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", id, apperr.ErrNotFound)
		}
		return nil, storeErr("failed to read streak", err)
	}

	now := time.Now()
	entries, err := entriesSince(ctx, s.db, id, score.Truncate(now).AddDate(0, 0, -6))
	if err != nil {
		return nil, err
	}

	days, challenge, breakdown := gamification.BuildWeek(entries, now)
	return &gamification.WeeklyResponse{
		Days:            days,
		Streak:          streak,
		WeeklyChallenge: challenge,
		Breakdown:       breakdown,
	}, nil
}

// unlockedAchievements reads the user's grants, joined against the
// static catalog for display names. Grants whose id has left the
// catalog are skipped.
func unlockedAchievements(ctx context.Context, db *pgxpool.Pool, id uuid.UUID) ([]gamification.UnlockedAchievement, error) {
	rows, err := db.Query(ctx, `
	SELECT achievement_id, unlocked_at
	FROM user_achievements
	WHERE user_id = $1
	ORDER BY unlocked_at
	`, id)
	if err != nil {
		return nil, storeErr("failed to fetch achievements", err)
	}
	defer rows.Close()

	byID := make(map[string]gamification.Achievement, len(gamification.Catalog))
	for _, a := range gamification.Catalog {
		byID[a.ID] = a
	}

	unlocked := []gamification.UnlockedAchievement{}
	for rows.Next() {
		var (
			achievementID string
			unlockedAt    time.Time
		)
		if err := rows.Scan(&achievementID, &unlockedAt); err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		a, ok := byID[achievementID]
		if !ok {
			continue
		}
		unlocked = append(unlocked, gamification.UnlockedAchievement{
			ID:         a.ID,
			Name:       a.Name,
			UnlockedAt: unlockedAt,
			Progress:   100,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating achievements: %w", err)
	}

	return unlocked, nil
}

// userMetrics aggregates the lifetime activity log into the counters
// achievement requirements are evaluated against.
func userMetrics(ctx context.Context, q rowQuerier, id uuid.UUID, streak int) (gamification.UserMetrics, error) {
	m := gamification.UserMetrics{Streak: streak}

	err := q.QueryRow(ctx, `
	SELECT
		COUNT(*),
		COALESCE(SUM(duration), 0),
		COUNT(*) FILTER (WHERE activity_type = 'speaking'),
		COUNT(*) FILTER (WHERE activity_type = 'listening' AND (details->>'completed')::boolean),
		COALESCE(SUM((details->>'wordsLearned')::int) FILTER (WHERE activity_type = 'vocabulary'), 0),
		COUNT(*) FILTER (WHERE activity_type = 'speaking' AND (details->>'score')::float >= 100) > 0,
		COUNT(*) FILTER (WHERE activity_type = 'listening' AND (details->>'accuracy')::float >= 100) > 0
	FROM activities
	WHERE user_id = $1
	`, id).Scan(
		&m.TotalActivities,
		&m.TotalTimeSeconds,
		&m.SpeakingSessions,
		&m.LessonsCompleted,
		&m.WordsLearned,
		&m.PerfectScore,
		&m.PerfectAccuracy,
	)
	if err != nil {
		return m, storeErr("failed to aggregate activity metrics", err)
	}

	return m, nil
}
