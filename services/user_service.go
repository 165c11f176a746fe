package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lingoTrackAPI/internal/activity"
	"lingoTrackAPI/internal/apperr"
	"lingoTrackAPI/internal/gamification"
	"lingoTrackAPI/internal/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultDailyGoal = 5

type UserService struct {
	db *pgxpool.Pool
}

func NewUserService(db *pgxpool.Pool) *UserService {
	return &UserService{db: db}
}

// CreateUser inserts a fresh profile row with zeroed score and
// gamification state at level 1.
func (s *UserService) CreateUser(ctx context.Context, req *user.CreateUserRequest) (*user.User, error) {
	if req.Email == "" || req.Username == "" {
		return nil, fmt.Errorf("email and username are required: %w", apperr.ErrInvalidInput)
	}

	u := &user.User{
		ID:              uuid.New().String(),
		Email:           req.Email,
		Username:        req.Username,
		Level:           1,
		DailyGoalTarget: defaultDailyGoal,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	query := `
	INSERT INTO users (id, email, username, level, daily_goal_target, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id, email, username, created_at, updated_at
	`

	err := s.db.QueryRow(
		ctx,
		query,
		u.ID,
		u.Email,
		u.Username,
		u.Level,
		u.DailyGoalTarget,
		u.CreatedAt,
		u.UpdatedAt,
	).Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, storeErr("failed to create user", err)
	}

	return u, nil
}

// Profile returns the full profile: the user row, the assembled
// gamification view and the per-activity star ratings.
func (s *UserService) Profile(ctx context.Context, userID string) (*user.ProfileResponse, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	u := &user.User{}
	err = s.db.QueryRow(ctx, `
	SELECT id, email, username, created_at, updated_at,
		last_score, best_score, current_streak, longest_streak, last_active_date,
		practice_time,
		level, xp, total_xp, activity_streak, activity_longest_streak, last_activity_date,
		daily_goal_target, daily_goal_completed, daily_goal_reset_date
	FROM users
	WHERE id = $1
	`, id).Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.LastScore,
		&u.BestScore,
		&u.CurrentStreak,
		&u.LongestStreak,
		&u.LastActiveDate,
		&u.PracticeTime,
		&u.Level,
		&u.XP,
		&u.TotalXP,
		&u.ActivityStreak,
		&u.ActivityLongest,
		&u.LastActivityDate,
		&u.DailyGoalTarget,
		&u.DailyGoalCompleted,
		&u.DailyGoalResetDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", id, apperr.ErrNotFound)
		}
		return nil, storeErr("failed to get user", err)
	}

	achievements, err := unlockedAchievements(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	stars, err := s.starRatings(ctx, id)
	if err != nil {
		return nil, err
	}

	return &user.ProfileResponse{
		User: u,
		Gamification: gamification.Profile{
			Level:         u.Level,
			XP:            u.XP,
			TotalXP:       u.TotalXP,
			XPToNextLevel: gamification.XPToNextLevel(u.TotalXP),
			Achievements:  achievements,
			Streaks: gamification.Streaks{
				Current:          u.ActivityStreak,
				Longest:          u.ActivityLongest,
				LastActivityDate: u.LastActivityDate,
			},
			DailyGoals: gamification.DailyGoals{
				Target:        u.DailyGoalTarget,
				Completed:     u.DailyGoalCompleted,
				LastResetDate: u.DailyGoalResetDate,
			},
		},
		Stars: stars,
	}, nil
}

// Progress returns the per-language progress map.
func (s *UserService) Progress(ctx context.Context, userID string) (*user.ProgressResponse, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	var exists bool
	err = s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return nil, storeErr("failed to check user", err)
	}
	if !exists {
		return nil, fmt.Errorf("user %s: %w", id, apperr.ErrNotFound)
	}

	rows, err := s.db.Query(ctx, `
	SELECT language, lessons_completed, vocabulary_learned, fluency
	FROM user_language_progress
	WHERE user_id = $1
	ORDER BY language
	`, id)
	if err != nil {
		return nil, storeErr("failed to fetch language progress", err)
	}
	defer rows.Close()

	progress := make(map[string]user.LanguageProgress)
	for rows.Next() {
		var (
			language string
			p        user.LanguageProgress
		)
		if err := rows.Scan(&language, &p.LessonsCompleted, &p.VocabularyLearned, &p.Fluency); err != nil {
			return nil, fmt.Errorf("failed to scan language progress: %w", err)
		}
		progress[language] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating language progress: %w", err)
	}

	return &user.ProgressResponse{Progress: progress}, nil
}

// starRatings maps lifetime per-type activity counts to 1-5 stars.
func (s *UserService) starRatings(ctx context.Context, id uuid.UUID) (map[string]int, error) {
	rows, err := s.db.Query(ctx, `
	SELECT activity_type, COUNT(*)
	FROM activities
	WHERE user_id = $1
	GROUP BY activity_type
	`, id)
	if err != nil {
		return nil, storeErr("failed to count activities", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var (
			activityType string
			count        int
		)
		if err := rows.Scan(&activityType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan activity count: %w", err)
		}
		counts[activityType] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity counts: %w", err)
	}

	stars := map[string]int{}
	for _, t := range []string{activity.TypeSpeaking, activity.TypeListening, activity.TypeVocabulary} {
		stars[t] = gamification.StarRating(counts[t], t)
	}
	return stars, nil
}
