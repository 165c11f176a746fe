package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"time"

	"lingoTrackAPI/internal/activity"
	"lingoTrackAPI/internal/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ActivityService owns the append-only activity log.
type ActivityService struct {
	db *pgxpool.Pool
}

func NewActivityService(db *pgxpool.Pool) *ActivityService {
	return &ActivityService{db: db}
}

// LogActivity appends one activity entry and credits the whole-minute
// duration to the user's lifetime practice time.
func (s *ActivityService) LogActivity(ctx context.Context, userID string, req *activity.LogRequest) (*activity.Entry, error) {
	if !activity.ValidType(req.ActivityType) {
		return nil, fmt.Errorf("activity type %q: %w", req.ActivityType, apperr.ErrInvalidInput)
	}
	if req.Duration <= 0 {
		return nil, fmt.Errorf("duration %d: %w", req.Duration, apperr.ErrInvalidInput)
	}

	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	details, err := json.Marshal(req.Details)
	if err != nil {
		return nil, fmt.Errorf("failed to encode activity details: %w", err)
	}

	entry := &activity.Entry{
		ID:           uuid.New(),
		UserID:       id,
		ActivityType: req.ActivityType,
		Duration:     req.Duration,
		Details:      req.Details,
		Date:         time.Now(),
	}

	err = runProfileTx(ctx, s.db, id, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
		INSERT INTO activities (id, user_id, activity_type, duration, details, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		`, entry.ID, id, entry.ActivityType, entry.Duration, details, entry.Date)
		if err != nil {
			return fmt.Errorf("failed to insert activity: %w", err)
		}

		minutes := int(math.Round(float64(entry.Duration) / 60))
		_, err = tx.Exec(ctx, `
		UPDATE users
		SET practice_time = practice_time + $2,
			updated_at = NOW()
		WHERE id = $1
		`, id, minutes)
		if err != nil {
			return fmt.Errorf("failed to update practice time: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("LogActivity: user %s logged %s (%ds)", id, entry.ActivityType, entry.Duration)
	return entry, nil
}

// Weekly aggregates the trailing seven days of the user's log.
func (s *ActivityService) Weekly(ctx context.Context, userID string) (*activity.WeeklySummary, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	entries, err := entriesSince(ctx, s.db, id, time.Now().AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}

	summary := activity.Summarize(entries)
	return &summary, nil
}

// List returns the user's log newest-first, with limit/skip pagination.
func (s *ActivityService) List(ctx context.Context, userID string, limit, skip int) (*activity.ListResponse, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	if skip < 0 {
		skip = 0
	}

	var total int
	err = s.db.QueryRow(ctx, `SELECT COUNT(*) FROM activities WHERE user_id = $1`, id).Scan(&total)
	if err != nil {
		return nil, storeErr("failed to count activities", err)
	}

	rows, err := s.db.Query(ctx, `
	SELECT id, user_id, activity_type, duration, details, date
	FROM activities
	WHERE user_id = $1
	ORDER BY date DESC
	LIMIT $2 OFFSET $3
	`, id, limit, skip)
	if err != nil {
		return nil, storeErr("failed to fetch activities", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}

	return &activity.ListResponse{
		Activities: entries,
		Total:      total,
		HasMore:    skip+len(entries) < total,
	}, nil
}

// entriesSince fetches a user's log entries from `since` onward,
// oldest first. Shared with the gamification weekly view.
func entriesSince(ctx context.Context, db *pgxpool.Pool, id uuid.UUID, since time.Time) ([]activity.Entry, error) {
	rows, err := db.Query(ctx, `
	SELECT id, user_id, activity_type, duration, details, date
	FROM activities
	WHERE user_id = $1 AND date >= $2
	ORDER BY date
	`, id, since)
	if err != nil {
		return nil, storeErr("failed to fetch activities", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows pgx.Rows) ([]activity.Entry, error) {
	entries := []activity.Entry{}
	for rows.Next() {
		var e activity.Entry
		var details []byte
		if err := rows.Scan(&e.ID, &e.UserID, &e.ActivityType, &e.Duration, &details, &e.Date); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &e.Details); err != nil {
				return nil, fmt.Errorf("failed to decode activity details: %w", err)
			}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activities: %w", err)
	}
	return entries, nil
}
