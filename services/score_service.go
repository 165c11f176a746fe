package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"lingoTrackAPI/internal/apperr"
	"lingoTrackAPI/internal/score"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ScoreService commits session scores and serves the score-detail view.
type ScoreService struct {
	db *pgxpool.Pool
}

func NewScoreService(db *pgxpool.Pool) *ScoreService {
	return &ScoreService{db: db}
}

// SaveScore rounds and commits a finished session score: last score,
// monotonic best score, append-only history entry and the day-granular
// streak transition, all in one per-user transaction.
func (s *ScoreService) SaveScore(ctx context.Context, userID string, rawScore float64) (*score.SaveResponse, error) {
	if math.IsNaN(rawScore) || math.IsInf(rawScore, 0) || rawScore < 0 {
		return nil, fmt.Errorf("score %v: %w", rawScore, apperr.ErrInvalidInput)
	}

	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	roundedScore := int(math.Round(rawScore))
	now := time.Now()
	resp := &score.SaveResponse{Message: "Score saved"}

	err = runProfileTx(ctx, s.db, id, func(tx pgx.Tx) error {
		var rec score.Record
		err := tx.QueryRow(ctx, `
		SELECT best_score, current_streak, longest_streak, last_active_date
		FROM users
		WHERE id = $1
		`, id).Scan(&rec.BestScore, &rec.CurrentStreak, &rec.LongestStreak, &rec.LastActiveDate)
		if err != nil {
			return fmt.Errorf("failed to read score record: %w", err)
		}

		if roundedScore > rec.BestScore {
			rec.BestScore = roundedScore
		}

		rec.CurrentStreak = score.NextStreak(rec.CurrentStreak, rec.LastActiveDate, now)
		if rec.CurrentStreak > rec.LongestStreak {
			rec.LongestStreak = rec.CurrentStreak
		}

		_, err = tx.Exec(ctx, `
		INSERT INTO score_history (user_id, score, recorded_at)
		VALUES ($1, $2, $3)
		`, id, roundedScore, now)
		if err != nil {
			return fmt.Errorf("failed to append score history: %w", err)
		}

		_, err = tx.Exec(ctx, `
		UPDATE users
		SET last_score = $2,
			best_score = $3,
			current_streak = $4,
			longest_streak = $5,
			last_active_date = $6,
			updated_at = NOW()
		WHERE id = $1
		`, id, roundedScore, rec.BestScore, rec.CurrentStreak, rec.LongestStreak, score.Truncate(now))
		if err != nil {
			return fmt.Errorf("failed to update score record: %w", err)
		}

		resp.LastScore = roundedScore
		resp.BestScore = rec.BestScore
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("SaveScore: user %s committed score %d (best %d)", id, resp.LastScore, resp.BestScore)
	return resp, nil
}

// FetchDetail returns the score record plus the current and previous
// month activity grids, each in ascending day order.
func (s *ScoreService) FetchDetail(ctx context.Context, userID string) (*score.DetailResponse, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	resp := &score.DetailResponse{Message: "fetch successful"}
	err = s.db.QueryRow(ctx, `
	SELECT last_score, best_score, current_streak, longest_streak
	FROM users
	WHERE id = $1
	`, id).Scan(&resp.LastScore, &resp.BestScore, &resp.CurrentStreak, &resp.LongestStreak)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", id, apperr.ErrNotFound)
		}
		return nil, storeErr("failed to read score record", err)
	}

	now := time.Now()
	// Normalized date arithmetic handles the December/January boundary.
	prev := time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, now.Location())

	entries, err := s.historyRange(ctx, id, prev, now)
	if err != nil {
		return nil, err
	}

	resp.CurrentMonth = score.MonthGrid(entries, now.Year(), now.Month())
	resp.LastMonth = score.MonthGrid(entries, prev.Year(), prev.Month())
	return resp, nil
}

// historyRange fetches history entries from the first day of `from`'s
// month through the end of `to`'s month.
func (s *ScoreService) historyRange(ctx context.Context, id uuid.UUID, from, to time.Time) ([]score.Entry, error) {
	start := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, from.Location())
	end := time.Date(to.Year(), to.Month()+1, 1, 0, 0, 0, 0, to.Location())

	rows, err := s.db.Query(ctx, `
	SELECT score, recorded_at
	FROM score_history
	WHERE user_id = $1
		AND recorded_at >= $2
		AND recorded_at < $3
	ORDER BY recorded_at
	`, id, start, end)
	if err != nil {
		return nil, storeErr("failed to fetch score history", err)
	}
	defer rows.Close()

	var entries []score.Entry
	for rows.Next() {
		var e score.Entry
		if err := rows.Scan(&e.Score, &e.Date); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating score history: %w", err)
	}

	return entries, nil
}
