package services

import (
	"context"
	"errors"
	"fmt"

	"lingoTrackAPI/internal/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/puddle/v2"
)

const maxProfileTxRetries = 3

// runProfileTx runs fn inside a transaction that holds the user's
// profile row lock, serializing concurrent score commits, XP awards and
// achievement evaluations for the same user. Unknown users surface as
// ErrNotFound before fn runs. Deadlock and serialization failures are
// retried a bounded number of times, then surfaced as ErrConflict.
func runProfileTx(ctx context.Context, db *pgxpool.Pool, userID uuid.UUID, fn func(tx pgx.Tx) error) error {
	var lastErr error

	for attempt := 0; attempt < maxProfileTxRetries; attempt++ {
		err := pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
			var id uuid.UUID
			if err := tx.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&id); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return fmt.Errorf("user %s: %w", userID, apperr.ErrNotFound)
				}
				return fmt.Errorf("failed to lock user row: %w", err)
			}
			return fn(tx)
		})
		if err == nil {
			return nil
		}
		if !retryableTxError(err) {
			if storeUnreachable(err) {
				return fmt.Errorf("store unreachable: %w (%v)", apperr.ErrUnavailable, err)
			}
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("profile update for user %s kept conflicting: %w (%v)", userID, apperr.ErrConflict, lastErr)
}

// retryableTxError reports whether the transaction failed with a
// serialization or deadlock error worth retrying.
func retryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

// storeUnreachable reports whether the pool could not reach the store
// at all, as opposed to a statement failing.
func storeUnreachable(err error) bool {
	var connErr *pgconn.ConnectError
	return errors.As(err, &connErr) || errors.Is(err, puddle.ErrClosedPool)
}

// storeErr wraps a query error, surfacing unreachable-store failures as
// ErrUnavailable.
func storeErr(msg string, err error) error {
	if storeUnreachable(err) {
		return fmt.Errorf("%s: %w (%v)", msg, apperr.ErrUnavailable, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func parseUserID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("user id %q: %w", id, apperr.ErrInvalidInput)
	}
	return parsed, nil
}
