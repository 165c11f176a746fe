package services

import (
	"errors"
	"fmt"
	"testing"

	"lingoTrackAPI/internal/apperr"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/puddle/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryableTxError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock detected", &pgconn.PgError{Code: "40P01"}, true},
		{"wrapped serialization failure", fmt.Errorf("commit: %w", &pgconn.PgError{Code: "40001"}), true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"plain error", errors.New("connection reset"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, retryableTxError(tt.err))
		})
	}
}

func TestStoreUnreachable(t *testing.T) {
	t.Parallel()

	assert.True(t, storeUnreachable(&pgconn.ConnectError{Config: &pgconn.Config{}}))
	assert.True(t, storeUnreachable(fmt.Errorf("acquire: %w", puddle.ErrClosedPool)))
	assert.False(t, storeUnreachable(&pgconn.PgError{Code: "40001"}))
	assert.False(t, storeUnreachable(errors.New("bad statement")))
}

func TestStoreErr(t *testing.T) {
	t.Parallel()

	err := storeErr("failed to read", &pgconn.ConnectError{Config: &pgconn.Config{}})
	assert.ErrorIs(t, err, apperr.ErrUnavailable)

	stmtErr := errors.New("syntax error")
	err = storeErr("failed to read", stmtErr)
	assert.NotErrorIs(t, err, apperr.ErrUnavailable)
	assert.ErrorIs(t, err, stmtErr)
}

func TestParseUserID(t *testing.T) {
	t.Parallel()

	id, err := parseUserID("0d731a33-2cba-4e92-8bcb-4f93ee18f6a3")
	require.NoError(t, err)
	assert.Equal(t, "0d731a33-2cba-4e92-8bcb-4f93ee18f6a3", id.String())

	_, err = parseUserID("not-a-uuid")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}
