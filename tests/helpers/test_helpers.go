package helpers

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TestJWTSecret signs tokens for integration tests. Set JWT_SECRET to
// this value before exercising the auth middleware.
const TestJWTSecret = "test-secret-key-for-testing-only"

// SetupTestDB creates a test database connection. Tests are skipped
// when no test database is configured.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	return pool
}

// CleanupTestDB cleans up test data
func CleanupTestDB(t *testing.T, pool *pgxpool.Pool) {
	ctx := context.Background()
	_, err := pool.Exec(ctx, "DELETE FROM users WHERE email LIKE 'test%@example.com'")
	if err != nil {
		t.Logf("Warning: failed to cleanup test data: %v", err)
	}
	pool.Close()
}

// CreateTestUser inserts a fresh profile row and returns its id.
func CreateTestUser(t *testing.T, pool *pgxpool.Pool) string {
	id := uuid.New().String()
	email := fmt.Sprintf("test+%s@example.com", id[:8])
	username := "testuser_" + id[:8]

	_, err := pool.Exec(context.Background(), `
	INSERT INTO users (id, email, username, level, daily_goal_target, created_at, updated_at)
	VALUES ($1, $2, $3, 1, 5, NOW(), NOW())
	`, id, email, username)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return id
}

// GenerateTestJWT signs a bearer token for the given user id.
func GenerateTestJWT(userID string) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour * 24).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(TestJWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}
