package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/auth"
	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/store"
)

// SessionRepository persists server-side sessions. A token is only
// honored while its session row exists, so deleting the row is an
// immediate revocation.
type SessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a session repository on the given pool.
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// Create inserts a session row.
func (r *SessionRepository) Create(ctx context.Context, s *auth.Session) error {
	query := `INSERT INTO sessions (id, account_id, expires_at)
	          VALUES ($1, $2, $3)
	          RETURNING created_at`

	err := r.pool.QueryRow(ctx, query,
		s.ID,
		s.AccountID,
		s.ExpiresAt,
	).Scan(&s.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetByID fetches a session by its ID (the token's jti claim).
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*auth.Session, error) {
	query := `SELECT id, account_id, expires_at, created_at
	          FROM sessions
	          WHERE id = $1`

	var s auth.Session
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.AccountID,
		&s.ExpiresAt,
		&s.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &s, nil
}

// Delete revokes a single session.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteAllForAccount revokes every session of one account.
func (r *SessionRepository) DeleteAllForAccount(ctx context.Context, accountID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE account_id = $1`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account sessions: %w", err)
	}
	return nil
}

// DeleteExpired removes sessions past their expiry. Used by the
// periodic sweeper.
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at < NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
