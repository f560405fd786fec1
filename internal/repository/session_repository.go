package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/storefront/internal/domain"
)

// SessionRepository manages opaque login sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	// GetByToken returns the session regardless of expiry; callers decide validity.
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	// Delete reports whether a session with token existed.
	Delete(ctx context.Context, token string) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

type sessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository constructs repository.
func NewSessionRepository(pool *pgxpool.Pool) SessionRepository {
	return &sessionRepository{pool: pool}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	const query = `
        INSERT INTO user_sessions (user_id, session_token, expires_at)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		session.UserID,
		session.Token,
		session.ExpiresAt,
	).Scan(&session.ID, &session.CreatedAt)
	return mapError(err)
}

func (r *sessionRepository) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	const query = `
        SELECT id, user_id, session_token, expires_at, created_at
        FROM user_sessions WHERE session_token=$1`
	var session domain.Session
	if err := r.pool.QueryRow(ctx, query, token).Scan(
		&session.ID,
		&session.UserID,
		&session.Token,
		&session.ExpiresAt,
		&session.CreatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &session, nil
}

func (r *sessionRepository) Delete(ctx context.Context, token string) (bool, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM user_sessions WHERE session_token=$1`, token)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM user_sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, err
	}
	return int(cmd.RowsAffected()), nil
}
