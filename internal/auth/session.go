package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/repository"
)

// ErrSessionNotFound is returned for unknown and expired sessions alike.
var ErrSessionNotFound = errors.New("session not found")

// SessionManager issues and resolves opaque server-side sessions.
type SessionManager struct {
	sessions repository.SessionRepository
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionManager constructs a manager; ttl defaults to seven days.
func NewSessionManager(sessions repository.SessionRepository, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &SessionManager{sessions: sessions, ttl: ttl, now: time.Now}
}

// Issue persists a new session for userID with a random token.
func (m *SessionManager) Issue(ctx context.Context, userID string) (*domain.Session, error) {
	session := &domain.Session{
		UserID:    userID,
		Token:     uuid.NewString(),
		ExpiresAt: m.now().Add(m.ttl),
	}
	if err := m.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Resolve returns the live session for token. Expired sessions are deleted
// on the way out and reported as not found.
func (m *SessionManager) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}
	session, err := m.sessions.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.Expired(m.now()) {
		if _, err := m.sessions.Delete(ctx, token); err != nil {
			return nil, err
		}
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Revoke deletes the session for token and reports whether one existed.
func (m *SessionManager) Revoke(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	return m.sessions.Delete(ctx, token)
}

// Sweep removes every expired session.
func (m *SessionManager) Sweep(ctx context.Context) (int, error) {
	return m.sessions.DeleteExpired(ctx, m.now())
}
