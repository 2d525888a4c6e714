package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"profile-shell/internal/auth"
)

// Session is the server side of a signed-in browser. It keeps the user
// record from the last login and nothing else; provider tokens are not
// stored.
type Session struct {
	SessionID string    `json:"session_id"`
	User      auth.User `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Store defines how sessions are stored and retrieved. Get returns
// (nil, nil) when the session does not exist.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

var (
	ErrMissingFields = errors.New("session: missing session_id or subject")
	ErrExpired       = errors.New("session: expires_at must be in the future")
)

func validate(s Session, now time.Time) (time.Duration, error) {
	if s.SessionID == "" || s.User.Subject == "" {
		return 0, ErrMissingFields
	}

	ttl := s.ExpiresAt.Sub(now)
	if ttl <= 0 {
		return 0, fmt.Errorf("%w (ttl %s)", ErrExpired, ttl)
	}
	return ttl, nil
}
