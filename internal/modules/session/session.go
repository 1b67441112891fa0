package session

import (
	"context"
	"time"
)

// Session is the server-side state behind a signed-in token.
type Session struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	UnitID    string    `json:"unit_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists sessions for a fixed time-to-live.
// Get returns an apperr.ErrNotFound error for unknown or expired sessions.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Set(ctx context.Context, s *Session) error
	Clear(ctx context.Context, id string) error
}
