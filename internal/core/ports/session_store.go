package ports

import (
	"context"
	"time"
)

// SessionStore keeps server-side session state so tokens can be revoked.
type SessionStore interface {
	Save(ctx context.Context, sessionID, userID string, ttl time.Duration) error
	// Lookup returns the owning user ID, or domain.ErrUnauthenticated when the
	// session is unknown or expired.
	Lookup(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}
