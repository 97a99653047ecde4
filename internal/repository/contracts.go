package repository

import (
	"context"

	"github.com/maxviazov/productivity-hub/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SessionStore is the write side of the current session storage.
// A nil error means the session is durably saved.
type SessionStore interface {
	SaveMailSession(ctx context.Context, sessionID, email string) error
	SaveTaskSession(ctx context.Context, apiKey string) error
	SaveOAuthSession(ctx context.Context, email, accessToken, refreshToken string) error
}

// SessionRepository declares persistence operations for provider sessions.
// Saves are upserts keyed by (provider, account), so repeating one is harmless.
type SessionRepository interface {
	SessionStore
	GetByID(ctx context.Context, id int64) (model.ProviderSession, error)
	List(ctx context.Context, p Page) (PageResult[model.ProviderSession], error)
}

// LegacyStore is the old process-wide key-value store sessions are migrated out of.
// Get reports ok=false for an absent key; that is not an error.
type LegacyStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Delete(ctx context.Context, key string) error
}
