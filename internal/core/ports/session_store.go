package ports

import (
	"context"

	"github.com/trainhub/session-gateway/internal/core/domain"
)

// KV is the string-keyed persistence medium underneath the session store:
// a plain get/set/remove surface with no transactions. Implementations live
// in internal/store (memory, file) and internal/infrastructure/db (redis,
// mongo).
type KV interface {
	// Get returns the value for key; the bool is false when the key is absent.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, keys ...string) error
}

// SessionStore persists exactly three logical keys: the bearer token, the
// serialized user profile, and the role tag. It is intentionally dumb: reads
// never fail from the caller's point of view — a missing, unreadable, or
// unparseable value is reported as absent.
type SessionStore interface {
	ReadToken(ctx context.Context) (string, bool)
	ReadUser(ctx context.Context) (*domain.UserProfile, bool)
	ReadRole(ctx context.Context) (domain.Role, bool)
	// Write persists token, user, and the user's role together.
	Write(ctx context.Context, user *domain.UserProfile, token string) error
	// Clear removes all three keys.
	Clear(ctx context.Context) error
}
