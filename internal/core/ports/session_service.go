package ports

import (
	"context"

	"github.com/trainhub/session-gateway/internal/core/domain"
)

// Snapshot is the session state exposed to consumers at an instant. Readers
// only ever observe snapshots, never the persistence medium directly.
type Snapshot struct {
	User *domain.UserProfile `json:"user,omitempty"`
	// Role is derived from User; empty means no role.
	Role            domain.Role `json:"role,omitempty"`
	Token           string      `json:"token,omitempty"`
	IsAuthenticated bool        `json:"isAuthenticated"`
	// IsLoading is true from construction until the startup restore has
	// completed. Consumers must not treat an absent session as a final
	// "logged out" determination while it is set.
	IsLoading bool `json:"isLoading"`
}

// SessionService is the single source of truth for session state and the
// only component allowed to call the auth backend or mutate the session
// store.
//
// Mutating operations are not serialized against each other: callers must
// not run two of them concurrently on the same instance (interleaved
// completions are last-write-wins, not merged).
type SessionService interface {
	// Restore adopts a previously persisted session, if any. It runs at most
	// once; further calls are no-ops. Snapshot().IsLoading turns false when
	// it returns.
	Restore(ctx context.Context)

	Snapshot() Snapshot

	// Login authenticates under role and, on success, atomically persists and
	// adopts the new session. On failure no state changes.
	Login(ctx context.Context, email, password string, role domain.Role) (Snapshot, error)

	// Signup registers a plain-user account. It never establishes a session.
	Signup(ctx context.Context, name, email, password string) error

	// VerifyCode submits an OTP. The bool reports whether a session was
	// established; a backend response missing token or user is a legitimate
	// "not yet verified" no-op, not an error.
	VerifyCode(ctx context.Context, email, code string) (Snapshot, bool, error)

	// ResendCode is a stateless passthrough to the backend.
	ResendCode(ctx context.Context, email string) error

	// Logout clears the in-memory session and the persisted copy. It has no
	// failure path from the caller's point of view.
	Logout(ctx context.Context)
}
