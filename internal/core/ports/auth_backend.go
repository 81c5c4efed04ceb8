package ports

import (
	"context"
	"encoding/json"

	"github.com/trainhub/session-gateway/internal/core/domain"
)

// AuthPayload is the raw outcome of a backend call that may carry a session.
// Body is the response body verbatim: the backend wraps the profile
// differently per role endpoint, so unwrapping is left to normalization.
type AuthPayload struct {
	// Token is the bearer credential, or empty when the backend omitted it
	// (e.g. a "still pending" verification response).
	Token string
	// Body is the full decoded-from-wire response body, untouched.
	Body json.RawMessage
}

// AuthBackend is the remote authentication API. It is an external
// collaborator: the gateway consumes its contract and propagates its errors
// unchanged.
type AuthBackend interface {
	// Login authenticates against the endpoint matching role.
	Login(ctx context.Context, role domain.Role, email, password string) (AuthPayload, error)
	// Signup registers a new plain-user account. It returns no session; the
	// backend requires a follow-up OTP verification.
	Signup(ctx context.Context, name, email, password string) error
	// VerifyCode submits an OTP. The returned payload may lack token or user
	// when verification is still pending.
	VerifyCode(ctx context.Context, email, code string) (AuthPayload, error)
	// ResendCode asks the backend to re-send the OTP for email.
	ResendCode(ctx context.Context, email string) error
}
