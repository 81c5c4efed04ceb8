package handler

import (
	"github.com/trainhub/session-gateway/internal/core/domain"
)

// --- Request / Response types ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"required,oneof=user trainer admin"`
}

type signupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type verifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code"  validate:"required"`
}

type resendRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// sessionResponse is returned by operations that may establish a session.
type sessionResponse struct {
	Token string              `json:"token,omitempty"`
	User  *domain.UserProfile `json:"user,omitempty"`
}

// statusResponse is returned by operations that change no session state.
type statusResponse struct {
	Status string `json:"status"`
}
