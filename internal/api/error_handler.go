package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/trainhub/session-gateway/internal/authapi"
	"github.com/trainhub/session-gateway/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Forwards auth backend failures with their original status and message.
//   - Maps known domain errors to deterministic HTTP codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Backend-reported failures pass through unchanged: the gateway never
	// rewrites what the auth backend said.
	var apiErr *authapi.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode, apiErr.Message
	}

	if errors.Is(err, domain.ErrInvalidRole) {
		return http.StatusBadRequest, domain.ErrInvalidRole.Error()
	}

	// Unexpected error (transport failure, malformed payload): log the real
	// cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
