package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trainhub/session-gateway/internal/api/metrics"
	"github.com/trainhub/session-gateway/internal/core/domain"
	"github.com/trainhub/session-gateway/internal/core/ports"
)

type SessionHandler struct {
	sessions ports.SessionService
}

func NewSessionHandler(sessions ports.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Login authenticates against the role-specific backend endpoint and
// establishes a session.
//
// @Summary      Log in under a role
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials and role"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /session/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	role, _ := domain.ParseRole(req.Role)
	snap, err := h.sessions.Login(c.Request().Context(), req.Email, req.Password, role)
	if err != nil {
		metrics.SessionOperationsTotal.WithLabelValues("login", "error").Inc()
		return err
	}

	metrics.SessionOperationsTotal.WithLabelValues("login", "success").Inc()
	return c.JSON(http.StatusOK, sessionResponse{Token: snap.Token, User: snap.User})
}

// Signup registers a plain-user account; no session is established until the
// follow-up OTP verification succeeds.
//
// @Summary      Register a new user account
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Registration details"
// @Success      202   {object}  statusResponse
// @Failure      400   {object}  map[string]string
// @Router       /session/signup [post]
func (h *SessionHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.sessions.Signup(c.Request().Context(), req.Name, req.Email, req.Password); err != nil {
		metrics.SessionOperationsTotal.WithLabelValues("signup", "error").Inc()
		return err
	}

	metrics.SessionOperationsTotal.WithLabelValues("signup", "success").Inc()
	return c.JSON(http.StatusAccepted, statusResponse{Status: "verification_pending"})
}

// Verify submits an OTP. A backend response that carries both token and user
// establishes a session; anything else is reported as still pending.
//
// @Summary      Verify a signup OTP
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      verifyRequest  true  "Email and code"
// @Success      200   {object}  sessionResponse
// @Success      202   {object}  statusResponse
// @Router       /session/verify [post]
func (h *SessionHandler) Verify(c echo.Context) error {
	var req verifyRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	snap, established, err := h.sessions.VerifyCode(c.Request().Context(), req.Email, req.Code)
	if err != nil {
		metrics.SessionOperationsTotal.WithLabelValues("verify", "error").Inc()
		return err
	}
	if !established {
		metrics.SessionOperationsTotal.WithLabelValues("verify", "pending").Inc()
		return c.JSON(http.StatusAccepted, statusResponse{Status: "verification_pending"})
	}

	metrics.SessionOperationsTotal.WithLabelValues("verify", "success").Inc()
	return c.JSON(http.StatusOK, sessionResponse{Token: snap.Token, User: snap.User})
}

// Resend asks the backend to re-send the OTP. No session state changes.
//
// @Summary      Resend the signup OTP
// @Tags         session
// @Param        body  body  resendRequest  true  "Email"
// @Success      204
// @Router       /session/resend [post]
func (h *SessionHandler) Resend(c echo.Context) error {
	var req resendRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.sessions.ResendCode(c.Request().Context(), req.Email); err != nil {
		metrics.SessionOperationsTotal.WithLabelValues("resend", "error").Inc()
		return err
	}

	metrics.SessionOperationsTotal.WithLabelValues("resend", "success").Inc()
	return c.NoContent(http.StatusNoContent)
}

// Current returns the session snapshot, including the loading flag while the
// startup restore is in flight.
//
// @Summary      Current session state
// @Tags         session
// @Produce      json
// @Success      200  {object}  ports.Snapshot
// @Router       /session [get]
func (h *SessionHandler) Current(c echo.Context) error {
	return c.JSON(http.StatusOK, h.sessions.Snapshot())
}

// Logout destroys the session. It cannot fail.
//
// @Summary      Log out
// @Tags         session
// @Success      204
// @Router       /session [delete]
func (h *SessionHandler) Logout(c echo.Context) error {
	h.sessions.Logout(c.Request().Context())
	metrics.SessionOperationsTotal.WithLabelValues("logout", "success").Inc()
	return c.NoContent(http.StatusNoContent)
}

// bind decodes and validates a request payload, mapping failures to 400s.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
