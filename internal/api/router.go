package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/trainhub/session-gateway/internal/api/handler"
	"github.com/trainhub/session-gateway/internal/api/middleware"
	"github.com/trainhub/session-gateway/internal/core/domain"
	"github.com/trainhub/session-gateway/internal/core/ports"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// pingers feed the readiness probe; pass nil when the session store has no
// networked backing.
func NewRouter(sessions ports.SessionService, pingers map[string]handler.Pinger, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("trainhub"))

	// --- Session lifecycle ---
	sessionHandler := handler.NewSessionHandler(sessions)
	e.POST("/session/login", sessionHandler.Login)
	e.POST("/session/signup", sessionHandler.Signup)
	e.POST("/session/verify", sessionHandler.Verify)
	e.POST("/session/resend", sessionHandler.Resend)
	e.GET("/session", sessionHandler.Current)
	e.DELETE("/session", sessionHandler.Logout)

	// --- Guarded dashboard surfaces ---
	dash := handler.NewDashboardHandler()
	e.GET("/dashboard", dash.Overview, middleware.Guard(sessions))
	e.GET("/dashboard/trainer", dash.Trainer, middleware.Guard(sessions, domain.RoleTrainer))
	e.GET("/dashboard/admin", dash.Admin, middleware.Guard(sessions, domain.RoleAdmin))

	// --- Health probes and metrics (no guard) ---
	healthHandler := handler.NewHealthHandler(pingers)
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
