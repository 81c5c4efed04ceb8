package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/trainhub/session-gateway/internal/api/metrics"
	"github.com/trainhub/session-gateway/internal/core/domain"
	"github.com/trainhub/session-gateway/internal/core/ports"
)

const (
	loginPath = "/login"
	homePath  = "/"

	sessionContextKey = "session"
)

// Decision is a route guard outcome.
type Decision int

const (
	DecisionAllow Decision = iota
	// DecisionPending: session restore has not finished; the caller gets a
	// neutral "try again" rather than a premature login redirect.
	DecisionPending
	DecisionLoginRedirect
	DecisionHomeRedirect
)

// Decide is the stateless access-control core, evaluated strictly in order:
// still loading, then unauthenticated, then role allow-list. When no
// allow-list is supplied any authenticated session passes; admin gets no
// implicit bypass of a list that excludes it.
func Decide(snap ports.Snapshot, allowed []domain.Role) Decision {
	if snap.IsLoading {
		return DecisionPending
	}
	if !snap.IsAuthenticated {
		return DecisionLoginRedirect
	}
	if len(allowed) > 0 && snap.Role.Valid() && !roleAllowed(snap.Role, allowed) {
		return DecisionHomeRedirect
	}
	return DecisionAllow
}

// Guard gates a route on the current session state. A login redirect carries
// the originally requested URI so the caller can return there after
// authenticating; a role mismatch redirects to the home surface instead.
// On allow the snapshot is stashed on the request context for handlers.
func Guard(sessions ports.SessionService, allowed ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			snap := sessions.Snapshot()
			decision := Decide(snap, allowed)
			metrics.GuardDecisionsTotal.WithLabelValues(decisionLabel(decision)).Inc()

			switch decision {
			case DecisionPending:
				return c.JSON(http.StatusServiceUnavailable, map[string]string{
					"status": "session restore in progress",
				})
			case DecisionLoginRedirect:
				target := loginPath + "?redirect=" + url.QueryEscape(c.Request().URL.RequestURI())
				return c.Redirect(http.StatusFound, target)
			case DecisionHomeRedirect:
				return c.Redirect(http.StatusFound, homePath)
			}

			c.Set(sessionContextKey, snap)
			return next(c)
		}
	}
}

// SessionFromContext returns the snapshot stashed by Guard.
func SessionFromContext(c echo.Context) (ports.Snapshot, bool) {
	snap, ok := c.Get(sessionContextKey).(ports.Snapshot)
	return snap, ok
}

func roleAllowed(role domain.Role, allowed []domain.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

func decisionLabel(d Decision) string {
	switch d {
	case DecisionPending:
		return "pending"
	case DecisionLoginRedirect:
		return "login_redirect"
	case DecisionHomeRedirect:
		return "home_redirect"
	default:
		return "allow"
	}
}
