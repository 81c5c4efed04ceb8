package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trainhub/session-gateway/internal/api/middleware"
)

// DashboardHandler backs the role-gated dashboard surfaces. The guard has
// already made the access decision; these handlers only echo back the
// session identity the board should render for.
type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

type dashboardResponse struct {
	Board string `json:"board"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func (h *DashboardHandler) Overview(c echo.Context) error {
	return h.board(c, "overview")
}

func (h *DashboardHandler) Trainer(c echo.Context) error {
	return h.board(c, "trainer")
}

func (h *DashboardHandler) Admin(c echo.Context) error {
	return h.board(c, "admin")
}

func (h *DashboardHandler) board(c echo.Context, name string) error {
	snap, ok := middleware.SessionFromContext(c)
	if !ok || snap.User == nil {
		// Presence proves the guard ran; reaching here without it is a
		// routing mistake, not a client error.
		return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		Board: name,
		Name:  snap.User.Name,
		Role:  string(snap.Role),
	})
}
