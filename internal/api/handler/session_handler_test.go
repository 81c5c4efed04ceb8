package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/trainhub/session-gateway/internal/core/domain"
	"github.com/trainhub/session-gateway/internal/core/ports"
)

type stubSessionService struct {
	loginFn  func(ctx context.Context, email, password string, role domain.Role) (ports.Snapshot, error)
	signupFn func(ctx context.Context, name, email, password string) error
	verifyFn func(ctx context.Context, email, code string) (ports.Snapshot, bool, error)
	resendFn func(ctx context.Context, email string) error
	snap     ports.Snapshot
	logouts  int
}

func (s *stubSessionService) Restore(context.Context)  {}
func (s *stubSessionService) Snapshot() ports.Snapshot { return s.snap }
func (s *stubSessionService) Login(ctx context.Context, email, password string, role domain.Role) (ports.Snapshot, error) {
	return s.loginFn(ctx, email, password, role)
}
func (s *stubSessionService) Signup(ctx context.Context, name, email, password string) error {
	return s.signupFn(ctx, name, email, password)
}
func (s *stubSessionService) VerifyCode(ctx context.Context, email, code string) (ports.Snapshot, bool, error) {
	return s.verifyFn(ctx, email, code)
}
func (s *stubSessionService) ResendCode(ctx context.Context, email string) error {
	return s.resendFn(ctx, email)
}
func (s *stubSessionService) Logout(context.Context) { s.logouts++ }

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSessionHandler_Login_Success(t *testing.T) {
	stub := &stubSessionService{
		loginFn: func(_ context.Context, email, password string, role domain.Role) (ports.Snapshot, error) {
			if email != "t@example.com" || role != domain.RoleTrainer {
				t.Fatalf("unexpected args: %s %s", email, role)
			}
			user := &domain.UserProfile{ID: "t1", Name: "Alex Chen", Role: role, AvatarInitials: "AC"}
			return ports.Snapshot{User: user, Role: role, Token: "tok", IsAuthenticated: true}, nil
		},
	}
	h := NewSessionHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/session/login",
		`{"email":"t@example.com","password":"pw","role":"trainer"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "tok" {
		t.Fatalf("expected token in response, got %v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["avatarInitials"] != "AC" {
		t.Fatalf("unexpected user payload: %v", resp["user"])
	}
}

func TestSessionHandler_Login_RejectsUnknownRole(t *testing.T) {
	h := NewSessionHandler(&stubSessionService{
		loginFn: func(context.Context, string, string, domain.Role) (ports.Snapshot, error) {
			t.Fatalf("service must not be called for an invalid role")
			return ports.Snapshot{}, nil
		},
	})

	c, _ := newTestContext(t, http.MethodPost, "/session/login",
		`{"email":"t@example.com","password":"pw","role":"superuser"}`)

	err := h.Login(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestSessionHandler_Login_BackendErrorPropagates(t *testing.T) {
	backendErr := errors.New("invalid credentials")
	h := NewSessionHandler(&stubSessionService{
		loginFn: func(context.Context, string, string, domain.Role) (ports.Snapshot, error) {
			return ports.Snapshot{}, backendErr
		},
	})

	c, _ := newTestContext(t, http.MethodPost, "/session/login",
		`{"email":"t@example.com","password":"pw","role":"user"}`)

	if err := h.Login(c); !errors.Is(err, backendErr) {
		t.Fatalf("expected backend error unchanged, got %v", err)
	}
}

func TestSessionHandler_Signup_Accepted(t *testing.T) {
	h := NewSessionHandler(&stubSessionService{
		signupFn: func(_ context.Context, name, email, _ string) error {
			if name != "Alex Chen" || email != "a@b.c" {
				t.Fatalf("unexpected args: %s %s", name, email)
			}
			return nil
		},
	})

	c, rec := newTestContext(t, http.MethodPost, "/session/signup",
		`{"name":"Alex Chen","email":"a@b.c","password":"longsecret"}`)

	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
}

func TestSessionHandler_Verify_PendingAndEstablished(t *testing.T) {
	established := false
	h := NewSessionHandler(&stubSessionService{
		verifyFn: func(context.Context, string, string) (ports.Snapshot, bool, error) {
			if !established {
				return ports.Snapshot{}, false, nil
			}
			user := &domain.UserProfile{ID: "u1", Role: domain.RoleUser}
			return ports.Snapshot{User: user, Role: domain.RoleUser, Token: "tok", IsAuthenticated: true}, true, nil
		},
	})

	c, rec := newTestContext(t, http.MethodPost, "/session/verify",
		`{"email":"a@b.c","code":"123456"}`)
	if err := h.Verify(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202 for pending verification, got %d", rec.Code)
	}

	established = true
	c, rec = newTestContext(t, http.MethodPost, "/session/verify",
		`{"email":"a@b.c","code":"123456"}`)
	if err := h.Verify(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 once established, got %d", rec.Code)
	}
}

func TestSessionHandler_Logout(t *testing.T) {
	stub := &stubSessionService{}
	h := NewSessionHandler(stub)

	c, rec := newTestContext(t, http.MethodDelete, "/session", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if stub.logouts != 1 {
		t.Fatalf("expected one logout call, got %d", stub.logouts)
	}
}

func TestSessionHandler_Current_ReportsLoading(t *testing.T) {
	h := NewSessionHandler(&stubSessionService{snap: ports.Snapshot{IsLoading: true}})

	c, rec := newTestContext(t, http.MethodGet, "/session", "")
	if err := h.Current(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["isLoading"] != true || resp["isAuthenticated"] != false {
		t.Fatalf("unexpected snapshot payload: %v", resp)
	}
}
