package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/trainhub/session-gateway/internal/core/domain"
	"github.com/trainhub/session-gateway/internal/core/ports"
)

// SessionService owns the in-memory session and is the sole writer of the
// persisted copy. See ports.SessionService for the caller contract.
type SessionService struct {
	backend ports.AuthBackend
	store   ports.SessionStore
	log     zerolog.Logger

	restoreOnce sync.Once

	mu      sync.RWMutex
	session domain.Session
	loading bool
}

func NewSessionService(backend ports.AuthBackend, store ports.SessionStore, log zerolog.Logger) *SessionService {
	return &SessionService{
		backend: backend,
		store:   store,
		log:     log,
		loading: true,
	}
}

// Restore reads the persisted token/user/role triple and adopts it when
// complete. Runs at most once; loading turns false either way.
func (s *SessionService) Restore(ctx context.Context) {
	s.restoreOnce.Do(func() {
		token, okToken := s.store.ReadToken(ctx)
		user, okUser := s.store.ReadUser(ctx)
		_, okRole := s.store.ReadRole(ctx)

		s.mu.Lock()
		if okToken && okUser && okRole {
			s.session = domain.Session{Token: token, User: user}
		}
		s.loading = false
		restored := s.session.IsAuthenticated()
		s.mu.Unlock()

		if restored {
			s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("session restored")
		} else {
			s.log.Debug().Msg("no session to restore")
		}
	})
}

func (s *SessionService) Snapshot() ports.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := ports.Snapshot{
		User:            s.session.User,
		Token:           s.session.Token,
		IsAuthenticated: s.session.IsAuthenticated(),
		IsLoading:       s.loading,
	}
	if role, ok := s.session.Role(); ok {
		snap.Role = role
	}
	return snap
}

func (s *SessionService) Login(ctx context.Context, email, password string, role domain.Role) (ports.Snapshot, error) {
	if !role.Valid() {
		return ports.Snapshot{}, domain.ErrInvalidRole
	}

	payload, err := s.backend.Login(ctx, role, email, password)
	if err != nil {
		return ports.Snapshot{}, err
	}

	user, err := NormalizeAuthUser(payload.Body, role)
	if err != nil {
		return ports.Snapshot{}, err
	}

	if err := s.adopt(ctx, user, payload.Token); err != nil {
		return ports.Snapshot{}, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(role)).Msg("login succeeded")
	return s.Snapshot(), nil
}

func (s *SessionService) Signup(ctx context.Context, name, email, password string) error {
	// Signup never establishes a session: the backend demands OTP
	// verification first.
	return s.backend.Signup(ctx, name, email, password)
}

func (s *SessionService) VerifyCode(ctx context.Context, email, code string) (ports.Snapshot, bool, error) {
	payload, err := s.backend.VerifyCode(ctx, email, code)
	if err != nil {
		return ports.Snapshot{}, false, err
	}

	// A response missing token or user means verification is still pending.
	// Not an error; no state changes.
	if payload.Token == "" || !hasUserPayload(payload.Body) {
		return ports.Snapshot{}, false, nil
	}

	user, err := NormalizeAuthUser(payload.Body, domain.RoleUser)
	if err != nil {
		return ports.Snapshot{}, false, err
	}

	if err := s.adopt(ctx, user, payload.Token); err != nil {
		return ports.Snapshot{}, false, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("verification established session")
	return s.Snapshot(), true, nil
}

func (s *SessionService) ResendCode(ctx context.Context, email string) error {
	return s.backend.ResendCode(ctx, email)
}

// Logout clears memory and store. The caller sees no failure path; a store
// clear error is absorbed and logged.
func (s *SessionService) Logout(ctx context.Context) {
	s.mu.Lock()
	s.session = domain.Session{}
	s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear persisted session")
	}
	s.log.Info().Msg("logged out")
}

// adopt persists the new session and then replaces the in-memory one. The
// order matters: a failed write leaves memory untouched, so memory and the
// persisted copy never diverge after a reported success.
func (s *SessionService) adopt(ctx context.Context, user *domain.UserProfile, token string) error {
	if err := s.store.Write(ctx, user, token); err != nil {
		return err
	}

	s.mu.Lock()
	s.session = domain.Session{Token: token, User: user}
	s.mu.Unlock()
	return nil
}

// hasUserPayload reports whether the response body carries a user object.
func hasUserPayload(body []byte) bool {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return false
	}
	return jsonPresent(env.User)
}
