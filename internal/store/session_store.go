// Package store implements session persistence over a plain string-keyed
// get/set/remove medium. Drivers for the medium live here (memory, file) and
// in internal/infrastructure/db (redis, mongo).
package store

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/trainhub/session-gateway/internal/core/domain"
	"github.com/trainhub/session-gateway/internal/core/ports"
)

// The three fixed logical keys. Everything the gateway persists lives under
// them; nothing else touches the medium.
const (
	keyToken = "auth:token"
	keyUser  = "auth:user"
	keyRole  = "auth:role"
)

// SessionStore persists the session triple through a ports.KV. Reads absorb
// every failure: a medium error or an unparseable value is reported as
// absent, never surfaced to the caller.
type SessionStore struct {
	kv  ports.KV
	log zerolog.Logger
}

func NewSessionStore(kv ports.KV, log zerolog.Logger) *SessionStore {
	return &SessionStore{kv: kv, log: log}
}

func (s *SessionStore) ReadToken(ctx context.Context) (string, bool) {
	return s.read(ctx, keyToken)
}

func (s *SessionStore) ReadUser(ctx context.Context) (*domain.UserProfile, bool) {
	raw, ok := s.read(ctx, keyUser)
	if !ok {
		return nil, false
	}

	var user domain.UserProfile
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		// Corrupt state is treated as no state.
		s.log.Warn().Err(err).Msg("discarding unparseable persisted user")
		return nil, false
	}
	return &user, true
}

func (s *SessionStore) ReadRole(ctx context.Context) (domain.Role, bool) {
	raw, ok := s.read(ctx, keyRole)
	if !ok {
		return "", false
	}
	return domain.ParseRole(raw)
}

// Write persists token, serialized user, and role together.
func (s *SessionStore) Write(ctx context.Context, user *domain.UserProfile, token string) error {
	encoded, err := json.Marshal(user)
	if err != nil {
		return err
	}

	if err := s.kv.Set(ctx, keyToken, token); err != nil {
		return err
	}
	if err := s.kv.Set(ctx, keyUser, string(encoded)); err != nil {
		return err
	}
	return s.kv.Set(ctx, keyRole, string(user.Role))
}

// Clear removes all three keys.
func (s *SessionStore) Clear(ctx context.Context) error {
	return s.kv.Del(ctx, keyToken, keyUser, keyRole)
}

func (s *SessionStore) read(ctx context.Context, key string) (string, bool) {
	val, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("session store read failed")
		return "", false
	}
	return val, ok
}
