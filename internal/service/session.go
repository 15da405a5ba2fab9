package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/msomdec/spartan-directory/internal/domain"
)

// Storage keys for the persisted session artifacts.
const (
	sessionUserKey  = "user"
	sessionTokenKey = "token"
)

// SessionStore persists the current session as two key-value entries: the
// serialized session user and the opaque token. A session exists if and only
// if both entries exist and the user payload parses.
type SessionStore struct {
	kv domain.KVStore
}

// NewSessionStore creates a SessionStore over the given backend.
func NewSessionStore(kv domain.KVStore) *SessionStore {
	return &SessionStore{kv: kv}
}

// Read returns the stored session, or nil when no session exists. A
// partially written or corrupt session (one key missing, or a user payload
// that fails to parse) counts as absent, and both keys are cleared.
func (s *SessionStore) Read(ctx context.Context) (*domain.Session, error) {
	userRaw, err := s.kv.Get(ctx, sessionUserKey)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, s.Clear(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("read session user: %w", err)
	}

	token, err := s.kv.Get(ctx, sessionTokenKey)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, s.Clear(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("read session token: %w", err)
	}

	var user domain.SessionUser
	if err := json.Unmarshal([]byte(userRaw), &user); err != nil {
		return nil, s.Clear(ctx)
	}

	return &domain.Session{User: user, Token: token}, nil
}

// Write persists both session entries. The token is written immediately
// after the user in the same synchronous turn; there is no concurrent writer
// in this design, so a reader never observes one without the other.
func (s *SessionStore) Write(ctx context.Context, user domain.SessionUser, token string) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal session user: %w", err)
	}
	if err := s.kv.Set(ctx, sessionUserKey, string(payload)); err != nil {
		return fmt.Errorf("write session user: %w", err)
	}
	if err := s.kv.Set(ctx, sessionTokenKey, token); err != nil {
		return fmt.Errorf("write session token: %w", err)
	}
	return nil
}

// Clear removes both session entries. Clearing an absent session is a no-op.
func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, sessionUserKey); err != nil {
		return fmt.Errorf("clear session user: %w", err)
	}
	if err := s.kv.Delete(ctx, sessionTokenKey); err != nil {
		return fmt.Errorf("clear session token: %w", err)
	}
	return nil
}
