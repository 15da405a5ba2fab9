package domain

import (
	"context"
	"time"
)

// Account is a stored credential record. Accounts are append-only: created on
// signup, never mutated, never deleted.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// SessionUser is the projection of an Account that is persisted as part of
// the session. It never carries the password hash.
type SessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Session pairs the persisted session user with its opaque token. The token
// carries no claims and no expiry; it is validated only by equality against
// the stored value.
type Session struct {
	User  SessionUser
	Token string
}

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, id string) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
}

// KVStore is a minimal persisted key-value backend for session artifacts.
// Get returns ErrNotFound for a missing key; Delete of a missing key is a
// no-op.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
