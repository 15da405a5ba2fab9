package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/msomdec/spartan-directory/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// AuthState is the session manager state. It starts unknown and settles to
// authenticated or anonymous after the one-shot initialization; only login,
// signup, and logout move it afterwards.
type AuthState string

const (
	StateUnknown       AuthState = "unknown"
	StateAuthenticated AuthState = "authenticated"
	StateAnonymous     AuthState = "anonymous"
)

// defaultRole is assigned to every account created through signup.
const defaultRole = "Admin"

const minPasswordLength = 6

// Matches the sign-in form validation: something@something.tld, no spaces.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService handles signup, login, and logout against the credential
// store, and owns the in-process session state machine. Login and signup
// simulate API latency so loading indicators get exercised; tests construct
// the service with a zero delay.
type AuthService struct {
	accounts   domain.AccountRepository
	sessions   *SessionStore
	bcryptCost int
	delay      time.Duration

	mu      sync.Mutex
	state   AuthState
	session *domain.Session
}

// NewAuthService creates a new AuthService in the unknown state.
func NewAuthService(accounts domain.AccountRepository, sessions *SessionStore, bcryptCost int, delay time.Duration) *AuthService {
	return &AuthService{
		accounts:   accounts,
		sessions:   sessions,
		bcryptCost: bcryptCost,
		delay:      delay,
		state:      StateUnknown,
	}
}

// Init performs the one-shot transition out of the unknown state by reading
// the persisted session. Calling it again returns the current session
// without touching the store.
func (s *AuthService) Init(ctx context.Context) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateUnknown {
		return s.session, nil
	}

	session, err := s.sessions.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	s.setSessionLocked(session)
	return session, nil
}

// State returns the current session manager state.
func (s *AuthService) State() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentSession returns the current session, or nil when anonymous or not
// yet initialized.
func (s *AuthService) CurrentSession() *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Login verifies credentials and establishes a session. An account must
// exist with exactly matching email and a matching password; otherwise
// ErrInvalidCredentials is returned and the state is unchanged.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	fields := make(map[string]string)
	validateEmail(fields, email)
	validatePassword(fields, password)
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.establishSession(ctx, account)
}

// Signup creates a new account and, like the original flow, immediately
// behaves as a successful login. A duplicate email fails with
// ErrDuplicateEmail and leaves both the store and the state unchanged.
func (s *AuthService) Signup(ctx context.Context, name, email, password, confirmPassword string) (*domain.Session, error) {
	fields := make(map[string]string)
	validateName(fields, name)
	validateEmail(fields, email)
	validatePassword(fields, password)
	validateConfirm(fields, password, confirmPassword)
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &domain.Account{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         defaultRole,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	return s.establishSession(ctx, account)
}

// Logout clears the session and transitions to anonymous. It cannot fail:
// a store error is logged and the in-process state still becomes anonymous.
func (s *AuthService) Logout(ctx context.Context) {
	if err := s.sessions.Clear(ctx); err != nil {
		slog.Error("clear session on logout", "error", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.setSessionLocked(nil)
}

// Authenticate resolves an opaque token to the session user. The token is a
// stand-in identifier, not a verifiable credential: it matches by equality
// with the stored session token, nothing more.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.SessionUser, error) {
	if _, err := s.Init(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil || token == "" || s.session.Token != token {
		return nil, domain.ErrUnauthorized
	}
	user := s.session.User
	return &user, nil
}

func (s *AuthService) establishSession(ctx context.Context, account *domain.Account) (*domain.Session, error) {
	session := &domain.Session{
		User: domain.SessionUser{
			ID:    account.ID,
			Name:  account.Name,
			Email: account.Email,
			Role:  account.Role,
		},
		Token: newToken(),
	}
	if err := s.sessions.Write(ctx, session.User, session.Token); err != nil {
		return nil, fmt.Errorf("write session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.setSessionLocked(session)
	return session, nil
}

func (s *AuthService) setSessionLocked(session *domain.Session) {
	s.session = session
	if session != nil {
		s.state = StateAuthenticated
	} else {
		s.state = StateAnonymous
	}
}

func (s *AuthService) simulateLatency(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func newToken() string {
	return "tok_" + uuid.NewString()
}

func validateName(fields map[string]string, name string) {
	trimmed := strings.TrimSpace(name)
	switch {
	case trimmed == "":
		fields["name"] = "Name is required"
	case len(trimmed) < 2:
		fields["name"] = "Name must be at least 2 characters"
	}
}

func validateEmail(fields map[string]string, email string) {
	switch {
	case strings.TrimSpace(email) == "":
		fields["email"] = "Email is required"
	case !emailPattern.MatchString(email):
		fields["email"] = "Please enter a valid email address"
	}
}

func validatePassword(fields map[string]string, password string) {
	switch {
	case password == "":
		fields["password"] = "Password is required"
	case len(password) < minPasswordLength:
		fields["password"] = "Password must be at least 6 characters"
	}
}

func validateConfirm(fields map[string]string, password, confirm string) {
	switch {
	case confirm == "":
		fields["confirmPassword"] = "Please confirm your password"
	case password != confirm:
		fields["confirmPassword"] = "Passwords do not match"
	}
}
