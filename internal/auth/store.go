// Package auth holds the current authenticated identity and persists it to
// durable key-value storage so a session survives process restarts.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cx-tal-miterani/scenic-airways/internal/models"
	"github.com/cx-tal-miterani/scenic-airways/internal/storage"
	"github.com/google/uuid"
)

// Storage keys for the persisted session
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Store is the auth state machine: anonymous until Login, Register or
// Restore succeeds, anonymous again after Logout.
type Store struct {
	mu      sync.RWMutex
	session models.AuthSession

	kv        storage.Store
	directory *Directory
	tokens    TokenIssuer
	now       func() time.Time
	logger    *slog.Logger
}

type Option func(*Store)

func WithTokenIssuer(issuer TokenIssuer) Option {
	return func(s *Store) { s.tokens = issuer }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// NewStore creates an anonymous Store. Call Restore to pick up a persisted session.
func NewStore(kv storage.Store, directory *Directory, opts ...Option) *Store {
	s := &Store{
		kv:        kv,
		directory: directory,
		tokens:    RandomIssuer{},
		now:       time.Now,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Session returns a copy of the current session
func (s *Store) Session() models.AuthSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySession(s.session)
}

// CurrentUser returns the authenticated user, if any
func (s *Store) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.session.IsAuthenticated || s.session.User == nil {
		return models.User{}, false
	}
	return *s.session.User, true
}

// Login authenticates against the mock directory and persists the new session
func (s *Store) Login(ctx context.Context, username, password string) (models.AuthSession, error) {
	acct, err := s.directory.Authenticate(username, password)
	if err != nil {
		s.logger.Info("Login rejected", "username", username)
		return models.AuthSession{}, err
	}

	user := models.User{
		ID:        acct.ID,
		Username:  acct.Username,
		Email:     acct.Email,
		Role:      acct.Role,
		CreatedAt: s.timestamp(),
	}
	return s.establish(ctx, user)
}

// Register creates a new user with the user role and logs it in. Usernames
// are not checked for uniqueness.
func (s *Store) Register(ctx context.Context, username, email, password string) (models.AuthSession, error) {
	user := models.User{
		ID:        "user-" + uuid.NewString(),
		Username:  username,
		Email:     email,
		Role:      models.RoleUser,
		CreatedAt: s.timestamp(),
	}
	return s.establish(ctx, user)
}

// Logout always leaves the store anonymous. The returned error reports a
// failure to clear durable storage.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.session.User
	s.session = models.AuthSession{}

	if err := s.kv.Delete(ctx, KeyToken, KeyUser); err != nil {
		return fmt.Errorf("failed to clear persisted session: %w", err)
	}
	if prev != nil {
		s.logger.Info("Logged out", "userId", prev.ID)
	}
	return nil
}

// Restore reads the persisted token and user. When both are present and the
// user decodes, the store becomes authenticated without revalidation. A
// payload that does not decode is removed from storage and the store stays
// anonymous; that case is not reported as an error.
func (s *Store) Restore(ctx context.Context) (models.AuthSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.read(ctx, KeyToken)
	if err != nil {
		return copySession(s.session), err
	}
	userData, err := s.read(ctx, KeyUser)
	if err != nil {
		return copySession(s.session), err
	}
	if token == "" || userData == "" {
		return copySession(s.session), nil
	}

	user, err := decodeUser(userData)
	if err != nil {
		s.logger.Warn("Discarding persisted session", "error", err)
		s.session = models.AuthSession{}
		if err := s.kv.Delete(ctx, KeyToken, KeyUser); err != nil {
			return models.AuthSession{}, fmt.Errorf("failed to clear malformed session: %w", err)
		}
		return models.AuthSession{}, nil
	}

	s.session = models.AuthSession{User: &user, IsAuthenticated: true, Token: token}
	s.logger.Info("Session restored", "userId", user.ID, "role", user.Role)
	return copySession(s.session), nil
}

func (s *Store) establish(ctx context.Context, user models.User) (models.AuthSession, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return models.AuthSession{}, fmt.Errorf("failed to issue token: %w", err)
	}
	payload, err := json.Marshal(user)
	if err != nil {
		return models.AuthSession{}, fmt.Errorf("failed to encode user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Set(ctx, KeyToken, token); err != nil {
		return copySession(s.session), fmt.Errorf("failed to persist token: %w", err)
	}
	if err := s.kv.Set(ctx, KeyUser, string(payload)); err != nil {
		_ = s.kv.Delete(ctx, KeyToken, KeyUser)
		return copySession(s.session), fmt.Errorf("failed to persist user: %w", err)
	}

	s.session = models.AuthSession{User: &user, IsAuthenticated: true, Token: token}
	s.logger.Info("Session established", "userId", user.ID, "role", user.Role)
	return copySession(s.session), nil
}

func (s *Store) read(ctx context.Context, key string) (string, error) {
	v, err := s.kv.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return v, nil
}

// timestamp is millisecond precision so it survives the JSON round trip unchanged
func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func decodeUser(data string) (models.User, error) {
	var user models.User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrMalformedSession, err)
	}
	if user.ID == "" || user.Username == "" {
		return models.User{}, fmt.Errorf("%w: missing user identity", ErrMalformedSession)
	}
	return user, nil
}

func copySession(in models.AuthSession) models.AuthSession {
	out := in
	if in.User != nil {
		u := *in.User
		out.User = &u
	}
	return out
}
