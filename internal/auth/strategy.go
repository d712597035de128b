package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/kaloyan-marinov/goal-tracker/internal/model"
)

// ErrUnauthenticated is returned by strategies when the request carries
// missing, invalid, or expired credentials. All failure causes collapse
// into this one error to avoid acting as an oracle.
var ErrUnauthenticated = errors.New("authentication required")

// Strategy resolves the requesting principal from request credentials.
// Each route picks the strategy matching the capability it needs.
type Strategy interface {
	Authenticate(r *http.Request) (*model.User, error)
}

// AccountSource looks up accounts during authentication.
type AccountSource interface {
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
}

// PrincipalCache is an optional read-through cache for token
// authentication. A (nil, nil) return means a cache miss.
type PrincipalCache interface {
	GetUser(ctx context.Context, id int64) (*model.User, error)
	SetUser(ctx context.Context, u *model.User) error
}

// PasswordStrategy authenticates requests carrying HTTP Basic credentials
// (email and password).
type PasswordStrategy struct {
	users AccountSource
}

// dummyHash is a throwaway argon2id hash verified when the email is
// unknown, so a lookup miss costs the same hashing work as a wrong
// password and response timing does not reveal whether an account exists.
var dummyHash = mustDummyHash()

func mustDummyHash() string {
	h, err := HashPassword("timing-equalizer")
	if err != nil {
		panic(err)
	}
	return h
}

// NewPasswordStrategy creates a PasswordStrategy backed by the given
// account source.
func NewPasswordStrategy(users AccountSource) *PasswordStrategy {
	return &PasswordStrategy{users: users}
}

// Authenticate looks the account up by email and verifies the password.
func (s *PasswordStrategy) Authenticate(r *http.Request) (*model.User, error) {
	email, password, ok := r.BasicAuth()
	if !ok {
		return nil, ErrUnauthenticated
	}

	u, err := s.users.GetUserByEmail(r.Context(), email)
	if err != nil {
		_, _ = CheckPassword(password, dummyHash)
		return nil, ErrUnauthenticated
	}

	match, err := CheckPassword(password, u.PasswordHash)
	if err != nil || !match {
		return nil, ErrUnauthenticated
	}
	return u, nil
}

// TokenStrategy authenticates requests carrying a bearer token.
type TokenStrategy struct {
	tokens *TokenService
	users  AccountSource
	cache  PrincipalCache
}

// NewTokenStrategy creates a TokenStrategy. The cache may be nil.
func NewTokenStrategy(tokens *TokenService, users AccountSource, cache PrincipalCache) *TokenStrategy {
	return &TokenStrategy{tokens: tokens, users: users, cache: cache}
}

// Authenticate verifies the bearer token and resolves the embedded account
// identifier. Fails if the account no longer exists.
func (s *TokenStrategy) Authenticate(r *http.Request) (*model.User, error) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, ErrUnauthenticated
	}
	token := strings.TrimPrefix(header, "Bearer ")

	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	if s.cache != nil {
		if u, err := s.cache.GetUser(r.Context(), userID); err == nil && u != nil {
			return u, nil
		}
	}

	u, err := s.users.GetUserByID(r.Context(), userID)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	if s.cache != nil {
		_ = s.cache.SetUser(r.Context(), u)
	}
	return u, nil
}
