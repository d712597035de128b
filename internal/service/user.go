// Package service implements the ownership-scoped business rules of the
// API on top of the repository.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kaloyan-marinov/goal-tracker/internal/auth"
	"github.com/kaloyan-marinov/goal-tracker/internal/model"
	"github.com/kaloyan-marinov/goal-tracker/internal/repository"
)

// User service errors.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already taken")
	ErrNotOwner     = errors.New("account does not belong to the principal")
)

// UserStore is the persistence surface the user service needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, id int64) error
}

// PrincipalInvalidator drops cached principals after account mutations.
type PrincipalInvalidator interface {
	InvalidateUser(ctx context.Context, id int64) error
}

// UserService handles account business logic.
type UserService struct {
	store UserStore
	cache PrincipalInvalidator
}

// NewUserService creates a new UserService. The cache may be nil.
func NewUserService(store UserStore, cache PrincipalInvalidator) *UserService {
	return &UserService{store: store, cache: cache}
}

// Register creates an account with the given credentials. The password is
// hashed before it reaches storage; the plaintext is never persisted.
func (s *UserService) Register(ctx context.Context, email, password string) (*model.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{Email: email, PasswordHash: hash}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// GetUser retrieves an account by ID.
func (s *UserService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListUsers retrieves all accounts.
func (s *UserService) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.store.ListUsers(ctx)
}

// UpdateEmail changes the email of the account with the given ID. Only the
// owning principal may do so. An empty email means "no change"; a
// collision with a different existing account is rejected.
func (s *UserService) UpdateEmail(ctx context.Context, principal *model.User, id int64, email string) (*model.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.ID != principal.ID {
		return nil, ErrNotOwner
	}

	if email != "" && email != user.Email {
		existing, err := s.store.GetUserByEmail(ctx, email)
		if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != user.ID {
			return nil, ErrEmailTaken
		}
		user.Email = email
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateUser(ctx, user.ID)
	}
	return user, nil
}

// Delete removes the account with the given ID, cascading to its goals and
// their intervals. Only the owning principal may do so.
func (s *UserService) Delete(ctx context.Context, principal *model.User, id int64) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if user.ID != principal.ID {
		return ErrNotOwner
	}

	if err := s.store.DeleteUser(ctx, id); err != nil {
		return err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateUser(ctx, id)
	}
	return nil
}
