package service

import (
	"context"
	"errors"

	"github.com/kaloyan-marinov/goal-tracker/internal/model"
	"github.com/kaloyan-marinov/goal-tracker/internal/repository"
)

// Goal service errors. ErrGoalNotOwned deliberately collapses "does not
// exist" and "belongs to someone else" so mutation endpoints cannot be
// used to enumerate other users' goal IDs.
var (
	ErrGoalNotFound  = errors.New("goal not found")
	ErrGoalForbidden = errors.New("goal belongs to another user")
	ErrGoalNotOwned  = errors.New("goal missing or not owned by the principal")
	ErrGoalExists    = errors.New("duplicate goal description")
)

// GoalStore is the persistence surface the goal service needs.
type GoalStore interface {
	CreateGoal(ctx context.Context, goal *model.Goal) error
	GetGoalByID(ctx context.Context, id int64) (*model.Goal, error)
	ListGoalsByUserID(ctx context.Context, userID int64) ([]*model.Goal, error)
	UpdateGoal(ctx context.Context, goal *model.Goal) error
	DeleteGoal(ctx context.Context, id int64) error
}

// GoalService handles goal business logic.
type GoalService struct {
	store GoalStore
}

// NewGoalService creates a new GoalService.
func NewGoalService(store GoalStore) *GoalService {
	return &GoalService{store: store}
}

// Create adds a goal for the principal. The per-owner description
// uniqueness is enforced by the store's unique index.
func (s *GoalService) Create(ctx context.Context, principal *model.User, description string) (*model.Goal, error) {
	goal := &model.Goal{UserID: principal.ID, Description: description}
	if err := s.store.CreateGoal(ctx, goal); err != nil {
		if errors.Is(err, repository.ErrGoalExists) {
			return nil, ErrGoalExists
		}
		return nil, err
	}
	return goal, nil
}

// Get retrieves one of the principal's goals. A goal that exists but
// belongs to someone else is reported distinctly from a missing one.
func (s *GoalService) Get(ctx context.Context, principal *model.User, id int64) (*model.Goal, error) {
	goal, err := s.store.GetGoalByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	if goal.UserID != principal.ID {
		return nil, ErrGoalForbidden
	}
	return goal, nil
}

// List retrieves all of the principal's goals.
func (s *GoalService) List(ctx context.Context, principal *model.User) ([]*model.Goal, error) {
	return s.store.ListGoalsByUserID(ctx, principal.ID)
}

// Update changes the description of one of the principal's goals. A nil
// description means "no change".
func (s *GoalService) Update(ctx context.Context, principal *model.User, id int64, description *string) (*model.Goal, error) {
	goal, err := s.ownedGoal(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if description != nil {
		goal.Description = *description
	}

	if err := s.store.UpdateGoal(ctx, goal); err != nil {
		if errors.Is(err, repository.ErrGoalExists) {
			return nil, ErrGoalExists
		}
		return nil, err
	}
	return goal, nil
}

// Delete removes one of the principal's goals and all of its intervals.
func (s *GoalService) Delete(ctx context.Context, principal *model.User, id int64) error {
	if _, err := s.ownedGoal(ctx, principal, id); err != nil {
		return err
	}
	return s.store.DeleteGoal(ctx, id)
}

// ownedGoal resolves a goal, collapsing missing and foreign into
// ErrGoalNotOwned.
func (s *GoalService) ownedGoal(ctx context.Context, principal *model.User, id int64) (*model.Goal, error) {
	goal, err := s.store.GetGoalByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			return nil, ErrGoalNotOwned
		}
		return nil, err
	}
	if goal.UserID != principal.ID {
		return nil, ErrGoalNotOwned
	}
	return goal, nil
}
