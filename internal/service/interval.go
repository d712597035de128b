package service

import (
	"context"
	"errors"
	"time"

	"github.com/kaloyan-marinov/goal-tracker/internal/model"
	"github.com/kaloyan-marinov/goal-tracker/internal/repository"
)

// ErrIntervalNotOwned collapses "no such interval" and "interval owned by
// someone else" into one outcome so interval endpoints cannot leak which
// IDs exist across accounts.
var ErrIntervalNotOwned = errors.New("interval missing or not owned by the principal")

// IntervalStore is the persistence surface the interval service needs.
type IntervalStore interface {
	CreateInterval(ctx context.Context, interval *model.Interval) error
	GetIntervalByID(ctx context.Context, id int64) (*model.Interval, error)
	ListIntervalsByUserID(ctx context.Context, userID int64, limit, offset int) ([]*model.Interval, error)
	CountIntervalsByUserID(ctx context.Context, userID int64) (int, error)
	UpdateInterval(ctx context.Context, interval *model.Interval) error
	DeleteInterval(ctx context.Context, id int64) error
}

// IntervalService handles interval business logic. It needs the goal
// store too: every interval operation resolves ownership through the
// owning goal.
type IntervalService struct {
	store IntervalStore
	goals GoalStore
}

// NewIntervalService creates a new IntervalService.
func NewIntervalService(store IntervalStore, goals GoalStore) *IntervalService {
	return &IntervalService{store: store, goals: goals}
}

// Create adds an interval under one of the principal's goals. Start and
// final have already been parsed; start >= final is permitted.
func (s *IntervalService) Create(ctx context.Context, principal *model.User, goalID int64, start, final time.Time) (*model.Interval, error) {
	if err := s.checkGoalOwned(ctx, principal, goalID); err != nil {
		return nil, err
	}

	interval := &model.Interval{GoalID: goalID, Start: start, Final: final}
	if err := s.store.CreateInterval(ctx, interval); err != nil {
		return nil, err
	}
	return interval, nil
}

// Get retrieves one of the principal's intervals.
func (s *IntervalService) Get(ctx context.Context, principal *model.User, id int64) (*model.Interval, error) {
	return s.ownedInterval(ctx, principal, id)
}

// List retrieves one page of the principal's intervals plus the total
// count for pagination metadata.
func (s *IntervalService) List(ctx context.Context, principal *model.User, limit, offset int) ([]*model.Interval, int, error) {
	total, err := s.store.CountIntervalsByUserID(ctx, principal.ID)
	if err != nil {
		return nil, 0, err
	}

	intervals, err := s.store.ListIntervalsByUserID(ctx, principal.ID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return intervals, total, nil
}

// UpdateIntervalInput carries the fields of a partial interval update.
// Nil fields mean "no change".
type UpdateIntervalInput struct {
	GoalID *int64
	Start  *time.Time
	Final  *time.Time
}

// Update applies a partial update to one of the principal's intervals.
// Moving the interval to another goal requires that goal to be owned by
// the principal as well.
func (s *IntervalService) Update(ctx context.Context, principal *model.User, id int64, input UpdateIntervalInput) (*model.Interval, error) {
	interval, err := s.ownedInterval(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if input.GoalID != nil {
		if err := s.checkGoalOwned(ctx, principal, *input.GoalID); err != nil {
			return nil, err
		}
		interval.GoalID = *input.GoalID
	}
	if input.Start != nil {
		interval.Start = *input.Start
	}
	if input.Final != nil {
		interval.Final = *input.Final
	}

	if err := s.store.UpdateInterval(ctx, interval); err != nil {
		return nil, err
	}
	return interval, nil
}

// Delete removes one of the principal's intervals.
func (s *IntervalService) Delete(ctx context.Context, principal *model.User, id int64) error {
	if _, err := s.ownedInterval(ctx, principal, id); err != nil {
		return err
	}
	return s.store.DeleteInterval(ctx, id)
}

// ownedInterval resolves an interval by ID ignoring ownership, then checks
// that its owning goal belongs to the principal. Any mismatch collapses
// into ErrIntervalNotOwned.
func (s *IntervalService) ownedInterval(ctx context.Context, principal *model.User, id int64) (*model.Interval, error) {
	interval, err := s.store.GetIntervalByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrIntervalNotFound) {
			return nil, ErrIntervalNotOwned
		}
		return nil, err
	}

	goal, err := s.goals.GetGoalByID(ctx, interval.GoalID)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			return nil, ErrIntervalNotOwned
		}
		return nil, err
	}
	if goal.UserID != principal.ID {
		return nil, ErrIntervalNotOwned
	}
	return interval, nil
}

// checkGoalOwned verifies the goal exists and belongs to the principal,
// collapsing both failures into ErrGoalNotOwned.
func (s *IntervalService) checkGoalOwned(ctx context.Context, principal *model.User, goalID int64) error {
	goal, err := s.goals.GetGoalByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			return ErrGoalNotOwned
		}
		return err
	}
	if goal.UserID != principal.ID {
		return ErrGoalNotOwned
	}
	return nil
}
