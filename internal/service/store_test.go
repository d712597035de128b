package service

import (
	"context"
	"sort"
	"time"

	"github.com/kaloyan-marinov/goal-tracker/internal/model"
	"github.com/kaloyan-marinov/goal-tracker/internal/repository"
)

// fakeStore is an in-memory stand-in for the repository. It mimics the
// repository's sentinel errors and unique-index behavior.
type fakeStore struct {
	users     map[int64]*model.User
	goals     map[int64]*model.Goal
	intervals map[int64]*model.Interval
	nextID    int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     make(map[int64]*model.User),
		goals:     make(map[int64]*model.Goal),
		intervals: make(map[int64]*model.Interval),
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) CreateUser(_ context.Context, user *model.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return repository.ErrEmailExists
		}
	}
	user.ID = f.id()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users[user.ID] = user
	return nil
}

func (f *fakeStore) GetUserByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeStore) ListUsers(_ context.Context) ([]*model.User, error) {
	var users []*model.User
	for _, u := range f.users {
		clone := *u
		users = append(users, &clone)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (f *fakeStore) UpdateUser(_ context.Context, user *model.User) error {
	stored, ok := f.users[user.ID]
	if !ok {
		return repository.ErrUserNotFound
	}
	for _, u := range f.users {
		if u.ID != user.ID && u.Email == user.Email {
			return repository.ErrEmailExists
		}
	}
	stored.Email = user.Email
	stored.UpdatedAt = time.Now()
	return nil
}

func (f *fakeStore) DeleteUser(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	for gid, g := range f.goals {
		if g.UserID != id {
			continue
		}
		for iid, i := range f.intervals {
			if i.GoalID == gid {
				delete(f.intervals, iid)
			}
		}
		delete(f.goals, gid)
	}
	delete(f.users, id)
	return nil
}

func (f *fakeStore) CreateGoal(_ context.Context, goal *model.Goal) error {
	for _, g := range f.goals {
		if g.UserID == goal.UserID && g.Description == goal.Description {
			return repository.ErrGoalExists
		}
	}
	goal.ID = f.id()
	goal.CreatedAt = time.Now()
	goal.UpdatedAt = goal.CreatedAt
	f.goals[goal.ID] = goal
	return nil
}

func (f *fakeStore) GetGoalByID(_ context.Context, id int64) (*model.Goal, error) {
	g, ok := f.goals[id]
	if !ok {
		return nil, repository.ErrGoalNotFound
	}
	clone := *g
	return &clone, nil
}

func (f *fakeStore) ListGoalsByUserID(_ context.Context, userID int64) ([]*model.Goal, error) {
	var goals []*model.Goal
	for _, g := range f.goals {
		if g.UserID == userID {
			clone := *g
			goals = append(goals, &clone)
		}
	}
	sort.Slice(goals, func(i, j int) bool { return goals[i].ID < goals[j].ID })
	return goals, nil
}

func (f *fakeStore) UpdateGoal(_ context.Context, goal *model.Goal) error {
	stored, ok := f.goals[goal.ID]
	if !ok {
		return repository.ErrGoalNotFound
	}
	for _, g := range f.goals {
		if g.ID != goal.ID && g.UserID == goal.UserID && g.Description == goal.Description {
			return repository.ErrGoalExists
		}
	}
	stored.Description = goal.Description
	stored.UpdatedAt = time.Now()
	return nil
}

func (f *fakeStore) DeleteGoal(_ context.Context, id int64) error {
	if _, ok := f.goals[id]; !ok {
		return repository.ErrGoalNotFound
	}
	for iid, i := range f.intervals {
		if i.GoalID == id {
			delete(f.intervals, iid)
		}
	}
	delete(f.goals, id)
	return nil
}

func (f *fakeStore) CreateInterval(_ context.Context, interval *model.Interval) error {
	interval.ID = f.id()
	interval.CreatedAt = time.Now()
	interval.UpdatedAt = interval.CreatedAt
	f.intervals[interval.ID] = interval
	return nil
}

func (f *fakeStore) GetIntervalByID(_ context.Context, id int64) (*model.Interval, error) {
	i, ok := f.intervals[id]
	if !ok {
		return nil, repository.ErrIntervalNotFound
	}
	clone := *i
	return &clone, nil
}

func (f *fakeStore) ListIntervalsByUserID(_ context.Context, userID int64, limit, offset int) ([]*model.Interval, error) {
	var all []*model.Interval
	for _, i := range f.intervals {
		g, ok := f.goals[i.GoalID]
		if ok && g.UserID == userID {
			clone := *i
			all = append(all, &clone)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakeStore) CountIntervalsByUserID(_ context.Context, userID int64) (int, error) {
	count := 0
	for _, i := range f.intervals {
		g, ok := f.goals[i.GoalID]
		if ok && g.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) UpdateInterval(_ context.Context, interval *model.Interval) error {
	stored, ok := f.intervals[interval.ID]
	if !ok {
		return repository.ErrIntervalNotFound
	}
	stored.GoalID = interval.GoalID
	stored.Start = interval.Start
	stored.Final = interval.Final
	stored.UpdatedAt = time.Now()
	return nil
}

func (f *fakeStore) DeleteInterval(_ context.Context, id int64) error {
	if _, ok := f.intervals[id]; !ok {
		return repository.ErrIntervalNotFound
	}
	delete(f.intervals, id)
	return nil
}
