package service

import (
	"context"
	"errors"
	"testing"

	"github.com/kaloyan-marinov/goal-tracker/internal/model"
)

func intervalFixture(t *testing.T) (*fakeStore, *IntervalService, *model.User, *model.User, *model.Goal) {
	t.Helper()
	store := newFakeStore()
	john, mary := twoUsers(t, store)
	goal, err := NewGoalService(store).Create(context.Background(), john, "exercise")
	if err != nil {
		t.Fatalf("Create goal failed: %v", err)
	}
	return store, NewIntervalService(store, store), john, mary, goal
}

func TestIntervalService_Create(t *testing.T) {
	t.Parallel()

	_, svc, john, mary, goal := intervalFixture(t)
	ctx := context.Background()
	start := mustParse(t, "2020-11-05 08:45")
	final := mustParse(t, "2020-11-05 09:15")

	t.Run("owned goal", func(t *testing.T) {
		interval, err := svc.Create(ctx, john, goal.ID, start, final)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if interval.GoalID != goal.ID {
			t.Errorf("expected goal %d, got %d", goal.ID, interval.GoalID)
		}
	})

	t.Run("foreign goal", func(t *testing.T) {
		if _, err := svc.Create(ctx, mary, goal.ID, start, final); !errors.Is(err, ErrGoalNotOwned) {
			t.Errorf("got %v, want ErrGoalNotOwned", err)
		}
	})

	t.Run("missing goal", func(t *testing.T) {
		if _, err := svc.Create(ctx, john, 999, start, final); !errors.Is(err, ErrGoalNotOwned) {
			t.Errorf("got %v, want ErrGoalNotOwned", err)
		}
	})

	t.Run("start after final is permitted", func(t *testing.T) {
		if _, err := svc.Create(ctx, john, goal.ID, final, start); err != nil {
			t.Errorf("reversed interval should be accepted, got %v", err)
		}
	})
}

func TestIntervalService_CrossOwnerCollapses(t *testing.T) {
	t.Parallel()

	_, svc, john, mary, goal := intervalFixture(t)
	ctx := context.Background()

	interval, err := svc.Create(ctx, john, goal.ID, mustParse(t, "2020-11-05 08:45"), mustParse(t, "2020-11-05 09:15"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Foreign reads, updates, and deletes must be indistinguishable from a
	// nonexistent ID.
	if _, err := svc.Get(ctx, mary, interval.ID); !errors.Is(err, ErrIntervalNotOwned) {
		t.Errorf("foreign get: got %v, want ErrIntervalNotOwned", err)
	}
	if _, err := svc.Get(ctx, mary, 999); !errors.Is(err, ErrIntervalNotOwned) {
		t.Errorf("missing get: got %v, want ErrIntervalNotOwned", err)
	}
	if _, err := svc.Update(ctx, mary, interval.ID, UpdateIntervalInput{}); !errors.Is(err, ErrIntervalNotOwned) {
		t.Errorf("foreign update: got %v, want ErrIntervalNotOwned", err)
	}
	if err := svc.Delete(ctx, mary, interval.ID); !errors.Is(err, ErrIntervalNotOwned) {
		t.Errorf("foreign delete: got %v, want ErrIntervalNotOwned", err)
	}
}

func TestIntervalService_Update(t *testing.T) {
	t.Parallel()

	store, svc, john, _, goal := intervalFixture(t)
	ctx := context.Background()

	interval, _ := svc.Create(ctx, john, goal.ID, mustParse(t, "2020-11-05 08:45"), mustParse(t, "2020-11-05 09:15"))

	t.Run("partial update keeps omitted fields", func(t *testing.T) {
		start := mustParse(t, "2020-11-06 10:00")
		updated, err := svc.Update(ctx, john, interval.ID, UpdateIntervalInput{Start: &start})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if !updated.Start.Equal(start) {
			t.Errorf("start not updated: %v", updated.Start)
		}
		if model.FormatTime(updated.Final) != "2020-11-05 09:15" {
			t.Errorf("final should be unchanged, got %v", updated.Final)
		}
	})

	t.Run("move to another owned goal", func(t *testing.T) {
		second, err := NewGoalService(store).Create(ctx, john, "stretch")
		if err != nil {
			t.Fatalf("Create goal failed: %v", err)
		}
		updated, err := svc.Update(ctx, john, interval.ID, UpdateIntervalInput{GoalID: &second.ID})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if updated.GoalID != second.ID {
			t.Errorf("expected goal %d, got %d", second.ID, updated.GoalID)
		}
	})

	t.Run("move to a foreign goal", func(t *testing.T) {
		_, mary := store.users[1], store.users[2]
		foreign, err := NewGoalService(store).Create(ctx, mary, "sabotage")
		if err != nil {
			t.Fatalf("Create goal failed: %v", err)
		}
		if _, err := svc.Update(ctx, john, interval.ID, UpdateIntervalInput{GoalID: &foreign.ID}); !errors.Is(err, ErrGoalNotOwned) {
			t.Errorf("got %v, want ErrGoalNotOwned", err)
		}
	})
}

func TestIntervalService_List(t *testing.T) {
	t.Parallel()

	_, svc, john, mary, goal := intervalFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := svc.Create(ctx, john, goal.ID, mustParse(t, "2020-11-05 08:45"), mustParse(t, "2020-11-05 09:15")); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	items, total, err := svc.List(ctx, john, 2, 2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 5 {
		t.Errorf("expected total 5, got %d", total)
	}
	if len(items) != 2 {
		t.Errorf("expected 2 items, got %d", len(items))
	}

	// Other principals see nothing.
	items, total, err = svc.List(ctx, mary, 10, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 0 || len(items) != 0 {
		t.Errorf("foreign list should be empty, got total=%d len=%d", total, len(items))
	}
}
