package service

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestUserService_Register(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := NewUserService(store, nil)
	ctx := context.Background()

	user, err := svc.Register(ctx, "john@x.com", "secret")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID != 1 {
		t.Errorf("expected first user to get ID 1, got %d", user.ID)
	}
	if user.PasswordHash == "" || strings.Contains(user.PasswordHash, "secret") {
		t.Error("password must be stored hashed, never in plaintext")
	}
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := NewUserService(store, nil)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "john@x.com", "secret"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := svc.Register(ctx, "john@x.com", "other"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("got %v, want ErrEmailTaken", err)
	}
	if len(store.users) != 1 {
		t.Errorf("duplicate registration must not create a second row, got %d", len(store.users))
	}
}

func TestUserService_UpdateEmail(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := NewUserService(store, nil)
	ctx := context.Background()

	john, _ := svc.Register(ctx, "john@x.com", "secret")
	mary, _ := svc.Register(ctx, "mary@x.com", "secret")

	t.Run("owner may change email", func(t *testing.T) {
		updated, err := svc.UpdateEmail(ctx, john, john.ID, "john@y.com")
		if err != nil {
			t.Fatalf("UpdateEmail failed: %v", err)
		}
		if updated.Email != "john@y.com" {
			t.Errorf("expected john@y.com, got %s", updated.Email)
		}
	})

	t.Run("empty email means no change", func(t *testing.T) {
		updated, err := svc.UpdateEmail(ctx, john, john.ID, "")
		if err != nil {
			t.Fatalf("UpdateEmail failed: %v", err)
		}
		if updated.Email != "john@y.com" {
			t.Errorf("expected unchanged email, got %s", updated.Email)
		}
	})

	t.Run("own current email is not a collision", func(t *testing.T) {
		if _, err := svc.UpdateEmail(ctx, john, john.ID, "john@y.com"); err != nil {
			t.Fatalf("re-setting own email should succeed, got %v", err)
		}
	})

	t.Run("collision with another account", func(t *testing.T) {
		if _, err := svc.UpdateEmail(ctx, john, john.ID, "mary@x.com"); !errors.Is(err, ErrEmailTaken) {
			t.Errorf("got %v, want ErrEmailTaken", err)
		}
	})

	t.Run("foreign account", func(t *testing.T) {
		if _, err := svc.UpdateEmail(ctx, mary, john.ID, "evil@x.com"); !errors.Is(err, ErrNotOwner) {
			t.Errorf("got %v, want ErrNotOwner", err)
		}
	})

	t.Run("unknown account", func(t *testing.T) {
		if _, err := svc.UpdateEmail(ctx, john, 999, "x@x.com"); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("got %v, want ErrUserNotFound", err)
		}
	})
}

func TestUserService_Delete_Cascades(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	users := NewUserService(store, nil)
	goals := NewGoalService(store)
	intervals := NewIntervalService(store, store)
	ctx := context.Background()

	john, _ := users.Register(ctx, "john@x.com", "secret")
	goal, err := goals.Create(ctx, john, "write a book")
	if err != nil {
		t.Fatalf("Create goal failed: %v", err)
	}
	if _, err := intervals.Create(ctx, john, goal.ID, mustParse(t, "2020-11-05 08:45"), mustParse(t, "2020-11-05 09:15")); err != nil {
		t.Fatalf("Create interval failed: %v", err)
	}

	if err := users.Delete(ctx, john, john.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if len(store.users) != 0 || len(store.goals) != 0 || len(store.intervals) != 0 {
		t.Errorf("cascade delete left rows behind: users=%d goals=%d intervals=%d",
			len(store.users), len(store.goals), len(store.intervals))
	}
}

func TestUserService_Delete_Foreign(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := NewUserService(store, nil)
	ctx := context.Background()

	john, _ := svc.Register(ctx, "john@x.com", "secret")
	mary, _ := svc.Register(ctx, "mary@x.com", "secret")

	if err := svc.Delete(ctx, mary, john.ID); !errors.Is(err, ErrNotOwner) {
		t.Errorf("got %v, want ErrNotOwner", err)
	}
	if len(store.users) != 2 {
		t.Error("foreign delete must not remove anything")
	}
}
