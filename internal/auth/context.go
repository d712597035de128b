package auth

import (
	"context"

	"github.com/kaloyan-marinov/goal-tracker/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const principalKey contextKey = "principal"

// ContextWithPrincipal stores the authenticated account in the context.
func ContextWithPrincipal(ctx context.Context, u *model.User) context.Context {
	return context.WithValue(ctx, principalKey, u)
}

// PrincipalFromContext retrieves the authenticated account from the context.
// Returns nil if the request is unauthenticated.
func PrincipalFromContext(ctx context.Context) *model.User {
	u, ok := ctx.Value(principalKey).(*model.User)
	if !ok {
		return nil
	}
	return u
}

// MustPrincipalFromContext retrieves the authenticated account from the
// context. Panics if not present (use only behind the auth middleware).
func MustPrincipalFromContext(ctx context.Context) *model.User {
	u := PrincipalFromContext(ctx)
	if u == nil {
		panic("principal not found - ensure auth middleware is applied")
	}
	return u
}
