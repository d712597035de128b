package middleware

import (
	"log/slog"
	"net/http"

	"github.com/kaloyan-marinov/goal-tracker/internal/auth"
)

// authChallenge is sent on every 401. The password scheme deliberately
// advertises Bearer too, so browsers never pop a basic-auth dialog.
const authChallenge = `Bearer realm="Authentication Required"`

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger   *slog.Logger
	Strategy auth.Strategy
}

// Authenticate returns a middleware that resolves the requesting principal
// with the configured strategy and injects it into the request context.
// Every failure cause produces the same 401 response.
func Authenticate(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := cfg.Strategy.Authenticate(r)
			if err != nil {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", err.Error()),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			ctx := auth.ContextWithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeAuthError writes a 401 Unauthorized response.
// Uses the same message for all auth failures to prevent enumeration.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", authChallenge)
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Unauthorized","message":"authentication required"}`))
}
