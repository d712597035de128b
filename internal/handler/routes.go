package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/kaloyan-marinov/goal-tracker/internal/auth"
	"github.com/kaloyan-marinov/goal-tracker/internal/middleware"
)

// RouterConfig collects everything the router needs.
type RouterConfig struct {
	Logger *slog.Logger

	Users     *UserHandler
	Tokens    *TokenHandler
	Goals     *GoalHandler
	Intervals *IntervalHandler
	Health    *HealthHandler

	// PasswordStrategy guards the account-mutation and token routes;
	// TokenStrategy guards everything else behind authentication.
	PasswordStrategy auth.Strategy
	TokenStrategy    auth.Strategy

	// MaxBodyBytes caps request body sizes; zero disables the cap.
	MaxBodyBytes int64
}

// NewRouter assembles the HTTP routing tree.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recoverer(cfg.Logger))
	r.Use(middleware.LimitBody(cfg.MaxBodyBytes))

	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)

	r.Get("/healthz", cfg.Health.Healthz)
	r.Get("/readyz", cfg.Health.Readyz)

	r.Route(APIPrefix, func(r chi.Router) {
		// Anonymous routes.
		r.Get("/users", cfg.Users.List)
		r.Post("/users", cfg.Users.Create)
		r.Get("/users/{id:[0-9]+}", cfg.Users.Get)

		// Password-authenticated routes.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(middleware.AuthConfig{
				Logger:   cfg.Logger,
				Strategy: cfg.PasswordStrategy,
			}))
			r.Put("/users/{id:[0-9]+}", cfg.Users.Update)
			r.Delete("/users/{id:[0-9]+}", cfg.Users.Delete)
			r.Post("/tokens", cfg.Tokens.Create)
		})

		// Token-authenticated routes.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(middleware.AuthConfig{
				Logger:   cfg.Logger,
				Strategy: cfg.TokenStrategy,
			}))
			r.Get("/user", cfg.Users.Me)

			r.Get("/goals", cfg.Goals.List)
			r.Post("/goals", cfg.Goals.Create)
			r.Get("/goals/{id:[0-9]+}", cfg.Goals.Get)
			r.Put("/goals/{id:[0-9]+}", cfg.Goals.Update)
			r.Delete("/goals/{id:[0-9]+}", cfg.Goals.Delete)

			r.Get("/intervals", cfg.Intervals.List)
			r.Post("/intervals", cfg.Intervals.Create)
			r.Get("/intervals/{id:[0-9]+}", cfg.Intervals.Get)
			r.Put("/intervals/{id:[0-9]+}", cfg.Intervals.Update)
			r.Delete("/intervals/{id:[0-9]+}", cfg.Intervals.Delete)
		})
	})

	return r
}
