// Package main is the entrypoint for the goal tracker API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/kaloyan-marinov/goal-tracker/internal/auth"
	"github.com/kaloyan-marinov/goal-tracker/internal/cache"
	"github.com/kaloyan-marinov/goal-tracker/internal/config"
	"github.com/kaloyan-marinov/goal-tracker/internal/handler"
	"github.com/kaloyan-marinov/goal-tracker/internal/repository"
	"github.com/kaloyan-marinov/goal-tracker/internal/server"
	"github.com/kaloyan-marinov/goal-tracker/internal/service"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to database")

	// Apply pending schema migrations before serving traffic.
	if err := repository.Migrate(cfg.DatabaseURL); err != nil {
		logger.Error(
			"failed to run migrations",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	logger.Info("database schema up to date")

	// Initialize cache
	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to Redis")

	// Initialize services
	tokenService := auth.NewTokenService(cfg.SecretKey, cfg.TokenTTL)
	userService := service.NewUserService(repo, cacheClient)
	goalService := service.NewGoalService(repo)
	intervalService := service.NewIntervalService(repo, repo)

	// Authentication strategies
	passwordStrategy := auth.NewPasswordStrategy(repo)
	tokenStrategy := auth.NewTokenStrategy(tokenService, repo, cacheClient)

	// Initialize handlers and router
	router := handler.NewRouter(handler.RouterConfig{
		Logger:           logger,
		Users:            handler.NewUserHandler(userService, logger),
		Tokens:           handler.NewTokenHandler(tokenService, logger),
		Goals:            handler.NewGoalHandler(goalService, logger),
		Intervals:        handler.NewIntervalHandler(intervalService, logger),
		Health:           handler.NewHealthHandler(repo, cacheClient, logger),
		PasswordStrategy: passwordStrategy,
		TokenStrategy:    tokenStrategy,
		MaxBodyBytes:     cfg.MaxRequestBodySize,
	})

	// Create and run server
	srv := server.New(
		router,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)
	srv.OnShutdown("postgres", func(_ context.Context) error {
		repo.Close()
		return nil
	})
	srv.OnShutdown("redis", func(_ context.Context) error {
		return cacheClient.Close()
	})

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
