// Command bootstrap-user creates an account directly against the database,
// bypassing the HTTP API. Useful for seeding a fresh deployment or a local
// development environment.
//
// Usage:
//
//	go run ./scripts/bootstrap-user.go -email admin@example.com -password s3cret
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/kaloyan-marinov/goal-tracker/internal/repository"
	"github.com/kaloyan-marinov/goal-tracker/internal/service"
)

type output struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		email       = flag.String("email", "", "Email of the account to create")
		password    = flag.String("password", "", "Password of the account to create")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}
	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "-email and -password are required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer repo.Close()

	if err := repository.Migrate(*databaseURL); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run migrations: %v\n", err)
		os.Exit(1)
	}

	users := service.NewUserService(repo, nil)
	user, err := users.Register(ctx, *email, *password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create account: %v\n", err)
		os.Exit(1)
	}

	out := output{UserID: user.ID, Email: user.Email}
	if *format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintf(os.Stderr, "failed to encode output: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("user_id: %d\n", out.UserID)
	fmt.Printf("email:   %s\n", out.Email)
}
