package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kaloyan-marinov/goal-tracker/internal/model"
)

// Common errors for goal repository operations.
var (
	ErrGoalNotFound = errors.New("goal not found")
	ErrGoalExists   = errors.New("goal description already exists for this user")
)

// CreateGoal inserts a new goal and fills in its storage-assigned
// identifier and timestamps.
func (r *Repository) CreateGoal(ctx context.Context, goal *model.Goal) error {
	query := `
		INSERT INTO goals (user_id, description)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query, goal.UserID, goal.Description).Scan(
		&goal.ID,
		&goal.CreatedAt,
		&goal.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrGoalExists
		}
		return fmt.Errorf("failed to create goal: %w", err)
	}

	return nil
}

// GetGoalByID retrieves a goal by its ID, regardless of owner. Ownership
// checks belong to the service layer.
func (r *Repository) GetGoalByID(ctx context.Context, id int64) (*model.Goal, error) {
	query := `
		SELECT id, user_id, description, created_at, updated_at
		FROM goals
		WHERE id = $1
	`

	var goal model.Goal
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&goal.ID,
		&goal.UserID,
		&goal.Description,
		&goal.CreatedAt,
		&goal.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to get goal by ID: %w", err)
	}

	return &goal, nil
}

// ListGoalsByUserID retrieves all goals owned by the given user, ordered
// by ID.
func (r *Repository) ListGoalsByUserID(ctx context.Context, userID int64) ([]*model.Goal, error) {
	query := `
		SELECT id, user_id, description, created_at, updated_at
		FROM goals
		WHERE user_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var goals []*model.Goal
	for rows.Next() {
		var goal model.Goal
		if err := rows.Scan(
			&goal.ID,
			&goal.UserID,
			&goal.Description,
			&goal.CreatedAt,
			&goal.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, &goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate goals: %w", err)
	}

	return goals, nil
}

// UpdateGoal persists the goal's mutable fields.
func (r *Repository) UpdateGoal(ctx context.Context, goal *model.Goal) error {
	query := `
		UPDATE goals
		SET description = $2, updated_at = now()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, goal.ID, goal.Description)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrGoalExists
		}
		return fmt.Errorf("failed to update goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}

	return nil
}

// DeleteGoal removes the goal and all of its intervals in a single
// transaction.
func (r *Repository) DeleteGoal(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM intervals WHERE goal_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete goal's intervals: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit goal delete: %w", err)
	}
	return nil
}
