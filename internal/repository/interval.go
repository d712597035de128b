package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kaloyan-marinov/goal-tracker/internal/model"
)

// ErrIntervalNotFound indicates no interval exists with the given ID.
var ErrIntervalNotFound = errors.New("interval not found")

// CreateInterval inserts a new interval and fills in its storage-assigned
// identifier and timestamps.
func (r *Repository) CreateInterval(ctx context.Context, interval *model.Interval) error {
	query := `
		INSERT INTO intervals (goal_id, start_at, final_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		interval.GoalID,
		interval.Start,
		interval.Final,
	).Scan(
		&interval.ID,
		&interval.CreatedAt,
		&interval.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create interval: %w", err)
	}

	return nil
}

// GetIntervalByID retrieves an interval by its ID, regardless of owner.
// Ownership checks belong to the service layer.
func (r *Repository) GetIntervalByID(ctx context.Context, id int64) (*model.Interval, error) {
	query := `
		SELECT id, goal_id, start_at, final_at, created_at, updated_at
		FROM intervals
		WHERE id = $1
	`

	var interval model.Interval
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&interval.ID,
		&interval.GoalID,
		&interval.Start,
		&interval.Final,
		&interval.CreatedAt,
		&interval.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrIntervalNotFound
		}
		return nil, fmt.Errorf("failed to get interval by ID: %w", err)
	}

	return &interval, nil
}

// ListIntervalsByUserID retrieves one page of the intervals transitively
// owned by the given user, ordered by interval ID.
func (r *Repository) ListIntervalsByUserID(ctx context.Context, userID int64, limit, offset int) ([]*model.Interval, error) {
	query := `
		SELECT i.id, i.goal_id, i.start_at, i.final_at, i.created_at, i.updated_at
		FROM intervals i
		JOIN goals g ON g.id = i.goal_id
		WHERE g.user_id = $1
		ORDER BY i.id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list intervals: %w", err)
	}
	defer rows.Close()

	var intervals []*model.Interval
	for rows.Next() {
		var interval model.Interval
		if err := rows.Scan(
			&interval.ID,
			&interval.GoalID,
			&interval.Start,
			&interval.Final,
			&interval.CreatedAt,
			&interval.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan interval: %w", err)
		}
		intervals = append(intervals, &interval)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate intervals: %w", err)
	}

	return intervals, nil
}

// CountIntervalsByUserID returns the total number of intervals
// transitively owned by the given user.
func (r *Repository) CountIntervalsByUserID(ctx context.Context, userID int64) (int, error) {
	query := `
		SELECT count(*)
		FROM intervals i
		JOIN goals g ON g.id = i.goal_id
		WHERE g.user_id = $1
	`

	var count int
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count intervals: %w", err)
	}
	return count, nil
}

// UpdateInterval persists the interval's mutable fields.
func (r *Repository) UpdateInterval(ctx context.Context, interval *model.Interval) error {
	query := `
		UPDATE intervals
		SET goal_id = $2, start_at = $3, final_at = $4, updated_at = now()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		interval.ID,
		interval.GoalID,
		interval.Start,
		interval.Final,
	)
	if err != nil {
		return fmt.Errorf("failed to update interval: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrIntervalNotFound
	}

	return nil
}

// DeleteInterval removes the interval.
func (r *Repository) DeleteInterval(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM intervals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete interval: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrIntervalNotFound
	}
	return nil
}
