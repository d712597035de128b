// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"github.com/kaloyan-marinov/goal-tracker/internal/model"
)

// CreateUserRequest is the request body for registering an account.
// Pointer fields distinguish "omitted" from "present but empty".
type CreateUserRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UpdateUserRequest is the request body for a partial account update.
type UpdateUserRequest struct {
	Email *string `json:"email"`
}

// CreateGoalRequest is the request body for creating a goal.
type CreateGoalRequest struct {
	Description *string `json:"description"`
}

// UpdateGoalRequest is the request body for a partial goal update.
type UpdateGoalRequest struct {
	Description *string `json:"description"`
}

// CreateIntervalRequest is the request body for creating an interval.
// Timestamps arrive as "YYYY-MM-DD HH:MM" strings.
type CreateIntervalRequest struct {
	GoalID *int64  `json:"goal_id"`
	Start  *string `json:"start"`
	Final  *string `json:"final"`
}

// UpdateIntervalRequest is the request body for a partial interval update.
type UpdateIntervalRequest struct {
	GoalID *int64  `json:"goal_id"`
	Start  *string `json:"start"`
	Final  *string `json:"final"`
}

// UserResponse is the authenticated representation of an account.
type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// UserIDResponse is the anonymous representation of an account: the
// identifier only, never the email.
type UserIDResponse struct {
	ID int64 `json:"id"`
}

// UserListResponse wraps the anonymous account collection.
type UserListResponse struct {
	Users []UserIDResponse `json:"users"`
}

// TokenResponse carries a freshly issued access token.
type TokenResponse struct {
	Token string `json:"token"`
}

// GoalResponse is the representation of a goal.
type GoalResponse struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

// GoalListResponse wraps the goal collection.
type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
}

// IntervalResponse is the representation of an interval. Start and Final
// round-trip byte-identically with the request format.
type IntervalResponse struct {
	ID     int64  `json:"id"`
	Start  string `json:"start"`
	Final  string `json:"final"`
	GoalID int64  `json:"goal_id"`
}

// ErrorResponse is the uniform error payload: the standard reason phrase
// for the status code plus a human-readable message.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ToUserResponse converts a User model to its authenticated representation.
func ToUserResponse(u *model.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email}
}

// ToGoalResponse converts a Goal model to its API representation.
func ToGoalResponse(g *model.Goal) GoalResponse {
	return GoalResponse{ID: g.ID, Description: g.Description}
}

// ToIntervalResponse converts an Interval model to its API representation.
func ToIntervalResponse(i *model.Interval) IntervalResponse {
	return IntervalResponse{
		ID:     i.ID,
		Start:  model.FormatTime(i.Start),
		Final:  model.FormatTime(i.Final),
		GoalID: i.GoalID,
	}
}
