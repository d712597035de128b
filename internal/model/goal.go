package model

import "time"

// Goal is a personal goal owned by a single user.
// Within one user, descriptions are unique (case-sensitive, exact match);
// different users may have goals with identical descriptions.
type Goal struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
