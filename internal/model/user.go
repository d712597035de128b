// Package model defines domain entities for the goal tracker.
package model

import "time"

// User is an account that owns goals and, transitively, intervals.
// PasswordHash holds an argon2id PHC string; the plaintext is never stored.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
