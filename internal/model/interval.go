package model

import "time"

// Interval is a block of time spent on a goal. Start and Final have
// minute resolution and carry no zone; Start >= Final is permitted.
type Interval struct {
	ID        int64     `json:"id"`
	GoalID    int64     `json:"goal_id"`
	Start     time.Time `json:"start"`
	Final     time.Time `json:"final"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
