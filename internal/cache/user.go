package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kaloyan-marinov/goal-tracker/internal/model"
)

// userTTL bounds how stale a cached principal can be. Updates and deletes
// invalidate eagerly; the TTL is the backstop.
const userTTL = 60 * time.Second

func userKey(id int64) string {
	return fmt.Sprintf("user:%d", id)
}

// GetUser returns the cached account for the given id, or (nil, nil) on a
// cache miss.
func (c *Cache) GetUser(ctx context.Context, id int64) (*model.User, error) {
	data, err := c.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get user: %w", err)
	}

	var u model.User
	if err := json.Unmarshal(data, &u); err != nil {
		// Treat a corrupt entry as a miss.
		return nil, nil
	}
	return &u, nil
}

// SetUser caches the account under its id.
func (c *Cache) SetUser(ctx context.Context, u *model.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("cache marshal user: %w", err)
	}
	return c.client.Set(ctx, userKey(u.ID), data, userTTL).Err()
}

// InvalidateUser drops the cached account, if any.
func (c *Cache) InvalidateUser(ctx context.Context, id int64) error {
	return c.client.Del(ctx, userKey(id)).Err()
}
