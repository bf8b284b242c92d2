package cache

import (
	"context"
	"encoding/json"
	"time"

	dom "github.com/zulven/arkivia-collab-todo/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyListPrefix = "todo:list:"

// TodoCache caches each user's sorted visible todo list in Redis. Keys are
// per uid because two users rarely share a visible set.
type TodoCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTodoCache returns a new TodoCache.
func NewTodoCache(rdb *redis.Client, ttl time.Duration) *TodoCache {
	return &TodoCache{rdb: rdb, ttl: ttl}
}

// GetList returns the cached list for uid, or nil on miss.
func (c *TodoCache) GetList(ctx context.Context, uid string) ([]dom.Todo, error) {
	b, err := c.rdb.Get(ctx, keyListPrefix+uid).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Todo
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetList stores uid's list.
func (c *TodoCache) SetList(ctx context.Context, uid string, list []dom.Todo) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyListPrefix+uid, b, c.ttl).Err()
}

// Invalidate drops the cached lists of every given uid. A mutation must
// invalidate the whole affected visibility set, since assigning or removing
// an assignee changes what other users see.
func (c *TodoCache) Invalidate(ctx context.Context, uids ...string) error {
	if len(uids) == 0 {
		return nil
	}
	keys := make([]string, len(uids))
	for i, uid := range uids {
		keys[i] = keyListPrefix + uid
	}
	return c.rdb.Del(ctx, keys...).Err()
}
