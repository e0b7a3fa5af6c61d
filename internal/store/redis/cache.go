package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/gosuda/cadence/internal/task"
)

// DefaultTTL keeps cached dashboards short-lived. Invalidation on every
// write makes the TTL a backstop rather than the primary freshness control.
const DefaultTTL = 5 * time.Minute

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(ctx context.Context, addr, password string, db int, ttl time.Duration) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis.New: ping: %w", err)
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Cache{client: client, ttl: ttl}, nil
}

func (c *Cache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("redis.Cache.Close: %w", err)
	}
	return nil
}

func (c *Cache) Get(ctx context.Context, ownerID uuid.UUID) (*task.Dashboard, error) {
	raw, err := c.client.Get(ctx, DashboardKey(ownerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, task.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis.Cache.Get: %w", err)
	}

	var d task.Dashboard
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("redis.Cache.Get: decode: %w", err)
	}

	return &d, nil
}

func (c *Cache) Set(ctx context.Context, ownerID uuid.UUID, d *task.Dashboard) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("redis.Cache.Set: encode: %w", err)
	}

	if err := c.client.Set(ctx, DashboardKey(ownerID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis.Cache.Set: %w", err)
	}

	return nil
}

func (c *Cache) Invalidate(ctx context.Context, ownerID uuid.UUID) error {
	if err := c.client.Del(ctx, DashboardKey(ownerID)).Err(); err != nil {
		return fmt.Errorf("redis.Cache.Invalidate: %w", err)
	}
	return nil
}

// DashboardKey returns the Redis key for an owner's cached dashboard.
func DashboardKey(ownerID uuid.UUID) string {
	return "dashboard:" + ownerID.String()
}
