// Package redis implements the status cache on top of a Redis server.
// Records are stored as whole-value JSON strings with a per-key TTL, so a
// write is always a full replacement and expiry needs no bookkeeping here.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mixforge/mixforge-api/internal/config"
	"github.com/mixforge/mixforge-api/internal/domain"
	"github.com/mixforge/mixforge-api/internal/platform/logger"
	"github.com/mixforge/mixforge-api/internal/store"
	"github.com/redis/go-redis/v9"
)

// StatusCache implements store.StatusCache using a Redis client.
type StatusCache struct {
	client *redis.Client
}

// NewStatusCache connects to Redis with the given configuration and verifies
// the connection with a ping before returning. A cache that cannot be
// reached at startup is a fatal configuration problem, not something to
// fail open on later.
func NewStatusCache(ctx context.Context, cfg config.RedisConfig) (*StatusCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr, err)
	}

	return &StatusCache{client: client}, nil
}

// Get returns the cached record for taskID, or store.ErrStatusNotCached on
// a miss.
func (c *StatusCache) Get(ctx context.Context, taskID string) (*domain.StatusRecord, error) {
	raw, err := c.client.Get(ctx, statusKey(taskID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrStatusNotCached
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read status record from cache: %w", err)
	}

	var record domain.StatusRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		// A corrupt value is as useful as a miss; log it and let the
		// caller fall through to the provider.
		logger.FromContext(ctx).Warn("discarding corrupt status record",
			"task_id", taskID,
			"error", err)
		return nil, store.ErrStatusNotCached
	}

	return &record, nil
}

// Put stores record under taskID with the given TTL, replacing any existing
// value wholesale.
func (c *StatusCache) Put(ctx context.Context, taskID string, record *domain.StatusRecord, ttl time.Duration) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal status record: %w", err)
	}

	if err := c.client.Set(ctx, statusKey(taskID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write status record to cache: %w", err)
	}

	return nil
}

// Close releases the underlying Redis connection pool.
func (c *StatusCache) Close() error {
	return c.client.Close()
}

func statusKey(taskID string) string { return fmt.Sprintf("genstatus:%s", taskID) }
