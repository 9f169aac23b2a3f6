package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shelfwatch/backend-go/internal/config"
	"github.com/shelfwatch/backend-go/internal/reorder"
)

const (
	reorderKeyPrefix     = "reorder:result"
	reorderScanBatchSize = 100
)

// ReorderCache shields the aggregation pipeline from repeated dashboard
// loads. A cache failure is never fatal; callers fall through to the
// repositories.
type ReorderCache interface {
	GetResult(ctx context.Context, tenantID string) (*reorder.Result, bool, error)
	SetResult(ctx context.Context, tenantID string, result *reorder.Result) error
	InvalidateTenant(ctx context.Context, tenantID string) error
	InvalidateAll(ctx context.Context) error
}

type redisReorderCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopReorderCache struct{}

func NewReorderCache(cfg config.CacheConfig) (ReorderCache, error) {
	if !cfg.Enabled {
		return &noopReorderCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisReorderCache{client: client, ttl: ttl}, nil
}

func NewNoopReorderCache() ReorderCache {
	return &noopReorderCache{}
}

func (c *redisReorderCache) GetResult(ctx context.Context, tenantID string) (*reorder.Result, bool, error) {
	payload, err := c.client.Get(ctx, buildReorderKey(tenantID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var result reorder.Result
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, false, fmt.Errorf("decode reorder result cache: %w", err)
	}

	return &result, true, nil
}

func (c *redisReorderCache) SetResult(ctx context.Context, tenantID string, result *reorder.Result) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode reorder result cache: %w", err)
	}

	if err := c.client.Set(ctx, buildReorderKey(tenantID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisReorderCache) InvalidateTenant(ctx context.Context, tenantID string) error {
	return c.client.Del(ctx, buildReorderKey(tenantID)).Err()
}

func (c *redisReorderCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, reorderKeyPrefix, reorderScanBatchSize)
}

func (n *noopReorderCache) GetResult(ctx context.Context, tenantID string) (*reorder.Result, bool, error) {
	return nil, false, nil
}

func (n *noopReorderCache) SetResult(ctx context.Context, tenantID string, result *reorder.Result) error {
	return nil
}

func (n *noopReorderCache) InvalidateTenant(ctx context.Context, tenantID string) error {
	return nil
}

func (n *noopReorderCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildReorderKey(tenantID string) string {
	sum := sha1.Sum([]byte(tenantID))
	return fmt.Sprintf("%s:%s", reorderKeyPrefix, hex.EncodeToString(sum[:]))
}
