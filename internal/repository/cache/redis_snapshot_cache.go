package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"vpp-configurator/internal/pkg/logger"
	"vpp-configurator/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "vpp:snapshot:"

// RedisSnapshotCache shares catalog snapshots across API instances. Redis
// errors are logged and treated as misses.
type RedisSnapshotCache struct {
	rdb *redis.Client
	log logger.ILogger
}

func NewRedisSnapshotCache(rdb *redis.Client, log logger.ILogger) *RedisSnapshotCache {
	return &RedisSnapshotCache{rdb: rdb, log: log}
}

func (c *RedisSnapshotCache) Get(ctx context.Context, key string) (*contract.RawSnapshot, bool) {
	raw, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("CACHE", "Redis get failed", map[string]interface{}{"key": key, "error": err.Error()})
		}
		return nil, false
	}

	var snap contract.RawSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		c.log.Warn("CACHE", "Discarding undecodable snapshot", map[string]interface{}{"key": key, "error": err.Error()})
		return nil, false
	}
	return &snap, true
}

func (c *RedisSnapshotCache) Set(ctx context.Context, key string, snap *contract.RawSnapshot, ttl time.Duration) {
	raw, err := json.Marshal(snap)
	if err != nil {
		c.log.Error("CACHE", "Failed to encode snapshot", map[string]interface{}{"key": key, "error": err.Error()})
		return
	}
	if err := c.rdb.Set(ctx, keyPrefix+key, raw, ttl).Err(); err != nil {
		c.log.Warn("CACHE", "Redis set failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

func (c *RedisSnapshotCache) Delete(ctx context.Context, key string) {
	if err := c.rdb.Del(ctx, keyPrefix+key).Err(); err != nil {
		c.log.Warn("CACHE", "Redis delete failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}
