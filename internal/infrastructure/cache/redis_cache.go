package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/prayastok/stok-api/internal/domain/report"
)

const versionKey = "report:ver"

var _ ReportCache = (*RedisReportCache)(nil)

// RedisReportCache stores report rows in redis. Invalidation bumps a version
// counter instead of scanning keys; stale entries age out via their TTL.
type RedisReportCache struct {
	client *redis.Client
}

// NewRedisReportCache connects a redis-backed cache.
func NewRedisReportCache(addr, password string, db int) *RedisReportCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisReportCache{client: client}
}

func (c *RedisReportCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisReportCache) Close() error {
	return c.client.Close()
}

func (c *RedisReportCache) versioned(ctx context.Context, key string) (string, error) {
	ver, err := c.client.Get(ctx, versionKey).Result()
	if err == redis.Nil {
		ver = "0"
	} else if err != nil {
		return "", err
	}
	return fmt.Sprintf("report:%s:%s", ver, key), nil
}

func (c *RedisReportCache) Get(ctx context.Context, key string) ([]report.Row, bool, error) {
	fullKey, err := c.versioned(ctx, key)
	if err != nil {
		return nil, false, err
	}
	val, err := c.client.Get(ctx, fullKey).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var rows []report.Row
	if err := json.Unmarshal([]byte(val), &rows); err != nil {
		return nil, false, err
	}
	return rows, true, nil
}

func (c *RedisReportCache) Set(ctx context.Context, key string, rows []report.Row, ttl time.Duration) error {
	fullKey, err := c.versioned(ctx, key)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, fullKey, payload, ttl).Err()
}

func (c *RedisReportCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, versionKey).Err()
}
