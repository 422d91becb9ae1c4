package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ExpertBridge/internal/modules/feed/domain/repository"
	"ExpertBridge/pkg/zlog"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// RedisResultCache is the Redis-backed get-or-populate cache behind the
// single-shot ranking operations. Population is single-flighted per key, so
// concurrent misses run the similarity query exactly once. Any Redis failure
// degrades to a direct query: the populate result is returned uncached and
// the error never reaches the caller.
type RedisResultCache struct {
	client *redis.Client
	group  singleflight.Group
}

var _ repository.ResultCache = (*RedisResultCache)(nil)

// NewRedisResultCache accepts a nil client, in which case every call is a
// miss and the cache degrades to pure single-flight coalescing.
func NewRedisResultCache(client *redis.Client) *RedisResultCache {
	return &RedisResultCache{client: client}
}

func (c *RedisResultCache) GetOrPopulate(ctx context.Context, key string, ttl time.Duration, populate repository.PopulateFunc) ([]byte, error) {
	if val, ok := c.lookup(ctx, key); ok {
		return val, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// A concurrent flight may have stored the value after our miss.
		if val, ok := c.lookup(ctx, key); ok {
			return val, nil
		}
		data, err := populate(ctx)
		if err != nil {
			return nil, err
		}
		c.store(ctx, key, data, ttl)
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (c *RedisResultCache) lookup(ctx context.Context, key string) ([]byte, bool) {
	if c.client == nil {
		return nil, false
	}
	val, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		return val, true
	}
	if !errors.Is(err, redis.Nil) {
		zlog.Warn(fmt.Sprintf("result cache get failed for %s, falling back to direct query: %v", key, err))
	}
	return nil, false
}

func (c *RedisResultCache) store(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if c.client == nil {
		return
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		zlog.Warn(fmt.Sprintf("result cache set failed for %s: %v", key, err))
	}
}
