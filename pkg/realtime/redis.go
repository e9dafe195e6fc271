package realtime

import (
	"context"
	"fmt"
	"time"

	"github.com/anuj66688/ambulance-live-tracking-system/pkg/cache"
)

// RedisRelay keeps the latest value per path as a key and announces each
// write on a channel of the same name for external subscribers.
type RedisRelay struct {
	cache     *cache.RedisCache
	keyPrefix string
	ttl       time.Duration
}

func NewRedisRelay(redisCache *cache.RedisCache, keyPrefix string, ttl time.Duration) *RedisRelay {
	return &RedisRelay{cache: redisCache, keyPrefix: keyPrefix, ttl: ttl}
}

func (r *RedisRelay) Name() string {
	return "redis"
}

func (r *RedisRelay) Publish(ctx context.Context, path string, value interface{}) error {
	key := r.keyPrefix + path
	if err := r.cache.Set(ctx, key, value, r.ttl); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	if err := r.cache.Publish(ctx, key, value); err != nil {
		return fmt.Errorf("redis publish %s: %w", key, err)
	}
	return nil
}

func (r *RedisRelay) Get(ctx context.Context, path string, dest interface{}) error {
	err := r.cache.Get(ctx, r.keyPrefix+path, dest)
	if cache.IsMiss(err) {
		return ErrNotFound
	}
	return err
}
