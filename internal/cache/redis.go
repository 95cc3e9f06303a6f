package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrCacheMiss = errors.New("cache miss")
	ErrCacheDown = errors.New("cache unavailable")
)

// RedisCache is a JSON read-through cache over a shared Redis client. Every
// operation runs through a circuit breaker so a dead Redis degrades reads
// to the database instead of stalling requests.
type RedisCache struct {
	client  *redis.Client
	breaker *CircuitBreaker
	metrics *CacheMetrics
	ctx     context.Context
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		breaker: NewCircuitBreaker(nil),
		metrics: NewCacheMetrics(),
		ctx:     context.Background(),
	}
}

func (r *RedisCache) Set(key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return r.breaker.Execute(func() error {
		ctx, cancel := context.WithTimeout(r.ctx, 3*time.Second)
		defer cancel()

		if err := r.client.Set(ctx, key, data, expiration).Err(); err != nil {
			r.metrics.RecordError()
			return fmt.Errorf("failed to set cache: %w", err)
		}
		r.metrics.RecordSet()
		return nil
	})
}

func (r *RedisCache) Get(key string, dest interface{}) error {
	return r.breaker.Execute(func() error {
		ctx, cancel := context.WithTimeout(r.ctx, 3*time.Second)
		defer cancel()

		data, err := r.client.Get(ctx, key).Result()
		if err != nil {
			if err == redis.Nil {
				r.metrics.RecordMiss()
				return ErrCacheMiss
			}
			r.metrics.RecordError()
			return fmt.Errorf("failed to get from cache: %w", err)
		}

		if err := json.Unmarshal([]byte(data), dest); err != nil {
			r.metrics.RecordError()
			return fmt.Errorf("failed to unmarshal cached data: %w", err)
		}

		r.metrics.RecordHit()
		return nil
	})
}

func (r *RedisCache) Delete(key string) error {
	return r.breaker.Execute(func() error {
		ctx, cancel := context.WithTimeout(r.ctx, 3*time.Second)
		defer cancel()

		if err := r.client.Del(ctx, key).Err(); err != nil {
			r.metrics.RecordError()
			return err
		}
		r.metrics.RecordDelete()
		return nil
	})
}

func (r *RedisCache) DeletePattern(pattern string) error {
	return r.breaker.Execute(func() error {
		ctx, cancel := context.WithTimeout(r.ctx, 10*time.Second)
		defer cancel()

		keys, err := r.client.Keys(ctx, pattern).Result()
		if err != nil {
			r.metrics.RecordError()
			return fmt.Errorf("failed to get keys for pattern %s: %w", pattern, err)
		}

		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				r.metrics.RecordError()
				return err
			}
			r.metrics.RecordDelete()
		}
		return nil
	})
}

func (r *RedisCache) Exists(key string) (bool, error) {
	var found bool
	err := r.breaker.Execute(func() error {
		ctx, cancel := context.WithTimeout(r.ctx, 3*time.Second)
		defer cancel()

		result, err := r.client.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		found = result > 0
		return nil
	})
	return found, err
}

func (r *RedisCache) Health() error {
	ctx, cancel := context.WithTimeout(r.ctx, 2*time.Second)
	defer cancel()

	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Stats() map[string]interface{} {
	poolStats := r.client.PoolStats()
	counters := r.metrics.GetStats()

	return map[string]interface{}{
		"hits":          counters.Hits,
		"misses":        counters.Misses,
		"errors":        counters.Errors,
		"sets":          counters.Sets,
		"deletes":       counters.Deletes,
		"hit_rate":      r.metrics.HitRate(),
		"breaker":       r.breaker.GetStats(),
		"pool_hits":     poolStats.Hits,
		"pool_misses":   poolStats.Misses,
		"pool_timeouts": poolStats.Timeouts,
		"pool_total":    poolStats.TotalConns,
		"pool_idle":     poolStats.IdleConns,
	}
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
