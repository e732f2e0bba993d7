package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/recipebox/config"
	"github.com/shashiranjanraj/recipebox/pkg/metrics"
)

// Store is a JSON value cache backed by Redis. A nil *Store, or one without a
// client, behaves as a permanent miss so callers never branch on availability.
type Store struct {
	rdb *redis.Client
}

// New wraps an existing client. A nil client yields a disabled store.
func New(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Connect builds a client from REDIS_ADDR and verifies it with a ping.
// An empty address returns a disabled store and no error.
func Connect(ctx context.Context) (*Store, error) {
	addr := config.RedisAddr()
	if addr == "" {
		return New(nil), nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.RedisPassword(),
		DB:       0,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return New(nil), fmt.Errorf("cache: redis ping: %w", err)
	}
	return New(rdb), nil
}

// Enabled reports whether a Redis client is attached.
func (s *Store) Enabled() bool {
	return s != nil && s.rdb != nil
}

// Get unmarshals the value at key into dest. It returns true on a hit.
func (s *Store) Get(ctx context.Context, key string, dest interface{}) bool {
	if !s.Enabled() {
		return false
	}

	val, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil || json.Unmarshal(val, dest) != nil {
		metrics.CacheMisses.WithLabelValues("redis").Inc()
		return false
	}

	metrics.CacheHits.WithLabelValues("redis").Inc()
	return true
}

// Set stores value under key for ttl.
func (s *Store) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !s.Enabled() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.rdb.Set(ctx, key, data, ttl).Err()
}

// Del removes one or more keys.
func (s *Store) Del(ctx context.Context, keys ...string) error {
	if !s.Enabled() {
		return nil
	}
	err := s.rdb.Del(ctx, keys...).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}

// Forget is an alias for Del.
func (s *Store) Forget(ctx context.Context, key string) error {
	return s.Del(ctx, key)
}

// Remember returns the cached value at key, or calls fn, caches its result for
// ttl and returns it. Cache write failures are ignored.
func Remember[T any](ctx context.Context, s *Store, key string, ttl time.Duration, fn func() (T, error)) (T, error) {
	var v T
	if s.Get(ctx, key, &v) {
		return v, nil
	}

	v, err := fn()
	if err != nil {
		return v, err
	}
	_ = s.Set(ctx, key, v, ttl)
	return v, nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	if !s.Enabled() {
		return nil
	}
	return s.rdb.Close()
}
