// internal/adapters/redis_adapter/cache.go
package redis_a

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ammerola/picking-be/internal/core/ports"
)

// CacheKeyPrefix namespaces keys by owner
type CacheKeyPrefix string

const (
	PrefixStock    CacheKeyPrefix = "stock:last"
	PrefixMemoRead CacheKeyPrefix = "memo:read"
	PrefixImport   CacheKeyPrefix = "import"
	PrefixDownload CacheKeyPrefix = "order:downloaded"
)

// ErrCacheMiss is returned when a key is not found in cache
var ErrCacheMiss = errors.New("cache miss")

// Cache stores JSON-encoded values in Redis
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

var _ ports.CacheRepository = (*Cache)(nil)

// NewCache returns a cache whose Set uses ttl
func NewCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "cache")),
	}
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	return c.SetWithTTL(ctx, key, value, c.ttl)
}

// SetWithTTL stores value under key; ttl 0 keeps it until overwritten
func (c *Cache) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	_, err := c.write(ctx, key, value, ttl)
	return err
}

// write encodes and stores value, returning the encoded bytes
func (c *Cache) write(ctx context.Context, key string, value interface{}, ttl time.Duration) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		c.logger.ErrorContext(ctx, "cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return data, fmt.Errorf("redis set %s: %w", key, err)
	}
	c.logger.DebugContext(ctx, "cache set", slog.String("key", key), slog.Duration("ttl", ttl))
	return data, nil
}

// Get decodes the value at key into dest, ErrCacheMiss when absent
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return ErrCacheMiss
	case err != nil:
		return fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// Delete removes keys; no keys is a no-op
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// GetOrSet reads key into dest. On a miss, or when Redis is unreadable, it
// calls fetch and stores the result with ttl; a failed store only logs.
func (c *Cache) GetOrSet(ctx context.Context, key string, dest interface{},
	fetch func() (interface{}, error), ttl time.Duration) error {

	err := c.Get(ctx, key, dest)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		c.logger.WarnContext(ctx, "cache read failed, falling back to source",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}

	value, err := fetch()
	if err != nil {
		return fmt.Errorf("fetch %s: %w", key, err)
	}

	data, err := c.write(ctx, key, value, ttl)
	if data == nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// SetNX stores value only when key is absent and reports whether it did
func (c *Cache) SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("encode %s: %w", key, err)
	}
	ok, err := c.client.SetNX(ctx, key, data, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx %s: %w", key, err)
	}
	return ok, nil
}

func (c *Cache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// BuildKey joins a prefix and parts with ':'
func BuildKey(prefix CacheKeyPrefix, parts ...string) string {
	return strings.Join(append([]string{string(prefix)}, parts...), ":")
}
