package redis_a_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redis_a "github.com/ammerola/picking-be/internal/adapters/redis_adapter"
	"github.com/ammerola/picking-be/test/helpers"
)

func newTestCache(t *testing.T) (*redis_a.Cache, *miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redis_a.NewCache(client, 5*time.Minute, helpers.TestLogger()), mr, client
}

func TestCache_SetAndGet(t *testing.T) {
	ctx := context.Background()
	cache, _, _ := newTestCache(t)

	type snapshot struct {
		Name string  `json:"name"`
		Qty  float64 `json:"qty"`
	}

	tests := []struct {
		name  string
		key   string
		value interface{}
		dest  func() interface{}
		read  func(interface{}) interface{}
	}{
		{
			name:  "stores_and_retrieves_string",
			key:   "test:string",
			value: "test value",
			dest:  func() interface{} { return new(string) },
			read:  func(v interface{}) interface{} { return *v.(*string) },
		},
		{
			name:  "stores_and_retrieves_struct",
			key:   "test:struct",
			value: snapshot{Name: "Green Tea", Qty: 4},
			dest:  func() interface{} { return new(snapshot) },
			read:  func(v interface{}) interface{} { return *v.(*snapshot) },
		},
		{
			name:  "stores_and_retrieves_slice",
			key:   "test:slice",
			value: []string{"item1", "item2", "item3"},
			dest:  func() interface{} { return new([]string) },
			read:  func(v interface{}) interface{} { return *v.(*[]string) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, cache.Set(ctx, tt.key, tt.value))

			dest := tt.dest()
			require.NoError(t, cache.Get(ctx, tt.key, dest))
			assert.Equal(t, tt.value, tt.read(dest))
		})
	}
}

func TestCache_SetWithTTL(t *testing.T) {
	ctx := context.Background()
	cache, mr, _ := newTestCache(t)

	require.NoError(t, cache.SetWithTTL(ctx, "ttl:test", "value", 100*time.Millisecond))
	require.NoError(t, cache.SetWithTTL(ctx, "ttl:forever", "value", 0))

	var result string
	require.NoError(t, cache.Get(ctx, "ttl:test", &result))
	assert.Equal(t, "value", result)

	mr.FastForward(time.Hour)

	assert.ErrorIs(t, cache.Get(ctx, "ttl:test", &result), redis_a.ErrCacheMiss)
	assert.NoError(t, cache.Get(ctx, "ttl:forever", &result))
}

func TestCache_Delete(t *testing.T) {
	ctx := context.Background()
	cache, mr, _ := newTestCache(t)

	keys := []string{"del:1", "del:2", "del:3"}
	for _, key := range keys {
		require.NoError(t, cache.Set(ctx, key, "value"))
	}

	require.NoError(t, cache.Delete(ctx, keys[:2]...))
	require.NoError(t, cache.Delete(ctx))

	assert.False(t, mr.Exists("del:1"))
	assert.False(t, mr.Exists("del:2"))
	assert.True(t, mr.Exists("del:3"))
}

func TestCache_GetOrSet(t *testing.T) {
	ctx := context.Background()
	cache, _, _ := newTestCache(t)

	fetchCount := 0
	fetchFunc := func() (interface{}, error) {
		fetchCount++
		return []string{"first", "second"}, nil
	}

	var result1 []string
	require.NoError(t, cache.GetOrSet(ctx, "getorset:test", &result1, fetchFunc, time.Minute))
	assert.Equal(t, []string{"first", "second"}, result1)
	assert.Equal(t, 1, fetchCount)

	var result2 []string
	require.NoError(t, cache.GetOrSet(ctx, "getorset:test", &result2, fetchFunc, time.Minute))
	assert.Equal(t, []string{"first", "second"}, result2)
	assert.Equal(t, 1, fetchCount)
}

func TestCache_GetOrSetFetchError(t *testing.T) {
	ctx := context.Background()
	cache, mr, _ := newTestCache(t)

	var result string
	err := cache.GetOrSet(ctx, "getorset:err", &result, func() (interface{}, error) {
		return nil, errors.New("db down")
	}, time.Minute)

	assert.ErrorContains(t, err, "db down")
	assert.False(t, mr.Exists("getorset:err"))
}

func TestCache_SetNX(t *testing.T) {
	ctx := context.Background()
	cache, _, _ := newTestCache(t)

	ok, err := cache.SetNX(ctx, "setnx:test", "first", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = cache.SetNX(ctx, "setnx:test", "second", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	var result string
	require.NoError(t, cache.Get(ctx, "setnx:test", &result))
	assert.Equal(t, "first", result)
}

func TestCache_Ping(t *testing.T) {
	cache, mr, _ := newTestCache(t)

	require.NoError(t, cache.Ping(context.Background()))
	mr.SetError("LOADING")
	assert.Error(t, cache.Ping(context.Background()))
}

func TestCache_BuildKey(t *testing.T) {
	tests := []struct {
		name     string
		prefix   redis_a.CacheKeyPrefix
		parts    []string
		expected string
	}{
		{name: "stock_key", prefix: redis_a.PrefixStock, parts: []string{"4901234"}, expected: "stock:last:4901234"},
		{name: "read_mark_key", prefix: redis_a.PrefixMemoRead, parts: []string{"kim@example.com"}, expected: "memo:read:kim@example.com"},
		{name: "multi_part", prefix: redis_a.PrefixImport, parts: []string{"abc", "lock"}, expected: "import:abc:lock"},
		{name: "no_parts", prefix: redis_a.PrefixImport, parts: nil, expected: "import"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, redis_a.BuildKey(tt.prefix, tt.parts...))
		})
	}
}
