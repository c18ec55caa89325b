package redis_a_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redis_a "github.com/ammerola/picking-be/internal/adapters/redis_adapter"
	"github.com/ammerola/picking-be/internal/core/domain"
	"github.com/ammerola/picking-be/test/helpers"
)

func TestStockCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	cache, mr, _ := newTestCache(t)
	stock := redis_a.NewStockCache(cache, helpers.TestLogger())

	_, ok, err := stock.Get(ctx, "4901234")
	require.NoError(t, err)
	assert.False(t, ok)

	seen := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, stock.Set(ctx, "4901234", domain.StockSnapshot{Name: "Green Tea", Qty: 3, SafeQty: 5, SeenAt: seen}))
	require.NoError(t, stock.Set(ctx, "4901234", domain.StockSnapshot{Name: "Green Tea", Qty: 8, SafeQty: 5, SeenAt: seen}))

	// never expires
	mr.FastForward(365 * 24 * time.Hour)
	assert.True(t, mr.Exists("stock:last:4901234"))

	snap, ok, err := stock.Get(ctx, "4901234")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, float64(8), snap.Qty)
	assert.True(t, snap.SeenAt.Equal(seen))
	assert.False(t, snap.BelowSafeStock())
}
