// internal/adapters/redis_adapter/stock_cache.go
package redis_a

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ammerola/picking-be/internal/core/domain"
	"github.com/ammerola/picking-be/internal/core/ports"
)

// StockCache keeps the last stock seen per barcode under stock:last:<barcode>.
// Entries have no expiry.
type StockCache struct {
	cache  ports.CacheRepository
	logger *slog.Logger
}

var _ ports.StockCache = (*StockCache)(nil)

// NewStockCache creates a stock snapshot cache on top of cache
func NewStockCache(cache ports.CacheRepository, logger *slog.Logger) *StockCache {
	return &StockCache{
		cache:  cache,
		logger: logger.With(slog.String("component", "stock_cache")),
	}
}

// Get returns the stored snapshot, ok=false when none was stored
func (s *StockCache) Get(ctx context.Context, barcode string) (domain.StockSnapshot, bool, error) {
	var snap domain.StockSnapshot
	err := s.cache.Get(ctx, BuildKey(PrefixStock, barcode), &snap)
	if errors.Is(err, ErrCacheMiss) {
		return domain.StockSnapshot{}, false, nil
	}
	if err != nil {
		return domain.StockSnapshot{}, false, err
	}
	return snap, true, nil
}

// Set overwrites the snapshot for barcode
func (s *StockCache) Set(ctx context.Context, barcode string, snapshot domain.StockSnapshot) error {
	return s.cache.SetWithTTL(ctx, BuildKey(PrefixStock, barcode), snapshot, 0)
}
