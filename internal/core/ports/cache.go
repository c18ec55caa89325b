// internal/core/ports/cache.go
package ports

import (
	"context"
	"time"

	"github.com/ammerola/picking-be/internal/core/domain"
)

// CacheRepository defines the interface for cache operations
type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}) error
	SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error

	GetOrSet(ctx context.Context, key string, dest interface{},
		fetch func() (interface{}, error), ttl time.Duration) error

	SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error)

	Ping(ctx context.Context) error
}

// StockCache keeps the last successfully looked-up stock per barcode.
// Entries never expire; they are overwritten by the next successful lookup.
type StockCache interface {
	Get(ctx context.Context, barcode string) (domain.StockSnapshot, bool, error)
	Set(ctx context.Context, barcode string, snapshot domain.StockSnapshot) error
}
