// internal/core/services/stock.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ammerola/picking-be/internal/core/domain"
	"github.com/ammerola/picking-be/internal/core/ports"
)

// Resolver is the scan the stock service delegates to
type Resolver interface {
	Resolve(ctx context.Context, barcode string) (*domain.LookupResult, error)
}

// StockService fronts the resolver for HTTP callers: it collapses concurrent
// lookups of the same barcode and remembers the last stock seen per barcode.
type StockService struct {
	resolver Resolver
	cache    ports.StockCache
	clock    Clock
	group    singleflight.Group
	logger   *slog.Logger

	scanTimeout time.Duration
}

// DefaultScanTimeout bounds one shared catalog scan
const DefaultScanTimeout = 2 * time.Minute

var _ ports.StockService = (*StockService)(nil)

// NewStockService creates a new stock service. cache may be nil.
func NewStockService(resolver Resolver, cache ports.StockCache, clock Clock, logger *slog.Logger) *StockService {
	if clock == nil {
		clock = RealClock()
	}
	return &StockService{
		resolver: resolver,
		cache:    cache,
		clock:    clock,
		logger:   logger.With(slog.String("service", "stock")),

		scanTimeout: DefaultScanTimeout,
	}
}

// Lookup resolves barcode, sharing one scan among concurrent identical requests.
// The shared scan is detached from any single caller's cancellation; each
// caller stops waiting when its own ctx is done.
func (s *StockService) Lookup(ctx context.Context, barcode string) (*domain.LookupResult, error) {
	code := strings.TrimSpace(barcode)
	if code == "" {
		return s.resolver.Resolve(ctx, code)
	}

	ch := s.group.DoChan(code, func() (interface{}, error) {
		scanCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.scanTimeout)
		defer cancel()
		return s.resolver.Resolve(scanCtx, code)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, &domain.LookupError{Kind: domain.LookupUnexpected, Err: ctx.Err()}
	case res = <-ch:
	}
	if res.Shared {
		s.logger.DebugContext(ctx, "joined in-flight lookup", slog.String("barcode", code))
	}
	if res.Err != nil {
		return nil, res.Err
	}

	result := res.Val.(*domain.LookupResult)
	s.remember(ctx, code, result.Item)
	return result, nil
}

// LastSeen returns the last snapshot stored for barcode
func (s *StockService) LastSeen(ctx context.Context, barcode string) (domain.StockSnapshot, bool, error) {
	code := strings.TrimSpace(barcode)
	if s.cache == nil || code == "" {
		return domain.StockSnapshot{}, false, nil
	}
	snap, ok, err := s.cache.Get(ctx, code)
	if err != nil {
		return domain.StockSnapshot{}, false, fmt.Errorf("failed to read stock snapshot: %w", err)
	}
	return snap, ok, nil
}

func (s *StockService) remember(ctx context.Context, code string, item domain.Item) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, code, item.Snapshot(s.clock.Now())); err != nil {
		s.logger.WarnContext(ctx, "failed to store stock snapshot",
			slog.String("barcode", code),
			slog.String("error", err.Error()))
	}
}
