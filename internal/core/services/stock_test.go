package services_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/picking-be/internal/core/domain"
	"github.com/ammerola/picking-be/internal/core/services"
	"github.com/ammerola/picking-be/test/helpers"
	"github.com/ammerola/picking-be/test/mocks"
)

type resolverFunc func(ctx context.Context, barcode string) (*domain.LookupResult, error)

func (f resolverFunc) Resolve(ctx context.Context, barcode string) (*domain.LookupResult, error) {
	return f(ctx, barcode)
}

func TestStockService_Lookup(t *testing.T) {
	found := &domain.LookupResult{
		Item:         domain.Item{"name": "Green Tea", "barcode": "4901234", "stock": float64(12), "safe_stock": float64(5)},
		ScannedPages: 2,
	}

	tests := []struct {
		name       string
		barcode    string
		resolve    resolverFunc
		setupCache func(*mocks.MockStockCache)
		wantKind   domain.LookupErrorKind
		wantPages  int
	}{
		{
			name:    "stores_snapshot_on_success",
			barcode: " 4901234 ",
			resolve: func(_ context.Context, barcode string) (*domain.LookupResult, error) {
				assert.Equal(t, "4901234", barcode)
				return found, nil
			},
			setupCache: func(c *mocks.MockStockCache) {
				c.EXPECT().
					Set(gomock.Any(), "4901234", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, snap domain.StockSnapshot) error {
						assert.Equal(t, "Green Tea", snap.Name)
						assert.Equal(t, float64(12), snap.Qty)
						assert.Equal(t, float64(5), snap.SafeQty)
						return nil
					})
			},
			wantPages: 2,
		},
		{
			name:    "cache_failure_does_not_fail_lookup",
			barcode: "4901234",
			resolve: func(context.Context, string) (*domain.LookupResult, error) { return found, nil },
			setupCache: func(c *mocks.MockStockCache) {
				c.EXPECT().Set(gomock.Any(), "4901234", gomock.Any()).Return(errors.New("redis down"))
			},
			wantPages: 2,
		},
		{
			name:    "not_found_leaves_cache_alone",
			barcode: "4901234",
			resolve: func(context.Context, string) (*domain.LookupResult, error) {
				return nil, &domain.LookupError{Kind: domain.LookupNotFound, ScannedPages: 7, Reason: domain.ReasonExhausted}
			},
			setupCache: func(*mocks.MockStockCache) {},
			wantKind:   domain.LookupNotFound,
		},
		{
			name:    "blank_barcode_reaches_resolver",
			barcode: "  ",
			resolve: func(context.Context, string) (*domain.LookupResult, error) {
				return nil, &domain.LookupError{Kind: domain.LookupMissingInput}
			},
			setupCache: func(*mocks.MockStockCache) {},
			wantKind:   domain.LookupMissingInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			cache := mocks.NewMockStockCache(ctrl)
			tt.setupCache(cache)

			svc := services.NewStockService(tt.resolve, cache, newFakeClock(), helpers.TestLogger())
			result, err := svc.Lookup(context.Background(), tt.barcode)

			if tt.wantKind != "" {
				assert.Equal(t, tt.wantKind, domain.LookupKind(err))
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPages, result.ScannedPages)
		})
	}
}

func TestStockService_CollapsesConcurrentLookups(t *testing.T) {
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})

	resolve := resolverFunc(func(context.Context, string) (*domain.LookupResult, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		return &domain.LookupResult{Item: domain.Item{"name": "x", "barcode": "4901234"}, ScannedPages: 4}, nil
	})
	svc := services.NewStockService(resolve, nil, newFakeClock(), helpers.TestLogger())

	const callers = 8
	var wg sync.WaitGroup
	results := make([]*domain.LookupResult, callers)

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], _ = svc.Lookup(context.Background(), "4901234")
	}()
	<-started

	for i := 1; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = svc.Lookup(context.Background(), "4901234")
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		require.NotNil(t, r)
		assert.Equal(t, 4, r.ScannedPages)
	}
}

func TestStockService_LastSeen(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	snap := domain.StockSnapshot{Name: "Green Tea", Qty: 3, SafeQty: 5}
	cache := mocks.NewMockStockCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), "4901234").Return(snap, true, nil)
	cache.EXPECT().Get(gomock.Any(), "0000").Return(domain.StockSnapshot{}, false, nil)

	svc := services.NewStockService(resolverFunc(nil), cache, nil, helpers.TestLogger())

	got, ok, err := svc.LastSeen(context.Background(), " 4901234 ")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, got.BelowSafeStock())

	_, ok, err = svc.LastSeen(context.Background(), "0000")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = svc.LastSeen(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStockService_CancelledCallerDoesNotFailOthers(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	resolve := resolverFunc(func(ctx context.Context, _ string) (*domain.LookupResult, error) {
		close(started)
		select {
		case <-release:
		case <-ctx.Done():
			return nil, &domain.LookupError{Kind: domain.LookupUnexpected, Err: ctx.Err()}
		}
		return &domain.LookupResult{Item: domain.Item{"name": "Green Tea", "barcode": "4901234"}, ScannedPages: 3}, nil
	})
	svc := services.NewStockService(resolve, nil, newFakeClock(), helpers.TestLogger())

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.Lookup(firstCtx, "4901234")
		firstErr <- err
	}()
	<-started

	type outcome struct {
		result *domain.LookupResult
		err    error
	}
	second := make(chan outcome, 1)
	go func() {
		r, err := svc.Lookup(context.Background(), "4901234")
		second <- outcome{r, err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancelFirst()
	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller kept waiting")
	}

	close(release)
	got := <-second
	require.NoError(t, got.err)
	assert.Equal(t, "Green Tea", got.result.Item.Name())
	assert.Equal(t, 3, got.result.ScannedPages)
}
