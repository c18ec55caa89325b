// internal/core/ports/services.go
package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/picking-be/internal/core/domain"
)

// StockService resolves barcodes against the catalog for the HTTP layer
type StockService interface {
	Lookup(ctx context.Context, barcode string) (*domain.LookupResult, error)
	LastSeen(ctx context.Context, barcode string) (domain.StockSnapshot, bool, error)
}

// OrderService is the picking workflow
type OrderService interface {
	ListOrders(ctx context.Context, filter domain.OrderFilter, userEmail string) ([]domain.Order, error)
	UpdatePickedQty(ctx context.Context, id uuid.UUID, qty int) error
	CompleteOrder(ctx context.Context, id uuid.UUID, userEmail string) (*domain.Order, error)
	RevertOrder(ctx context.Context, id uuid.UUID) error
	UploadBatch(ctx context.Context, orders []domain.Order) (int, error)
	ClearAll(ctx context.Context) (int64, error)
	DeleteByOrderID(ctx context.Context, orderID string) (int64, error)
	ExportLines(ctx context.Context, orderID, userEmail string) ([]domain.Order, error)
	ExportRange(ctx context.Context, filter domain.OrderFilter, userEmail string) (map[string][]domain.Order, error)
}

// MemoService is the shared team log
type MemoService interface {
	Send(ctx context.Context, text, userEmail string, isSystem bool) (*domain.Memo, error)
	Recent(ctx context.Context) ([]domain.Memo, error)
	CountUnread(ctx context.Context, userEmail string) (int, error)
	MarkAsRead(ctx context.Context, userEmail string) (time.Time, error)
	Subscribe(ctx context.Context) (<-chan domain.Memo, error)
}

// MemoBroadcaster fans new memos out to live subscribers
type MemoBroadcaster interface {
	Publish(ctx context.Context, memo *domain.Memo) error
	Subscribe(ctx context.Context) (<-chan domain.Memo, error)
}

// ReadMarkStore remembers when each user last opened the memo log
type ReadMarkStore interface {
	LastRead(ctx context.Context, userEmail string) (time.Time, error)
	SetLastRead(ctx context.Context, userEmail string, at time.Time) error
}

// DownloadMarkStore remembers which orders each user has already exported
type DownloadMarkStore interface {
	MarkDownloaded(ctx context.Context, userEmail string, orderIDs ...string) error
	Downloaded(ctx context.Context, userEmail string) (map[string]bool, error)
}
