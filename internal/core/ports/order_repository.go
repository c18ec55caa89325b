// internal/core/ports/order_repository.go
package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/picking-be/internal/core/domain"
)

// OrderRepository persists order lines
type OrderRepository interface {
	SaveBatch(ctx context.Context, orders []domain.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	FindAll(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	UpdatePickedQty(ctx context.Context, id uuid.UUID, qty int) error
	MarkCompleted(ctx context.Context, id uuid.UUID, at time.Time, by string) error
	MarkPending(ctx context.Context, id uuid.UUID) error
	CountPendingInGroup(ctx context.Context, orderID string) (int, error)
	DeleteByOrderID(ctx context.Context, orderID string) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// MemoRepository persists the shared memo log
type MemoRepository interface {
	Save(ctx context.Context, memo *domain.Memo) error
	Recent(ctx context.Context, limit int) ([]domain.Memo, error)
}
