// internal/core/services/order.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ammerola/picking-be/internal/core/domain"
	"github.com/ammerola/picking-be/internal/core/ports"
)

// OrderService implements the picking workflow. System notices about uploads,
// completed groups and exports are posted to the memo log.
type OrderService struct {
	repo      ports.OrderRepository
	memos     ports.MemoService
	downloads ports.DownloadMarkStore
	clock     Clock
	logger    *slog.Logger
}

// OrderOption customizes an OrderService
type OrderOption func(*OrderService)

// WithDownloadMarks records exports per user and reports them from ListOrders
func WithDownloadMarks(m ports.DownloadMarkStore) OrderOption {
	return func(s *OrderService) { s.downloads = m }
}

var _ ports.OrderService = (*OrderService)(nil)

// NewOrderService creates an order service. memos may be nil, in which case no notices are posted.
func NewOrderService(repo ports.OrderRepository, memos ports.MemoService, clock Clock, logger *slog.Logger, opts ...OrderOption) *OrderService {
	if clock == nil {
		clock = RealClock()
	}
	s := &OrderService{
		repo:   repo,
		memos:  memos,
		clock:  clock,
		logger: logger.With(slog.String("service", "order")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListOrders returns order lines matching filter, flagging the orders userEmail already exported
func (s *OrderService) ListOrders(ctx context.Context, filter domain.OrderFilter, userEmail string) ([]domain.Order, error) {
	orders, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if s.downloads == nil || len(orders) == 0 {
		return orders, nil
	}

	downloaded, err := s.downloads.Downloaded(ctx, userEmail)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load download marks",
			slog.String("user_email", userEmail),
			slog.String("error", err.Error()))
		return orders, nil
	}
	for i := range orders {
		orders[i].Downloaded = downloaded[orders[i].OrderID]
	}
	return orders, nil
}

// UpdatePickedQty records the quantity actually secured for a line
func (s *OrderService) UpdatePickedQty(ctx context.Context, id uuid.UUID, qty int) error {
	if qty < 0 {
		return fmt.Errorf("%w: picked_qty cannot be negative", domain.ErrInvalidOrder)
	}
	if err := s.repo.UpdatePickedQty(ctx, id, qty); err != nil {
		return fmt.Errorf("failed to update picked qty: %w", err)
	}
	return nil
}

// CompleteOrder marks a line completed. When it was the last pending line of
// its order, a picking-complete notice is posted.
func (s *OrderService) CompleteOrder(ctx context.Context, id uuid.UUID, userEmail string) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	if err := s.repo.MarkCompleted(ctx, id, now, userEmail); err != nil {
		return nil, fmt.Errorf("failed to complete order: %w", err)
	}
	order.Status = domain.StatusCompleted
	order.CompletedAt = &now
	order.CompletedBy = &userEmail

	s.logger.InfoContext(ctx, "order line completed",
		slog.String("id", id.String()),
		slog.String("order_id", order.OrderID),
		slog.String("user_email", userEmail))

	remaining, err := s.repo.CountPendingInGroup(ctx, order.OrderID)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to count pending lines",
			slog.String("order_id", order.OrderID),
			slog.String("error", err.Error()))
		return order, nil
	}
	if remaining == 0 {
		s.notify(ctx, fmt.Sprintf("📦 [피킹완료] %s %s - 전체 피킹 완료",
			domain.OrderNumber(order.OrderID), domain.NotifyClientName(order.OrderID)))
	}

	return order, nil
}

// RevertOrder moves a completed line back to pending
func (s *OrderService) RevertOrder(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.MarkPending(ctx, id); err != nil {
		return fmt.Errorf("failed to revert order: %w", err)
	}
	s.logger.InfoContext(ctx, "order line reverted", slog.String("id", id.String()))
	return nil
}

// UploadBatch validates and stores imported lines
func (s *OrderService) UploadBatch(ctx context.Context, orders []domain.Order) (int, error) {
	if len(orders) == 0 {
		return 0, nil
	}

	needCounts := false
	for i := range orders {
		if orders[i].TotalGroupCount == 0 {
			needCounts = true
			break
		}
	}
	if needCounts {
		domain.AssignGroupCounts(orders)
	}

	now := s.clock.Now().UTC()
	for i := range orders {
		orders[i].PrepareForStorage(now)
		if err := orders[i].Validate(); err != nil {
			return 0, fmt.Errorf("row %d: %w", orders[i].OriginalRowIndex, err)
		}
	}

	if err := s.repo.SaveBatch(ctx, orders); err != nil {
		return 0, fmt.Errorf("failed to save orders: %w", err)
	}

	s.logger.InfoContext(ctx, "order batch uploaded", slog.Int("count", len(orders)))
	s.notify(ctx, fmt.Sprintf("📥 [업로드] %d건의 발주가 등록되었습니다.", len(orders)))

	return len(orders), nil
}

// ClearAll deletes every order line
func (s *OrderService) ClearAll(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to clear orders: %w", err)
	}
	s.logger.WarnContext(ctx, "all orders deleted", slog.Int64("count", n))
	return n, nil
}

// DeleteByOrderID deletes every line of one order; 0 when nothing matched
func (s *OrderService) DeleteByOrderID(ctx context.Context, orderID string) (int64, error) {
	n, err := s.repo.DeleteByOrderID(ctx, orderID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete order %s: %w", orderID, err)
	}
	if n == 0 {
		s.logger.DebugContext(ctx, "no lines matched order", slog.String("order_id", orderID))
		return 0, nil
	}
	s.logger.InfoContext(ctx, "order deleted",
		slog.String("order_id", orderID),
		slog.Int64("count", n))
	return n, nil
}

// ExportLines returns the lines of one order in spreadsheet order
func (s *OrderService) ExportLines(ctx context.Context, orderID, userEmail string) ([]domain.Order, error) {
	orders, err := s.repo.FindAll(ctx, domain.OrderFilter{OrderID: orderID})
	if err != nil {
		return nil, fmt.Errorf("failed to load order %s: %w", orderID, err)
	}
	if len(orders) == 0 {
		return nil, domain.ErrOrderNotFound
	}
	domain.SortByRowIndex(orders)

	s.markDownloaded(ctx, userEmail, orderID)
	s.notify(ctx, fmt.Sprintf("✅ [확인] %s님이 [%s] 완료 리스트를 확인했습니다.",
		domain.SenderName(userEmail), orderID))

	return orders, nil
}

// ExportRange groups the lines matching filter by order id
func (s *OrderService) ExportRange(ctx context.Context, filter domain.OrderFilter, userEmail string) (map[string][]domain.Order, error) {
	orders, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	if len(orders) == 0 {
		return nil, domain.ErrOrderNotFound
	}

	groups := domain.GroupByOrderID(orders)
	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	s.markDownloaded(ctx, userEmail, ids...)
	s.notify(ctx, fmt.Sprintf("📂 [일괄확인] %s님이 총 %d건의 완료 리스트를 다운로드했습니다.",
		domain.SenderName(userEmail), len(groups)))

	return groups, nil
}

func (s *OrderService) markDownloaded(ctx context.Context, userEmail string, orderIDs ...string) {
	if s.downloads == nil {
		return
	}
	if err := s.downloads.MarkDownloaded(ctx, userEmail, orderIDs...); err != nil {
		s.logger.WarnContext(ctx, "failed to record download",
			slog.String("user_email", userEmail),
			slog.String("error", err.Error()))
	}
}

func (s *OrderService) notify(ctx context.Context, text string) {
	if s.memos == nil {
		return
	}
	if _, err := s.memos.Send(ctx, text, "", true); err != nil {
		s.logger.WarnContext(ctx, "failed to post system memo", slog.String("error", err.Error()))
	}
}
