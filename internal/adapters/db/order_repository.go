// internal/adapters/db/order_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/picking-be/internal/core/domain"
	"github.com/ammerola/picking-be/internal/core/ports"
)

var orderColumns = []string{
	"id", "order_id", "jan_code", "product_name", "brand", "price", "lot_qty",
	"ordered_qty", "price_type", "client_remark", "remark", "status", "created_at",
	"original_row_index", "total_group_count", "picked_qty", "completed_at", "completed_by",
}

const insertOrderSQL = `
	INSERT INTO orders (
		id, order_id, jan_code, product_name, brand, price, lot_qty,
		ordered_qty, price_type, client_remark, remark, status, created_at,
		original_row_index, total_group_count, picked_qty, completed_at, completed_by
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9,
		$10, $11, $12, $13, $14, $15, $16, $17, $18
	)`

// orderRepository implements ports.OrderRepository
type orderRepository struct {
	db     ports.Database
	psql   squirrel.StatementBuilderType
	logger *slog.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db ports.Database, logger *slog.Logger) ports.OrderRepository {
	return &orderRepository{
		db:     db,
		psql:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		logger: logger.With(slog.String("repository", "order")),
	}
}

// SaveBatch inserts all lines in one transaction
func (r *orderRepository) SaveBatch(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	return r.db.Transaction(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for i := range orders {
			o := &orders[i]
			batch.Queue(insertOrderSQL,
				o.ID, o.OrderID, o.JANCode, o.ProductName, o.Brand, o.Price, o.LotQty,
				o.OrderedQty, o.PriceType, o.ClientRemark, o.Remark, string(o.Status), o.CreatedAt,
				o.OriginalRowIndex, o.TotalGroupCount, o.PickedQty, o.CompletedAt, o.CompletedBy,
			)
		}

		br := tx.SendBatch(ctx, batch)
		for i := range orders {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("failed to insert row %d: %w", orders[i].OriginalRowIndex, err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("failed to close batch: %w", err)
		}

		r.logger.DebugContext(ctx, "order batch inserted", slog.Int("count", len(orders)))
		return nil
	})
}

// FindByID returns domain.ErrOrderNotFound when no line has id
func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query, args, err := r.psql.Select(orderColumns...).From("orders").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	order, err := scanOrder(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return order, nil
}

// FindAll lists lines matching filter ordered by order id then sheet row
func (r *orderRepository) FindAll(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	qb := r.psql.Select(orderColumns...).From("orders")

	if filter.Status != "" {
		qb = qb.Where(squirrel.Eq{"status": string(filter.Status)})
	}
	if filter.OrderID != "" {
		qb = qb.Where(squirrel.Eq{"order_id": filter.OrderID})
	}
	if kw := strings.TrimSpace(filter.Search); kw != "" {
		pattern := "%" + escapeLike(kw) + "%"
		qb = qb.Where(squirrel.Or{
			squirrel.ILike{"order_id": pattern},
			squirrel.ILike{"product_name": pattern},
			squirrel.ILike{"jan_code": pattern},
		})
	}
	if filter.From != nil {
		qb = qb.Where("(COALESCE(completed_at, created_at) AT TIME ZONE 'UTC')::date >= ?::date", dayString(*filter.From))
	}
	if filter.To != nil {
		qb = qb.Where("(COALESCE(completed_at, created_at) AT TIME ZONE 'UTC')::date <= ?::date", dayString(*filter.To))
	}

	query, args, err := qb.OrderBy("order_id ASC", "original_row_index ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) UpdatePickedQty(ctx context.Context, id uuid.UUID, qty int) error {
	return r.execOne(ctx, r.psql.Update("orders").Set("picked_qty", qty).Where(squirrel.Eq{"id": id}))
}

func (r *orderRepository) MarkCompleted(ctx context.Context, id uuid.UUID, at time.Time, by string) error {
	return r.execOne(ctx, r.psql.Update("orders").
		Set("status", string(domain.StatusCompleted)).
		Set("completed_at", at).
		Set("completed_by", by).
		Where(squirrel.Eq{"id": id}))
}

// MarkPending returns a line to the pending tab
func (r *orderRepository) MarkPending(ctx context.Context, id uuid.UUID) error {
	return r.execOne(ctx, r.psql.Update("orders").
		Set("status", string(domain.StatusPending)).
		Set("completed_at", nil).
		Set("completed_by", nil).
		Where(squirrel.Eq{"id": id}))
}

func (r *orderRepository) CountPendingInGroup(ctx context.Context, orderID string) (int, error) {
	query, args, err := r.psql.Select("COUNT(*)").From("orders").
		Where(squirrel.Eq{"order_id": orderID}).
		Where(squirrel.NotEq{"status": string(domain.StatusCompleted)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	var n int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count pending lines: %w", err)
	}
	return n, nil
}

func (r *orderRepository) DeleteByOrderID(ctx context.Context, orderID string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM orders WHERE order_id = $1`, orderID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete order: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *orderRepository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM orders`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete orders: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *orderRepository) execOne(ctx context.Context, qb squirrel.UpdateBuilder) error {
	query, args, err := qb.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o      domain.Order
		status string
	)
	err := row.Scan(
		&o.ID, &o.OrderID, &o.JANCode, &o.ProductName, &o.Brand, &o.Price, &o.LotQty,
		&o.OrderedQty, &o.PriceType, &o.ClientRemark, &o.Remark, &status, &o.CreatedAt,
		&o.OriginalRowIndex, &o.TotalGroupCount, &o.PickedQty, &o.CompletedAt, &o.CompletedBy,
	)
	if err != nil {
		return nil, err
	}
	o.Status = domain.OrderStatus(status)
	return &o, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func dayString(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}
