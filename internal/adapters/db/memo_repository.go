// internal/adapters/db/memo_repository.go
package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"

	"github.com/ammerola/picking-be/internal/core/domain"
	"github.com/ammerola/picking-be/internal/core/ports"
)

// memoRepository implements ports.MemoRepository
type memoRepository struct {
	db     ports.Database
	psql   squirrel.StatementBuilderType
	logger *slog.Logger
}

// NewMemoRepository creates a new memo repository
func NewMemoRepository(db ports.Database, logger *slog.Logger) ports.MemoRepository {
	return &memoRepository{
		db:     db,
		psql:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		logger: logger.With(slog.String("repository", "memo")),
	}
}

func (r *memoRepository) Save(ctx context.Context, memo *domain.Memo) error {
	query, args, err := r.psql.Insert("memos").
		Columns("id", "text", "sender", "is_system", "created_at").
		Values(memo.ID, memo.Text, memo.Sender, memo.IsSystem, memo.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save memo: %w", err)
	}
	return nil
}

// Recent returns up to limit memos, newest first
func (r *memoRepository) Recent(ctx context.Context, limit int) ([]domain.Memo, error) {
	query, args, err := r.psql.Select("id", "text", "sender", "is_system", "created_at").
		From("memos").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query memos: %w", err)
	}
	defer rows.Close()

	memos := make([]domain.Memo, 0, limit)
	for rows.Next() {
		var m domain.Memo
		if err := rows.Scan(&m.ID, &m.Text, &m.Sender, &m.IsSystem, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan memo: %w", err)
		}
		memos = append(memos, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return memos, nil
}
