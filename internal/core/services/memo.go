// internal/core/services/memo.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/ammerola/picking-be/internal/core/domain"
	"github.com/ammerola/picking-be/internal/core/ports"
)

const (
	recentMemosCacheKey = "memos:recent"
	recentMemosCacheTTL = 30 * time.Second
)

var ErrLiveUpdatesUnavailable = errors.New("live memo updates are not configured")

// MemoService handles the shared team log
type MemoService struct {
	repo        ports.MemoRepository
	marks       ports.ReadMarkStore
	broadcaster ports.MemoBroadcaster
	cache       ports.CacheRepository
	clock       Clock
	logger      *slog.Logger
}

var _ ports.MemoService = (*MemoService)(nil)

// NewMemoService creates a memo service. broadcaster and cache may be nil.
func NewMemoService(repo ports.MemoRepository, marks ports.ReadMarkStore, broadcaster ports.MemoBroadcaster,
	cache ports.CacheRepository, clock Clock, logger *slog.Logger) *MemoService {
	if clock == nil {
		clock = RealClock()
	}
	return &MemoService{
		repo:        repo,
		marks:       marks,
		broadcaster: broadcaster,
		cache:       cache,
		clock:       clock,
		logger:      logger.With(slog.String("service", "memo")),
	}
}

// Send stores a memo and pushes it to live subscribers
func (s *MemoService) Send(ctx context.Context, text, userEmail string, isSystem bool) (*domain.Memo, error) {
	memo, err := domain.NewMemo(text, userEmail, isSystem, s.clock.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, memo); err != nil {
		return nil, fmt.Errorf("failed to save memo: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, recentMemosCacheKey); err != nil {
			s.logger.WarnContext(ctx, "failed to invalidate recent memos", slog.String("error", err.Error()))
		}
	}

	if s.broadcaster != nil {
		if err := s.broadcaster.Publish(ctx, memo); err != nil {
			s.logger.WarnContext(ctx, "failed to publish memo",
				slog.String("memo_id", memo.ID.String()),
				slog.String("error", err.Error()))
		}
	}

	s.logger.InfoContext(ctx, "memo sent",
		slog.String("sender", memo.Sender),
		slog.Bool("is_system", memo.IsSystem))

	return memo, nil
}

// Recent returns the latest memos, oldest first
func (s *MemoService) Recent(ctx context.Context) ([]domain.Memo, error) {
	fetch := func() (interface{}, error) {
		memos, err := s.repo.Recent(ctx, domain.RecentMemoLimit)
		if err != nil {
			return nil, err
		}
		slices.Reverse(memos)
		return memos, nil
	}

	if s.cache == nil {
		v, err := fetch()
		if err != nil {
			return nil, fmt.Errorf("failed to load memos: %w", err)
		}
		return v.([]domain.Memo), nil
	}

	var memos []domain.Memo
	if err := s.cache.GetOrSet(ctx, recentMemosCacheKey, &memos, fetch, recentMemosCacheTTL); err != nil {
		return nil, fmt.Errorf("failed to load memos: %w", err)
	}
	return memos, nil
}

// CountUnread counts recent memos newer than the user's last read mark
func (s *MemoService) CountUnread(ctx context.Context, userEmail string) (int, error) {
	memos, err := s.Recent(ctx)
	if err != nil {
		return 0, err
	}
	lastRead, err := s.marks.LastRead(ctx, userEmail)
	if err != nil {
		return 0, fmt.Errorf("failed to read last-read mark: %w", err)
	}
	return domain.CountUnread(memos, lastRead), nil
}

// MarkAsRead records now as the user's last read time
func (s *MemoService) MarkAsRead(ctx context.Context, userEmail string) (time.Time, error) {
	now := s.clock.Now().UTC()
	if err := s.marks.SetLastRead(ctx, userEmail, now); err != nil {
		return time.Time{}, fmt.Errorf("failed to store last-read mark: %w", err)
	}
	return now, nil
}

// Subscribe streams memos sent after the call
func (s *MemoService) Subscribe(ctx context.Context) (<-chan domain.Memo, error) {
	if s.broadcaster == nil {
		return nil, ErrLiveUpdatesUnavailable
	}
	return s.broadcaster.Subscribe(ctx)
}
