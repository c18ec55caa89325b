package services_test

import (
	"context"
	"errors"
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

type memoMocks struct {
	repo        *mocks.MockMemoRepository
	marks       *mocks.MockReadMarkStore
	broadcaster *mocks.MockMemoBroadcaster
	cache       *mocks.MockCacheRepository
}

func newMemoService(t *testing.T, clock services.Clock) (*services.MemoService, memoMocks) {
	ctrl := gomock.NewController(t)
	m := memoMocks{
		repo:        mocks.NewMockMemoRepository(ctrl),
		marks:       mocks.NewMockReadMarkStore(ctrl),
		broadcaster: mocks.NewMockMemoBroadcaster(ctrl),
		cache:       mocks.NewMockCacheRepository(ctrl),
	}
	svc := services.NewMemoService(m.repo, m.marks, m.broadcaster, m.cache, clock, helpers.TestLogger())
	return svc, m
}

func TestMemoService_Send(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		email      string
		isSystem   bool
		setup      func(m memoMocks)
		wantSender string
		wantErr    error
	}{
		{
			name:  "user_memo_uses_email_local_part",
			text:  " 3번 선반 재고 부족 ",
			email: "kim@example.com",
			setup: func(m memoMocks) {
				m.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
				m.cache.EXPECT().Delete(gomock.Any(), "memos:recent").Return(nil)
				m.broadcaster.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantSender: "kim",
		},
		{
			name:     "system_memo",
			text:     "📥 [업로드] 3건의 발주가 등록되었습니다.",
			isSystem: true,
			setup: func(m memoMocks) {
				m.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
				m.cache.EXPECT().Delete(gomock.Any(), "memos:recent").Return(nil)
				m.broadcaster.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantSender: domain.SystemSender,
		},
		{
			name:  "publish_failure_is_not_fatal",
			text:  "hello",
			email: "lee@example.com",
			setup: func(m memoMocks) {
				m.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
				m.cache.EXPECT().Delete(gomock.Any(), "memos:recent").Return(errors.New("redis down"))
				m.broadcaster.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
			},
			wantSender: "lee",
		},
		{
			name:    "blank_text_rejected",
			text:    "   ",
			email:   "kim@example.com",
			setup:   func(memoMocks) {},
			wantErr: domain.ErrEmptyMemo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newFakeClock()
			svc, m := newMemoService(t, clock)
			tt.setup(m)

			memo, err := svc.Send(context.Background(), tt.text, tt.email, tt.isSystem)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSender, memo.Sender)
			assert.Equal(t, tt.isSystem, memo.IsSystem)
			assert.Equal(t, clock.Now(), memo.CreatedAt)
		})
	}
}

func TestMemoService_RecentReturnsOldestFirst(t *testing.T) {
	svc, m := newMemoService(t, newFakeClock())
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	newestFirst := []domain.Memo{
		{Text: "third", CreatedAt: base.Add(2 * time.Minute)},
		{Text: "second", CreatedAt: base.Add(time.Minute)},
		{Text: "first", CreatedAt: base},
	}
	m.repo.EXPECT().Recent(gomock.Any(), domain.RecentMemoLimit).Return(newestFirst, nil)
	m.cache.EXPECT().
		GetOrSet(gomock.Any(), "memos:recent", gomock.Any(), gomock.Any(), 30*time.Second).
		DoAndReturn(func(_ context.Context, _ string, dest any, fetch func() (any, error), _ time.Duration) error {
			v, err := fetch()
			if err != nil {
				return err
			}
			*dest.(*[]domain.Memo) = v.([]domain.Memo)
			return nil
		})

	memos, err := svc.Recent(context.Background())

	require.NoError(t, err)
	require.Len(t, memos, 3)
	assert.Equal(t, []string{"first", "second", "third"}, []string{memos[0].Text, memos[1].Text, memos[2].Text})
}

func TestMemoService_CountUnread(t *testing.T) {
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	stored := []domain.Memo{
		{Text: "c", CreatedAt: base.Add(2 * time.Hour)},
		{Text: "b", CreatedAt: base.Add(time.Hour)},
		{Text: "a", CreatedAt: base},
	}

	tests := []struct {
		name     string
		lastRead time.Time
		want     int
	}{
		{name: "never_read_counts_everything", lastRead: time.Time{}, want: 3},
		{name: "read_between_memos", lastRead: base.Add(30 * time.Minute), want: 2},
		{name: "read_after_all", lastRead: base.Add(3 * time.Hour), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockMemoRepository(ctrl)
			marks := mocks.NewMockReadMarkStore(ctrl)
			svc := services.NewMemoService(repo, marks, nil, nil, newFakeClock(), helpers.TestLogger())

			repo.EXPECT().Recent(gomock.Any(), domain.RecentMemoLimit).Return(append([]domain.Memo(nil), stored...), nil)
			marks.EXPECT().LastRead(gomock.Any(), "kim@example.com").Return(tt.lastRead, nil)

			n, err := svc.CountUnread(context.Background(), "kim@example.com")

			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestMemoService_MarkAsRead(t *testing.T) {
	clock := newFakeClock()
	svc, m := newMemoService(t, clock)
	m.marks.EXPECT().SetLastRead(gomock.Any(), "kim@example.com", clock.Now()).Return(nil)

	at, err := svc.MarkAsRead(context.Background(), "kim@example.com")

	require.NoError(t, err)
	assert.Equal(t, clock.Now(), at)
}

func TestMemoService_SubscribeWithoutBroadcaster(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := services.NewMemoService(mocks.NewMockMemoRepository(ctrl), mocks.NewMockReadMarkStore(ctrl), nil, nil, nil, helpers.TestLogger())

	_, err := svc.Subscribe(context.Background())

	assert.ErrorIs(t, err, services.ErrLiveUpdatesUnavailable)
}
