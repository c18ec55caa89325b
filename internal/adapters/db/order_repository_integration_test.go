//go:build integration
// +build integration

package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/ammerola/picking-be/internal/adapters/db"
	"github.com/ammerola/picking-be/internal/core/domain"
	"github.com/ammerola/picking-be/internal/core/ports"
	"github.com/ammerola/picking-be/test/helpers"
)

type RepositorySuite struct {
	suite.Suite
	testDB *helpers.TestDB
	orders ports.OrderRepository
	memos  ports.MemoRepository
	ctx    context.Context
}

func (s *RepositorySuite) SetupSuite() {
	s.testDB = helpers.SetupTestDB(s.T())
	s.orders = db.NewOrderRepository(s.testDB.Database, helpers.TestLogger())
	s.memos = db.NewMemoRepository(s.testDB.Database, helpers.TestLogger())
	s.ctx = context.Background()
}

func (s *RepositorySuite) SetupTest() {
	helpers.TruncateAllTables(s.T(), s.testDB.PgxPool)
}

func (s *RepositorySuite) TestSaveBatchAndFindByID() {
	lines := helpers.NewTestOrderGroup("2024050109:30-Tokyo", 3)
	s.Require().NoError(s.orders.SaveBatch(s.ctx, lines))

	got, err := s.orders.FindByID(s.ctx, lines[1].ID)
	s.Require().NoError(err)
	s.Equal(lines[1].ProductName, got.ProductName)
	s.True(lines[1].Price.Equal(got.Price))
	s.Equal(3, got.TotalGroupCount)
	s.Nil(got.PickedQty)
	s.Nil(got.CompletedAt)
}

func (s *RepositorySuite) TestFindByIDMissing() {
	_, err := s.orders.FindByID(s.ctx, uuid.New())
	s.ErrorIs(err, domain.ErrOrderNotFound)
}

func (s *RepositorySuite) TestSaveBatchIsAtomic() {
	lines := helpers.NewTestOrderGroup("A-1", 2)
	lines[1].ID = lines[0].ID

	s.Error(s.orders.SaveBatch(s.ctx, lines))

	all, err := s.orders.FindAll(s.ctx, domain.OrderFilter{})
	s.Require().NoError(err)
	s.Empty(all)
}

func (s *RepositorySuite) TestFindAllFilters() {
	tokyo := helpers.NewTestOrderGroup("2024050109:30-Tokyo", 2)
	osaka := helpers.NewTestOrderGroup("2024050210:00-Osaka", 1)
	osaka[0].ProductName = "Matcha 100% Powder"
	osaka[0].CreatedAt = time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
	s.Require().NoError(s.orders.SaveBatch(s.ctx, append(tokyo, osaka...)))

	day := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter domain.OrderFilter
		want   int
	}{
		{name: "everything", filter: domain.OrderFilter{}, want: 3},
		{name: "by_order_id", filter: domain.OrderFilter{OrderID: tokyo[0].OrderID}, want: 2},
		{name: "search_is_case_insensitive", filter: domain.OrderFilter{Search: "osaka"}, want: 1},
		{name: "search_escapes_wildcards", filter: domain.OrderFilter{Search: "100%"}, want: 1},
		{name: "search_jan_code", filter: domain.OrderFilter{Search: tokyo[1].JANCode}, want: 1},
		{name: "completed_only", filter: domain.OrderFilter{Status: domain.StatusCompleted}, want: 0},
		{name: "from_day", filter: domain.OrderFilter{From: &day}, want: 1},
		{name: "to_day", filter: domain.OrderFilter{To: &day}, want: 3},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			got, err := s.orders.FindAll(s.ctx, tt.filter)
			s.Require().NoError(err)
			s.Len(got, tt.want)
		})
	}
}

func (s *RepositorySuite) TestCompleteAndRevert() {
	lines := helpers.NewTestOrderGroup("A-1", 2)
	s.Require().NoError(s.orders.SaveBatch(s.ctx, lines))

	at := time.Date(2024, 5, 3, 12, 0, 0, 0, time.UTC)
	s.Require().NoError(s.orders.MarkCompleted(s.ctx, lines[0].ID, at, "kim@example.com"))

	pending, err := s.orders.CountPendingInGroup(s.ctx, "A-1")
	s.Require().NoError(err)
	s.Equal(1, pending)

	got, err := s.orders.FindByID(s.ctx, lines[0].ID)
	s.Require().NoError(err)
	s.True(got.IsCompleted())
	s.Require().NotNil(got.CompletedAt)
	s.True(at.Equal(*got.CompletedAt))
	s.Require().NotNil(got.CompletedBy)
	s.Equal("kim@example.com", *got.CompletedBy)

	s.Require().NoError(s.orders.MarkPending(s.ctx, lines[0].ID))
	got, err = s.orders.FindByID(s.ctx, lines[0].ID)
	s.Require().NoError(err)
	s.Equal(domain.StatusPending, got.Status)
	s.Nil(got.CompletedAt)
	s.Nil(got.CompletedBy)

	s.ErrorIs(s.orders.MarkCompleted(s.ctx, uuid.New(), at, "kim@example.com"), domain.ErrOrderNotFound)
}

func (s *RepositorySuite) TestUpdatePickedQty() {
	line := helpers.NewTestOrder()
	s.Require().NoError(s.orders.SaveBatch(s.ctx, []domain.Order{line}))

	s.Require().NoError(s.orders.UpdatePickedQty(s.ctx, line.ID, 7))
	got, err := s.orders.FindByID(s.ctx, line.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got.PickedQty)
	s.Equal(7, *got.PickedQty)

	s.ErrorIs(s.orders.UpdatePickedQty(s.ctx, uuid.New(), 1), domain.ErrOrderNotFound)
}

func (s *RepositorySuite) TestDeletes() {
	s.Require().NoError(s.orders.SaveBatch(s.ctx, append(
		helpers.NewTestOrderGroup("A-1", 2),
		helpers.NewTestOrderGroup("B-2", 3)...)))

	n, err := s.orders.DeleteByOrderID(s.ctx, "A-1")
	s.Require().NoError(err)
	s.Equal(int64(2), n)

	n, err = s.orders.DeleteAll(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(3), n)
}

func (s *RepositorySuite) TestMemosRecentNewestFirst() {
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	for i, text := range []string{"first", "second", "third"} {
		m, err := domain.NewMemo(text, "kim@example.com", false, base.Add(time.Duration(i)*time.Minute))
		s.Require().NoError(err)
		s.Require().NoError(s.memos.Save(s.ctx, m))
	}

	got, err := s.memos.Recent(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal("third", got[0].Text)
	s.Equal("second", got[1].Text)
	s.Equal("kim", got[0].Sender)
}

func TestRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RepositorySuite))
}
