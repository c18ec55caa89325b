package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/picking-be/internal/core/domain"
)

func TestOrder_Validate(t *testing.T) {
	negative := -1

	tests := []struct {
		name      string
		order     *domain.Order
		wantError bool
		errorMsg  string
	}{
		{
			name:  "valid_line_defaults_status",
			order: &domain.Order{OrderID: "20260301-0930-Acme", OrderedQty: 3, Price: decimal.NewFromInt(1200)},
		},
		{
			name:      "missing_order_id",
			order:     &domain.Order{OrderedQty: 1},
			wantError: true,
			errorMsg:  "order_id is required",
		},
		{
			name:      "negative_price",
			order:     &domain.Order{OrderID: "x-y", Price: decimal.NewFromInt(-5)},
			wantError: true,
			errorMsg:  "price cannot be negative",
		},
		{
			name:      "negative_picked_qty",
			order:     &domain.Order{OrderID: "x-y", PickedQty: &negative},
			wantError: true,
			errorMsg:  "picked_qty cannot be negative",
		},
		{
			name:      "unknown_status",
			order:     &domain.Order{OrderID: "x-y", Status: "Shipped"},
			wantError: true,
			errorMsg:  "unknown status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.order.Validate()
			if tt.wantError {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidOrder)
				assert.Contains(t, err.Error(), tt.errorMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.StatusPending, tt.order.Status)
		})
	}
}

func TestOrder_PrepareForStorage(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	o := &domain.Order{OrderID: "a-b"}
	o.PrepareForStorage(now)

	assert.NotEqual(t, uuid.Nil, o.ID)
	assert.Equal(t, now, o.CreatedAt)
	assert.Equal(t, "1", o.LotQty)
	assert.Equal(t, domain.StatusPending, o.Status)
}

func TestOrderIDParts(t *testing.T) {
	tests := []struct {
		name       string
		orderID    string
		number     string
		exportName string
		notifyName string
		fileName   string
	}{
		{
			name:       "date_time_client",
			orderID:    "202603010930-Acme",
			number:     "202603010930",
			exportName: "Acme",
			notifyName: "Acme",
			fileName:   "202603010930_Acme.xlsx",
		},
		{
			name:       "client_with_dash",
			orderID:    "202603010930-Kim-Store",
			number:     "202603010930",
			exportName: "Kim-Store",
			notifyName: "Store",
			fileName:   "202603010930_Kim-Store.xlsx",
		},
		{
			name:       "no_client_part",
			orderID:    "202603010930",
			number:     "202603010930",
			exportName: domain.DefaultClientName,
			notifyName: "202603010930",
			fileName:   "202603010930_" + domain.DefaultClientName + ".xlsx",
		},
		{
			name:       "unsafe_characters_replaced",
			orderID:    "2026/03/01-A:B*C",
			number:     "2026/03/01",
			exportName: "A:B*C",
			notifyName: "A:B*C",
			fileName:   "2026_03_01_A_B_C.xlsx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.number, domain.OrderNumber(tt.orderID))
			assert.Equal(t, tt.exportName, domain.ExportClientName(tt.orderID))
			assert.Equal(t, tt.notifyName, domain.NotifyClientName(tt.orderID))
			assert.Equal(t, tt.fileName, domain.ExportFileName(tt.orderID))
		})
	}
}

func TestAssignGroupCounts(t *testing.T) {
	orders := []domain.Order{
		{OrderID: domain.BuildOrderID("20260301", "0930", "Acme")},
		{OrderID: domain.BuildOrderID("20260301", "0930", "Acme")},
		{OrderID: domain.BuildOrderID("20260301", "1000", "Beta")},
	}
	domain.AssignGroupCounts(orders)

	assert.Equal(t, "202603010930-Acme", orders[0].OrderID)
	assert.Equal(t, 2, orders[0].TotalGroupCount)
	assert.Equal(t, 2, orders[1].TotalGroupCount)
	assert.Equal(t, 1, orders[2].TotalGroupCount)
}

func TestOrder_EffectivePickedQty(t *testing.T) {
	o := &domain.Order{OrderedQty: 6}
	assert.Equal(t, 6, o.EffectivePickedQty())

	picked := 0
	o.PickedQty = &picked
	assert.Equal(t, 0, o.EffectivePickedQty())
}

func TestOrderFilter_Matches(t *testing.T) {
	created := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	completed := time.Date(2026, 3, 4, 17, 30, 0, 0, time.UTC)
	from := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	done := &domain.Order{
		OrderID:     "202603010800-Acme",
		ProductName: "Matcha Latte",
		JANCode:     "4901234567890",
		Status:      domain.StatusCompleted,
		CreatedAt:   created,
		CompletedAt: &completed,
	}
	pending := &domain.Order{OrderID: "202603010800-Acme", Status: domain.StatusPending, CreatedAt: created}

	tests := []struct {
		name     string
		filter   domain.OrderFilter
		order    *domain.Order
		expected bool
	}{
		{name: "status_mismatch", filter: domain.OrderFilter{Status: domain.StatusCompleted}, order: pending, expected: false},
		{name: "search_product_case_insensitive", filter: domain.OrderFilter{Search: "MATCHA"}, order: done, expected: true},
		{name: "search_jan_code", filter: domain.OrderFilter{Search: "4567"}, order: done, expected: true},
		{name: "search_miss", filter: domain.OrderFilter{Search: "oolong"}, order: done, expected: false},
		{name: "completed_date_inside_range", filter: domain.OrderFilter{From: &from, To: &to}, order: done, expected: true},
		{name: "created_date_used_when_not_completed", filter: domain.OrderFilter{From: &from, To: &to}, order: pending, expected: false},
		{name: "order_id_exact", filter: domain.OrderFilter{OrderID: "202603010800-Acme"}, order: pending, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.filter.Matches(tt.order))
		})
	}
}
