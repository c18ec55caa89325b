package handlers_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/picking-be/internal/core/domain"
	"github.com/ammerola/picking-be/internal/handlers"
	"github.com/ammerola/picking-be/test/helpers"
	"github.com/ammerola/picking-be/test/mocks"
)

func orderRouter(t *testing.T) (*handlers.Router, *mocks.MockOrderService) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockOrderService(ctrl)
	return &handlers.Router{Orders: handlers.NewOrderHandler(svc, helpers.TestLogger())}, svc
}

func TestOrderHandler_ListOrders(t *testing.T) {
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		query      string
		wantFilter *domain.OrderFilter
		wantStatus int
	}{
		{
			name:       "no_filter",
			query:      "",
			wantFilter: &domain.OrderFilter{},
			wantStatus: http.StatusOK,
		},
		{
			name:       "completed_tab_with_range",
			query:      "?status=completed&search=tokyo&from=2024-05-01&to=2024-05-03",
			wantFilter: &domain.OrderFilter{Status: domain.StatusCompleted, Search: "tokyo", From: &from, To: &to},
			wantStatus: http.StatusOK,
		},
		{
			name:       "pending_tab",
			query:      "?status=Pending",
			wantFilter: &domain.OrderFilter{Status: domain.StatusPending},
			wantStatus: http.StatusOK,
		},
		{name: "bad_status", query: "?status=shipped", wantStatus: http.StatusBadRequest},
		{name: "bad_date", query: "?from=05/01/2024", wantStatus: http.StatusBadRequest},
		{name: "inverted_range", query: "?from=2024-05-03&to=2024-05-01", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, svc := orderRouter(t)
			if tt.wantFilter != nil {
				svc.EXPECT().ListOrders(gomock.Any(), *tt.wantFilter, "kim@example.com").Return([]domain.Order{helpers.NewTestOrder()}, nil)
			}

			w := serve(t, rt, newRequest(http.MethodGet, "/api/v1/orders"+tt.query, nil))

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				var resp handlers.OrderListResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, 1, resp.Count)
			}
		})
	}
}

func TestOrderHandler_ListOrdersEmpty(t *testing.T) {
	rt, svc := orderRouter(t)
	svc.EXPECT().ListOrders(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	w := serve(t, rt, newRequest(http.MethodGet, "/api/v1/orders", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"orders":[],"count":0}`, w.Body.String())
}

func TestOrderHandler_UpdatePickedQty(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		path       string
		body       string
		setup      func(*mocks.MockOrderService)
		wantStatus int
	}{
		{
			name: "updates",
			path: id.String(),
			body: `{"picked_qty":3}`,
			setup: func(m *mocks.MockOrderService) {
				m.EXPECT().UpdatePickedQty(gomock.Any(), id, 3).Return(nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "negative_rejected_by_service",
			path: id.String(),
			body: `{"picked_qty":-1}`,
			setup: func(m *mocks.MockOrderService) {
				m.EXPECT().UpdatePickedQty(gomock.Any(), id, -1).
					Return(fmt.Errorf("%w: picked_qty cannot be negative", domain.ErrInvalidOrder))
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unknown_line",
			path: id.String(),
			body: `{"picked_qty":1}`,
			setup: func(m *mocks.MockOrderService) {
				m.EXPECT().UpdatePickedQty(gomock.Any(), id, 1).Return(domain.ErrOrderNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{name: "missing_qty", path: id.String(), body: `{}`, setup: func(*mocks.MockOrderService) {}, wantStatus: http.StatusBadRequest},
		{name: "bad_id", path: "nope", body: `{"picked_qty":1}`, setup: func(*mocks.MockOrderService) {}, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, svc := orderRouter(t)
			tt.setup(svc)

			w := serve(t, rt, newRequest(http.MethodPatch, "/api/v1/orders/"+tt.path+"/picked", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestOrderHandler_CompleteUsesActingUser(t *testing.T) {
	rt, svc := orderRouter(t)
	order := helpers.NewTestOrder()
	completed := order
	completed.Status = domain.StatusCompleted

	svc.EXPECT().CompleteOrder(gomock.Any(), order.ID, "kim@example.com").Return(&completed, nil)

	w := serve(t, rt, newRequest(http.MethodPost, "/api/v1/orders/"+order.ID.String()+"/complete", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var got domain.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, domain.StatusCompleted, got.Status)
}

func TestOrderHandler_Revert(t *testing.T) {
	rt, svc := orderRouter(t)
	id := uuid.New()
	svc.EXPECT().RevertOrder(gomock.Any(), id).Return(nil)

	w := serve(t, rt, newRequest(http.MethodPost, "/api/v1/orders/"+id.String()+"/revert", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"Pending"`)
}

func TestOrderHandler_DeleteOrderGroup(t *testing.T) {
	rt, svc := orderRouter(t)
	svc.EXPECT().DeleteByOrderID(gomock.Any(), "2024050109:30-Tokyo").Return(int64(4), nil)
	svc.EXPECT().DeleteByOrderID(gomock.Any(), "missing").Return(int64(0), nil)

	w := serve(t, rt, newRequest(http.MethodDelete, "/api/v1/orders/groups/2024050109:30-Tokyo", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"order_id":"2024050109:30-Tokyo","deleted":4}`, w.Body.String())

	w = serve(t, rt, newRequest(http.MethodDelete, "/api/v1/orders/groups/missing", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"order_id":"missing","deleted":0}`, w.Body.String())
}

func TestOrderHandler_ClearAll(t *testing.T) {
	rt, svc := orderRouter(t)
	svc.EXPECT().ClearAll(gomock.Any()).Return(int64(9), nil)
	svc.EXPECT().ClearAll(gomock.Any()).Return(int64(0), errors.New("conn reset"))

	w := serve(t, rt, newRequest(http.MethodDelete, "/api/v1/orders", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":9}`, w.Body.String())

	w = serve(t, rt, newRequest(http.MethodDelete, "/api/v1/orders", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
