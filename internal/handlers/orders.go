// internal/handlers/orders.go
package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/picking-be/internal/core/domain"
	"github.com/ammerola/picking-be/internal/core/ports"
	"github.com/ammerola/picking-be/internal/handlers/middleware"
)

// OrderHandler handles the picking workflow endpoints
type OrderHandler struct {
	service ports.OrderService
	logger  *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(service ports.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "orders")),
	}
}

// OrderListResponse is returned by ListOrders
type OrderListResponse struct {
	Orders []domain.Order `json:"orders"`
	Count  int            `json:"count"`
}

// UpdatePickedQtyRequest is the body of PATCH /api/v1/orders/{id}/picked
type UpdatePickedQtyRequest struct {
	PickedQty *int `json:"picked_qty"`
}

// ListOrders handles GET /api/v1/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := parseOrderFilter(r)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	orders, err := h.service.ListOrders(ctx, filter, middleware.UserEmail(ctx))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list orders",
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to list orders")
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}

	respondJSON(w, h.logger, http.StatusOK, OrderListResponse{Orders: orders, Count: len(orders)})
}

// UpdatePickedQty handles PATCH /api/v1/orders/{id}/picked
func (h *OrderHandler) UpdatePickedQty(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.lineID(w, r)
	if !ok {
		return
	}

	var req UpdatePickedQtyRequest
	if err := decodeJSON(w, r, &req); err != nil || req.PickedQty == nil {
		respondError(w, h.logger, http.StatusBadRequest, "picked_qty is required")
		return
	}

	if err := h.service.UpdatePickedQty(ctx, id, *req.PickedQty); err != nil {
		h.respondServiceError(w, r, "update picked qty", err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"id":         id,
		"picked_qty": *req.PickedQty,
	})
}

// CompleteOrder handles POST /api/v1/orders/{id}/complete
func (h *OrderHandler) CompleteOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.lineID(w, r)
	if !ok {
		return
	}

	order, err := h.service.CompleteOrder(ctx, id, middleware.UserEmail(ctx))
	if err != nil {
		h.respondServiceError(w, r, "complete order", err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, order)
}

// RevertOrder handles POST /api/v1/orders/{id}/revert
func (h *OrderHandler) RevertOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.lineID(w, r)
	if !ok {
		return
	}

	if err := h.service.RevertOrder(ctx, id); err != nil {
		h.respondServiceError(w, r, "revert order", err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"id":     id,
		"status": domain.StatusPending,
	})
}

// DeleteOrderGroup handles DELETE /api/v1/orders/groups/{orderID}
func (h *OrderHandler) DeleteOrderGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID := strings.TrimSpace(r.PathValue("orderID"))
	if orderID == "" {
		respondError(w, h.logger, http.StatusBadRequest, "order_id is required")
		return
	}

	n, err := h.service.DeleteByOrderID(ctx, orderID)
	if err != nil {
		h.respondServiceError(w, r, "delete order", err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"order_id": orderID,
		"deleted":  n,
	})
}

// ClearAll handles DELETE /api/v1/orders
func (h *OrderHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	n, err := h.service.ClearAll(ctx)
	if err != nil {
		h.respondServiceError(w, r, "clear orders", err)
		return
	}

	h.logger.WarnContext(ctx, "order table cleared",
		slog.String("user_email", middleware.UserEmail(ctx)),
		slog.Int64("deleted", n))

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{"deleted": n})
}

func (h *OrderHandler) lineID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid order line ID format")
		return uuid.Nil, false
	}
	return id, true
}

func (h *OrderHandler) respondServiceError(w http.ResponseWriter, r *http.Request, action string, err error) {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		respondError(w, h.logger, http.StatusNotFound, "Order not found")
	case errors.Is(err, domain.ErrInvalidOrder):
		respondError(w, h.logger, http.StatusBadRequest, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "failed to "+action,
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to "+action)
	}
}

// parseOrderFilter reads status, order_id, search, from and to (YYYY-MM-DD)
func parseOrderFilter(r *http.Request) (domain.OrderFilter, error) {
	q := r.URL.Query()
	filter := domain.OrderFilter{
		OrderID: strings.TrimSpace(q.Get("order_id")),
		Search:  strings.TrimSpace(q.Get("search")),
	}

	switch strings.ToLower(q.Get("status")) {
	case "":
	case "pending":
		filter.Status = domain.StatusPending
	case "completed":
		filter.Status = domain.StatusCompleted
	default:
		return filter, fmt.Errorf("invalid status %q", q.Get("status"))
	}

	for name, dest := range map[string]**time.Time{"from": &filter.From, "to": &filter.To} {
		raw := strings.TrimSpace(q.Get(name))
		if raw == "" {
			continue
		}
		day, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return filter, fmt.Errorf("invalid %s date %q, expected YYYY-MM-DD", name, raw)
		}
		*dest = &day
	}

	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return filter, errors.New("to date is before from date")
	}
	return filter, nil
}
