// internal/handlers/stock.go
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ammerola/picking-be/internal/core/domain"
	"github.com/ammerola/picking-be/internal/core/ports"
	"github.com/ammerola/picking-be/internal/pkg/logger"
)

// Messages returned to the scanner helper. The helper matches on them.
const (
	MsgBarcodeRequired = "Barcode is required"
	MsgMissingEnv      = "Server Configuration Error: Missing Environment Variables"
	MsgAuthFailed      = "Authentication Failed (Check Env Vars)"
	MsgNotFound        = "Product not found in BoxHero"
)

// StockHandler serves barcode stock lookups
type StockHandler struct {
	service ports.StockService
	logger  *slog.Logger
}

// NewStockHandler creates a new stock handler
func NewStockHandler(service ports.StockService, logger *slog.Logger) *StockHandler {
	return &StockHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "stock")),
	}
}

// Lookup handles GET /stock?barcode=
func (h *StockHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	barcode := r.URL.Query().Get("barcode")
	ctx := context.WithValue(r.Context(), logger.ContextKeyBarcode, strings.TrimSpace(barcode))

	status, body := StockResponse(h.service.Lookup(ctx, barcode))
	respondJSON(w, h.logger, status, body)
}

// LastSeen handles GET /api/v1/stock/{barcode}/last
func (h *StockHandler) LastSeen(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	barcode := r.PathValue("barcode")

	snap, ok, err := h.service.LastSeen(ctx, barcode)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to read stock snapshot",
			slog.String("barcode", barcode),
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to read stock snapshot")
		return
	}
	if !ok {
		respondError(w, h.logger, http.StatusNotFound, "No stock recorded for barcode")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, struct {
		domain.StockSnapshot
		BelowSafeStock bool `json:"below_safe_stock"`
	}{snap, snap.BelowSafeStock()})
}

// StockResponse maps a lookup outcome to its status code and JSON body.
// A found item is returned exactly as the catalog sent it.
func StockResponse(result *domain.LookupResult, err error) (int, interface{}) {
	if err == nil {
		return http.StatusOK, result.Item
	}

	var le *domain.LookupError
	if !errors.As(err, &le) {
		return http.StatusInternalServerError, ErrorResponse{Error: err.Error()}
	}

	switch le.Kind {
	case domain.LookupMissingInput:
		return http.StatusBadRequest, ErrorResponse{Error: MsgBarcodeRequired}
	case domain.LookupConfigurationError:
		return http.StatusInternalServerError, ErrorResponse{Error: MsgMissingEnv}
	case domain.LookupAuthenticationFailed:
		return http.StatusInternalServerError, ErrorResponse{Error: MsgAuthFailed}
	case domain.LookupNotFound:
		pages := le.ScannedPages
		return http.StatusNotFound, ErrorResponse{Error: MsgNotFound, ScannedPages: &pages}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: le.Error()}
	}
}
