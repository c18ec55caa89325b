// internal/handlers/export.go
package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ammerola/picking-be/internal/adapters/spreadsheet"
	"github.com/ammerola/picking-be/internal/core/domain"
	"github.com/ammerola/picking-be/internal/core/ports"
	"github.com/ammerola/picking-be/internal/handlers/middleware"
)

// ExportHandler serves completed order workbooks
type ExportHandler struct {
	service ports.OrderService
	logger  *slog.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(service ports.OrderService, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "export")),
	}
}

// ExportOrder handles GET /api/v1/exports/orders/{orderID}
func (h *ExportHandler) ExportOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := strings.TrimSpace(r.PathValue("orderID"))
	if orderID == "" {
		respondError(w, h.logger, http.StatusBadRequest, "order_id is required")
		return
	}

	lines, err := h.service.ExportLines(ctx, orderID, middleware.UserEmail(ctx))
	if err != nil {
		h.respondExportError(w, r, err)
		return
	}

	data, err := spreadsheet.BuildWorkbook(orderID, lines)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to build workbook",
			slog.String("order_id", orderID),
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to build workbook")
		return
	}

	h.writeFile(w, domain.ExportFileName(orderID), spreadsheet.ContentTypeXLSX, data)
}

// ExportRange handles GET /api/v1/exports/range?from=&to=&search=
func (h *ExportHandler) ExportRange(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := parseOrderFilter(r)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}
	filter.Status = domain.StatusCompleted

	groups, err := h.service.ExportRange(ctx, filter, middleware.UserEmail(ctx))
	if err != nil {
		h.respondExportError(w, r, err)
		return
	}

	data, err := spreadsheet.BuildArchive(groups)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to build archive",
			slog.Int("orders", len(groups)),
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to build archive")
		return
	}

	h.logger.InfoContext(ctx, "range export built",
		slog.Int("orders", len(groups)),
		slog.Int("bytes", len(data)))

	h.writeFile(w, archiveName(filter), spreadsheet.ContentTypeZip, data)
}

func (h *ExportHandler) respondExportError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrOrderNotFound) {
		respondError(w, h.logger, http.StatusNotFound, "No completed orders to export")
		return
	}
	h.logger.ErrorContext(r.Context(), "failed to load export lines",
		slog.String("error", err.Error()))
	respondError(w, h.logger, http.StatusInternalServerError, "Failed to export orders")
}

func (h *ExportHandler) writeFile(w http.ResponseWriter, filename, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Warn("failed to write export", slog.String("error", err.Error()))
	}
}

func archiveName(filter domain.OrderFilter) string {
	day := func(t *time.Time) string {
		if t == nil {
			return "all"
		}
		return t.Format("20060102")
	}
	return fmt.Sprintf("completed_%s_%s.zip", day(filter.From), day(filter.To))
}
