// internal/handlers/memos.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ammerola/picking-be/internal/core/domain"
	"github.com/ammerola/picking-be/internal/core/ports"
	"github.com/ammerola/picking-be/internal/core/services"
	"github.com/ammerola/picking-be/internal/handlers/middleware"
)

// streamWriteWindow is how long one SSE write may block before the client is dropped
const streamWriteWindow = 30 * time.Second

// MemoHandler serves the shared team log
type MemoHandler struct {
	service   ports.MemoService
	keepAlive time.Duration
	logger    *slog.Logger
}

// NewMemoHandler creates a new memo handler
func NewMemoHandler(service ports.MemoService, logger *slog.Logger) *MemoHandler {
	return &MemoHandler{
		service:   service,
		keepAlive: 25 * time.Second,
		logger:    logger.With(slog.String("handler", "memos")),
	}
}

// SendMemoRequest is the body of POST /api/v1/memos
type SendMemoRequest struct {
	Text string `json:"text"`
}

// Recent handles GET /api/v1/memos
func (h *MemoHandler) Recent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	memos, err := h.service.Recent(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load memos", slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to load memos")
		return
	}
	if memos == nil {
		memos = []domain.Memo{}
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{"memos": memos})
}

// Send handles POST /api/v1/memos
func (h *MemoHandler) Send(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SendMemoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	memo, err := h.service.Send(ctx, req.Text, middleware.UserEmail(ctx), false)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyMemo) {
			respondError(w, h.logger, http.StatusBadRequest, "Memo text is required")
			return
		}
		h.logger.ErrorContext(ctx, "failed to send memo", slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to send memo")
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, memo)
}

// Unread handles GET /api/v1/memos/unread
func (h *MemoHandler) Unread(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	n, err := h.service.CountUnread(ctx, middleware.UserEmail(ctx))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to count unread memos", slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to count unread memos")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]int{"unread": n})
}

// MarkRead handles POST /api/v1/memos/read
func (h *MemoHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	at, err := h.service.MarkAsRead(ctx, middleware.UserEmail(ctx))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to mark memos read", slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to mark memos read")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]time.Time{"last_read_at": at})
}

// Stream handles GET /api/v1/memos/stream as server-sent events
func (h *MemoHandler) Stream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, h.logger, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	memos, err := h.service.Subscribe(ctx)
	if err != nil {
		if errors.Is(err, services.ErrLiveUpdatesUnavailable) {
			respondError(w, h.logger, http.StatusServiceUnavailable, "Live updates unavailable")
			return
		}
		h.logger.ErrorContext(ctx, "failed to subscribe to memos", slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to subscribe to memos")
		return
	}

	// per-write deadlines replace the server's WriteTimeout
	rc := http.NewResponseController(w)
	extend := func() {
		if err := rc.SetWriteDeadline(time.Now().Add(streamWriteWindow)); err != nil && !errors.Is(err, http.ErrNotSupported) {
			h.logger.DebugContext(ctx, "failed to extend stream write deadline", slog.String("error", err.Error()))
		}
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	extend()
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			extend()
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case memo, ok := <-memos:
			if !ok {
				return
			}
			data, err := json.Marshal(memo)
			if err != nil {
				continue
			}
			extend()
			fmt.Fprintf(w, "id: %s\nevent: memo\ndata: %s\n\n", memo.ID, data)
			flusher.Flush()
		}
	}
}
