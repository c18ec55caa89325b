// internal/handlers/import.go
package handlers

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	redis_a "github.com/ammerola/picking-be/internal/adapters/redis_adapter"
	"github.com/ammerola/picking-be/internal/adapters/spreadsheet"
	"github.com/ammerola/picking-be/internal/core/ports"
	"github.com/ammerola/picking-be/internal/handlers/middleware"
	"github.com/ammerola/picking-be/internal/workers"
)

// duplicateWindow is how long an identical upload is refused
const duplicateWindow = 10 * time.Minute

// TaskEnqueuer is satisfied by *asynq.Client
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// TaskInspector is satisfied by *asynq.Inspector
type TaskInspector interface {
	GetTaskInfo(queue, id string) (*asynq.TaskInfo, error)
}

// ImportHandler accepts order spreadsheets and queues them for the worker
type ImportHandler struct {
	storage     ports.FileStorage
	cache       ports.CacheRepository
	queue       TaskEnqueuer
	inspector   TaskInspector
	prefix      string
	maxFileSize int64
	logger      *slog.Logger
}

// NewImportHandler creates a new import handler. cache and inspector may be nil.
func NewImportHandler(storage ports.FileStorage, cache ports.CacheRepository, queue TaskEnqueuer,
	inspector TaskInspector, prefix string, maxFileSize int64, logger *slog.Logger) *ImportHandler {
	return &ImportHandler{
		storage:     storage,
		cache:       cache,
		queue:       queue,
		inspector:   inspector,
		prefix:      prefix,
		maxFileSize: maxFileSize,
		logger:      logger.With(slog.String("handler", "import")),
	}
}

// ImportResponse is returned when an upload is queued
type ImportResponse struct {
	JobID   string `json:"job_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ImportOrders handles POST /api/v1/orders/import
func (h *ImportHandler) ImportOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+1<<20)
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".xlsx") {
		respondError(w, h.logger, http.StatusBadRequest, "Only .xlsx files are allowed")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Failed to read upload")
		return
	}
	if int64(len(data)) > h.maxFileSize {
		respondError(w, h.logger, http.StatusRequestEntityTooLarge, "File is too large")
		return
	}

	jobID := uuid.New().String()
	sum := sha256.Sum256(data)
	dedupeKey := redis_a.BuildKey(redis_a.PrefixImport, hex.EncodeToString(sum[:]))

	if h.cache != nil {
		fresh, err := h.cache.SetNX(ctx, dedupeKey, jobID, duplicateWindow)
		if err != nil {
			h.logger.WarnContext(ctx, "duplicate upload check unavailable",
				slog.String("error", err.Error()))
		} else if !fresh {
			respondError(w, h.logger, http.StatusConflict, "This file was already uploaded")
			return
		}
	}

	key := path.Join(h.prefix, jobID+".xlsx")
	if _, err := h.storage.Upload(ctx, key, bytes.NewReader(data), spreadsheet.ContentTypeXLSX); err != nil {
		h.release(ctx, dedupeKey)
		h.logger.ErrorContext(ctx, "failed to store upload",
			slog.String("key", key),
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to save upload")
		return
	}

	task, err := workers.NewOrderImportTask(workers.OrderImportPayload{
		JobID:      jobID,
		StorageKey: key,
		FileName:   header.Filename,
		UploadedBy: middleware.UserEmail(ctx),
	})
	if err == nil {
		_, err = h.queue.EnqueueContext(ctx, task)
	}
	if err != nil {
		h.release(ctx, dedupeKey)
		if delErr := h.storage.Delete(ctx, key); delErr != nil {
			h.logger.WarnContext(ctx, "failed to remove orphaned upload",
				slog.String("key", key),
				slog.String("error", delErr.Error()))
		}
		h.logger.ErrorContext(ctx, "failed to enqueue import",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to queue import job")
		return
	}

	h.logger.InfoContext(ctx, "order import queued",
		slog.String("job_id", jobID),
		slog.String("file_name", header.Filename),
		slog.Int("bytes", len(data)))

	respondJSON(w, h.logger, http.StatusAccepted, ImportResponse{
		JobID:   jobID,
		Status:  "queued",
		Message: "Order import has been queued for processing",
	})
}

// ImportStatus handles GET /api/v1/orders/import/{jobID}
func (h *ImportHandler) ImportStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	jobID := r.PathValue("jobID")

	if h.inspector == nil {
		respondError(w, h.logger, http.StatusServiceUnavailable, "Job status unavailable")
		return
	}
	if _, err := uuid.Parse(jobID); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid job ID format")
		return
	}

	info, err := h.inspector.GetTaskInfo(workers.QueueCritical, jobID)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
			respondError(w, h.logger, http.StatusNotFound, "Job not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to get job status",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to get job status")
		return
	}

	status := map[string]interface{}{
		"job_id":    jobID,
		"status":    info.State.String(),
		"retried":   info.Retried,
		"max_retry": info.MaxRetry,
	}
	if info.LastErr != "" {
		status["last_error"] = info.LastErr
	}
	if !info.CompletedAt.IsZero() {
		status["completed_at"] = info.CompletedAt
	}

	respondJSON(w, h.logger, http.StatusOK, status)
}

func (h *ImportHandler) release(ctx context.Context, key string) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Delete(ctx, key); err != nil {
		h.logger.WarnContext(ctx, "failed to release duplicate upload key",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
}
