// internal/workers/import_processor.go
package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/picking-be/internal/adapters/spreadsheet"
	"github.com/ammerola/picking-be/internal/adapters/storage"
	"github.com/ammerola/picking-be/internal/core/ports"
)

// ImportProcessor turns uploaded spreadsheets into order lines
type ImportProcessor struct {
	storage ports.FileStorage
	orders  ports.OrderService
	logger  *slog.Logger
}

// NewImportProcessor creates a new import processor
func NewImportProcessor(fs ports.FileStorage, orders ports.OrderService, logger *slog.Logger) *ImportProcessor {
	return &ImportProcessor{
		storage: fs,
		orders:  orders,
		logger:  logger.With(slog.String("processor", "import")),
	}
}

// ProcessOrderImport handles TypeOrderImport. Malformed payloads, missing
// files and unreadable workbooks are not retried.
func (p *ImportProcessor) ProcessOrderImport(ctx context.Context, t *asynq.Task) error {
	start := time.Now()

	var payload OrderImportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	log := p.logger.With(
		slog.String("job_id", payload.JobID),
		slog.String("storage_key", payload.StorageKey))
	log.InfoContext(ctx, "processing order import", slog.String("file_name", payload.FileName))

	data, err := p.storage.Download(ctx, payload.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		return fmt.Errorf("failed to download upload: %w", err)
	}

	orders, err := spreadsheet.ParseOrders(data)
	if err != nil {
		p.discard(ctx, log, payload.StorageKey)
		return fmt.Errorf("failed to parse workbook: %v: %w", err, asynq.SkipRetry)
	}

	saved := 0
	if len(orders) > 0 {
		saved, err = p.orders.UploadBatch(ctx, orders)
		if err != nil {
			return fmt.Errorf("failed to save orders: %w", err)
		}
	}

	p.discard(ctx, log, payload.StorageKey)

	log.InfoContext(ctx, "order import completed",
		slog.Int("orders_saved", saved),
		slog.Duration("duration", time.Since(start)))
	return nil
}

func (p *ImportProcessor) discard(ctx context.Context, log *slog.Logger, key string) {
	if err := p.storage.Delete(ctx, key); err != nil {
		log.WarnContext(ctx, "failed to delete processed upload", slog.String("error", err.Error()))
	}
}
