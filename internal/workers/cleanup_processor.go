// internal/workers/cleanup_processor.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/picking-be/internal/core/ports"
)

// CleanupProcessor removes uploads the import worker never consumed
type CleanupProcessor struct {
	storage   ports.FileStorage
	prefix    string
	retention time.Duration
	now       func() time.Time
	logger    *slog.Logger
}

// NewCleanupProcessor creates a new cleanup processor
func NewCleanupProcessor(fs ports.FileStorage, prefix string, retention time.Duration, logger *slog.Logger) *CleanupProcessor {
	return &CleanupProcessor{
		storage:   fs,
		prefix:    prefix,
		retention: retention,
		now:       time.Now,
		logger:    logger.With(slog.String("processor", "cleanup")),
	}
}

// CleanupUploads deletes stored uploads older than the retention window
func (p *CleanupProcessor) CleanupUploads(ctx context.Context, _ *asynq.Task) error {
	objects, err := p.storage.List(ctx, p.prefix)
	if err != nil {
		return fmt.Errorf("failed to list uploads: %w", err)
	}

	cutoff := p.now().Add(-p.retention)
	deleted := 0
	for _, obj := range objects {
		if !obj.LastModified.Before(cutoff) {
			continue
		}
		if err := p.storage.Delete(ctx, obj.Key); err != nil {
			p.logger.WarnContext(ctx, "failed to delete stale upload",
				slog.String("key", obj.Key),
				slog.String("error", err.Error()))
			continue
		}
		deleted++
	}

	p.logger.InfoContext(ctx, "stale uploads cleaned up",
		slog.Int("scanned", len(objects)),
		slog.Int("deleted", deleted))
	return nil
}
