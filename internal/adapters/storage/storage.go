// internal/adapters/storage/storage.go
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ammerola/picking-be/internal/core/ports"
	"github.com/ammerola/picking-be/internal/pkg/config"
)

// New selects the configured backend
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.FileStorage, error) {
	switch cfg.Storage.Driver {
	case "s3":
		return NewS3Storage(ctx, &S3Config{
			Region:          cfg.AWS.Region,
			Bucket:          cfg.AWS.S3Bucket,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			Endpoint:        cfg.AWS.S3Endpoint,
			UsePathStyle:    cfg.AWS.UsePathStyle,
		}, logger)
	case "", "local":
		return NewLocalStorage(cfg.Storage.LocalDir, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
