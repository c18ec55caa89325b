// internal/core/ports/storage.go
package ports

import (
	"context"
	"io"
	"time"
)

// StoredObject describes a stored file
type StoredObject struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// FileStorage holds uploaded order spreadsheets between the API and the worker
type FileStorage interface {
	Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error)
	Download(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]StoredObject, error)
}
