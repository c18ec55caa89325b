// internal/workers/tasks.go
package workers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TypeOrderImport    = "order:import"
	TypeCleanupUploads = "cleanup:uploads"
)

const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// OrderImportPayload points the worker at an uploaded spreadsheet
type OrderImportPayload struct {
	JobID      string `json:"job_id"`
	StorageKey string `json:"storage_key"`
	FileName   string `json:"file_name"`
	UploadedBy string `json:"uploaded_by,omitempty"`
}

// NewOrderImportTask builds the import task; the job id doubles as the asynq task id
func NewOrderImportTask(payload OrderImportPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal import payload: %w", err)
	}
	return asynq.NewTask(TypeOrderImport, b,
		asynq.TaskID(payload.JobID),
		asynq.Queue(QueueCritical),
		asynq.MaxRetry(3),
		asynq.Retention(24*time.Hour),
	), nil
}

// NewCleanupUploadsTask builds the periodic upload sweep task
func NewCleanupUploadsTask() *asynq.Task {
	return asynq.NewTask(TypeCleanupUploads, nil, asynq.Queue(QueueLow), asynq.MaxRetry(1))
}

// Register wires every processor onto mux
func Register(mux *asynq.ServeMux, imports *ImportProcessor, cleanup *CleanupProcessor) {
	mux.HandleFunc(TypeOrderImport, imports.ProcessOrderImport)
	mux.HandleFunc(TypeCleanupUploads, cleanup.CleanupUploads)
}
