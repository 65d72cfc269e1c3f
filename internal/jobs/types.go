// Package jobs defines the asynchronous export jobs and the queue
// abstractions behind them. The in-memory implementation under
// jobs/inmemory is suitable for a single instance; swap in Cloud Tasks
// or Pub/Sub for multi-instance deployments.
package jobs

import (
	"context"
	"time"
)

// JobStatus is the execution state of a job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusRetrying  JobStatus = "retrying"
)

// Destination names one export sink for a user's transactions.
type Destination string

const (
	DestinationBigQuery Destination = "bigquery"
	DestinationGCS      Destination = "gcs"
	DestinationNotion   Destination = "notion"
)

// ExportUserJob asks the worker to export one user's transaction history
// to the listed destinations.
type ExportUserJob struct {
	JobID        string        `json:"job_id"`
	UserID       string        `json:"user_id"`
	Destinations []Destination `json:"destinations"`

	Status      JobStatus  `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       string     `json:"error,omitempty"`
	RetryCount  int        `json:"retry_count"`
	MaxRetries  int        `json:"max_retries"`
}

// Publisher enqueues export jobs.
type Publisher interface {
	PublishExport(ctx context.Context, job *ExportUserJob) error
	Close() error
}

// Consumer drains the queue, invoking the handler per job.
type Consumer interface {
	Start(ctx context.Context, handler Handler) error
	Stop(ctx context.Context) error
}

// Handler processes one job; a returned error triggers a retry until
// MaxRetries is exhausted.
type Handler func(ctx context.Context, job *ExportUserJob) error

// Store tracks job state so the API can answer status queries.
type Store interface {
	SaveJob(ctx context.Context, job *ExportUserJob) error
	GetJob(ctx context.Context, jobID string) (*ExportUserJob, error)
	ListJobs(ctx context.Context, filter Filter) ([]*ExportUserJob, error)
}

// Filter narrows ListJobs results.
type Filter struct {
	UserID string
	Status JobStatus
	Limit  int
}
