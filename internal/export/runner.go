// Package export runs ExportUserJob jobs: it reads a user's recorded
// transactions and fans them out to the configured sinks.
package export

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	bq "github.com/dvloznov/financehub/internal/infra/bigquery"
	"github.com/dvloznov/financehub/internal/domain"
	"github.com/dvloznov/financehub/internal/infra/firestore"
	"github.com/dvloznov/financehub/internal/jobs"
)

// AnalyticsSink receives transaction rows (BigQuery in production).
type AnalyticsSink interface {
	InsertTransactions(ctx context.Context, rows []*bq.TransactionRow) error
}

// ArchiveSink stores a raw snapshot of the records (GCS in production).
type ArchiveSink interface {
	ArchiveTransactions(ctx context.Context, userID string, txns []domain.Transaction) (string, error)
}

// NotionSink mirrors records into Notion.
type NotionSink interface {
	SyncTransactions(ctx context.Context, userID string, txns []domain.Transaction) error
}

// Runner executes export jobs. Sinks are optional; a job that names an
// unconfigured destination fails so the operator notices the gap.
type Runner struct {
	txns      firestore.TransactionRepository
	analytics AnalyticsSink
	archive   ArchiveSink
	notion    NotionSink
	log       zerolog.Logger
}

func NewRunner(txns firestore.TransactionRepository, analytics AnalyticsSink, archive ArchiveSink, notion NotionSink, log zerolog.Logger) *Runner {
	return &Runner{txns: txns, analytics: analytics, archive: archive, notion: notion, log: log}
}

// Run processes one job. A job with no transactions completes without
// touching any sink.
func (r *Runner) Run(ctx context.Context, job *jobs.ExportUserJob) error {
	txns, err := r.txns.ListByUser(ctx, job.UserID)
	if err != nil {
		return fmt.Errorf("export: loading transactions: %w", err)
	}
	if len(txns) == 0 {
		r.log.Info().Str("user_id", job.UserID).Msg("No transactions to export")
		return nil
	}

	for _, dest := range job.Destinations {
		if err := r.runDestination(ctx, dest, job.UserID, txns); err != nil {
			return err
		}
	}

	r.log.Info().
		Str("job_id", job.JobID).
		Str("user_id", job.UserID).
		Int("count", len(txns)).
		Msg("Export completed")
	return nil
}

func (r *Runner) runDestination(ctx context.Context, dest jobs.Destination, userID string, txns []domain.Transaction) error {
	switch dest {
	case jobs.DestinationBigQuery:
		if r.analytics == nil {
			return fmt.Errorf("export: bigquery sink is not configured")
		}
		rows := make([]*bq.TransactionRow, 0, len(txns))
		for _, txn := range txns {
			rows = append(rows, bq.RowFromTransaction(uuid.New().String(), userID, txn))
		}
		if err := r.analytics.InsertTransactions(ctx, rows); err != nil {
			return fmt.Errorf("export: bigquery: %w", err)
		}

	case jobs.DestinationGCS:
		if r.archive == nil {
			return fmt.Errorf("export: gcs sink is not configured")
		}
		uri, err := r.archive.ArchiveTransactions(ctx, userID, txns)
		if err != nil {
			return fmt.Errorf("export: gcs: %w", err)
		}
		r.log.Info().Str("user_id", userID).Str("uri", uri).Msg("Archived transactions")

	case jobs.DestinationNotion:
		if r.notion == nil {
			return fmt.Errorf("export: notion sink is not configured")
		}
		if err := r.notion.SyncTransactions(ctx, userID, txns); err != nil {
			return fmt.Errorf("export: notion: %w", err)
		}

	default:
		return fmt.Errorf("export: unknown destination %q", dest)
	}
	return nil
}
