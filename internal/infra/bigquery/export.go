package bigquery

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/bigquery"
)

const (
	defaultDatasetID  = "spending"
	transactionsTable = "transactions"
)

// Exporter writes transaction rows to BigQuery through a shared client.
type Exporter struct {
	client  *bigquery.Client
	dataset string
}

// NewExporter creates an Exporter for the given project. The dataset
// can be overridden with BQ_DATASET.
func NewExporter(ctx context.Context, projectID string) (*Exporter, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("NewExporter: creating client: %w", err)
	}
	dataset := os.Getenv("BQ_DATASET")
	if dataset == "" {
		dataset = defaultDatasetID
	}
	return &Exporter{client: client, dataset: dataset}, nil
}

// Close releases the underlying client.
func (e *Exporter) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// InsertTransactions streams a batch of rows into the transactions
// table. A nil or empty batch is a no-op.
func (e *Exporter) InsertTransactions(ctx context.Context, rows []*TransactionRow) error {
	if len(rows) == 0 {
		return nil
	}

	inserter := e.client.Dataset(e.dataset).Table(transactionsTable).Inserter()
	if err := inserter.Put(ctx, rows); err != nil {
		return fmt.Errorf("InsertTransactions: inserting %d rows: %w", len(rows), err)
	}
	return nil
}
