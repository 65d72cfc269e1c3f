// Package gcsarchive writes per-user transaction archives to Cloud
// Storage as JSON Lines, one object per export run.
package gcsarchive

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/storage"

	"github.com/dvloznov/financehub/internal/domain"
)

// Archiver uploads archives to a fixed bucket through a shared client.
type Archiver struct {
	client *storage.Client
	bucket string
}

// NewArchiver creates an Archiver. Application Default Credentials are
// assumed, as elsewhere in the service.
func NewArchiver(ctx context.Context, bucket string) (*Archiver, error) {
	if bucket == "" {
		return nil, fmt.Errorf("gcsarchive: bucket name is required")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcsarchive: creating storage client: %w", err)
	}
	return &Archiver{client: client, bucket: bucket}, nil
}

// Close releases the underlying client.
func (a *Archiver) Close() error {
	if a.client != nil {
		return a.client.Close()
	}
	return nil
}

// ArchiveTransactions uploads the user's transactions as one JSONL
// object under exports/<userID>/ and returns its gs:// URI.
func (a *Archiver) ArchiveTransactions(ctx context.Context, userID string, txns []domain.Transaction) (string, error) {
	objectName := fmt.Sprintf("exports/%s/%s.jsonl", userID, time.Now().UTC().Format("20060102T150405Z"))

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := a.client.Bucket(a.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = "application/x-ndjson"

	enc := json.NewEncoder(w)
	for i := range txns {
		if err := enc.Encode(&txns[i]); err != nil {
			_ = w.Close()
			return "", fmt.Errorf("ArchiveTransactions: encoding record %d: %w", i, err)
		}
	}

	if err := w.Close(); err != nil {
		return "", fmt.Errorf("ArchiveTransactions: finalizing upload: %w", err)
	}
	return fmt.Sprintf("gs://%s/%s", a.bucket, objectName), nil
}
