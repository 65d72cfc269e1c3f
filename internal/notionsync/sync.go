package notionsync

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dvloznov/financehub/internal/domain"
)

// Syncer pushes a user's transactions into one Notion database.
type Syncer struct {
	client     *Client
	databaseID string
	log        zerolog.Logger
}

func NewSyncer(client *Client, databaseID string, log zerolog.Logger) *Syncer {
	return &Syncer{client: client, databaseID: databaseID, log: log}
}

// SyncTransactions creates one page per transaction. The sync is
// best-effort per record: a failed page aborts the run so the job layer
// can retry it.
func (s *Syncer) SyncTransactions(ctx context.Context, userID string, txns []domain.Transaction) error {
	for i, txn := range txns {
		props := TransactionToProperties(txn)
		if _, err := s.client.CreatePage(ctx, s.databaseID, props); err != nil {
			return fmt.Errorf("SyncTransactions: record %d of %d for user %s: %w", i+1, len(txns), userID, err)
		}
	}

	s.log.Info().
		Str("user_id", userID).
		Int("count", len(txns)).
		Msg("Synced transactions to Notion")
	return nil
}
