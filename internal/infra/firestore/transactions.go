package firestore

import (
	"context"
	"fmt"

	cf "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/dvloznov/financehub/internal/domain"
)

// FirestoreTransactionRepository is the concrete TransactionRepository
// backed by a shared Firestore client.
type FirestoreTransactionRepository struct {
	client *cf.Client
}

// NewTransactionRepository creates a FirestoreTransactionRepository on
// the provided client.
func NewTransactionRepository(client *cf.Client) *FirestoreTransactionRepository {
	return &FirestoreTransactionRepository{client: client}
}

func (r *FirestoreTransactionRepository) userTransactions(userID string) *cf.CollectionRef {
	return r.client.Collection(transactionsCollection).Doc(userID).Collection(userTransactionsSub)
}

// Add appends a single transaction document and returns its generated
// id. The write is one atomic document creation; on failure nothing is
// left behind.
func (r *FirestoreTransactionRepository) Add(ctx context.Context, userID string, txn domain.Transaction) (string, error) {
	ref, _, err := r.userTransactions(userID).Add(ctx, txn)
	if err != nil {
		return "", fmt.Errorf("Add: writing transaction for user %s: %w", userID, err)
	}
	return ref.ID, nil
}

// ListByUser reads back every transaction document for a user, ordered
// by timestamp. Only the export worker uses this; the payment flow
// itself never reads records back.
func (r *FirestoreTransactionRepository) ListByUser(ctx context.Context, userID string) ([]domain.Transaction, error) {
	iter := r.userTransactions(userID).OrderBy("timestamp", cf.Asc).Documents(ctx)
	defer iter.Stop()

	var out []domain.Transaction
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListByUser: iterating transactions for user %s: %w", userID, err)
		}

		var txn domain.Transaction
		if err := snap.DataTo(&txn); err != nil {
			return nil, fmt.Errorf("ListByUser: decoding transaction %s: %w", snap.Ref.ID, err)
		}
		out = append(out, txn)
	}
	return out, nil
}

var _ TransactionRepository = (*FirestoreTransactionRepository)(nil)
