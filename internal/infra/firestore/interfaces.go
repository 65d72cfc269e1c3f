package firestore

import (
	"context"

	"github.com/dvloznov/financehub/internal/domain"
)

// UserRepository is the persistence surface for user profile documents.
type UserRepository interface {
	// Exists reports whether users/<userID> exists. Read-only.
	Exists(ctx context.Context, userID string) (bool, error)

	// SetProfile merges profile fields into users/<userID>, creating
	// the document when absent.
	SetProfile(ctx context.Context, userID string, profile domain.UserProfile) error

	// GetProfile reads the full profile document.
	GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error)
}

// TransactionRepository is the persistence surface for spend records.
type TransactionRepository interface {
	// Add appends a new transaction document under the user's
	// sub-collection and returns the generated document id.
	Add(ctx context.Context, userID string, txn domain.Transaction) (string, error)

	// ListByUser returns all transactions recorded for a user, used by
	// the export worker.
	ListByUser(ctx context.Context, userID string) ([]domain.Transaction, error)
}

// ContactRepository stores payees the user has previously paid.
type ContactRepository interface {
	Add(ctx context.Context, userID string, contact domain.Contact) (string, error)
	List(ctx context.Context, userID string) ([]domain.Contact, error)
}
