package firestore

import (
	"context"
	"fmt"

	cf "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/dvloznov/financehub/internal/domain"
)

// FirestoreContactRepository stores saved payees under the
// registeredUsersData collection.
type FirestoreContactRepository struct {
	client *cf.Client
}

func NewContactRepository(client *cf.Client) *FirestoreContactRepository {
	return &FirestoreContactRepository{client: client}
}

func (r *FirestoreContactRepository) userContacts(userID string) *cf.CollectionRef {
	return r.client.Collection(contactsCollection).Doc(userID).Collection(contactsSub)
}

func (r *FirestoreContactRepository) Add(ctx context.Context, userID string, contact domain.Contact) (string, error) {
	ref, _, err := r.userContacts(userID).Add(ctx, contact)
	if err != nil {
		return "", fmt.Errorf("Add: writing contact for user %s: %w", userID, err)
	}
	return ref.ID, nil
}

func (r *FirestoreContactRepository) List(ctx context.Context, userID string) ([]domain.Contact, error) {
	iter := r.userContacts(userID).Documents(ctx)
	defer iter.Stop()

	var out []domain.Contact
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("List: iterating contacts for user %s: %w", userID, err)
		}

		var c domain.Contact
		if err := snap.DataTo(&c); err != nil {
			return nil, fmt.Errorf("List: decoding contact %s: %w", snap.Ref.ID, err)
		}
		out = append(out, c)
	}
	return out, nil
}

var _ ContactRepository = (*FirestoreContactRepository)(nil)
