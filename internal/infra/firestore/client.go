// Package firestore implements the repositories over Cloud Firestore.
//
// Collection layout matches what the mobile client writes:
//
//	users/<userID>                                  profile, set-with-merge
//	Transactions/<userID>/userTransactions/<docID>  append-only spend records
//	registeredUsersData/<userID>/data/<docID>       saved payees
package firestore

import (
	"context"
	"fmt"
	"os"

	cf "cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

const (
	usersCollection        = "users"
	transactionsCollection = "Transactions"
	userTransactionsSub    = "userTransactions"
	contactsCollection     = "registeredUsersData"
	contactsSub            = "data"
)

// NewClient creates a Firestore client for projectID. When credFile is
// non-empty it is used instead of Application Default Credentials.
func NewClient(ctx context.Context, projectID, credFile string) (*cf.Client, error) {
	if projectID == "" {
		projectID = os.Getenv("GOOGLE_CLOUD_PROJECT")
	}
	if projectID == "" {
		return nil, fmt.Errorf("firestore: project id is required (set GOOGLE_CLOUD_PROJECT)")
	}

	var opts []option.ClientOption
	if credFile != "" {
		opts = append(opts, option.WithCredentialsFile(credFile))
	}

	client, err := cf.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore: creating client: %w", err)
	}
	return client, nil
}
