package firestore

import (
	"context"
	"fmt"

	cf "cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dvloznov/financehub/internal/domain"
)

// FirestoreUserRepository is the concrete UserRepository backed by a
// shared Firestore client.
type FirestoreUserRepository struct {
	client *cf.Client
}

// NewUserRepository creates a FirestoreUserRepository on the provided
// client. The client is shared and not closed by the repository.
func NewUserRepository(client *cf.Client) *FirestoreUserRepository {
	return &FirestoreUserRepository{client: client}
}

// Exists reports whether the user document is present. It performs a
// single read and never creates the document.
func (r *FirestoreUserRepository) Exists(ctx context.Context, userID string) (bool, error) {
	snap, err := r.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, fmt.Errorf("Exists: reading users/%s: %w", userID, err)
	}
	return snap.Exists(), nil
}

// SetProfile merges the non-zero profile fields into the user document,
// matching the client's set-with-merge writes so the registration and
// additional-information steps can each write their part. MergeAll
// requires map data, so the struct is flattened first.
func (r *FirestoreUserRepository) SetProfile(ctx context.Context, userID string, profile domain.UserProfile) error {
	_, err := r.client.Collection(usersCollection).Doc(userID).Set(ctx, profileFields(profile), cf.MergeAll)
	if err != nil {
		return fmt.Errorf("SetProfile: merging users/%s: %w", userID, err)
	}
	return nil
}

// profileFields flattens a profile into the fields to merge, skipping
// zero values so a partial write never clears earlier merges.
func profileFields(p domain.UserProfile) map[string]interface{} {
	fields := make(map[string]interface{})
	if p.EmailID != "" {
		fields["emailId"] = p.EmailID
	}
	if p.PasswordHash != "" {
		fields["passwordHash"] = p.PasswordHash
	}
	if p.Name != "" {
		fields["name"] = p.Name
	}
	if p.Age != 0 {
		fields["age"] = p.Age
	}
	if p.Gender != "" {
		fields["gender"] = p.Gender
	}
	if p.PhoneNumber != "" {
		fields["phoneNumber"] = p.PhoneNumber
	}
	if p.IsVerified {
		fields["isVerified"] = true
	}
	return fields
}

// GetProfile reads the profile document for userID.
func (r *FirestoreUserRepository) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	snap, err := r.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("GetProfile: reading users/%s: %w", userID, err)
	}
	var profile domain.UserProfile
	if err := snap.DataTo(&profile); err != nil {
		return nil, fmt.Errorf("GetProfile: decoding users/%s: %w", userID, err)
	}
	return &profile, nil
}

var _ UserRepository = (*FirestoreUserRepository)(nil)
