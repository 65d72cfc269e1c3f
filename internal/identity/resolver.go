// Package identity derives stable user identifiers from email addresses.
//
// The mobile client and this backend must agree on the derivation: the
// document key for users/<id> is the SHA-256 digest of the trimmed,
// lowercased email, reduced to its first 32 alphanumeric characters.
// Truncation means two emails can in principle share an id; the id is an
// opaque document key rather than a credential, so that risk is accepted.
package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// UserIDLength is the length of a derived user identifier.
const UserIDLength = 32

// ErrMissingIdentity is returned when neither a user id nor an email is
// supplied to an existence check.
var ErrMissingIdentity = errors.New("either userId or email must be provided")

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether the input looks like an email address.
// Callers validate shape before resolving; Resolve itself accepts any
// string.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// UserStore is the read-side the resolver needs from the document store.
type UserStore interface {
	Exists(ctx context.Context, userID string) (bool, error)
}

// Resolver maps emails to user ids and answers existence queries against
// the backing user store. The cache is injected rather than ambient so
// resolution stays deterministic under test.
type Resolver struct {
	cache Cache
	users UserStore
}

// NewResolver creates a Resolver. cache must not be nil; users may be
// nil if only Resolve is used.
func NewResolver(cache Cache, users UserStore) *Resolver {
	return &Resolver{cache: cache, users: users}
}

// NormalizeEmail lowercases and trims an email, producing the canonical
// identity key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Resolve returns the stable user id for an email. Cached resolutions
// are returned without recomputing the digest.
func (r *Resolver) Resolve(email string) string {
	normalized := NormalizeEmail(email)

	if id, ok := r.cache.Get(normalized); ok {
		return id
	}

	id := deriveUserID(normalized)
	r.cache.Put(normalized, id)
	return id
}

// Digest returns the full untruncated hex digest for a normalized email.
// Kept for callers that want the collision-free key.
func Digest(email string) string {
	sum := sha256.Sum256([]byte(NormalizeEmail(email)))
	return hex.EncodeToString(sum[:])
}

func deriveUserID(normalized string) string {
	sum := sha256.Sum256([]byte(normalized))
	digest := hex.EncodeToString(sum[:])

	// Hex is already alphanumeric; the filter guards against a future
	// encoding change rather than anything in the current digest.
	var b strings.Builder
	b.Grow(UserIDLength)
	for _, c := range digest {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			b.WriteRune(c)
			if b.Len() == UserIDLength {
				break
			}
		}
	}
	return b.String()
}

// IsExistingUser reports whether a user document exists for the given
// identity. Exactly one of userID or email must be non-empty; when only
// the email is supplied it is resolved first. The check is read-only and
// never creates a document.
func (r *Resolver) IsExistingUser(ctx context.Context, userID, email string) (bool, error) {
	if userID == "" && email == "" {
		return false, ErrMissingIdentity
	}

	if userID == "" {
		userID = r.Resolve(email)
	}

	exists, err := r.users.Exists(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("identity: user lookup for %s: %w", userID, err)
	}
	return exists, nil
}
