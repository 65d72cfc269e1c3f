package identity

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// spyCache wraps SingleSlot and counts hits so tests can assert that a
// repeated resolution does not recompute the digest.
type spyCache struct {
	inner Cache
	hits  int
	puts  int
}

func (c *spyCache) Get(email string) (string, bool) {
	id, ok := c.inner.Get(email)
	if ok {
		c.hits++
	}
	return id, ok
}

func (c *spyCache) Put(email, userID string) {
	c.puts++
	c.inner.Put(email, userID)
}

type mockUserStore struct {
	existing map[string]bool
	err      error
	calls    int
}

func (m *mockUserStore) Exists(ctx context.Context, userID string) (bool, error) {
	m.calls++
	if m.err != nil {
		return false, m.err
	}
	return m.existing[userID], nil
}

func TestResolve_Deterministic(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  string
	}{
		{
			name:  "plain lowercase",
			email: "test@example.com",
			want:  "973dfe463ec85785f5f95af5ba3906ee",
		},
		{
			name:  "mixed case normalizes to same id",
			email: "Test@Example.com",
			want:  "973dfe463ec85785f5f95af5ba3906ee",
		},
		{
			name:  "trailing whitespace normalizes to same id",
			email: "test@example.com ",
			want:  "973dfe463ec85785f5f95af5ba3906ee",
		},
		{
			name:  "different email yields different id",
			email: "a@11.com",
			want:  "1e3b7bdcb685e1263d09a9a9d92cb5b3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(NewSingleSlot(), nil)
			got := r.Resolve(tt.email)
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.email, got, tt.want)
			}
			if len(got) != UserIDLength {
				t.Errorf("Resolve(%q) returned %d chars, want %d", tt.email, len(got), UserIDLength)
			}
		})
	}
}

func TestResolve_IDIsAlphanumeric(t *testing.T) {
	r := NewResolver(NewSingleSlot(), nil)
	id := r.Resolve("someone@domain.in")
	for _, c := range id {
		isAlnum := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
		if !isAlnum {
			t.Fatalf("Resolve returned non-alphanumeric character %q in %q", c, id)
		}
	}
}

func TestResolve_SecondCallHitsCache(t *testing.T) {
	cache := &spyCache{inner: NewSingleSlot()}
	r := NewResolver(cache, nil)

	first := r.Resolve("test@example.com")
	second := r.Resolve("Test@Example.COM")

	if first != second {
		t.Errorf("repeated resolution diverged: %q vs %q", first, second)
	}
	if cache.hits != 1 {
		t.Errorf("cache hits = %d, want 1", cache.hits)
	}
	if cache.puts != 1 {
		t.Errorf("cache puts = %d, want 1 (second call must not recompute)", cache.puts)
	}
}

func TestResolve_SingleSlotEvictsOnDifferentEmail(t *testing.T) {
	cache := &spyCache{inner: NewSingleSlot()}
	r := NewResolver(cache, nil)

	a := r.Resolve("a@11.com")
	b := r.Resolve("b@11.com")
	if a == b {
		t.Fatalf("different emails resolved to same id %q", a)
	}

	// a was evicted by b, so resolving a again recomputes.
	r.Resolve("a@11.com")
	if cache.puts != 3 {
		t.Errorf("cache puts = %d, want 3 (single slot evicts previous entry)", cache.puts)
	}
}

func TestIsExistingUser(t *testing.T) {
	const knownID = "973dfe463ec85785f5f95af5ba3906ee"

	tests := []struct {
		name       string
		userID     string
		email      string
		store      *mockUserStore
		want       bool
		wantErr    error
		wantLookup bool
	}{
		{
			name:    "neither supplied",
			store:   &mockUserStore{},
			wantErr: ErrMissingIdentity,
		},
		{
			name:       "existing user by id",
			userID:     knownID,
			store:      &mockUserStore{existing: map[string]bool{knownID: true}},
			want:       true,
			wantLookup: true,
		},
		{
			name:       "existing user by email",
			email:      "test@example.com",
			store:      &mockUserStore{existing: map[string]bool{knownID: true}},
			want:       true,
			wantLookup: true,
		},
		{
			name:       "unknown user",
			email:      "nobody@example.com",
			store:      &mockUserStore{},
			want:       false,
			wantLookup: true,
		},
		{
			name:       "store failure propagates",
			email:      "test@example.com",
			store:      &mockUserStore{err: errors.New("unavailable")},
			wantErr:    errors.New("unavailable"),
			wantLookup: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(NewSingleSlot(), tt.store)
			got, err := r.IsExistingUser(context.Background(), tt.userID, tt.email)

			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("IsExistingUser() error = nil, want %v", tt.wantErr)
				}
				if errors.Is(tt.wantErr, ErrMissingIdentity) && !errors.Is(err, ErrMissingIdentity) {
					t.Errorf("IsExistingUser() error = %v, want ErrMissingIdentity", err)
				}
				if !errors.Is(tt.wantErr, ErrMissingIdentity) && !strings.Contains(err.Error(), tt.wantErr.Error()) {
					t.Errorf("IsExistingUser() error = %v, want wrapped %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("IsExistingUser() unexpected error: %v", err)
			}

			if got != tt.want {
				t.Errorf("IsExistingUser() = %v, want %v", got, tt.want)
			}
			if tt.wantLookup && tt.store.calls == 0 {
				t.Error("expected a store lookup, got none")
			}
			if !tt.wantLookup && tt.store.calls != 0 {
				t.Error("validation error must be detected before any store access")
			}
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"test@example.com", true},
		{"  test@example.com  ", true},
		{"a@11.com", true},
		{"not-an-email", false},
		{"missing@tld", false},
		{"spaces in@side.com", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidEmail(tt.email); got != tt.want {
			t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}
