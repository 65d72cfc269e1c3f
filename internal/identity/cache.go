package identity

import "sync"

// Cache stores resolved (normalized email, user id) pairs. It is owned
// by the Resolver and injected at construction so tests can observe
// hit/miss behavior and deployments can swap implementations.
type Cache interface {
	// Get returns the cached user id for a normalized email, and
	// whether the entry was present.
	Get(email string) (string, bool)

	// Put stores the pair, replacing whatever was cached before.
	Put(email, userID string)
}

// SingleSlot caches only the most recently resolved identity. The app
// resolves one email at a time, so one slot is enough; concurrent
// resolution of different emails is last-write-wins.
type SingleSlot struct {
	mu     sync.Mutex
	email  string
	userID string
}

// NewSingleSlot returns an empty single-entry cache.
func NewSingleSlot() *SingleSlot {
	return &SingleSlot{}
}

func (c *SingleSlot) Get(email string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.userID == "" || c.email != email {
		return "", false
	}
	return c.userID, true
}

func (c *SingleSlot) Put(email, userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.email = email
	c.userID = userID
}

var _ Cache = (*SingleSlot)(nil)
