package identity

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "identity:email:"

// RedisCache is a Redis-backed Cache for multi-instance deployments,
// where the process-local single slot would thrash across replicas.
// Lookup and write errors degrade to cache misses; the resolver just
// recomputes the digest.
type RedisCache struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewRedisCache creates a RedisCache on the provided client. Pass 0 for
// entries that should not expire.
func NewRedisCache(client *goredis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(email string) (string, bool) {
	userID, err := c.client.Get(context.Background(), redisKeyPrefix+email).Result()
	if err != nil {
		return "", false
	}
	return userID, true
}

func (c *RedisCache) Put(email, userID string) {
	_ = c.client.Set(context.Background(), redisKeyPrefix+email, userID, c.ttl).Err()
}

var _ Cache = (*RedisCache)(nil)
