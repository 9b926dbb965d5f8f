package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SearchCache keeps recent external search responses in Redis. A nil
// cache is fully functional and caches nothing, so the service runs the
// same with or without Redis configured.
type SearchCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSearchCache(addr, password string, ttl time.Duration) (*SearchCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &SearchCache{client: rdb, ttl: ttl}, nil
}

// Key builds a cache key from the search kind and its parameters.
func Key(kind string, parts ...interface{}) string {
	key := "search:" + kind
	for _, p := range parts {
		key += fmt.Sprintf(":%v", p)
	}
	return key
}

// Get unmarshals a cached response into dest. Returns false on miss or
// when the cache is disabled.
func (c *SearchCache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false
	}
	return true
}

// Set stores a response under the configured TTL. Failures are dropped;
// the cache never turns a successful search into an error.
func (c *SearchCache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.client.Set(ctx, key, raw, c.ttl)
}

func (c *SearchCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Healthy reports whether the underlying connection answers a ping.
func (c *SearchCache) Healthy(ctx context.Context) error {
	if c == nil || c.client == nil {
		return errors.New("cache disabled")
	}
	return c.client.Ping(ctx).Err()
}
