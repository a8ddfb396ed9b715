package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "crm:answer:"
	defaultTTL = 5 * time.Minute
)

// ResponseCache memoizes generated answers keyed by normalized query, so a
// repeated question skips retrieval and generation entirely.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

// NewResponseCache connects to redis and verifies the connection. Callers
// treat an error as "run without the cache", not as fatal.
func NewResponseCache(addr, password string, db int, logger *log.Logger) (*ResponseCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &ResponseCache{
		client: client,
		ttl:    defaultTTL,
		logger: logger,
	}, nil
}

// Get returns the cached answer for a query, if present.
func (c *ResponseCache) Get(ctx context.Context, query string) (string, bool) {
	val, err := c.client.Get(ctx, cacheKey(query)).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		c.logger.Printf("[WARN] answer cache get failed: %v", err)
		return "", false
	}
	return val, true
}

// Set stores a generated answer under the query's key.
func (c *ResponseCache) Set(ctx context.Context, query, reply string) {
	if err := c.client.Set(ctx, cacheKey(query), reply, c.ttl).Err(); err != nil {
		c.logger.Printf("[WARN] answer cache set failed: %v", err)
	}
}

// Close releases the redis connection.
func (c *ResponseCache) Close() error {
	return c.client.Close()
}

func cacheKey(query string) string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	sum := sha256.Sum256([]byte(normalized))
	return keyPrefix + hex.EncodeToString(sum[:])[:16]
}
