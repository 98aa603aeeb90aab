// Package sharecache caches share-token rows in Redis. Keys carry a hash
// of the token, never the token itself.
package sharecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/bookmarks-backend/internal/domain"
)

const prefix = "share:token:"

// Cache is a Redis-backed read-through cache of share tokens.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// Open parses a redis:// URL and verifies the connection.
func Open(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}

// New wraps client. Entries live for ttl, or until the token expires if
// that comes first.
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl, now: time.Now}
}

type entry struct {
	ID           uuid.UUID  `json:"id"`
	ResourceType string     `json:"resource_type"`
	ResourceID   uuid.UUID  `json:"resource_id"`
	IssuerID     uuid.UUID  `json:"issuer_id"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func key(resourceType domain.ResourceType, token string) string {
	sum := sha256.Sum256([]byte(token))
	return prefix + string(resourceType) + ":" + hex.EncodeToString(sum[:])
}

// Get returns the cached token, or nil, nil on a miss.
func (c *Cache) Get(ctx context.Context, resourceType domain.ResourceType, token string) (*domain.ShareToken, error) {
	raw, err := c.client.Get(ctx, key(resourceType, token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sharecache get: %w", err)
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("sharecache decode: %w", err)
	}
	return &domain.ShareToken{
		ID:           e.ID,
		Token:        token,
		ResourceType: domain.ResourceType(e.ResourceType),
		ResourceID:   e.ResourceID,
		IssuerID:     e.IssuerID,
		ExpiresAt:    e.ExpiresAt,
		CreatedAt:    e.CreatedAt,
	}, nil
}

// Set stores t. Already expired tokens are not cached.
func (c *Cache) Set(ctx context.Context, t domain.ShareToken) error {
	ttl := c.ttl
	if t.ExpiresAt != nil {
		left := t.ExpiresAt.Sub(c.now())
		if left <= 0 {
			return nil
		}
		if ttl <= 0 || left < ttl {
			ttl = left
		}
	}

	raw, err := json.Marshal(entry{
		ID:           t.ID,
		ResourceType: string(t.ResourceType),
		ResourceID:   t.ResourceID,
		IssuerID:     t.IssuerID,
		ExpiresAt:    t.ExpiresAt,
		CreatedAt:    t.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("sharecache encode: %w", err)
	}
	if err := c.client.Set(ctx, key(t.ResourceType, t.Token), raw, ttl).Err(); err != nil {
		return fmt.Errorf("sharecache set: %w", err)
	}
	return nil
}

// Delete drops a cached token.
func (c *Cache) Delete(ctx context.Context, resourceType domain.ResourceType, token string) error {
	if err := c.client.Del(ctx, key(resourceType, token)).Err(); err != nil {
		return fmt.Errorf("sharecache delete: %w", err)
	}
	return nil
}
