package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/secure-notes/internal/config"
)

// NotesCache is a read-through cache for per-user note listings,
// keyed by owner id. The vault invalidates the owner's entry after
// every mutation, so a stale listing can only outlive a write by the
// TTL when an invalidation itself fails. A nil cache or nil Redis
// client disables caching entirely; every method degrades to a no-op
// or a miss, and cache errors never fail the request they rode in on.
type NotesCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

// NewNotesCache wires the cache against the given Redis client.
// Returns nil (fully disabled) when caching is off or no client is
// available.
func NewNotesCache(rdb *redis.Client, cfg config.CacheConfig) *NotesCache {
	if !cfg.Enabled || rdb == nil {
		return nil
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &NotesCache{rdb: rdb, ttl: ttl, prefix: cfg.Prefix}
}

func (c *NotesCache) key(ownerID uint64) string {
	return fmt.Sprintf("%s:user_notes:%d", c.prefix, ownerID)
}

// Get returns the cached listing payload for an owner, if present.
func (c *NotesCache) Get(ctx context.Context, ownerID uint64) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	bs, err := c.rdb.Get(ctx, c.key(ownerID)).Bytes()
	if err != nil {
		return nil, false
	}
	return bs, true
}

// Set stores the listing payload for an owner with the configured TTL.
func (c *NotesCache) Set(ctx context.Context, ownerID uint64, payload []byte) {
	if c == nil {
		return
	}
	if err := c.rdb.SetEx(ctx, c.key(ownerID), payload, c.ttl).Err(); err != nil {
		log.Printf("cache: set failed for owner %d: %v", ownerID, err)
	}
}

// Invalidate drops the cached listing for an owner. Called after
// every create, update and delete.
func (c *NotesCache) Invalidate(ctx context.Context, ownerID uint64) {
	if c == nil {
		return
	}
	if err := c.rdb.Del(ctx, c.key(ownerID)).Err(); err != nil {
		log.Printf("cache: invalidate failed for owner %d: %v", ownerID, err)
	}
}
