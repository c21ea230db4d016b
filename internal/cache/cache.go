// =============================================================================
// Price Update Preparation Tool - Reference Sheet Cache
// =============================================================================
//
// Fetched reference sheets are cached by exact export URL for a bounded time
// window so repeated validations do not hit the remote host on every render.
// The cache is injected into the resolver; tests swap in a fresh in-memory
// store and production can point at Redis when several instances share a
// reference sheet.
//
// There is no manual invalidation. Entries drop out on TTL expiry only.
//
// =============================================================================

package cache

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// DefaultTTL is how long a fetched reference sheet stays fresh.
const DefaultTTL = 30 * time.Minute

// Store is a byte-value cache keyed by URL string.
type Store interface {
	// Get returns the cached value and true on a fresh hit.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// =============================================================================
// IN-MEMORY STORE
// =============================================================================

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is a mutex-guarded in-process Store. Expired entries are dropped
// lazily on read.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if m.now().After(entry.expiresAt) {
		delete(m.entries, key)
		return nil, false
	}
	return entry.value, true
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{
		value:     append([]byte(nil), value...),
		expiresAt: m.now().Add(ttl),
	}
}

// =============================================================================
// REDIS STORE
// =============================================================================

const redisKeyPrefix = "refsheet:csv:"

// Redis backs the Store interface with a shared Redis instance. Cache
// failures are swallowed: a miss is returned and the caller re-fetches.
type Redis struct {
	client *redis.Client
}

// NewRedis wraps an existing Redis client.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	// Best effort; the resolver works without the cache.
	_ = r.client.Set(ctx, redisKeyPrefix+key, value, ttl).Err()
}
