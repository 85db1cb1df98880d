package adminview

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/bencare/bencare/pkg/logging"
)

// DefaultKey is the cache key under which the rendered admin listing lives.
const DefaultKey = "bencare:views:admin"

// Invalidator marks the admin listing stale so its next render re-fetches
// fresh data.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// RedisInvalidator drops the cached admin view from redis.
type RedisInvalidator struct {
	client *redis.Client
	key    string
	logger *logging.Logger
}

// NewRedisInvalidator creates an invalidator over the shared redis client.
func NewRedisInvalidator(client *redis.Client, logger *logging.Logger) *RedisInvalidator {
	if client == nil {
		panic("adminview: redis client required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &RedisInvalidator{client: client, key: DefaultKey, logger: logger}
}

// Invalidate deletes the cached view. Deleting a key that is already absent
// is a no-op, not an error.
func (i *RedisInvalidator) Invalidate(ctx context.Context) error {
	if err := i.client.Del(ctx, i.key).Err(); err != nil {
		return fmt.Errorf("adminview: invalidate failed: %w", err)
	}
	i.logger.Debug("admin view invalidated", "key", i.key)
	return nil
}

// MemoryInvalidator tracks invalidations in-process; used when redis is not
// configured and in tests.
type MemoryInvalidator struct {
	mu    sync.Mutex
	count int
}

// NewMemoryInvalidator creates an in-process invalidator.
func NewMemoryInvalidator() *MemoryInvalidator {
	return &MemoryInvalidator{}
}

// Invalidate records the invalidation.
func (m *MemoryInvalidator) Invalidate(ctx context.Context) error {
	m.mu.Lock()
	m.count++
	m.mu.Unlock()
	return nil
}

// Invalidations returns how many times the view was marked stale.
func (m *MemoryInvalidator) Invalidations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}

var (
	_ Invalidator = (*RedisInvalidator)(nil)
	_ Invalidator = (*MemoryInvalidator)(nil)
)
