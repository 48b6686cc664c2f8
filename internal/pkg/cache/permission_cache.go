package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const permissionKeyPrefix = "perm:role:"

// PermissionCache holds the permission codes of staff roles
type PermissionCache interface {
	Get(ctx context.Context, roleID int64) ([]string, bool, error)
	Set(ctx context.Context, roleID int64, permissions []string) error
	Invalidate(ctx context.Context, roleID int64) error
}

func permissionKey(roleID int64) string {
	return permissionKeyPrefix + strconv.FormatInt(roleID, 10)
}

// RedisPermissionCache stores permissions as JSON arrays under perm:role:{id}
type RedisPermissionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisPermissionCache creates a redis backed cache
func NewRedisPermissionCache(client *redis.Client, ttl time.Duration) *RedisPermissionCache {
	return &RedisPermissionCache{client: client, ttl: ttl}
}

// Get implements PermissionCache
func (c *RedisPermissionCache) Get(ctx context.Context, roleID int64) ([]string, bool, error) {
	raw, err := c.client.Get(ctx, permissionKey(roleID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read permissions from redis: %w", err)
	}

	var perms []string
	if err := json.Unmarshal([]byte(raw), &perms); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached permissions: %w", err)
	}
	return perms, true, nil
}

// Set implements PermissionCache
func (c *RedisPermissionCache) Set(ctx context.Context, roleID int64, permissions []string) error {
	raw, err := json.Marshal(permissions)
	if err != nil {
		return fmt.Errorf("failed to encode permissions: %w", err)
	}
	if err := c.client.Set(ctx, permissionKey(roleID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write permissions to redis: %w", err)
	}
	return nil
}

// Invalidate implements PermissionCache
func (c *RedisPermissionCache) Invalidate(ctx context.Context, roleID int64) error {
	if err := c.client.Del(ctx, permissionKey(roleID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached permissions: %w", err)
	}
	return nil
}

type memoryEntry struct {
	permissions []string
	expiresAt   time.Time
}

// MemoryPermissionCache is the in-process fallback used when redis is disabled
type MemoryPermissionCache struct {
	mu      sync.RWMutex
	entries map[int64]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryPermissionCache creates an in-process cache
func NewMemoryPermissionCache(ttl time.Duration) *MemoryPermissionCache {
	return &MemoryPermissionCache{
		entries: make(map[int64]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get implements PermissionCache
func (c *MemoryPermissionCache) Get(_ context.Context, roleID int64) ([]string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[roleID]
	if !ok || (c.ttl > 0 && c.now().After(e.expiresAt)) {
		return nil, false, nil
	}
	return append([]string(nil), e.permissions...), true, nil
}

// Set implements PermissionCache
func (c *MemoryPermissionCache) Set(_ context.Context, roleID int64, permissions []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[roleID] = memoryEntry{
		permissions: append([]string(nil), permissions...),
		expiresAt:   c.now().Add(c.ttl),
	}
	return nil
}

// Invalidate implements PermissionCache
func (c *MemoryPermissionCache) Invalidate(_ context.Context, roleID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, roleID)
	return nil
}
