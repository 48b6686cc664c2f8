package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionKey(t *testing.T) {
	assert.Equal(t, "perm:role:7", permissionKey(7))
}

func TestMemoryPermissionCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryPermissionCache(time.Minute)

	_, ok, err := c.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	perms := []string{"customers.read", "reports.export"}
	require.NoError(t, c.Set(ctx, 1, perms))
	perms[0] = "mutated"

	got, ok, err := c.Get(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"customers.read", "reports.export"}, got)

	require.NoError(t, c.Invalidate(ctx, 1))
	_, ok, _ = c.Get(ctx, 1)
	assert.False(t, ok)
}

func TestMemoryPermissionCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryPermissionCache(time.Minute)
	now := time.Date(2026, 2, 3, 9, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, 2, []string{"paq.review"}))
	now = now.Add(2 * time.Minute)

	_, ok, err := c.Get(ctx, 2)
	require.NoError(t, err)
	assert.False(t, ok)
}
