package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/job-portal/internal/repository/cache"
	"github.com/maxviazov/job-portal/internal/repository/contract"
)

func makeLRU(t *testing.T) (cache.Cache, func()) {
	c, err := cache.NewLRU(16)
	require.NoError(t, err)
	return c, c.Purge
}

func TestLRUContract(t *testing.T) {
	contract.RunCacheContract(t, makeLRU)
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	c, err := cache.NewLRU(2)
	require.NoError(t, err)
	ctx := context.Background()

	_ = c.Set(ctx, "a", []byte("1"), time.Minute)
	_ = c.Set(ctx, "b", []byte("2"), time.Minute)
	_, _, _ = c.Get(ctx, "a") // touch a so b becomes the eviction candidate
	_ = c.Set(ctx, "c", []byte("3"), time.Minute)

	_, ok, _ := c.Get(ctx, "b")
	assert.False(t, ok)
	_, ok, _ = c.Get(ctx, "a")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestLRU_ZeroTTLNeverExpires(t *testing.T) {
	c, err := cache.NewLRU(0)
	require.NoError(t, err)
	ctx := context.Background()
	_ = c.Set(ctx, "k", []byte("v"), 0)
	time.Sleep(10 * time.Millisecond)
	_, ok, _ := c.Get(ctx, "k")
	assert.True(t, ok)
}
