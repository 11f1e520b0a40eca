package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"feedsng/internal/model"
)

func TestMemoryCache_SetGetDelete(t *testing.T) {
	c := NewMemory(time.Minute)
	defer c.Close()
	ctx := context.Background()

	_, ok := c.Get(ctx, 1)
	require.False(t, ok)

	c.Set(ctx, model.Feed{ID: 1, Name: "Blog", URL: "http://x/feed"})
	got, ok := c.Get(ctx, 1)
	require.True(t, ok)
	require.Equal(t, "Blog", got.Name)

	c.Delete(ctx, 1)
	_, ok = c.Get(ctx, 1)
	require.False(t, ok)
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemory(10 * time.Millisecond)
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, model.Feed{ID: 2, Name: "Short lived"})
	time.Sleep(20 * time.Millisecond)
	_, ok := c.Get(ctx, 2)
	require.False(t, ok)

	c.removeExpired()
	c.mu.RLock()
	require.Empty(t, c.items)
	c.mu.RUnlock()
}

func TestMemoryCache_CloseTwice(t *testing.T) {
	c := NewMemory(time.Minute)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
}

// Runs against a live server only when FEEDSNG_TEST_REDIS_ADDR is set.
func TestRedisCache_SetGetDelete(t *testing.T) {
	addr := os.Getenv("FEEDSNG_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("FEEDSNG_TEST_REDIS_ADDR not set")
	}
	c, err := NewRedis(RedisConfig{Addr: addr, Prefix: "feedsng-test:"}, time.Minute)
	require.NoError(t, err)
	defer c.Close()
	ctx := context.Background()

	refreshed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.Set(ctx, model.Feed{ID: 3, Name: "Redis", URL: "http://r/feed", LastRefreshedAt: &refreshed})
	got, ok := c.Get(ctx, 3)
	require.True(t, ok)
	require.Equal(t, "Redis", got.Name)
	require.True(t, refreshed.Equal(*got.LastRefreshedAt))

	c.Delete(ctx, 3)
	_, ok = c.Get(ctx, 3)
	require.False(t, ok)
}

func TestNewRedis_Unreachable(t *testing.T) {
	_, err := NewRedis(RedisConfig{Addr: "127.0.0.1:1"}, time.Minute)
	require.Error(t, err)
}
