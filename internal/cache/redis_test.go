package cache_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mikheydazz/starmatch-bot/internal/cache"
	"github.com/Mikheydazz/starmatch-bot/internal/config"
)

func setupCache(t *testing.T) *cache.RedisCache {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg := config.New()
	cfg.Redis.Addr = mr.Addr()
	cfg.Redis.Password = ""

	c := cache.NewRedisCache(cfg)
	require.NoError(t, c.Ping(context.Background()))
	return c
}

func TestCounterRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := setupCache(t)
	key := c.KeyForLikeCount("u1")

	_, ok, err := c.GetCounter(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.SetCounter(ctx, key, 7))

	n, ok, err := c.GetCounter(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(7), n)

	require.NoError(t, c.Del(ctx, key))
	_, ok, err = c.GetCounter(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBumpCounterOnlyTouchesExistingKeys(t *testing.T) {
	ctx := context.Background()
	c := setupCache(t)
	key := c.KeyForReportCount("u1")

	// bumping an absent key must not create it
	c.BumpCounter(ctx, key, 1)
	_, ok, err := c.GetCounter(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.SetCounter(ctx, key, 3))
	c.BumpCounter(ctx, key, 2)

	n, ok, err := c.GetCounter(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(5), n)
}

func TestKeyNamespaces(t *testing.T) {
	c := setupCache(t)
	assert.Equal(t, "likes:count:u1", c.KeyForLikeCount("u1"))
	assert.Equal(t, "reports:count:u1", c.KeyForReportCount("u1"))
	assert.NotEqual(t, c.KeyForLikeCount("u1"), c.KeyForReportCount("u1"))
}
