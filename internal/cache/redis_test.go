package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/pawmatch/internal/cache"
	"github.com/oggyb/pawmatch/internal/config"
)

func setupCache(t *testing.T, ttl time.Duration) (*cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cfg := config.New()
	cfg.Redis.Addr = mr.Addr()
	cfg.Redis.Password = ""
	cfg.Redis.DB = 0
	cfg.Likes.CountTTL = ttl

	c := cache.NewRedisCache(cfg)
	t.Cleanup(func() { _ = c.Client.Close() })
	return c, mr
}

func TestLikeCountMissThenHit(t *testing.T) {
	ctx := context.Background()
	c, mr := setupCache(t, time.Hour)

	_, ok, err := c.GetLikeCount(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.UpdateLikeCount(ctx, "u1", 7, 0))

	n, ok, err := c.GetLikeCount(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(7), n)
	assert.Equal(t, time.Hour, mr.TTL("likes:count:u1"))
}

func TestLikeCountTTLRefreshedOnRead(t *testing.T) {
	ctx := context.Background()
	c, mr := setupCache(t, 10*time.Minute)

	require.NoError(t, c.UpdateLikeCount(ctx, "u1", 1, 0))
	mr.FastForward(9 * time.Minute)

	_, ok, err := c.GetLikeCount(ctx, "u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 10*time.Minute, mr.TTL("likes:count:u1"))
}

func TestLikeCountCorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	c, mr := setupCache(t, time.Hour)

	require.NoError(t, mr.Set("likes:count:u1", "not-a-number"))

	_, ok, err := c.GetLikeCount(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, mr.Exists("likes:count:u1"))
}

func TestInvalidateLikeCount(t *testing.T) {
	ctx := context.Background()
	c, mr := setupCache(t, time.Hour)

	require.NoError(t, c.UpdateLikeCount(ctx, "u1", 3, 0))
	require.NoError(t, c.InvalidateLikeCount(ctx, "u1"))
	assert.False(t, mr.Exists("likes:count:u1"))
}

func TestUpdateLikeCountSkipsStaleWrite(t *testing.T) {
	ctx := context.Background()
	c, mr := setupCache(t, time.Hour)

	version, err := c.LikeCountVersion(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), version)

	// a like lands between reading the version and writing the count
	require.NoError(t, c.InvalidateLikeCount(ctx, "u1"))

	require.NoError(t, c.UpdateLikeCount(ctx, "u1", 0, version))
	assert.False(t, mr.Exists("likes:count:u1"))

	fresh, err := c.LikeCountVersion(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), fresh)

	require.NoError(t, c.UpdateLikeCount(ctx, "u1", 1, fresh))
	n, ok, err := c.GetLikeCount(ctx, "u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(1), n)
}
