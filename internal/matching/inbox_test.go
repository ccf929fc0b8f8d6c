package matching_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	svcErr "github.com/oggyb/pawmatch/internal/errors"
	"github.com/oggyb/pawmatch/internal/matching"
)

func TestListIncomingLikesWithNamesAndPasses(t *testing.T) {
	ctx := context.Background()
	f := setupResolver(t, nil)
	f.addProfile(t, "a1", "Alice")
	f.addProfile(t, "c3", "Carol")

	_, err := f.resolver.SubmitLike(ctx, "a1", prompt("b2", "p1"))
	require.NoError(t, err)
	_, err = f.resolver.SubmitLike(ctx, "c3", prompt("b2", "p1"))
	require.NoError(t, err)
	_, err = f.resolver.SubmitLike(ctx, "z9", prompt("b2", "p1"))
	require.NoError(t, err)

	require.NoError(t, f.resolver.Pass(ctx, "b2", "c3"))

	page, err := f.resolver.ListIncomingLikes(ctx, "b2", nil)
	require.NoError(t, err)
	require.Len(t, page.Likes, 2)
	assert.Nil(t, page.NextToken)

	names := map[string]string{}
	for _, l := range page.Likes {
		names[l.FromUserID] = l.CounterpartName
	}
	assert.Equal(t, map[string]string{"a1": "Alice", "z9": "Unknown User"}, names)
}

func TestListOutgoingLikes(t *testing.T) {
	ctx := context.Background()
	f := setupResolver(t, nil)
	f.addProfile(t, "b2", "Bob")

	_, err := f.resolver.SubmitLike(ctx, "a1", prompt("b2", "p1"))
	require.NoError(t, err)

	page, err := f.resolver.ListOutgoingLikes(ctx, "a1", nil)
	require.NoError(t, err)
	require.Len(t, page.Likes, 1)
	assert.Equal(t, "Bob", page.Likes[0].CounterpartName)
}

func TestListIncomingLikesRejectsBadToken(t *testing.T) {
	f := setupResolver(t, nil)
	bad := "%%%"

	_, err := f.resolver.ListIncomingLikes(context.Background(), "b2", &bad)
	assert.Equal(t, svcErr.CodeInvalidRequest, svcErr.CodeOf(err))
}

func TestCountIncomingLikesCacheFirst(t *testing.T) {
	ctx := context.Background()
	f := setupResolver(t, nil)

	_, err := f.resolver.SubmitLike(ctx, "a1", prompt("b2", "p1"))
	require.NoError(t, err)

	n, err := f.resolver.CountIncomingLikes(ctx, "b2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	cached, err := f.redis.Get("likes:count:b2")
	require.NoError(t, err)
	assert.Equal(t, "1", cached)

	// a stale cache entry wins until it is invalidated
	require.NoError(t, f.redis.Set("likes:count:b2", "5"))
	n, err = f.resolver.CountIncomingLikes(ctx, "b2")
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	// a new like invalidates the recipient's entry
	_, err = f.resolver.SubmitLike(ctx, "c3", prompt("b2", "p1"))
	require.NoError(t, err)
	assert.False(t, f.redis.Exists("likes:count:b2"))

	n, err = f.resolver.CountIncomingLikes(ctx, "b2")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// passing a liker invalidates the actor's own entry
	require.NoError(t, f.resolver.Pass(ctx, "b2", "c3"))
	n, err = f.resolver.CountIncomingLikes(ctx, "b2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

// countHookLikes runs afterCount once, right after the DB count and before the cache write.
type countHookLikes struct {
	matching.LikeStore
	afterCount func()
}

func (c *countHookLikes) CountIncoming(ctx context.Context, recipientID string) (int64, error) {
	n, err := c.LikeStore.CountIncoming(ctx, recipientID)
	if hook := c.afterCount; hook != nil {
		c.afterCount = nil
		hook()
	}
	return n, err
}

func TestCountIncomingLikesNotPoisonedByConcurrentLike(t *testing.T) {
	ctx := context.Background()
	hooked := &countHookLikes{}
	f := setupResolver(t, func(inner matching.LikeStore) matching.LikeStore {
		hooked.LikeStore = inner
		return hooked
	})
	hooked.afterCount = func() {
		_, err := f.resolver.SubmitLike(ctx, "a1", prompt("b2", "p1"))
		require.NoError(t, err)
	}

	// counted before the like landed
	n, err := f.resolver.CountIncomingLikes(ctx, "b2")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.False(t, f.redis.Exists("likes:count:b2"), "stale count must not be cached")

	for i := 0; i < 3; i++ {
		n, err = f.resolver.CountIncomingLikes(ctx, "b2")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	}
}

func TestCountIncomingLikesFallsBackWhenRedisDown(t *testing.T) {
	ctx := context.Background()
	f := setupResolver(t, nil)

	_, err := f.resolver.SubmitLike(ctx, "a1", prompt("b2", "p1"))
	require.NoError(t, err)

	f.redis.SetError("ERR redis is down")

	n, err := f.resolver.CountIncomingLikes(ctx, "b2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestListMatches(t *testing.T) {
	ctx := context.Background()
	f := setupResolver(t, nil)
	f.addProfile(t, "b2", "Bob")

	_, err := f.resolver.SubmitLike(ctx, "a1", prompt("b2", "p1"))
	require.NoError(t, err)
	res, err := f.resolver.SubmitLike(ctx, "b2", prompt("a1", "p2"))
	require.NoError(t, err)

	matches, err := f.resolver.ListMatches(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, res.MatchID, matches[0].ID)
	assert.Equal(t, "b2", matches[0].OtherUserID)
	assert.Equal(t, "Bob", matches[0].OtherName)

	_, err = f.resolver.ListMatches(ctx, "")
	assert.Equal(t, svcErr.CodeUnauthenticated, svcErr.CodeOf(err))

	none, err := f.resolver.ListMatches(ctx, "c3")
	require.NoError(t, err)
	assert.Empty(t, none)
}
