package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/pawmatch/internal/db"
	"github.com/oggyb/pawmatch/internal/repository"
	"github.com/oggyb/pawmatch/internal/testutil"
)

func like(from, to, targetID string) *db.Like {
	return &db.Like{FromUserID: from, ToUserID: to, TargetType: db.TargetPrompt, TargetID: targetID}
}

func TestInsertLikeRejectsDuplicateTuple(t *testing.T) {
	ctx := context.Background()
	dbase := testutil.OpenDB(t)
	repo := repository.NewLikeRepository(dbase)

	outcome, err := repo.InsertLike(ctx, like("a1", "b2", "p1"))
	require.NoError(t, err)
	assert.Equal(t, repository.Inserted, outcome)

	outcome, err = repo.InsertLike(ctx, like("a1", "b2", "p1"))
	require.NoError(t, err)
	assert.Equal(t, repository.AlreadyExists, outcome)

	// same users, different target → new like
	outcome, err = repo.InsertLike(ctx, &db.Like{FromUserID: "a1", ToUserID: "b2", TargetType: db.TargetProfile, TargetID: "b2"})
	require.NoError(t, err)
	assert.Equal(t, repository.Inserted, outcome)

	var n int64
	require.NoError(t, dbase.Model(&db.Like{}).Where("target_id = ?", "p1").Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestHasLikedUserIgnoresTarget(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewLikeRepository(testutil.OpenDB(t))

	_, err := repo.InsertLike(ctx, like("b2", "a1", "p2"))
	require.NoError(t, err)

	ok, err := repo.HasLikedUser(ctx, "b2", "a1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.HasLikedUser(ctx, "a1", "b2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetIncomingExcludesPassedAndPaginates(t *testing.T) {
	ctx := context.Background()
	dbase := testutil.OpenDB(t)
	likes := repository.NewLikeRepository(dbase)
	passes := repository.NewPassRepository(dbase)

	for _, from := range []string{"u1", "u2", "u3"} {
		_, err := likes.InsertLike(ctx, like(from, "r9", "p-"+from))
		require.NoError(t, err)
	}
	// recipient passed u2 → excluded
	require.NoError(t, passes.UpsertPass(ctx, "r9", "u2"))

	page1, next, err := likes.GetIncoming(ctx, "r9", nil, 1)
	require.NoError(t, err)
	require.Len(t, page1, 1)
	require.NotNil(t, next)

	page2, next2, err := likes.GetIncoming(ctx, "r9", next, 1)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Nil(t, next2)

	seen := []string{page1[0].FromUserID, page2[0].FromUserID}
	assert.ElementsMatch(t, []string{"u1", "u3"}, seen)

	count, err := likes.CountIncoming(ctx, "r9")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestUpsertPassIsIdempotent(t *testing.T) {
	ctx := context.Background()
	dbase := testutil.OpenDB(t)
	repo := repository.NewPassRepository(dbase)

	require.NoError(t, repo.UpsertPass(ctx, "a1", "b2"))
	require.NoError(t, repo.UpsertPass(ctx, "a1", "b2"))

	var n int64
	require.NoError(t, dbase.Model(&db.Pass{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	ok, err := repo.HasPassed(ctx, "a1", "b2")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInsertMatchOncePerPair(t *testing.T) {
	ctx := context.Background()
	dbase := testutil.OpenDB(t)
	repo := repository.NewMatchRepository(dbase)

	first := &db.Match{UserLow: "a1", UserHigh: "b2"}
	outcome, err := repo.InsertMatch(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, repository.Inserted, outcome)

	second := &db.Match{UserLow: "a1", UserHigh: "b2"}
	outcome, err = repo.InsertMatch(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, repository.AlreadyExists, outcome)

	found, err := repo.FindByPair(ctx, "a1", "b2")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)

	n, err := repo.CountForPair(ctx, "a1", "b2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// conversation shares the match id
	conv, err := repository.NewConversationRepository(dbase).Find(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "a1", conv.UserLow)
	assert.Equal(t, "b2", conv.UserHigh)

	var convs int64
	require.NoError(t, dbase.Model(&db.Conversation{}).Count(&convs).Error)
	assert.Equal(t, int64(1), convs)
}

func TestInsertMatchRejectsUnorderedPair(t *testing.T) {
	repo := repository.NewMatchRepository(testutil.OpenDB(t))

	_, err := repo.InsertMatch(context.Background(), &db.Match{UserLow: "b2", UserHigh: "a1"})
	assert.Error(t, err)
}

func TestFindByPairNotFound(t *testing.T) {
	repo := repository.NewMatchRepository(testutil.OpenDB(t))

	_, err := repo.FindByPair(context.Background(), "a1", "b2")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
