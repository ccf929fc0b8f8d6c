package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/oggyb/pawmatch/internal/auth"
	"github.com/oggyb/pawmatch/internal/db"
	"github.com/oggyb/pawmatch/internal/matching"
	"github.com/oggyb/pawmatch/internal/repository"
	"github.com/oggyb/pawmatch/internal/seed"
	"github.com/oggyb/pawmatch/internal/testutil"
)

func setupSeed(t *testing.T) (*gorm.DB, *matching.Resolver) {
	t.Helper()
	gdb := testutil.OpenDB(t)
	rc, _ := testutil.Redis(t)
	resolver := matching.NewResolver(
		testutil.Config(),
		repository.NewLikeRepository(gdb),
		repository.NewMatchRepository(gdb),
		repository.NewPassRepository(gdb),
		rc,
		repository.NewProfileRepository(gdb),
		testutil.Logger(),
	)
	return gdb, resolver
}

func TestRunSeedsConsistentData(t *testing.T) {
	ctx := context.Background()
	gdb, resolver := setupSeed(t)

	sum, err := seed.Run(ctx, gdb, resolver, testutil.Logger(), seed.Options{Users: 12, Seed: 7})
	require.NoError(t, err)

	assert.Equal(t, 12, sum.Profiles)
	assert.Equal(t, 12, sum.Pets)
	assert.Equal(t, 24, sum.Answers)
	assert.Positive(t, sum.Likes)
	assert.Positive(t, sum.Matches)

	var likes, conversations int64
	require.NoError(t, gdb.Model(&db.Like{}).Count(&likes).Error)
	require.NoError(t, gdb.Model(&db.Conversation{}).Count(&conversations).Error)
	assert.Equal(t, int64(sum.Likes), likes)
	assert.Equal(t, int64(sum.Matches), conversations, "every match has its conversation")

	// every match is backed by likes in both directions
	var matches []db.Match
	require.NoError(t, gdb.Find(&matches).Error)
	for _, m := range matches {
		for _, dir := range [][2]string{{m.UserLow, m.UserHigh}, {m.UserHigh, m.UserLow}} {
			var n int64
			require.NoError(t, gdb.Model(&db.Like{}).
				Where("from_user_id = ? AND to_user_id = ?", dir[0], dir[1]).Count(&n).Error)
			assert.Positive(t, n, "like %s → %s", dir[0], dir[1])
		}
	}
}

func TestRunResetsPreviousData(t *testing.T) {
	ctx := context.Background()
	gdb, resolver := setupSeed(t)

	_, err := seed.Run(ctx, gdb, resolver, testutil.Logger(), seed.Options{Users: 6, Seed: 1})
	require.NoError(t, err)
	sum, err := seed.Run(ctx, gdb, resolver, testutil.Logger(), seed.Options{Users: 6, Seed: 2})
	require.NoError(t, err)

	var profiles, matches int64
	require.NoError(t, gdb.Model(&db.Profile{}).Count(&profiles).Error)
	require.NoError(t, gdb.Model(&db.Match{}).Count(&matches).Error)
	assert.Equal(t, int64(6), profiles)
	assert.Equal(t, int64(sum.Matches), matches)
}

func TestSeededAccountsCanLogIn(t *testing.T) {
	ctx := context.Background()
	gdb, resolver := setupSeed(t)

	_, err := seed.Run(ctx, gdb, resolver, testutil.Logger(), seed.Options{Users: 3, Seed: 1})
	require.NoError(t, err)

	tokens := auth.NewTokens(testutil.Config())
	raw, err := auth.Login(ctx, repository.NewProfileRepository(gdb), tokens, seed.Email(2), seed.Password)
	require.NoError(t, err)

	sub, err := tokens.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, seed.UserID(2), sub)
}
