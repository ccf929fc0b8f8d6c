package feed_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/pawmatch/internal/db"
	svcErr "github.com/oggyb/pawmatch/internal/errors"
	"github.com/oggyb/pawmatch/internal/feed"
	"github.com/oggyb/pawmatch/internal/matching"
	"github.com/oggyb/pawmatch/internal/profile"
	"github.com/oggyb/pawmatch/internal/repository"
	"github.com/oggyb/pawmatch/internal/testutil"
)

type fixture struct {
	feed     *feed.Service
	resolver *matching.Resolver
}

// setupFeed seeds six profiles (u1 oldest … u6 newest) and wires the feed and resolver over one DB.
func setupFeed(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	dbase := testutil.OpenDB(t)
	profiles := repository.NewProfileRepository(dbase)
	for _, id := range []string{"u1", "u2", "u3", "u4", "u5", "u6"} {
		require.NoError(t, profiles.CreateProfile(ctx, &db.Profile{ID: id, DisplayName: "User " + id}))
		time.Sleep(2 * time.Millisecond)
	}

	cfg := testutil.Config()
	cfg.Feed.PageSize = 2

	svc := profile.NewService(profiles, testutil.Logger())
	return &fixture{
		feed: feed.NewService(cfg, profiles, svc, testutil.Logger()),
		resolver: matching.NewResolver(cfg, repository.NewLikeRepository(dbase), repository.NewMatchRepository(dbase),
			repository.NewPassRepository(dbase), nil, profiles, testutil.Logger()),
	}
}

func ids(cards []profile.Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.ID)
	}
	return out
}

func TestNextCardsPaginatesNewestFirst(t *testing.T) {
	ctx := context.Background()
	f := setupFeed(t)

	var seen []string
	var token *string
	for i := 0; i < 5; i++ {
		page, err := f.feed.NextCards(ctx, "u1", token, 0)
		require.NoError(t, err)
		seen = append(seen, ids(page.Cards)...)
		token = page.NextToken
		if token == nil {
			break
		}
	}
	assert.Equal(t, []string{"u6", "u5", "u4", "u3", "u2"}, seen)
}

func TestNextCardsExcludesDecidedAndMatched(t *testing.T) {
	ctx := context.Background()
	f := setupFeed(t)

	like := func(from, to string) {
		_, err := f.resolver.SubmitLike(ctx, from, matching.LikeRequest{
			ToUserID: to, TargetType: db.TargetProfile, TargetID: to,
		})
		require.NoError(t, err)
	}

	// u6 liked, u5 passed, u4 matched
	like("u1", "u6")
	require.NoError(t, f.resolver.Pass(ctx, "u1", "u5"))
	like("u4", "u1")
	like("u1", "u4")

	page, err := f.feed.NextCards(ctx, "u1", nil, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"u3", "u2"}, ids(page.Cards))
	assert.Nil(t, page.NextToken)
}

func TestNextCardsErrors(t *testing.T) {
	ctx := context.Background()
	f := setupFeed(t)

	_, err := f.feed.NextCards(ctx, "", nil, 0)
	assert.Equal(t, svcErr.CodeUnauthenticated, svcErr.CodeOf(err))

	bad := "not-base64!"
	_, err = f.feed.NextCards(ctx, "u1", &bad, 0)
	assert.Equal(t, svcErr.CodeInvalidRequest, svcErr.CodeOf(err))
}
