package matching_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/oggyb/pawmatch/internal/db"
	svcErr "github.com/oggyb/pawmatch/internal/errors"
	"github.com/oggyb/pawmatch/internal/matching"
	"github.com/oggyb/pawmatch/internal/repository"
	"github.com/oggyb/pawmatch/internal/testutil"
)

type fixture struct {
	resolver *matching.Resolver
	db       *gorm.DB
	redis    *miniredis.Miniredis
	likes    *repository.LikeRepository
	matches  *repository.MatchRepository
	profiles *repository.ProfileRepository
}

func setupResolver(t *testing.T, wrap func(matching.LikeStore) matching.LikeStore) *fixture {
	t.Helper()

	dbase := testutil.OpenDB(t)
	rc, mr := testutil.Redis(t)

	f := &fixture{
		db:       dbase,
		redis:    mr,
		likes:    repository.NewLikeRepository(dbase),
		matches:  repository.NewMatchRepository(dbase),
		profiles: repository.NewProfileRepository(dbase),
	}

	var likes matching.LikeStore = f.likes
	if wrap != nil {
		likes = wrap(likes)
	}
	f.resolver = matching.NewResolver(testutil.Config(), likes, f.matches,
		repository.NewPassRepository(dbase), rc, f.profiles, testutil.Logger())
	return f
}

func (f *fixture) addProfile(t *testing.T, id, name string) {
	t.Helper()
	require.NoError(t, f.profiles.CreateProfile(context.Background(), &db.Profile{
		ID: id, DisplayName: name, PasswordHash: "x",
	}))
}

func (f *fixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func prompt(to, promptID string) matching.LikeRequest {
	return matching.LikeRequest{ToUserID: to, TargetType: db.TargetPrompt, TargetID: promptID}
}

func ptr(s string) *string { return &s }

func TestSubmitLikeScenario(t *testing.T) {
	ctx := context.Background()
	f := setupResolver(t, nil)

	req := prompt("b2", "p1")
	req.Message = ptr("hi")
	res, err := f.resolver.SubmitLike(ctx, "a1", req)
	require.NoError(t, err)
	assert.False(t, res.Matched)
	assert.Empty(t, res.MatchID)
	require.NotNil(t, res.Like.Message)
	assert.Equal(t, "hi", *res.Like.Message)

	res, err = f.resolver.SubmitLike(ctx, "b2", prompt("a1", "p2"))
	require.NoError(t, err)
	assert.True(t, res.Matched)
	assert.NotEmpty(t, res.MatchID)

	_, err = f.resolver.SubmitLike(ctx, "a1", prompt("b2", "p1"))
	assert.Equal(t, svcErr.CodeDuplicateLike, svcErr.CodeOf(err))

	assert.Equal(t, int64(2), f.count(t, &db.Like{}))
	assert.Equal(t, int64(1), f.count(t, &db.Match{}))
}

func TestSubmitLikeRejectsSelfLike(t *testing.T) {
	f := setupResolver(t, nil)

	_, err := f.resolver.SubmitLike(context.Background(), "a1", prompt("a1", "p1"))
	assert.Equal(t, svcErr.CodeSelfLikeRejected, svcErr.CodeOf(err))
	assert.Zero(t, f.count(t, &db.Like{}))
}

func TestSubmitLikeRequiresActor(t *testing.T) {
	f := setupResolver(t, nil)

	_, err := f.resolver.SubmitLike(context.Background(), "", prompt("b2", "p1"))
	assert.Equal(t, svcErr.CodeUnauthenticated, svcErr.CodeOf(err))
	assert.Zero(t, f.count(t, &db.Like{}))
}

func TestSubmitLikeMessageBound(t *testing.T) {
	ctx := context.Background()
	f := setupResolver(t, nil)

	req := prompt("b2", "p1")
	req.Message = ptr(strings.Repeat("é", 201))
	_, err := f.resolver.SubmitLike(ctx, "a1", req)
	assert.Equal(t, svcErr.CodeMessageTooLong, svcErr.CodeOf(err))
	assert.Zero(t, f.count(t, &db.Like{}))

	// 200 multi-byte characters are within the bound
	req.Message = ptr(strings.Repeat("é", 200))
	_, err = f.resolver.SubmitLike(ctx, "a1", req)
	require.NoError(t, err)
}

func TestSubmitLikeValidatesRequest(t *testing.T) {
	f := setupResolver(t, nil)

	tests := []struct {
		name string
		req  matching.LikeRequest
	}{
		{"missing target user", matching.LikeRequest{TargetType: db.TargetPrompt, TargetID: "p1"}},
		{"unknown target type", matching.LikeRequest{ToUserID: "b2", TargetType: "photo", TargetID: "p1"}},
		{"missing target id", matching.LikeRequest{ToUserID: "b2", TargetType: db.TargetProfile}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.resolver.SubmitLike(context.Background(), "a1", tt.req)
			assert.Equal(t, svcErr.CodeInvalidRequest, svcErr.CodeOf(err))
		})
	}
	assert.Zero(t, f.count(t, &db.Like{}))
}

func TestNoPrematureMatch(t *testing.T) {
	f := setupResolver(t, nil)

	res, err := f.resolver.SubmitLike(context.Background(), "a1", prompt("b2", "p1"))
	require.NoError(t, err)
	assert.False(t, res.Matched)
	assert.Zero(t, f.count(t, &db.Match{}))
}

func TestMatchSymmetryAndNormalization(t *testing.T) {
	orders := []struct {
		name          string
		first, second string
	}{
		{"low user likes first", "a1", "b2"},
		{"high user likes first", "b2", "a1"},
	}
	for _, o := range orders {
		t.Run(o.name, func(t *testing.T) {
			ctx := context.Background()
			f := setupResolver(t, nil)

			_, err := f.resolver.SubmitLike(ctx, o.first, prompt(o.second, "p-"+o.second))
			require.NoError(t, err)
			res, err := f.resolver.SubmitLike(ctx, o.second, matching.LikeRequest{
				ToUserID: o.first, TargetType: db.TargetProfile, TargetID: o.first,
			})
			require.NoError(t, err)
			require.True(t, res.Matched)

			m, err := f.matches.FindByPair(ctx, "a1", "b2")
			require.NoError(t, err)
			assert.Equal(t, res.MatchID, m.ID)
			assert.Equal(t, "a1", m.UserLow)
			assert.Equal(t, "b2", m.UserHigh)
			assert.Equal(t, int64(1), f.count(t, &db.Match{}))
		})
	}
}

func TestAdditionalLikesReuseExistingMatch(t *testing.T) {
	ctx := context.Background()
	f := setupResolver(t, nil)

	_, err := f.resolver.SubmitLike(ctx, "a1", prompt("b2", "p1"))
	require.NoError(t, err)
	first, err := f.resolver.SubmitLike(ctx, "b2", prompt("a1", "p2"))
	require.NoError(t, err)

	// a new like on different content after the match → same match id
	again, err := f.resolver.SubmitLike(ctx, "a1", prompt("b2", "p3"))
	require.NoError(t, err)
	assert.True(t, again.Matched)
	assert.Equal(t, first.MatchID, again.MatchID)
	assert.Equal(t, int64(1), f.count(t, &db.Match{}))
}

// rendezvousLikes makes both racing submissions persist their like before either looks for reciprocity.
type rendezvousLikes struct {
	matching.LikeStore
	arrived sync.WaitGroup
}

func (r *rendezvousLikes) InsertLike(ctx context.Context, like *db.Like) (repository.InsertOutcome, error) {
	out, err := r.LikeStore.InsertLike(ctx, like)
	r.arrived.Done()
	r.arrived.Wait()
	return out, err
}

func TestConcurrentMutualLikesShareOneMatch(t *testing.T) {
	ctx := context.Background()
	var rv *rendezvousLikes
	f := setupResolver(t, func(inner matching.LikeStore) matching.LikeStore {
		rv = &rendezvousLikes{LikeStore: inner}
		rv.arrived.Add(2)
		return rv
	})

	var resA, resB *matching.LikeOutcome
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		resA, err = f.resolver.SubmitLike(gctx, "a1", prompt("b2", "p1"))
		return err
	})
	g.Go(func() error {
		var err error
		resB, err = f.resolver.SubmitLike(gctx, "b2", prompt("a1", "p2"))
		return err
	})
	require.NoError(t, g.Wait())

	assert.True(t, resA.Matched)
	assert.True(t, resB.Matched)
	assert.Equal(t, resA.MatchID, resB.MatchID)
	assert.Equal(t, int64(1), f.count(t, &db.Match{}))
	assert.Equal(t, int64(1), f.count(t, &db.Conversation{}))
}

func TestConcurrentLikesManyPairs(t *testing.T) {
	ctx := context.Background()
	f := setupResolver(t, nil)

	users := []string{"u0", "u1", "u2", "u3", "u4", "u5"}
	g, gctx := errgroup.WithContext(ctx)
	for _, from := range users {
		for _, to := range users {
			if from == to {
				continue
			}
			from, to := from, to
			g.Go(func() error {
				_, err := f.resolver.SubmitLike(gctx, from, prompt(to, "p-"+to))
				return err
			})
		}
	}
	require.NoError(t, g.Wait())

	pairs := len(users) * (len(users) - 1) / 2
	assert.Equal(t, int64(pairs), f.count(t, &db.Match{}))
	assert.Equal(t, int64(pairs), f.count(t, &db.Conversation{}))
}

type failingLikes struct {
	matching.LikeStore
}

func (failingLikes) InsertLike(context.Context, *db.Like) (repository.InsertOutcome, error) {
	return 0, errors.New("connection reset")
}

func TestSubmitLikePersistenceError(t *testing.T) {
	f := setupResolver(t, func(inner matching.LikeStore) matching.LikeStore {
		return failingLikes{LikeStore: inner}
	})

	_, err := f.resolver.SubmitLike(context.Background(), "a1", prompt("b2", "p1"))
	assert.Equal(t, svcErr.CodePersistence, svcErr.CodeOf(err))
}

func TestPassNeverMatches(t *testing.T) {
	ctx := context.Background()
	f := setupResolver(t, nil)

	_, err := f.resolver.SubmitLike(ctx, "b2", prompt("a1", "p2"))
	require.NoError(t, err)

	require.NoError(t, f.resolver.Pass(ctx, "a1", "b2"))
	require.NoError(t, f.resolver.Pass(ctx, "a1", "b2"))

	assert.Equal(t, int64(1), f.count(t, &db.Like{}))
	assert.Zero(t, f.count(t, &db.Match{}))
	assert.Equal(t, int64(1), f.count(t, &db.Pass{}))
}

func TestPassValidation(t *testing.T) {
	f := setupResolver(t, nil)
	ctx := context.Background()

	assert.Equal(t, svcErr.CodeUnauthenticated, svcErr.CodeOf(f.resolver.Pass(ctx, "", "b2")))
	assert.Equal(t, svcErr.CodeInvalidRequest, svcErr.CodeOf(f.resolver.Pass(ctx, "a1", "a1")))
	assert.Equal(t, svcErr.CodeInvalidRequest, svcErr.CodeOf(f.resolver.Pass(ctx, "a1", "")))
}
