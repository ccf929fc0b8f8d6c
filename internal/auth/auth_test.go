package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/oggyb/pawmatch/internal/auth"
	"github.com/oggyb/pawmatch/internal/db"
	"github.com/oggyb/pawmatch/internal/repository"
	"github.com/oggyb/pawmatch/internal/testutil"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	tokens := auth.NewTokens(testutil.Config())

	raw, err := tokens.Issue("a1")
	require.NoError(t, err)

	sub, err := tokens.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "a1", sub)
}

func TestVerifyRejectsForeignAndExpiredTokens(t *testing.T) {
	cfg := testutil.Config()
	tokens := auth.NewTokens(cfg)

	other := testutil.Config()
	other.Auth.JWTSecret = "another-secret-another-secret-123"
	foreign, err := auth.NewTokens(other).Issue("a1")
	require.NoError(t, err)

	_, err = tokens.Verify(foreign)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	short := testutil.Config()
	short.Auth.TokenTTL = time.Nanosecond
	expired, err := auth.NewTokens(short).Issue("a1")
	require.NoError(t, err)
	time.Sleep(time.Second)

	_, err = tokens.Verify(expired)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = tokens.Verify("garbage")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func callUnary(t *testing.T, i *auth.Interceptor, md metadata.MD) (string, error) {
	t.Helper()

	ctx := context.Background()
	if md != nil {
		ctx = metadata.NewIncomingContext(ctx, md)
	}
	var actor string
	_, err := i.Unary()(ctx, nil, &grpc.UnaryServerInfo{FullMethod: "/pawmatch.v1.MatchService/SubmitLike"},
		func(ctx context.Context, _ any) (any, error) {
			actor = auth.ActorFrom(ctx)
			return nil, nil
		})
	return actor, err
}

func TestInterceptorAttachesActor(t *testing.T) {
	tokens := auth.NewTokens(testutil.Config())
	i := auth.NewInterceptor(tokens, testutil.Logger())

	raw, err := tokens.Issue("b2")
	require.NoError(t, err)

	actor, err := callUnary(t, i, metadata.Pairs("authorization", "Bearer "+raw))
	require.NoError(t, err)
	assert.Equal(t, "b2", actor)
}

func TestInterceptorAnonymousPassesThrough(t *testing.T) {
	i := auth.NewInterceptor(auth.NewTokens(testutil.Config()), testutil.Logger())

	actor, err := callUnary(t, i, nil)
	require.NoError(t, err)
	assert.Empty(t, actor)
}

func TestInterceptorRejectsBadToken(t *testing.T) {
	i := auth.NewInterceptor(auth.NewTokens(testutil.Config()), testutil.Logger())

	_, err := callUnary(t, i, metadata.Pairs("authorization", "Bearer nope"))
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = callUnary(t, i, metadata.Pairs("authorization", "Basic abc"))
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	profiles := repository.NewProfileRepository(testutil.OpenDB(t))
	tokens := auth.NewTokens(testutil.Config())

	hash, err := auth.HashPassword("password")
	require.NoError(t, err)
	email := "alice@example.com"
	require.NoError(t, profiles.CreateProfile(ctx, &db.Profile{
		ID: "a1", DisplayName: "Alice", Email: &email, PasswordHash: hash,
	}))

	raw, err := auth.Login(ctx, profiles, tokens, "alice@example.com", "password")
	require.NoError(t, err)
	sub, err := tokens.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "a1", sub)

	_, err = auth.Login(ctx, profiles, tokens, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, auth.ErrBadCredentials)

	_, err = auth.Login(ctx, profiles, tokens, "nobody@example.com", "password")
	assert.ErrorIs(t, err, auth.ErrBadCredentials)
}
