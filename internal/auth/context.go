package auth

import "context"

type actorKey struct{}

// WithActor attaches the authenticated user id to ctx.
func WithActor(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

// ActorFrom returns the authenticated user id, or "" when the caller is anonymous.
func ActorFrom(ctx context.Context) string {
	v, _ := ctx.Value(actorKey{}).(string)
	return v
}
