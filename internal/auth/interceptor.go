package auth

import (
	"context"
	"log/slog"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// Interceptor resolves the bearer token of every call into an actor on the context.
//
// Behavior:
//   - No authorization header → the call proceeds anonymously and the service reports Unauthenticated.
//   - Malformed or invalid token → rejected with codes.Unauthenticated before reaching the service.
//   - Health checks bypass authentication.
type Interceptor struct {
	tokens *Tokens
	log    *slog.Logger
}

func NewInterceptor(tokens *Tokens, log *slog.Logger) *Interceptor {
	return &Interceptor{tokens: tokens, log: log}
}

func (i *Interceptor) Unary() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if skip(info.FullMethod) {
			return handler(ctx, req)
		}
		ctx, err := i.authenticate(ctx, info.FullMethod)
		if err != nil {
			return nil, err
		}
		return handler(ctx, req)
	}
}

func (i *Interceptor) Stream() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		if skip(info.FullMethod) {
			return handler(srv, ss)
		}
		ctx, err := i.authenticate(ss.Context(), info.FullMethod)
		if err != nil {
			return err
		}
		return handler(srv, &actorStream{ServerStream: ss, ctx: ctx})
	}
}

func (i *Interceptor) authenticate(ctx context.Context, method string) (context.Context, error) {
	md, _ := metadata.FromIncomingContext(ctx)
	values := md.Get("authorization")
	if len(values) == 0 || strings.TrimSpace(values[0]) == "" {
		return ctx, nil
	}

	raw := values[0]
	if !strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		i.log.Warn("auth malformed header", "method", method)
		return nil, status.Error(codes.Unauthenticated, "malformed authorization header")
	}

	sub, err := i.tokens.Verify(strings.TrimSpace(raw[len("bearer "):]))
	if err != nil {
		i.log.Warn("auth invalid token", "method", method, "err", err)
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}
	return WithActor(ctx, sub), nil
}

func skip(method string) bool {
	return strings.HasPrefix(method, "/grpc.health.v1.Health/")
}

type actorStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *actorStream) Context() context.Context { return s.ctx }

// BearerCredentials attaches a static token to every outgoing call.
type BearerCredentials struct {
	Token    string
	Insecure bool
}

func (c BearerCredentials) GetRequestMetadata(context.Context, ...string) (map[string]string, error) {
	return map[string]string{"authorization": "Bearer " + c.Token}, nil
}

func (c BearerCredentials) RequireTransportSecurity() bool { return !c.Insecure }
