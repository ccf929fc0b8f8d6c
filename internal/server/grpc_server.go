package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/oggyb/pawmatch/internal/auth"
)

// NewGRPCServer builds a gRPC server with the interceptor chain and registers all provided services.
//
// Chain order: observe (request logger + metrics) → auth → handler,
// so rejected tokens are still logged and counted.
func NewGRPCServer(log *slog.Logger, tokens *auth.Tokens, registrars ...Registrar) *grpc.Server {
	authn := auth.NewInterceptor(tokens, log)
	obs := newObserver(log)

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(obs.unary(), authn.Unary()),
		grpc.ChainStreamInterceptor(obs.stream(), authn.Stream()),
	)

	// register all services
	for _, r := range registrars {
		r.Register(grpcServer)
	}

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, hs)

	return grpcServer
}

// Serve runs srv on lis until ctx is cancelled, then drains in-flight calls.
// Calls still running after grace (open Subscribe streams) are cut off with Stop.
func Serve(ctx context.Context, srv *grpc.Server, lis net.Listener, grace time.Duration) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(lis) }()

	select {
	case <-ctx.Done():
		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-time.After(grace):
			srv.Stop()
			<-stopped
		}
		<-errCh
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("grpc serve: %w", err)
		}
		return nil
	}
}

// Listen opens the TCP listener for the gRPC server.
func Listen(addr string) (net.Listener, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return lis, nil
}
