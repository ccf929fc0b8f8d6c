package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/oggyb/pawmatch/internal/logger"
	"github.com/oggyb/pawmatch/internal/metrics"
)

// observer attaches a request-scoped logger to every call and records its outcome.
type observer struct {
	log *slog.Logger
}

func newObserver(log *slog.Logger) *observer {
	return &observer{log: log}
}

func (o *observer) unary() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx, log := o.begin(ctx, info.FullMethod)
		start := time.Now()

		resp, err := handler(ctx, req)
		o.finish(log, info.FullMethod, start, err)
		return resp, err
	}
}

func (o *observer) stream() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		ctx, log := o.begin(ss.Context(), info.FullMethod)
		start := time.Now()

		err := handler(srv, &ctxStream{ServerStream: ss, ctx: ctx})
		o.finish(log, info.FullMethod, start, err)
		return err
	}
}

func (o *observer) begin(ctx context.Context, method string) (context.Context, *slog.Logger) {
	log := o.log.With("method", method, "request_id", uuid.NewString())
	return logger.NewContext(ctx, log), log
}

func (o *observer) finish(log *slog.Logger, method string, start time.Time, err error) {
	elapsed := time.Since(start)
	code := status.Code(err)

	metrics.GRPCRequestsTotal.WithLabelValues(method, code.String()).Inc()
	metrics.GRPCRequestDurationSeconds.WithLabelValues(method).Observe(elapsed.Seconds())

	if err != nil {
		log.Warn("rpc failed", "code", code.String(), "duration", elapsed, "err", err)
		return
	}
	log.Debug("rpc done", "duration", elapsed)
}

type ctxStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *ctxStream) Context() context.Context { return s.ctx }
