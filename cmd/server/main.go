package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/oggyb/pawmatch/internal/app"
	"github.com/oggyb/pawmatch/internal/auth"
	"github.com/oggyb/pawmatch/internal/cache"
	"github.com/oggyb/pawmatch/internal/config"
	"github.com/oggyb/pawmatch/internal/db"
	"github.com/oggyb/pawmatch/internal/logger"
	"github.com/oggyb/pawmatch/internal/metrics"
	"github.com/oggyb/pawmatch/internal/server"
	"github.com/oggyb/pawmatch/internal/service/chat"
	"github.com/oggyb/pawmatch/internal/service/feed"
	"github.com/oggyb/pawmatch/internal/service/match"
	"github.com/oggyb/pawmatch/internal/service/profile"
)

func main() {
	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L() // slog.Logger pointer

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		os.Exit(1)
	}

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(ctx); err != nil {
		log.Error("failed to connect to redis", "err", err)
		os.Exit(1)
	}
	defer redisCache.Client.Close()

	metrics.MustRegister()

	// Inject logger into app context
	appCtx := app.New(cfg, database, redisCache, log)

	registrars := []server.Registrar{
		match.NewRegistrar(appCtx),
		chat.NewRegistrar(appCtx),
		profile.NewRegistrar(appCtx),
		feed.NewRegistrar(appCtx),
	}

	grpcServer := server.NewGRPCServer(log, auth.NewTokens(cfg), registrars...)
	lis, err := server.Listen(cfg.GRPCAddr())
	if err != nil {
		log.Error("failed to start gRPC server", "err", err)
		os.Exit(1)
	}

	admin := server.NewAdminRouter(log, map[string]server.Pinger{
		"db": server.PingFunc(func(ctx context.Context) error {
			sqlDB, err := database.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
		"redis": redisCache,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting gRPC server", "addr", cfg.GRPCAddr())
		return server.Serve(gctx, grpcServer, lis, cfg.GRPC.ShutdownTimeout)
	})
	g.Go(func() error {
		log.Info("starting admin server", "addr", cfg.AdminAddr())
		return server.ServeAdmin(gctx, cfg.AdminAddr(), admin)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
