package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/oggyb/pawmatch/internal/cache"
	"github.com/oggyb/pawmatch/internal/config"
	"github.com/oggyb/pawmatch/internal/db"
	"github.com/oggyb/pawmatch/internal/logger"
	"github.com/oggyb/pawmatch/internal/matching"
	"github.com/oggyb/pawmatch/internal/repository"
	"github.com/oggyb/pawmatch/internal/seed"
)

func main() {
	users := flag.Int("users", 20, "number of demo profiles")
	randSeed := flag.Int64("seed", time.Now().UnixNano(), "random seed for decisions")
	flag.Parse()

	// Load configuration
	cfg := config.New()
	logger.InitFromConfig(cfg)
	ctx := context.Background()

	database, err := db.NewDB(cfg)
	if err != nil {
		log.Fatalf("failed to init db: %v", err)
	}

	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(ctx); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisCache.Client.Close()

	resolver := matching.NewResolver(
		cfg,
		repository.NewLikeRepository(database),
		repository.NewMatchRepository(database),
		repository.NewPassRepository(database),
		redisCache,
		repository.NewProfileRepository(database),
		logger.L(),
	)

	sum, err := seed.Run(ctx, database, resolver, logger.L(), seed.Options{Users: *users, Seed: *randSeed})
	if err != nil {
		log.Fatalf("failed to seed: %v", err)
	}

	log.Printf("Seeding completed: %d profiles, %d likes, %d passes, %d matches. Log in as %s / %q.",
		sum.Profiles, sum.Likes, sum.Passes, sum.Matches, seed.Email(1), seed.Password)
}
