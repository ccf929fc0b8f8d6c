package app

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/oggyb/pawmatch/internal/cache"
	"github.com/oggyb/pawmatch/internal/config"
	"github.com/oggyb/pawmatch/internal/realtime"
)

// AppContext holds shared dependencies (Config, DB, Redis, realtime broker, Logger)
type AppContext struct {
	Config     *config.Config
	DB         *gorm.DB
	RedisCache *cache.RedisCache
	Broker     *realtime.Broker
	Logger     *slog.Logger
}

// New creates a new AppContext. The realtime broker shares the Redis client.
func New(cfg *config.Config, db *gorm.DB, rdb *cache.RedisCache, logger *slog.Logger) *AppContext {
	return &AppContext{
		Config:     cfg,
		DB:         db,
		RedisCache: rdb,
		Broker:     realtime.NewBroker(rdb.Client, logger),
		Logger:     logger,
	}
}
