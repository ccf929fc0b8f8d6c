// Package testutil wires throwaway SQLite and Redis instances for package tests.
package testutil

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/oggyb/pawmatch/internal/cache"
	"github.com/oggyb/pawmatch/internal/config"
	"github.com/oggyb/pawmatch/internal/db"
)

// dbSeq keeps repeated OpenDB calls within one test on separate databases.
var dbSeq atomic.Int64

// OpenDB spins up an in-memory SQLite DB private to the test and applies migrations.
// A single connection serializes statements so concurrent tests never hit SQLITE_LOCKED,
// while goroutines still interleave between statements.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=1", name, dbSeq.Add(1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		NowFunc:                db.Now,
		TranslateError:         true,
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))
	return gdb
}

// Redis starts a miniredis and returns a cache bound to it.
func Redis(t *testing.T) (*cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cfg := config.New()
	cfg.Redis.Addr = mr.Addr()
	cfg.Redis.Password = ""
	cfg.Redis.DB = 0

	rc := cache.NewRedisCache(cfg)
	t.Cleanup(func() { _ = rc.Client.Close() })
	return rc, mr
}

// Logger discards logs in tests.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Config returns the default configuration with test-friendly limits.
func Config() *config.Config {
	cfg := config.New()
	cfg.DB.Driver = "sqlite"
	cfg.Auth.JWTSecret = "test-secret-test-secret-test-secret"
	return cfg
}
