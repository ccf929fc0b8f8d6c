package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LogConfig drives the global slog logger.
type LogConfig struct {
	Level     string
	Format    string
	Component string
	Source    bool
}

type Config struct {
	App struct {
		ENV string
	}

	Log LogConfig

	DB struct {
		Driver   string
		DSN      string
		Host     string
		Port     string
		User     string
		Password string
		Name     string
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	GRPC struct {
		Host            string
		Port            string
		ShutdownTimeout time.Duration
	}

	Admin struct {
		Host string
		Port string
	}

	Auth struct {
		JWTSecret string
		Issuer    string
		TokenTTL  time.Duration
	}

	Likes struct {
		MessageMaxLen int
		CountTTL      time.Duration
		PageSize      int
	}

	Feed struct {
		PageSize int
	}

	Chat struct {
		PageSize      int
		ContentMaxLen int
	}
}

// New builds the configuration from the environment.
// A .env file in the working directory is loaded first when present.
func New() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{}
	cfg.App.ENV = v.GetString("APP_ENV")

	// Logger
	cfg.Log.Level = v.GetString("LOG_LEVEL")
	cfg.Log.Format = v.GetString("LOG_FORMAT")
	cfg.Log.Component = v.GetString("LOG_COMPONENT")
	cfg.Log.Source = isTruthy(v.GetString("LOG_SOURCE"))

	// Database
	cfg.DB.Driver = strings.ToLower(v.GetString("DB_DRIVER"))
	cfg.DB.DSN = strings.TrimSpace(v.GetString("DB_DSN"))
	cfg.DB.Host = v.GetString("DB_HOST")
	cfg.DB.Port = v.GetString("DB_PORT")
	cfg.DB.User = v.GetString("DB_USER")
	cfg.DB.Password = v.GetString("DB_PASSWORD")
	cfg.DB.Name = v.GetString("DB_NAME")
	if cfg.DB.DSN == "" {
		cfg.DB.DSN = buildDSN(cfg)
	}

	// Redis
	cfg.Redis.Addr = v.GetString("REDIS_ADDR")
	cfg.Redis.Password = v.GetString("REDIS_PASSWORD")
	cfg.Redis.DB = v.GetInt("REDIS_DB")

	// gRPC
	cfg.GRPC.Host = v.GetString("GRPC_HOST")
	cfg.GRPC.Port = v.GetString("GRPC_PORT")
	cfg.GRPC.ShutdownTimeout = v.GetDuration("GRPC_SHUTDOWN_TIMEOUT")

	// Admin HTTP (health + metrics)
	cfg.Admin.Host = v.GetString("ADMIN_HOST")
	cfg.Admin.Port = v.GetString("ADMIN_PORT")

	// Auth
	cfg.Auth.JWTSecret = v.GetString("JWT_SECRET")
	cfg.Auth.Issuer = v.GetString("JWT_ISSUER")
	cfg.Auth.TokenTTL = v.GetDuration("JWT_TTL")

	// Domain limits
	cfg.Likes.MessageMaxLen = v.GetInt("LIKE_MESSAGE_MAX_LEN")
	cfg.Likes.CountTTL = v.GetDuration("LIKE_COUNT_TTL")
	cfg.Likes.PageSize = v.GetInt("LIKES_PAGE_SIZE")
	cfg.Feed.PageSize = v.GetInt("FEED_PAGE_SIZE")
	cfg.Chat.PageSize = v.GetInt("CHAT_PAGE_SIZE")
	cfg.Chat.ContentMaxLen = v.GetInt("CHAT_CONTENT_MAX_LEN")

	return cfg
}

// GRPCAddr is the listen address of the gRPC server.
func (c *Config) GRPCAddr() string { return c.GRPC.Host + ":" + c.GRPC.Port }

// AdminAddr is the listen address of the admin HTTP server.
func (c *Config) AdminAddr() string { return c.Admin.Host + ":" + c.Admin.Port }

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("LOG_COMPONENT", "pawmatch")

	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_PASSWORD", "root")
	v.SetDefault("DB_NAME", "pawmatch")

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("GRPC_HOST", "127.0.0.1")
	v.SetDefault("GRPC_PORT", "50051")
	v.SetDefault("GRPC_SHUTDOWN_TIMEOUT", "5s")
	v.SetDefault("ADMIN_HOST", "127.0.0.1")
	v.SetDefault("ADMIN_PORT", "8081")

	v.SetDefault("JWT_SECRET", "dev-secret-change-me-please-32-bytes")
	v.SetDefault("JWT_ISSUER", "pawmatch")
	v.SetDefault("JWT_TTL", "168h")

	v.SetDefault("LIKE_MESSAGE_MAX_LEN", 200)
	v.SetDefault("LIKE_COUNT_TTL", "1h")
	v.SetDefault("LIKES_PAGE_SIZE", 20)
	v.SetDefault("FEED_PAGE_SIZE", 10)
	v.SetDefault("CHAT_PAGE_SIZE", 50)
	v.SetDefault("CHAT_CONTENT_MAX_LEN", 2000)
}

func buildDSN(cfg *Config) string {
	switch cfg.DB.Driver {
	case "postgres":
		return fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name,
		)
	case "sqlite":
		return cfg.DB.Name + ".db"
	default:
		return fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
			cfg.DB.User, cfg.DB.Password, cfg.DB.Host, cfg.DB.Port, cfg.DB.Name,
		)
	}
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}
