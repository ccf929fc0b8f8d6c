package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oggyb/pawmatch/internal/config"
)

type RedisCache struct {
	Client   *redis.Client
	countTTL time.Duration
}

// NewRedisCache initializes Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}

	ttl := cfg.Likes.CountTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisCache{Client: redis.NewClient(opts), countTTL: ttl}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

// KeyForLikeCount generates Redis key for a user's incoming like count
func (c *RedisCache) KeyForLikeCount(userID string) string {
	return "likes:count:" + userID
}

// KeyForLikeCountVersion is bumped on every invalidation of the user's count.
func (c *RedisCache) KeyForLikeCountVersion(userID string) string {
	return "likes:count:" + userID + ":v"
}

// LikeCountVersion returns the current invalidation version. Read it before computing a count
// and hand it to UpdateLikeCount.
func (c *RedisCache) LikeCountVersion(ctx context.Context, userID string) (int64, error) {
	v, err := c.Client.Get(ctx, c.KeyForLikeCountVersion(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// UpdateLikeCount stores count unless the count was invalidated after version was read.
// A skipped write is not an error: the next read recomputes.
func (c *RedisCache) UpdateLikeCount(ctx context.Context, userID string, count, version int64) error {
	vkey := c.KeyForLikeCountVersion(userID)
	err := c.Client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, vkey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.KeyForLikeCount(userID), count, c.countTTL)
			return nil
		})
		return err
	}, vkey)
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

// GetLikeCount returns the cached count. ok is false on a cache miss.
func (c *RedisCache) GetLikeCount(ctx context.Context, userID string) (count int64, ok bool, err error) {
	key := c.KeyForLikeCount(userID)
	val, err := c.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	} else if err != nil {
		return 0, false, err
	}

	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		// corrupt entry → treat as miss
		_ = c.Client.Del(ctx, key).Err()
		return 0, false, nil
	}
	// refresh TTL on access
	_ = c.Client.Expire(ctx, key, c.countTTL).Err()
	return n, true, nil
}

// InvalidateLikeCount drops the cached count and bumps its version, so a count computed
// before this call can no longer be stored.
func (c *RedisCache) InvalidateLikeCount(ctx context.Context, userID string) error {
	_, err := c.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, c.KeyForLikeCountVersion(userID))
		pipe.Del(ctx, c.KeyForLikeCount(userID))
		return nil
	})
	return err
}
