package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lumina/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient connects to Redis. An empty Addr means the cache is
// disabled and (nil, nil) is returned.
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.Addr})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis connection established", zap.String("addr", cfg.Addr))
	return client, nil
}

// TipsCache stores generated goal tips per user and goals fingerprint.
// Every failure degrades to a miss; the cache never fails a request.
type TipsCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewTipsCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *TipsCache {
	return &TipsCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func tipsKey(userID, fingerprint string) string {
	return fmt.Sprintf("tips:%s:%s", userID, fingerprint)
}

func (c *TipsCache) Get(ctx context.Context, userID, fingerprint string) ([]string, bool) {
	raw, err := c.client.Get(ctx, tipsKey(userID, fingerprint)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Tips cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var tips []string
	if err := json.Unmarshal([]byte(raw), &tips); err != nil {
		c.logger.Warn("Tips cache entry corrupted", zap.Error(err))
		return nil, false
	}
	return tips, true
}

func (c *TipsCache) Set(ctx context.Context, userID, fingerprint string, tips []string) {
	raw, err := json.Marshal(tips)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, tipsKey(userID, fingerprint), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("Tips cache write failed", zap.Error(err))
	}
}
