package db

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/glowdesk/salon-platform/internal/config"
)

// NewRedis connects the client used by the location-scope cache. Redis
// being down is not fatal: the cache degrades to direct lookups.
func NewRedis(cfg *config.Config, log *zap.Logger) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, scope cache will fall through", zap.Error(err))
	}

	return rdb
}
