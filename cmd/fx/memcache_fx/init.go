package memcache_fx

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"travelmate/internal/config"
	mem "travelmate/pkg/memcache"
)

var Module = fx.Provide(provideItineraryCache)

func provideItineraryCache(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (mem.ItineraryCache, error) {
	if cfg.Cache.Driver != "redis" {
		return mem.NewMemoryCache(cfg.Cache.TTL), nil
	}

	opts, err := redisOptions(cfg.Cache)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// an unreachable redis only costs cache hits
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("redis is not reachable, itinerary cache will miss", zap.String("addr", opts.Addr), zap.Error(err))
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return mem.NewRedisCache(client, cfg.Cache.TTL, logger), nil
}

// redisOptions accepts either a redis:// URL or a bare host:port.
func redisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if strings.HasPrefix(cfg.RedisAddr, "redis://") || strings.HasPrefix(cfg.RedisAddr, "rediss://") {
		return redis.ParseURL(cfg.RedisAddr)
	}
	return &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}
