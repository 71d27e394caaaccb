package memcache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"travelmate/internal/models/response_models"
)

const redisKeyPrefix = "travelmate:itinerary:"

// RedisCache shares cached itineraries between instances. Redis failures are
// logged and reported as misses.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisCache) Get(ctx context.Context, key string) (response_models.TravelItinerary, bool) {
	var it response_models.TravelItinerary

	data, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("redis get failed", zap.String("key", key), zap.Error(err))
		}
		return it, false
	}

	if err := json.Unmarshal(data, &it); err != nil {
		c.logger.Warn("dropping unreadable cache entry", zap.String("key", key), zap.Error(err))
		return it, false
	}
	return it, true
}

func (c *RedisCache) Set(ctx context.Context, key string, it response_models.TravelItinerary) {
	data, err := json.Marshal(it)
	if err != nil {
		c.logger.Warn("encoding cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, redisKeyPrefix+key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("redis set failed", zap.String("key", key), zap.Error(err))
	}
}
