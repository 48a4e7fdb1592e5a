package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/srgjo27/flight_booking/internal/core/ports"
)

const favoritesPrefix = "favorites:"

// FavoriteCache fronts a durable FavoriteRepository with Redis. Without a
// backing repository Redis is the only store and entries never expire.
type FavoriteCache struct {
	client *redis.Client
	next   ports.FavoriteRepository
	ttl    time.Duration
	logger *zap.Logger
}

var _ ports.FavoriteRepository = (*FavoriteCache)(nil)

func NewFavoriteCache(client *redis.Client, next ports.FavoriteRepository, ttl time.Duration, logger *zap.Logger) *FavoriteCache {
	if next == nil {
		ttl = 0
	}
	return &FavoriteCache{client: client, next: next, ttl: ttl, logger: logger.Named("favorites")}
}

func (c *FavoriteCache) LoadFavorites(ctx context.Context, deviceID string) ([]int64, error) {
	key := favoritesPrefix + deviceID

	data, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		var ids []int64
		if err := json.Unmarshal([]byte(data), &ids); err == nil {
			return ids, nil
		}
		c.logger.Warn("discarding corrupt favorites entry", zap.String("device_id", deviceID))
	case errors.Is(err, redis.Nil):
	default:
		if c.next == nil {
			return nil, fmt.Errorf("failed to read favorites: %w", err)
		}
		c.logger.Warn("favorites cache unavailable", zap.Error(err))
	}

	if c.next == nil {
		return []int64{}, nil
	}

	ids, err := c.next.LoadFavorites(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, ids)
	return ids, nil
}

// SaveFavorites writes through to the backing repository and then refreshes
// the cache entry.
func (c *FavoriteCache) SaveFavorites(ctx context.Context, deviceID string, ids []int64) error {
	key := favoritesPrefix + deviceID

	if c.next == nil {
		b, err := json.Marshal(ids)
		if err != nil {
			return err
		}
		if err := c.client.Set(ctx, key, b, 0).Err(); err != nil {
			return fmt.Errorf("failed to save favorites: %w", err)
		}
		return nil
	}

	if err := c.next.SaveFavorites(ctx, deviceID, ids); err != nil {
		return err
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Warn("invalidating favorites cache failed", zap.String("device_id", deviceID), zap.Error(err))
	}
	return nil
}

func (c *FavoriteCache) store(ctx context.Context, key string, ids []int64) {
	b, err := json.Marshal(ids)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
		c.logger.Warn("caching favorites failed", zap.String("key", key), zap.Error(err))
	}
}
