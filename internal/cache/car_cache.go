package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/metrics"
	"carrental-backend/internal/repository"

	"github.com/redis/go-redis/v9"
)

const carKeyPrefix = "carrental:car:%d"

// CarCache is a read-through cache of car records (and so their rate cards)
// in front of a CarRepository. Redis failures fall back to the repository.
type CarCache struct {
	next    repository.CarRepository
	rdb     redis.Cmdable
	ttl     time.Duration
	metrics *metrics.Metrics
}

func NewCarCache(next repository.CarRepository, rdb redis.Cmdable, ttl time.Duration, m *metrics.Metrics) *CarCache {
	return &CarCache{next: next, rdb: rdb, ttl: ttl, metrics: m}
}

func (c *CarCache) GetByID(ctx context.Context, id int32) (*domain.Car, error) {
	key := carKey(id)

	val, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var car domain.Car
		if jerr := json.Unmarshal(val, &car); jerr == nil {
			c.metrics.CacheLookup(metrics.CacheHit)
			return &car, nil
		}
		logger.Warn("Discarding undecodable cached car", "key", key)
		c.metrics.CacheLookup(metrics.CacheError)
	case errors.Is(err, redis.Nil):
		c.metrics.CacheLookup(metrics.CacheMiss)
	default:
		logger.ExternalServiceResult("redis", "get", err, "key", key)
		c.metrics.CacheLookup(metrics.CacheError)
	}

	car, err := c.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(car)
	if err != nil {
		return car, nil
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.ExternalServiceResult("redis", "set", err, "key", key)
	}
	return car, nil
}

// List always reads through; the audit job needs current rates.
func (c *CarCache) List(ctx context.Context) ([]domain.Car, error) {
	return c.next.List(ctx)
}

// Invalidate drops cached cars so the next read loads them again.
func (c *CarCache) Invalidate(ctx context.Context, ids ...int32) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = carKey(id)
	}
	return c.rdb.Del(ctx, keys...).Err()
}

func carKey(id int32) string {
	return fmt.Sprintf(carKeyPrefix, id)
}
