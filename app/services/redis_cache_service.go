package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/prospect-fusion/app/models"
)

// RedisCacheService shares comparison results between instances through Redis.
type RedisCacheService struct {
	client *redis.Client
	logger *zap.Logger
	prefix string
	ttl    time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// NewRedisCacheService connects to Redis and verifies the connection.
func NewRedisCacheService(redisURL string, logger *zap.Logger) (*RedisCacheService, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("URL Redis invalide: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("connexion Redis impossible: %w", err)
	}

	return &RedisCacheService{
		client: client,
		logger: logger,
		prefix: "prospect_cmp:",
		ttl:    24 * time.Hour,
	}, nil
}

// Get returns the cached comparison for a fingerprint.
func (rcs *RedisCacheService) Get(ctx context.Context, key string) (*models.ComparisonResult, bool, error) {
	cacheKey := rcs.prefix + key

	val, err := rcs.client.Get(ctx, cacheKey).Result()
	if err == redis.Nil {
		rcs.misses.Add(1)
		return nil, false, nil
	}
	if err != nil {
		rcs.logger.Error("erreur get Redis", zap.Error(err), zap.String("key", cacheKey))
		return nil, false, err
	}

	var result models.ComparisonResult
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		rcs.logger.Error("erreur unmarshal cache", zap.Error(err))
		return nil, false, err
	}

	rcs.hits.Add(1)
	return &result, true, nil
}

// Set stores a comparison result with the service TTL.
func (rcs *RedisCacheService) Set(ctx context.Context, key string, result *models.ComparisonResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("erreur marshal cache: %w", err)
	}

	if err := rcs.client.Set(ctx, rcs.prefix+key, data, rcs.ttl).Err(); err != nil {
		rcs.logger.Error("erreur set Redis", zap.Error(err), zap.String("key", key))
		return err
	}
	return nil
}

// Delete removes one fingerprint.
func (rcs *RedisCacheService) Delete(ctx context.Context, key string) error {
	if err := rcs.client.Del(ctx, rcs.prefix+key).Err(); err != nil {
		rcs.logger.Error("erreur delete Redis", zap.Error(err), zap.String("key", key))
		return err
	}
	return nil
}

// Clear removes every key under the service prefix.
func (rcs *RedisCacheService) Clear(ctx context.Context) error {
	keys, err := rcs.client.Keys(ctx, rcs.prefix+"*").Result()
	if err != nil {
		return fmt.Errorf("erreur listing keys: %w", err)
	}

	if len(keys) > 0 {
		if err := rcs.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("erreur suppression keys: %w", err)
		}
	}

	rcs.logger.Info("cache Redis vide", zap.Int("keys_deleted", len(keys)))
	return nil
}

// GetStats returns the cache counters.
func (rcs *RedisCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	hits := rcs.hits.Load()
	misses := rcs.misses.Load()
	total := hits + misses

	stats := &CacheStats{
		TotalHits: hits,
		TotalMiss: misses,
	}
	if total > 0 {
		stats.HitRate = float64(hits) / float64(total)
	}

	if keys, err := rcs.client.Keys(ctx, rcs.prefix+"*").Result(); err == nil {
		stats.TotalItems = int64(len(keys))
	}
	return stats, nil
}

// SetTTL overrides the default entry TTL.
func (rcs *RedisCacheService) SetTTL(ttl time.Duration) {
	rcs.ttl = ttl
}

// Close closes the Redis connection.
func (rcs *RedisCacheService) Close() error {
	return rcs.client.Close()
}
