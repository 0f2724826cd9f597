package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/prospect-fusion/app/models"
)

// HybridCacheService layers the in-process LRU (L1) over Redis (L2). L1
// absorbs the hot comparisons of the current run; L2 shares results across
// instances and restarts.
type HybridCacheService struct {
	memoryCache *MemoryCacheService
	redisCache  *RedisCacheService
	logger      *zap.Logger
}

// NewHybridCacheService builds the two-level cache.
func NewHybridCacheService(memoryCache *MemoryCacheService, redisCache *RedisCacheService, logger *zap.Logger) *HybridCacheService {
	return &HybridCacheService{
		memoryCache: memoryCache,
		redisCache:  redisCache,
		logger:      logger,
	}
}

// Get checks L1 first, then L2; an L2 hit is promoted to L1 in the background.
func (hcs *HybridCacheService) Get(ctx context.Context, key string) (*models.ComparisonResult, bool, error) {
	result, found, err := hcs.memoryCache.Get(ctx, key)
	if err == nil && found {
		return result, true, nil
	}

	result, found, err = hcs.redisCache.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hcs.memoryCache.Set(bgCtx, key, result); err != nil {
			hcs.logger.Warn("erreur promotion L2->L1", zap.Error(err), zap.String("key", key))
		}
	}()

	return result, true, nil
}

// Set writes through to both levels.
func (hcs *HybridCacheService) Set(ctx context.Context, key string, result *models.ComparisonResult) error {
	if err := hcs.memoryCache.Set(ctx, key, result); err != nil {
		hcs.logger.Warn("erreur set L1", zap.Error(err))
	}
	if err := hcs.redisCache.Set(ctx, key, result); err != nil {
		hcs.logger.Warn("erreur set L2", zap.Error(err))
		return err
	}
	return nil
}

// Delete removes the key from both levels.
func (hcs *HybridCacheService) Delete(ctx context.Context, key string) error {
	errL1 := hcs.memoryCache.Delete(ctx, key)
	errL2 := hcs.redisCache.Delete(ctx, key)
	if errL1 != nil || errL2 != nil {
		return fmt.Errorf("delete errors: %v, %v", errL1, errL2)
	}
	return nil
}

// Clear empties both levels.
func (hcs *HybridCacheService) Clear(ctx context.Context) error {
	errL1 := hcs.memoryCache.Clear(ctx)
	errL2 := hcs.redisCache.Clear(ctx)
	if errL1 != nil || errL2 != nil {
		return fmt.Errorf("clear errors: %v, %v", errL1, errL2)
	}
	hcs.logger.Info("cache hybride vide")
	return nil
}

// GetStats combines counters from both levels.
func (hcs *HybridCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	memStats, memErr := hcs.memoryCache.GetStats(ctx)
	redisStats, redisErr := hcs.redisCache.GetStats(ctx)

	if memErr != nil && redisErr != nil {
		return nil, fmt.Errorf("stats indisponibles: %v, %v", memErr, redisErr)
	}
	if redisErr != nil {
		return memStats, nil
	}
	if memErr != nil {
		return redisStats, nil
	}

	combined := &CacheStats{
		TotalHits:  memStats.TotalHits + redisStats.TotalHits,
		TotalMiss:  memStats.TotalMiss + redisStats.TotalMiss,
		TotalItems: memStats.TotalItems + redisStats.TotalItems,
	}
	if total := combined.TotalHits + combined.TotalMiss; total > 0 {
		combined.HitRate = float64(combined.TotalHits) / float64(total)
	}
	return combined, nil
}

// Close closes both levels.
func (hcs *HybridCacheService) Close() error {
	errL1 := hcs.memoryCache.Close()
	errL2 := hcs.redisCache.Close()
	if errL1 != nil || errL2 != nil {
		return fmt.Errorf("close errors: %v, %v", errL1, errL2)
	}
	return nil
}
