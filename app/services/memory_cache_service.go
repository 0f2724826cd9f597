package services

import (
	"context"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/prospect-fusion/app/models"
)

// MemoryCacheService is the in-process comparison cache, backed by a
// fixed-size LRU so a long prospecting session cannot grow it unbounded.
type MemoryCacheService struct {
	cache  *lru.Cache[string, *models.ComparisonResult]
	hits   atomic.Int64
	misses atomic.Int64
}

// NewMemoryCacheService builds an LRU cache of the given capacity.
func NewMemoryCacheService(size int) (*MemoryCacheService, error) {
	if size <= 0 {
		size = 10000
	}
	cache, err := lru.New[string, *models.ComparisonResult](size)
	if err != nil {
		return nil, err
	}
	return &MemoryCacheService{cache: cache}, nil
}

// Get returns the cached comparison for a fingerprint.
func (mcs *MemoryCacheService) Get(ctx context.Context, key string) (*models.ComparisonResult, bool, error) {
	if result, ok := mcs.cache.Get(key); ok {
		mcs.hits.Add(1)
		return result, true, nil
	}
	mcs.misses.Add(1)
	return nil, false, nil
}

// Set stores a comparison result.
func (mcs *MemoryCacheService) Set(ctx context.Context, key string, result *models.ComparisonResult) error {
	mcs.cache.Add(key, result)
	return nil
}

// Delete removes one fingerprint.
func (mcs *MemoryCacheService) Delete(ctx context.Context, key string) error {
	mcs.cache.Remove(key)
	return nil
}

// Clear drops everything.
func (mcs *MemoryCacheService) Clear(ctx context.Context) error {
	mcs.cache.Purge()
	return nil
}

// GetStats returns the cache counters.
func (mcs *MemoryCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	hits := mcs.hits.Load()
	misses := mcs.misses.Load()
	total := hits + misses

	stats := &CacheStats{
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: int64(mcs.cache.Len()),
	}
	if total > 0 {
		stats.HitRate = float64(hits) / float64(total)
	}
	return stats, nil
}

// Close is a no-op for the in-memory cache.
func (mcs *MemoryCacheService) Close() error {
	return nil
}
