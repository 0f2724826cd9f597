package services

import (
	"context"

	"github.com/prospect-fusion/app/models"
)

// CacheStats aggregates hit/miss counters for a comparison cache.
type CacheStats struct {
	HitRate    float64 `json:"hit_rate"`
	TotalHits  int64   `json:"total_hits"`
	TotalMiss  int64   `json:"total_miss"`
	TotalItems int64   `json:"total_items"`
}

// ICacheService caches address comparison results keyed by fingerprint.
// Address comparisons are pure, so cached entries never go stale; they are only
// invalidated when the comparison tuning changes.
type ICacheService interface {
	// Get returns the cached comparison for a fingerprint.
	Get(ctx context.Context, key string) (*models.ComparisonResult, bool, error)

	// Set stores a comparison result.
	Set(ctx context.Context, key string, result *models.ComparisonResult) error

	// Delete removes one fingerprint.
	Delete(ctx context.Context, key string) error

	// Clear drops everything, used after a tuning change.
	Clear(ctx context.Context) error

	// GetStats returns the cache counters.
	GetStats(ctx context.Context) (*CacheStats, error)

	// Close releases underlying connections, if any.
	Close() error
}
