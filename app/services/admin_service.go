package services

import (
	"context"
	"runtime"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// AdminService exposes operational data: system stats and cache maintenance.
type AdminService struct {
	db       *mongo.Database
	prospect *ProspectService
	logger   *zap.Logger
}

// SystemStats is the admin view of the running instance.
type SystemStats struct {
	Uptime        string                 `json:"uptime"`
	RunsInMemory  int                    `json:"runs_in_memory"`
	RunsPersisted int64                  `json:"runs_persisted"`
	CacheStats    *CacheStats            `json:"cache_stats,omitempty"`
	MemoryUsage   map[string]interface{} `json:"memory_usage"`
}

// NewAdminService builds the admin service. db may be nil.
func NewAdminService(db *mongo.Database, prospect *ProspectService, logger *zap.Logger) *AdminService {
	return &AdminService{
		db:       db,
		prospect: prospect,
		logger:   logger,
	}
}

// GetSystemStats collects uptime, run counters, cache counters and memory use.
func (as *AdminService) GetSystemStats(ctx context.Context) (*SystemStats, error) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	stats := &SystemStats{
		Uptime:       time.Since(as.prospect.GetStartTime()).Round(time.Second).String(),
		RunsInMemory: as.prospect.RunCount(),
		MemoryUsage: map[string]interface{}{
			"alloc_mb":       bToMb(m.Alloc),
			"total_alloc_mb": bToMb(m.TotalAlloc),
			"sys_mb":         bToMb(m.Sys),
			"num_gc":         m.NumGC,
		},
	}

	if cacheStats, err := as.prospect.CacheStats(ctx); err == nil && cacheStats != nil {
		stats.CacheStats = cacheStats
	}

	if as.db != nil {
		count, err := as.db.Collection(runCollection).CountDocuments(ctx, bson.M{})
		if err != nil {
			as.logger.Warn("comptage runs MongoDB echoue", zap.Error(err))
		} else {
			stats.RunsPersisted = count
		}
	}

	return stats, nil
}

// InvalidateCache empties the comparison cache, used after a tuning change.
func (as *AdminService) InvalidateCache(ctx context.Context) error {
	if err := as.prospect.ClearCache(ctx); err != nil {
		return err
	}
	as.logger.Info("cache de comparaison invalide")
	return nil
}

func bToMb(b uint64) uint64 {
	return b / 1024 / 1024
}
