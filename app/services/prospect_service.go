package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	ms "github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"

	"github.com/prospect-fusion/app/models"
	"github.com/prospect-fusion/helpers/utils"
	"github.com/prospect-fusion/internal/comparator"
	"github.com/prospect-fusion/internal/filter"
	"github.com/prospect-fusion/internal/fusion"
	"github.com/prospect-fusion/internal/search"
)

// ErrRunNotFound is returned when a run id matches nothing.
var ErrRunNotFound = errors.New("run introuvable")

// ProspectService orchestrates one prospecting run: fusion of the two
// pipelines, payload triage, zone classification, then persistence and
// indexing. MongoDB, Redis and Meilisearch are all optional; the service
// degrades to in-memory behaviour when a backend is absent.
type ProspectService struct {
	comparator *comparator.Comparator
	fuser      *fusion.Fuser
	zoneFilter *filter.ZoneFilter
	cache      ICacheService
	runStore   *RunStore
	indexer    *search.RunIndexer
	logger     *zap.Logger

	mu   sync.RWMutex
	runs map[string]*models.ProspectRun

	startTime time.Time
}

// NewProspectService wires the engine together. cache, runStore and indexer
// may be nil.
func NewProspectService(cmp *comparator.Comparator, fuser *fusion.Fuser, zoneFilter *filter.ZoneFilter,
	cache ICacheService, runStore *RunStore, indexer *search.RunIndexer, logger *zap.Logger) *ProspectService {
	return &ProspectService{
		comparator: cmp,
		fuser:      fuser,
		zoneFilter: zoneFilter,
		cache:      cache,
		runStore:   runStore,
		indexer:    indexer,
		logger:     logger,
		runs:       make(map[string]*models.ProspectRun),
		startTime:  time.Now(),
	}
}

// CompareAddresses runs one structured-vs-free-text comparison through the
// cache. The bool reports a cache hit.
func (ps *ProspectService) CompareAddresses(ctx context.Context, addr models.Address, freeText string) (*models.ComparisonResult, bool, error) {
	key := ps.comparator.Fingerprint(addr, freeText)

	if ps.cache != nil {
		if result, found, err := ps.cache.Get(ctx, key); err == nil && found {
			return result, true, nil
		}
	}

	result := ps.comparator.CompareAddresses(addr, freeText)

	if ps.cache != nil {
		if err := ps.cache.Set(ctx, key, &result); err != nil {
			ps.logger.Warn("erreur ecriture cache", zap.Error(err))
		}
	}
	return &result, false, nil
}

// ParseAddress exposes the free-text address parser.
func (ps *ProspectService) ParseAddress(text string) *models.Address {
	return ps.comparator.ParseAddressString(text)
}

// Fuse merges the two record lists without classification.
func (ps *ProspectService) Fuse(directory []models.DirectoryRecord, registry []models.RegistryRecord) []models.FusedRecord {
	return ps.fuser.Fuse(directory, registry)
}

// Classify runs the zone filter over already-fused records.
func (ps *ProspectService) Classify(records []models.FusedRecord, centerLat, centerLon, radiusKm float64) (inZone, outZoneInteresting, outZoneExcluded []models.FusedRecord) {
	return ps.zoneFilter.Classify(records, centerLat, centerLon, radiusKm)
}

// RunProspect executes a full prospecting run: fuse, drop records carrying
// nothing beyond a bare address, classify against the zone, then persist and
// index. Persistence and indexing failures degrade the run to in-memory only
// and never fail the request.
func (ps *ProspectService) RunProspect(ctx context.Context, directory []models.DirectoryRecord, registry []models.RegistryRecord,
	centerLat, centerLon, radiusKm float64) (*models.ProspectRun, error) {

	if radiusKm <= 0 {
		return nil, fmt.Errorf("rayon invalide: %v km", radiusKm)
	}

	fused := ps.fuser.Fuse(directory, registry)

	kept := make([]models.FusedRecord, 0, len(fused))
	dropped := 0
	for _, rec := range fused {
		if ps.zoneFilter.HasUsefulData(rec) {
			kept = append(kept, rec)
		} else {
			dropped++
		}
	}

	inZone, outInteresting, outExcluded := ps.zoneFilter.Classify(kept, centerLat, centerLon, radiusKm)

	run := &models.ProspectRun{
		RunID:              utils.GenerateRunID(),
		CenterLat:          centerLat,
		CenterLon:          centerLon,
		RadiusKm:           radiusKm,
		InZone:             inZone,
		OutZoneInteresting: outInteresting,
		OutZoneExcluded:    outExcluded,
		DirectoryCount:     len(directory),
		RegistryCount:      len(registry),
		FusedCount:         len(fused),
		DroppedEmpty:       dropped,
		CreatedAt:          time.Now().UTC(),
	}

	ps.mu.Lock()
	ps.runs[run.RunID] = run
	ps.mu.Unlock()

	if ps.runStore != nil {
		if err := ps.runStore.Save(ctx, run); err != nil {
			ps.logger.Warn("persistance run echouee", zap.String("run_id", run.RunID), zap.Error(err))
		}
	}
	if ps.indexer != nil {
		if err := ps.indexer.IndexRun(run); err != nil {
			ps.logger.Warn("indexation run echouee", zap.String("run_id", run.RunID), zap.Error(err))
		}
	}

	ps.logger.Info("run termine",
		zap.String("run_id", run.RunID),
		zap.Int("in_zone", len(inZone)),
		zap.Int("out_zone_interesting", len(outInteresting)),
		zap.Int("out_zone_excluded", len(outExcluded)),
		zap.Int("dropped_empty", dropped))

	return run, nil
}

// GetRun returns a run by id, from memory first, then MongoDB.
func (ps *ProspectService) GetRun(ctx context.Context, runID string) (*models.ProspectRun, error) {
	ps.mu.RLock()
	run, ok := ps.runs[runID]
	ps.mu.RUnlock()
	if ok {
		return run, nil
	}

	if ps.runStore != nil {
		run, err := ps.runStore.Get(ctx, runID)
		if err != nil {
			return nil, err
		}
		if run != nil {
			ps.mu.Lock()
			ps.runs[runID] = run
			ps.mu.Unlock()
			return run, nil
		}
	}
	return nil, ErrRunNotFound
}

// ListRuns returns recent runs. Backed by MongoDB when available, otherwise
// by the in-memory map.
func (ps *ProspectService) ListRuns(ctx context.Context, limit int64) ([]models.ProspectRun, error) {
	if ps.runStore != nil {
		return ps.runStore.List(ctx, limit)
	}

	ps.mu.RLock()
	defer ps.mu.RUnlock()
	runs := make([]models.ProspectRun, 0, len(ps.runs))
	for _, run := range ps.runs {
		runs = append(runs, *run)
	}
	return runs, nil
}

// SearchRun free-text searches one run's results through Meilisearch.
func (ps *ProspectService) SearchRun(ctx context.Context, runID, query string, limit int64) (*ms.SearchResponse, error) {
	if ps.indexer == nil {
		return nil, errors.New("recherche indisponible: Meilisearch non configure")
	}
	if _, err := ps.GetRun(ctx, runID); err != nil {
		return nil, err
	}
	return ps.indexer.SearchRun(runID, query, limit)
}

// CacheStats returns the comparison cache counters, nil when no cache is
// configured.
func (ps *ProspectService) CacheStats(ctx context.Context) (*CacheStats, error) {
	if ps.cache == nil {
		return nil, nil
	}
	return ps.cache.GetStats(ctx)
}

// ClearCache empties the comparison cache.
func (ps *ProspectService) ClearCache(ctx context.Context) error {
	if ps.cache == nil {
		return nil
	}
	return ps.cache.Clear(ctx)
}

// RunCount returns the number of runs held in memory.
func (ps *ProspectService) RunCount() int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return len(ps.runs)
}

// GetStartTime returns the service start time, for uptime reporting.
func (ps *ProspectService) GetStartTime() time.Time {
	return ps.startTime
}
