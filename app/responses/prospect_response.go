package responses

import (
	"time"

	"github.com/prospect-fusion/app/models"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// CompareAddressResponse carries one comparison verdict.
type CompareAddressResponse struct {
	Result           models.ComparisonResult `json:"result"`
	CacheHit         bool                    `json:"cache_hit"`
	ProcessingTimeMs int64                   `json:"processing_time_ms"`
}

// ParseAddressResponse carries a parse attempt. Parsed is null when the text
// did not match any recognized shape.
type ParseAddressResponse struct {
	Parsed *models.Address `json:"parsed"`
	Ok     bool            `json:"ok"`
}

// FuseResponse carries the merged record list.
type FuseResponse struct {
	Fused            []models.FusedRecord `json:"fused"`
	Count            int                  `json:"count"`
	ProcessingTimeMs int64                `json:"processing_time_ms"`
}

// ClassifyResponse carries the three zone partitions.
type ClassifyResponse struct {
	InZone             []models.FusedRecord `json:"in_zone"`
	OutZoneInteresting []models.FusedRecord `json:"out_zone_interesting"`
	OutZoneExcluded    []models.FusedRecord `json:"out_zone_excluded"`
}

// RunSummary is the list view of one run.
type RunSummary struct {
	RunID              string    `json:"run_id"`
	CenterLat          float64   `json:"center_lat"`
	CenterLon          float64   `json:"center_lon"`
	RadiusKm           float64   `json:"radius_km"`
	InZone             int       `json:"in_zone"`
	OutZoneInteresting int       `json:"out_zone_interesting"`
	OutZoneExcluded    int       `json:"out_zone_excluded"`
	DroppedEmpty       int       `json:"dropped_empty"`
	CreatedAt          time.Time `json:"created_at"`
}

// RunListResponse carries recent run summaries.
type RunListResponse struct {
	Runs  []RunSummary `json:"runs"`
	Total int          `json:"total"`
}

// SearchRunResponse carries the free-text hits within one run.
type SearchRunResponse struct {
	RunID            string      `json:"run_id"`
	Query            string      `json:"query"`
	Hits             interface{} `json:"hits"`
	EstimatedTotal   int64       `json:"estimated_total"`
	ProcessingTimeMs int64       `json:"processing_time_ms"`
}

// HealthResponse is the health probe body.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// Summarize builds the list view of a run.
func Summarize(run *models.ProspectRun) RunSummary {
	return RunSummary{
		RunID:              run.RunID,
		CenterLat:          run.CenterLat,
		CenterLon:          run.CenterLon,
		RadiusKm:           run.RadiusKm,
		InZone:             len(run.InZone),
		OutZoneInteresting: len(run.OutZoneInteresting),
		OutZoneExcluded:    len(run.OutZoneExcluded),
		DroppedEmpty:       run.DroppedEmpty,
		CreatedAt:          run.CreatedAt,
	}
}
