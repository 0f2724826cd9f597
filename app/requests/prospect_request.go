package requests

import "github.com/prospect-fusion/app/models"

// CompareAddressRequest compares one structured address against free text.
type CompareAddressRequest struct {
	Address  models.Address `json:"address" binding:"required"`
	FreeText string         `json:"free_text" binding:"required"`
}

// ParseAddressRequest parses one free-text address.
type ParseAddressRequest struct {
	Address string `json:"address" binding:"required"`
}

// ZoneParams describes the circular search zone of a run.
type ZoneParams struct {
	CenterLat float64 `json:"center_lat"`
	CenterLon float64 `json:"center_lon"`
	RadiusKm  float64 `json:"radius_km" binding:"required,gt=0"`
}

// FuseRequest merges the two pipelines without zone classification.
type FuseRequest struct {
	Directory []models.DirectoryRecord `json:"directory"`
	Registry  []models.RegistryRecord  `json:"registry"`
}

// ClassifyRequest classifies already-fused records against a zone.
type ClassifyRequest struct {
	Records []models.FusedRecord `json:"records" binding:"required"`
	Zone    ZoneParams           `json:"zone" binding:"required"`
}

// RunProspectRequest executes a full prospecting run.
type RunProspectRequest struct {
	Directory []models.DirectoryRecord `json:"directory"`
	Registry  []models.RegistryRecord  `json:"registry"`
	Zone      ZoneParams               `json:"zone" binding:"required"`
}
