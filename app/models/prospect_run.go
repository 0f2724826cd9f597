package models

import "time"

// ProspectRun is one finished fuse + classify cycle, kept for reload and
// reporting. Stored as a whole document: runs are small (hundreds of records)
// and always read back in full.
type ProspectRun struct {
	RunID     string  `json:"run_id" bson:"run_id"`
	CenterLat float64 `json:"center_lat" bson:"center_lat"`
	CenterLon float64 `json:"center_lon" bson:"center_lon"`
	RadiusKm  float64 `json:"radius_km" bson:"radius_km"`

	InZone             []FusedRecord `json:"in_zone" bson:"in_zone"`
	OutZoneInteresting []FusedRecord `json:"out_zone_interesting" bson:"out_zone_interesting"`
	OutZoneExcluded    []FusedRecord `json:"out_zone_excluded" bson:"out_zone_excluded"`

	DirectoryCount int       `json:"directory_count" bson:"directory_count"`
	RegistryCount  int       `json:"registry_count" bson:"registry_count"`
	FusedCount     int       `json:"fused_count" bson:"fused_count"`
	DroppedEmpty   int       `json:"dropped_empty" bson:"dropped_empty"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

// AllRecords concatenates the three partitions in classification order.
func (p *ProspectRun) AllRecords() []FusedRecord {
	out := make([]FusedRecord, 0, len(p.InZone)+len(p.OutZoneInteresting)+len(p.OutZoneExcluded))
	out = append(out, p.InZone...)
	out = append(out, p.OutZoneInteresting...)
	out = append(out, p.OutZoneExcluded...)
	return out
}
