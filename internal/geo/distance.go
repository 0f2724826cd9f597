// Package geo provides the great-circle math shared by the fuser and the zone
// filter.
package geo

import (
	"fmt"
	"math"
)

// earthRadiusM is the mean Earth radius used by the haversine formula.
const earthRadiusM = 6371000.0

// coordBucketDecimals is the rounding precision for coordinate-bucket keys:
// 4 decimal places is roughly 11 m at French latitudes, wide enough to absorb
// geocoder jitter between the two pipelines, narrow enough to not glue
// neighbouring premises together.
const coordBucketDecimals = 4

// HaversineMeters returns the great-circle distance in meters between two
// WGS84 decimal-degree points.
func HaversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusM * c
}

// BucketKey maps coordinates onto a ~11 m grid cell key for exact-lookup
// matching between the two pipelines.
func BucketKey(lat, lon float64) string {
	return fmt.Sprintf("%.*f,%.*f", coordBucketDecimals, lat, coordBucketDecimals, lon)
}
