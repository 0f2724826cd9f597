// Package filter classifies fused records against a circular search zone and
// scores how exploitable an out-of-zone record still is.
package filter

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/prospect-fusion/app/config"
	"github.com/prospect-fusion/app/models"
	"github.com/prospect-fusion/internal/geo"
)

// ZoneFilter sorts fused records into zone bands. Records inside the radius or
// its tolerance band are kept unconditionally; out-of-zone and coordinate-less
// records only survive when their interest score clears the threshold.
type ZoneFilter struct {
	toleranceFactor float64
	interest        config.InterestPoints
	logger          *zap.Logger
}

// NewZoneFilter builds a ZoneFilter from the loaded engine config.
func NewZoneFilter(logger *zap.Logger) *ZoneFilter {
	return &ZoneFilter{
		toleranceFactor: config.C.ZoneToleranceFactor,
		interest:        config.C.Interest,
		logger:          logger,
	}
}

// Classify assigns each record a zone status and distance to the zone center,
// then partitions into (inZone, outZoneInteresting, outZoneExcluded). Input
// order is preserved within each slice. The tolerance band records land in
// inZone with their own status.
func (z *ZoneFilter) Classify(records []models.FusedRecord, centerLat, centerLon, radiusKm float64) (inZone, outZoneInteresting, outZoneExcluded []models.FusedRecord) {
	radiusM := radiusKm * 1000
	toleranceM := radiusM * z.toleranceFactor

	for _, rec := range records {
		if !rec.HasCoords() {
			if ok, _ := z.IsInteresting(rec); ok {
				rec.Status = models.StatusNoCoordsInteresting
				outZoneInteresting = append(outZoneInteresting, rec)
			} else {
				rec.Status = models.StatusNoCoordsExcluded
				outZoneExcluded = append(outZoneExcluded, rec)
			}
			continue
		}

		dist := geo.HaversineMeters(centerLat, centerLon, *rec.Latitude, *rec.Longitude)
		rec.DistanceToCenterM = &dist

		switch {
		case dist <= radiusM:
			rec.Status = models.StatusInZone
			inZone = append(inZone, rec)
		case dist <= toleranceM:
			rec.Status = models.StatusInToleranceZone
			inZone = append(inZone, rec)
		default:
			if ok, reasons := z.IsInteresting(rec); ok {
				rec.Status = models.StatusOutZoneInteresting
				outZoneInteresting = append(outZoneInteresting, rec)
				z.logger.Debug("hors zone mais interessant",
					zap.Float64("distance_m", dist),
					zap.Strings("reasons", reasons))
			} else {
				rec.Status = models.StatusOutZoneExcluded
				outZoneExcluded = append(outZoneExcluded, rec)
			}
		}
	}

	z.logger.Info("classification terminee",
		zap.Int("in_zone", len(inZone)),
		zap.Int("out_zone_interesting", len(outZoneInteresting)),
		zap.Int("out_zone_excluded", len(outZoneExcluded)))

	return inZone, outZoneInteresting, outZoneExcluded
}

// IsInteresting scores a record against the interest table and reports whether
// it clears the threshold, with the reasons that contributed.
func (z *ZoneFilter) IsInteresting(rec models.FusedRecord) (bool, []string) {
	score := 0
	var reasons []string

	if rec.DirectoryPhone != "" || len(rec.CompanyPhones) > 0 {
		score += z.interest.Phone
		reasons = append(reasons, "telephone")
	}
	if len(rec.CompanyEmails) > 0 {
		score += z.interest.Email
		reasons = append(reasons, "email")
	}
	if len(rec.CompanyWebsites) > 0 {
		score += z.interest.Website
		reasons = append(reasons, "site web")
	}
	if rec.Siren != "" || rec.Siret != "" {
		score += z.interest.CompanyID
		reasons = append(reasons, "siren/siret")
	}
	if rec.CompanyName != "" || rec.DirectoryTitle != "" {
		score += z.interest.Name
		reasons = append(reasons, "nom")
	}
	if rec.EnergyClass != "" {
		score += z.interest.EnergyClass
		reasons = append(reasons, "classe dpe")
	}
	if area, ok := parseArea(rec.RoofAreaM2); ok && area >= z.interest.MinRoofM2 {
		score += z.interest.RoofArea
		reasons = append(reasons, "toiture")
	}
	if area, ok := parseArea(rec.ParkingAreaM2); ok && area >= z.interest.MinParkingM2 {
		score += z.interest.ParkingArea
		reasons = append(reasons, "parking")
	}
	if rec.OwnerName != "" {
		score += z.interest.Owner
		reasons = append(reasons, "proprietaire")
	}

	return score >= z.interest.Threshold, reasons
}

// HasUsefulData reports whether a record carries any payload beyond its bare
// address. Records failing this are dropped before classification.
func (z *ZoneFilter) HasUsefulData(rec models.FusedRecord) bool {
	if rec.DirectoryTitle != "" || rec.DirectoryPhone != "" {
		return true
	}
	if rec.CompanyName != "" || rec.Siren != "" || rec.Siret != "" {
		return true
	}
	if len(rec.CompanyPhones) > 0 || len(rec.CompanyEmails) > 0 || len(rec.CompanyWebsites) > 0 {
		return true
	}
	if rec.OwnerName != "" || rec.EnergyClass != "" || rec.ConstructionYear != "" {
		return true
	}
	if rec.BuildingYear != "" || rec.RoofAreaM2 != "" || rec.ParkingAreaM2 != "" {
		return true
	}
	return false
}

// parseArea reads a free-form area string ("450", "450.5", "450 m2", "450,5").
// Unparsable values count as absent, never as an error.
func parseArea(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	raw = strings.ReplaceAll(raw, ",", ".")
	end := 0
	for end < len(raw) && (raw[end] >= '0' && raw[end] <= '9' || raw[end] == '.') {
		end++
	}
	if end == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw[:end], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
