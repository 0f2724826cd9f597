// Package fusion merges the directory and registry pipelines into one record
// per physical premises. Matching is exact-lookup only: a shared ~11 m
// coordinate bucket, or a shared normalized address key. Each registry record
// is consumed at most once.
package fusion

import (
	"go.uber.org/zap"

	"github.com/prospect-fusion/app/models"
	"github.com/prospect-fusion/internal/comparator"
	"github.com/prospect-fusion/internal/geo"
)

// Fuser merges directory and registry records. It borrows the comparator's
// address-key normalization so both pipelines key the same way.
type Fuser struct {
	comparator *comparator.Comparator
	logger     *zap.Logger
}

// NewFuser builds a Fuser around an address comparator.
func NewFuser(cmp *comparator.Comparator, logger *zap.Logger) *Fuser {
	return &Fuser{comparator: cmp, logger: logger}
}

// Fuse merges the two record lists losslessly: every directory record with an
// address yields exactly one fused record, and every registry record either
// enriches one directory record or yields its own. Directory-derived records
// come first in input order, then unmatched registry records in input order.
func (f *Fuser) Fuse(directory []models.DirectoryRecord, registry []models.RegistryRecord) []models.FusedRecord {
	byBucket := make(map[string][]int)
	byKey := make(map[string][]int)
	for i, reg := range registry {
		if reg.Coords != nil {
			k := geo.BucketKey(reg.Coords.Latitude, reg.Coords.Longitude)
			byBucket[k] = append(byBucket[k], i)
		}
		if key := f.comparator.RawAddressKey(reg.Address); key != "" {
			byKey[key] = append(byKey[key], i)
		}
	}

	consumed := make([]bool, len(registry))
	fused := make([]models.FusedRecord, 0, len(directory)+len(registry))
	matched := 0

	takeFirst := func(indices []int) int {
		for _, i := range indices {
			if !consumed[i] {
				return i
			}
		}
		return -1
	}

	for _, dir := range directory {
		// Matching keys off an address; a directory record without one
		// carries nothing to merge on and is discarded.
		if dir.Address.IsZero() {
			continue
		}
		rec := models.FusedRecord{
			Numero:     dir.Address.Numero,
			Voie:       dir.Address.Voie,
			CodePostal: dir.Address.CodePostal,
			Ville:      dir.Address.Ville,
		}
		if dir.Coords != nil {
			lat, lon := dir.Coords.Latitude, dir.Coords.Longitude
			rec.Latitude, rec.Longitude = &lat, &lon
		}
		if dir.Contact != nil {
			rec.DirectoryTitle = dir.Contact.Title
			rec.DirectoryPhone = dir.Contact.Phone
		}
		if dir.Building != nil {
			rec.ConstructionYear = dir.Building.ConstructionYear
			rec.EnergyClass = dir.Building.EnergyClass
		}

		// Coordinate bucket wins over the address key; a consumed bucket
		// hit still falls through to the key lookup.
		regIdx := -1
		if dir.Coords != nil {
			regIdx = takeFirst(byBucket[geo.BucketKey(dir.Coords.Latitude, dir.Coords.Longitude)])
		}
		if regIdx < 0 {
			regIdx = takeFirst(byKey[f.comparator.AddressKey(dir.Address)])
		}
		if regIdx >= 0 {
			consumed[regIdx] = true
			applyRegistry(&rec, registry[regIdx])
			matched++
		}

		fused = append(fused, rec)
	}

	for i, reg := range registry {
		if consumed[i] {
			continue
		}
		rec := models.FusedRecord{}
		if parsed := f.comparator.ParseAddressString(reg.Address); parsed != nil {
			rec.Numero = parsed.Numero
			rec.Voie = parsed.Voie
			rec.CodePostal = parsed.CodePostal
			rec.Ville = parsed.Ville
		}
		applyRegistry(&rec, reg)
		fused = append(fused, rec)
	}

	f.logger.Info("fusion terminee",
		zap.Int("directory", len(directory)),
		zap.Int("registry", len(registry)),
		zap.Int("matched", matched),
		zap.Int("fused", len(fused)))

	return fused
}

// applyRegistry copies registry fields onto a fused record. Coordinates only
// fill a gap: directory coordinates, when present, are considered the more
// precise of the two.
func applyRegistry(rec *models.FusedRecord, reg models.RegistryRecord) {
	rec.CompanyName = reg.Name
	rec.CompanyCategory = reg.Category
	rec.CompanyPhones = reg.Phones
	rec.CompanyEmails = reg.Emails
	rec.CompanyWebsites = reg.Websites
	if reg.Company != nil {
		rec.Siren = reg.Company.Siren
		rec.Siret = reg.Company.Siret
		rec.Naf = reg.Company.Naf
		rec.NafLabel = reg.Company.NafLabel
	}
	rec.OwnerName = reg.OwnerName()
	rec.OwnerRole = reg.OwnerRole
	rec.BuildingYear = reg.BuildingYear
	rec.RoofAreaM2 = reg.RoofAreaM2
	rec.ParkingAreaM2 = reg.ParkingAreaM2

	if !rec.HasCoords() && reg.Coords != nil {
		lat, lon := reg.Coords.Latitude, reg.Coords.Longitude
		rec.Latitude, rec.Longitude = &lat, &lon
	}
}
