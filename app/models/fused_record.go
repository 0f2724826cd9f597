package models

// FilterStatus classifies a fused record relative to the search zone.
type FilterStatus string

const (
	StatusInZone              FilterStatus = "in_zone"
	StatusInToleranceZone     FilterStatus = "in_tolerance_zone"
	StatusOutZoneInteresting  FilterStatus = "out_zone_interesting"
	StatusOutZoneExcluded     FilterStatus = "out_zone_excluded"
	StatusNoCoordsInteresting FilterStatus = "no_coords_but_interesting"
	StatusNoCoordsExcluded    FilterStatus = "no_coords_excluded"
)

// FusedRecord is the merged view of one physical premises across the directory
// and registry pipelines. Address components may all be empty when the record
// originated purely from the registry side and its free-text address could not
// be parsed. DistanceToCenterM and Status are assigned by the zone filter.
type FusedRecord struct {
	Numero     string `json:"numero" bson:"numero"`
	Voie       string `json:"voie" bson:"voie"`
	CodePostal string `json:"code_postal" bson:"code_postal"`
	Ville      string `json:"ville" bson:"ville"`

	Latitude  *float64 `json:"latitude" bson:"latitude"`
	Longitude *float64 `json:"longitude" bson:"longitude"`

	// Directory side.
	DirectoryTitle string `json:"pj_title" bson:"pj_title"`
	DirectoryPhone string `json:"pj_phone" bson:"pj_phone"`

	// Building database.
	ConstructionYear string `json:"annee_construction" bson:"annee_construction"`
	EnergyClass      string `json:"classe_dpe" bson:"classe_dpe"`

	// Registry side.
	CompanyName     string   `json:"entreprise_nom" bson:"entreprise_nom"`
	CompanyCategory string   `json:"entreprise_categorie" bson:"entreprise_categorie"`
	CompanyPhones   []string `json:"entreprise_phones,omitempty" bson:"entreprise_phones,omitempty"`
	CompanyEmails   []string `json:"entreprise_emails,omitempty" bson:"entreprise_emails,omitempty"`
	CompanyWebsites []string `json:"entreprise_websites,omitempty" bson:"entreprise_websites,omitempty"`
	Siren           string   `json:"siren" bson:"siren"`
	Siret           string   `json:"siret" bson:"siret"`
	Naf             string   `json:"naf" bson:"naf"`
	NafLabel        string   `json:"naf_label" bson:"naf_label"`
	OwnerName       string   `json:"owner_name" bson:"owner_name"`
	OwnerRole       string   `json:"owner_role" bson:"owner_role"`
	BuildingYear    string   `json:"building_year" bson:"building_year"`
	RoofAreaM2      string   `json:"roof_area_m2" bson:"roof_area_m2"`
	ParkingAreaM2   string   `json:"parking_area_m2" bson:"parking_area_m2"`

	// Assigned by the zone filter.
	DistanceToCenterM *float64     `json:"distance_to_center_m" bson:"distance_to_center_m"`
	Status            FilterStatus `json:"filter_status" bson:"filter_status"`
}

// HasCoords reports whether both latitude and longitude are set.
func (f *FusedRecord) HasCoords() bool {
	return f.Latitude != nil && f.Longitude != nil
}

// Addr returns the structured address components of the record.
func (f *FusedRecord) Addr() Address {
	return Address{Numero: f.Numero, Voie: f.Voie, CodePostal: f.CodePostal, Ville: f.Ville}
}
