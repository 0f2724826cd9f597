package models

// DirectoryContact is the verified contact found by the directory pipeline at a
// probed address. Absent when the lookup returned nothing.
type DirectoryContact struct {
	Title      string `json:"title" bson:"title"`
	Phone      string `json:"phone" bson:"phone"`
	RawAddress string `json:"raw_address" bson:"raw_address"`
}

// BuildingInfo carries the building-database enrichment for a premises.
// Year and class stay strings: upstream sources emit them free-form.
type BuildingInfo struct {
	ConstructionYear string `json:"construction_year" bson:"construction_year"`
	EnergyClass      string `json:"energy_class" bson:"energy_class"`
}

// DirectoryRecord is one probed (street, house-number) from the free-text
// directory pipeline.
type DirectoryRecord struct {
	Address  Address           `json:"address" bson:"address"`
	Coords   *Coordinates      `json:"coords,omitempty" bson:"coords,omitempty"`
	Contact  *DirectoryContact `json:"contact,omitempty" bson:"contact,omitempty"`
	Building *BuildingInfo     `json:"building,omitempty" bson:"building,omitempty"`
}

// CompanyInfo is the official registry identity of a business.
type CompanyInfo struct {
	Siren    string `json:"siren" bson:"siren"`
	Siret    string `json:"siret" bson:"siret"`
	Naf      string `json:"naf" bson:"naf"`
	NafLabel string `json:"naf_label" bson:"naf_label"`
}

// RegistryRecord is one business/entity from the registry + map-tag pipeline.
// Its address is free text; area and year fields are free-form strings that the
// relevance filter parses defensively.
type RegistryRecord struct {
	Name           string       `json:"name" bson:"name"`
	Category       string       `json:"category" bson:"category"`
	Address        string       `json:"address" bson:"address"`
	Coords         *Coordinates `json:"coords,omitempty" bson:"coords,omitempty"`
	Phones         []string     `json:"phones,omitempty" bson:"phones,omitempty"`
	Emails         []string     `json:"emails,omitempty" bson:"emails,omitempty"`
	Websites       []string     `json:"websites,omitempty" bson:"websites,omitempty"`
	Company        *CompanyInfo `json:"company,omitempty" bson:"company,omitempty"`
	OwnerFirstName string       `json:"owner_first_name" bson:"owner_first_name"`
	OwnerLastName  string       `json:"owner_last_name" bson:"owner_last_name"`
	OwnerRole      string       `json:"owner_role" bson:"owner_role"`
	BuildingYear   string       `json:"building_year" bson:"building_year"`
	RoofAreaM2     string       `json:"roof_area_m2" bson:"roof_area_m2"`
	ParkingAreaM2  string       `json:"parking_area_m2" bson:"parking_area_m2"`
}

// OwnerName joins the owner first/last names, either possibly empty.
func (r RegistryRecord) OwnerName() string {
	switch {
	case r.OwnerFirstName != "" && r.OwnerLastName != "":
		return r.OwnerFirstName + " " + r.OwnerLastName
	case r.OwnerFirstName != "":
		return r.OwnerFirstName
	default:
		return r.OwnerLastName
	}
}
