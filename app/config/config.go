package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// FieldThresholds are the per-field minimum similarities an address match must
// clear. Numero, code postal and ville are administrative identifiers and stay
// at 1.0; only the street name tolerates free-text noise.
type FieldThresholds struct {
	Numero     float64 `yaml:"numero" json:"numero"`
	Voie       float64 `yaml:"voie" json:"voie"`
	CodePostal float64 `yaml:"code_postal" json:"code_postal"`
	Ville      float64 `yaml:"ville" json:"ville"`
}

// FieldWeights weight the per-field scores into the informational overall
// similarity. They do not decide matches; the threshold gates do.
type FieldWeights struct {
	Numero     float64 `yaml:"numero" json:"numero"`
	Voie       float64 `yaml:"voie" json:"voie"`
	CodePostal float64 `yaml:"code_postal" json:"code_postal"`
	Ville      float64 `yaml:"ville" json:"ville"`
}

// InterestPoints is the additive scoring table deciding whether an out-of-zone
// record is still worth reporting.
type InterestPoints struct {
	Phone        int     `yaml:"phone" json:"phone"`
	Email        int     `yaml:"email" json:"email"`
	Website      int     `yaml:"website" json:"website"`
	CompanyID    int     `yaml:"company_id" json:"company_id"`
	Name         int     `yaml:"name" json:"name"`
	EnergyClass  int     `yaml:"energy_class" json:"energy_class"`
	RoofArea     int     `yaml:"roof_area" json:"roof_area"`
	ParkingArea  int     `yaml:"parking_area" json:"parking_area"`
	Owner        int     `yaml:"owner" json:"owner"`
	MinRoofM2    float64 `yaml:"min_roof_m2" json:"min_roof_m2"`
	MinParkingM2 float64 `yaml:"min_parking_m2" json:"min_parking_m2"`
	Threshold    int     `yaml:"threshold" json:"threshold"`
}

// EngineCfg is the engine tuning block, loadable from yaml. All values have
// working defaults; the file only overrides.
type EngineCfg struct {
	Thresholds          FieldThresholds `yaml:"thresholds" json:"thresholds"`
	Weights             FieldWeights    `yaml:"weights" json:"weights"`
	ZoneToleranceFactor float64         `yaml:"zone_tolerance_factor" json:"zone_tolerance_factor"`
	Interest            InterestPoints  `yaml:"interest" json:"interest"`
	UseLibpostal        bool            `yaml:"use_libpostal" json:"use_libpostal"`
}

var C = Default()

// Default returns the tuning the engine was designed against.
func Default() EngineCfg {
	return EngineCfg{
		Thresholds: FieldThresholds{Numero: 1.0, Voie: 0.75, CodePostal: 1.0, Ville: 1.0},
		Weights:    FieldWeights{Numero: 0.2, Voie: 0.4, CodePostal: 0.2, Ville: 0.2},
		// 20% slack band absorbing geocoding noise at the edge of a
		// hand-chosen radius.
		ZoneToleranceFactor: 1.2,
		Interest: InterestPoints{
			Phone:        2,
			Email:        2,
			Website:      1,
			CompanyID:    2,
			Name:         1,
			EnergyClass:  1,
			RoofArea:     2,
			ParkingArea:  1,
			Owner:        1,
			MinRoofM2:    100,
			MinParkingM2: 200,
			Threshold:    3,
		},
		UseLibpostal: false,
	}
}

// Load reads a yaml tuning file over the defaults.
func Load(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	cfg := Default()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return err
	}
	C = cfg
	// ENV overrides
	switch os.Getenv("USE_LIBPOSTAL") {
	case "0":
		C.UseLibpostal = false
	case "1":
		C.UseLibpostal = true
	}
	return nil
}
