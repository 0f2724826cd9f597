package models

import "fmt"

// Address is a structured French postal address. Numero may be empty for
// premises without a door number (squares, lieux-dits).
type Address struct {
	Numero     string `json:"numero" bson:"numero"`
	Voie       string `json:"voie" bson:"voie"`
	CodePostal string `json:"code_postal" bson:"code_postal"`
	Ville      string `json:"ville" bson:"ville"`
}

// NewAddress builds an Address, validating the postal code shape once at
// construction: empty or exactly 5 ASCII digits.
func NewAddress(numero, voie, codePostal, ville string) (Address, error) {
	if !validPostalCode(codePostal) {
		return Address{}, fmt.Errorf("code postal invalide: %q", codePostal)
	}
	return Address{Numero: numero, Voie: voie, CodePostal: codePostal, Ville: ville}, nil
}

func validPostalCode(code string) bool {
	if code == "" {
		return true
	}
	if len(code) != 5 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsZero reports whether every component is empty.
func (a Address) IsZero() bool {
	return a.Numero == "" && a.Voie == "" && a.CodePostal == "" && a.Ville == ""
}

// String renders the address in the usual postal order.
func (a Address) String() string {
	return fmt.Sprintf("%s %s, %s %s", a.Numero, a.Voie, a.CodePostal, a.Ville)
}

// Coordinates is a WGS84 decimal-degree point.
type Coordinates struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}
