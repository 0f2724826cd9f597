//go:build cgo

package external

import (
	"github.com/openvenues/gopostal/expand"
	"github.com/openvenues/gopostal/parser"
)

// ParsedAddress is the libpostal view of a free-text address.
type ParsedAddress struct {
	HouseNumber, Road, Postcode, City string
}

// Available reports whether the libpostal backend was compiled in.
func Available() bool { return true }

// ParseWithLibpostal runs libpostal expansion + parsing over a raw French
// address string. Used as a fallback when the regex parser gives up.
func ParseWithLibpostal(raw string) ParsedAddress {
	opts := expand.DefaultOptions()
	opts.Languages = []string{"fr"}
	exps := expand.ExpandAddress(raw, opts)
	best := raw
	if len(exps) > 0 {
		best = exps[0]
	}
	var pa ParsedAddress
	for _, c := range parser.ParseAddress(best) {
		switch c.Label {
		case "house_number":
			pa.HouseNumber = c.Value
		case "road":
			pa.Road = c.Value
		case "postcode":
			pa.Postcode = c.Value
		case "city":
			pa.City = c.Value
		}
	}
	return pa
}
