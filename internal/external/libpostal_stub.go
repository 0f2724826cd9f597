//go:build !cgo

package external

// ParsedAddress is the libpostal view of a free-text address.
type ParsedAddress struct {
	HouseNumber, Road, Postcode, City string
}

// Available reports whether the libpostal backend was compiled in.
func Available() bool { return false }

// ParseWithLibpostal is a no-op without cgo; callers check Available first.
func ParseWithLibpostal(raw string) ParsedAddress { return ParsedAddress{} }
