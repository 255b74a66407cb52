package domain

import (
	"fmt"
	"math"
)

// Coordinates represent a geographic location using latitude and longitude.
// This follows the standard geographic coordinate system used worldwide.
type Coordinates struct {
	// Latitude specifies the north-south position (-90 to 90 degrees)
	Latitude float64

	// Longitude specifies the east-west position (-180 to 180 degrees)
	Longitude float64
}

// Validate checks if the coordinates are within valid geographic bounds.
// Latitude must be between -90 and 90 degrees (south to north poles).
// Longitude must be between -180 and 180 degrees (international date line).
func (c Coordinates) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude must be between -90 and 90, got %f", c.Latitude)
	}

	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude must be between -180 and 180, got %f", c.Longitude)
	}

	return nil
}

// Rounded returns the coordinates rounded to three decimal places.
// Three decimals is roughly 111 meters at the equator, close enough that
// two lookups for "the same place" collapse onto one value despite
// floating-point noise in the provider payloads.
func (c Coordinates) Rounded() Coordinates {
	return Coordinates{
		Latitude:  math.Round(c.Latitude*1000) / 1000,
		Longitude: math.Round(c.Longitude*1000) / 1000,
	}
}

// Key returns a stable cache key derived from the rounded coordinates.
// Coordinates that round to the same value produce identical keys, which
// is the mechanism that makes them usable as cache keys at all.
func (c Coordinates) Key() string {
	r := c.Rounded()
	return fmt.Sprintf("%.3f,%.3f", r.Latitude, r.Longitude)
}
