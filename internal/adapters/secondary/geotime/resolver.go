// Package geotime resolves coordinates to IANA timezone identifiers using an
// embedded world timezone shapefile, so no network round trip is needed.
package geotime

import (
	"github.com/bradfitz/latlong"
)

// Resolver implements timezone lookup over the embedded dataset.
type Resolver struct{}

// NewResolver creates a timezone resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve returns the IANA timezone identifier covering the coordinates, or
// the empty string for locations outside the dataset (open ocean, poles).
func (r *Resolver) Resolve(lat, lon float64) string {
	return latlong.LookupZoneName(lat, lon)
}
