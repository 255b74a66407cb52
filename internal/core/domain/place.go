// Package domain contains the core business entities and domain logic for the
// weather bot. This package defines the fundamental types and business rules
// that are independent of the chat platform and the external providers.
package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Place is one candidate returned by a geocoding search for a free-text query.
// It is constructed fresh per geocoding response and immutable afterwards,
// except for the expected name which the caller attaches exactly once right
// after deserialization.
type Place struct {
	ID          int64     `json:"place_id"`
	Lat         string    `json:"lat"`
	Lon         string    `json:"lon"`
	Category    string    `json:"category"`
	Name        PlaceName `json:"namedetails"`
	AddressType string    `json:"addresstype"`
	Address     Address   `json:"address"`
	DisplayName string    `json:"display_name"`
	Rank        int       `json:"place_rank"`
	Importance  float64   `json:"importance"`

	expectedName string
}

// SetExpectedName attaches the user's original search term to the place.
// The name is set once; later calls are ignored.
func (p *Place) SetExpectedName(name string) {
	if p.expectedName == "" {
		p.expectedName = name
	}
}

// ExpectedName returns the search term this place was found for.
func (p *Place) ExpectedName() string {
	return p.expectedName
}

// HasUnexpectedName reports whether the place's canonical name diverges from
// the search term it was found for.
func (p *Place) HasUnexpectedName() bool {
	if p.expectedName == "" {
		return true
	}

	return p.expectedName != p.Name.Local
}

// Coordinates parses the provider's string-encoded latitude and longitude.
// The provider does not enforce numeric encoding, so this can fail.
func (p *Place) Coordinates() (Coordinates, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("malformed latitude %q: %w", p.Lat, err)
	}

	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("malformed longitude %q: %w", p.Lon, err)
	}

	return Coordinates{Latitude: lat, Longitude: lon}, nil
}

// Label renders a human-readable one-line summary of the place, suitable for
// a selection menu entry: country flag letters, the canonical name (with the
// search term in parentheses when the two diverge), and the address levels
// neighboring the place's own type.
func (p *Place) Label() string {
	name := p.Name.Local

	if p.HasUnexpectedName() && p.expectedName != "" {
		name = fmt.Sprintf("%s (%s)", p.Name.Local, p.expectedName)
	}

	parts := []string{name}

	if context := p.ContextSummary(); context != "" {
		parts = append(parts, context)
	}

	return fmt.Sprintf("%s | %s", countryFlag(p.Address.CountryCode), strings.Join(parts, ", "))
}

// ContextSummary renders the address levels related to this place's specific
// type. A place whose type maps to no known level falls back to the full
// informative summary.
func (p *Place) ContextSummary() string {
	level, ok := LevelForPlaceType(p.AddressType)
	if !ok {
		return p.Address.Summary()
	}

	return p.Address.describe(relatedLevels[level])
}

// countryFlag converts an ISO alpha-2 country code into the Unicode regional
// indicator symbols rendered as a flag by chat clients.
func countryFlag(code string) string {
	if len(code) != 2 {
		return "??"
	}

	// Regional indicator symbols start at U+1F1E6 where 'a' would be.
	const offset = 0x1F1E6 - 'a'

	var flag strings.Builder

	for _, c := range strings.ToLower(code) {
		if c < 'a' || c > 'z' {
			return "??"
		}
		flag.WriteRune(c + offset)
	}

	return flag.String()
}

// PlaceName holds the local canonical name of a place plus per-language aliases.
type PlaceName struct {
	Local   string `json:"name"`
	German  string `json:"name:de,omitempty"`
	English string `json:"name:en,omitempty"`
}
