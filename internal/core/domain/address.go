package domain

import "strings"

// AddressLevel identifies one logical level of a place's address hierarchy.
// Providers spread the same logical level across several aliased fields
// ("city", "town" and "village" are all the municipality level); every query
// against the hierarchy goes through the one Level indirection so display
// code never touches raw fields.
type AddressLevel int

const (
	LevelHamlet AddressLevel = iota
	LevelNeighbourhood
	LevelDistrict
	LevelMunicipality
	LevelRegion
	LevelCountry
	LevelContinent
)

// Address is the structured multi-level address of a place. Every field is
// optional; the provider fills whichever naming convention applies.
type Address struct {
	Hamlet           string `json:"hamlet,omitempty"`
	Croft            string `json:"croft,omitempty"`
	IsolatedDwelling string `json:"isolated_dwelling,omitempty"`

	Municipality string `json:"municipality,omitempty"`
	Village      string `json:"village,omitempty"`
	Town         string `json:"town,omitempty"`
	City         string `json:"city,omitempty"`

	District     string `json:"district,omitempty"`
	CityDistrict string `json:"city_district,omitempty"`
	Borough      string `json:"borough,omitempty"`
	Suburb       string `json:"suburb,omitempty"`
	Subdivision  string `json:"subdivision,omitempty"`

	Neighbourhood string `json:"neighbourhood,omitempty"`
	Allotments    string `json:"allotments,omitempty"`
	Quarter       string `json:"quarter,omitempty"`

	County        string `json:"county,omitempty"`
	Region        string `json:"region,omitempty"`
	State         string `json:"state,omitempty"`
	StateDistrict string `json:"state_district,omitempty"`

	Postcode    string `json:"postcode,omitempty"`
	Country     string `json:"country,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
	Continent   string `json:"continent,omitempty"`
}

// Level collapses the aliased source fields of one logical level into a
// single value: the fallback fields are evaluated in fixed priority order
// and the first non-empty value wins.
func (a Address) Level(level AddressLevel) string {
	var fields []string

	switch level {
	case LevelHamlet:
		fields = []string{a.Hamlet, a.Croft, a.IsolatedDwelling}
	case LevelNeighbourhood:
		fields = []string{a.Neighbourhood, a.Allotments, a.Quarter}
	case LevelDistrict:
		fields = []string{a.CityDistrict, a.Suburb, a.Subdivision, a.Borough, a.District}
	case LevelMunicipality:
		fields = []string{a.Village, a.Town, a.City, a.Municipality}
	case LevelRegion:
		fields = []string{a.County, a.Region, a.StateDistrict, a.State}
	case LevelCountry:
		fields = []string{a.Country}
	case LevelContinent:
		fields = []string{a.Continent}
	}

	for _, f := range fields {
		if f != "" {
			return f
		}
	}

	return ""
}

// informativeLevels are the levels worth showing in a generic display
// summary, most specific first. Country is omitted because summaries carry
// the country flag separately.
var informativeLevels = []AddressLevel{
	LevelHamlet,
	LevelNeighbourhood,
	LevelDistrict,
	LevelMunicipality,
	LevelRegion,
}

// relatedLevels maps each level to the neighboring levels that give a place
// of that type useful display context.
var relatedLevels = map[AddressLevel][]AddressLevel{
	LevelHamlet:        {LevelMunicipality, LevelRegion},
	LevelNeighbourhood: {LevelDistrict, LevelMunicipality, LevelRegion},
	LevelDistrict:      {LevelMunicipality, LevelRegion},
	LevelMunicipality:  {LevelRegion},
	LevelRegion:        {LevelCountry},
	LevelCountry:       {LevelContinent},
	LevelContinent:     {},
}

// placeTypeLevels maps the provider's address type strings onto logical levels.
var placeTypeLevels = map[string]AddressLevel{
	"hamlet":            LevelHamlet,
	"croft":             LevelHamlet,
	"isolated_dwelling": LevelHamlet,
	"neighbourhood":     LevelNeighbourhood,
	"allotments":        LevelNeighbourhood,
	"quarter":           LevelNeighbourhood,
	"city_district":     LevelDistrict,
	"district":          LevelDistrict,
	"borough":           LevelDistrict,
	"suburb":            LevelDistrict,
	"subdivision":       LevelDistrict,
	"municipality":      LevelMunicipality,
	"city":              LevelMunicipality,
	"town":              LevelMunicipality,
	"village":           LevelMunicipality,
	"county":            LevelRegion,
	"region":            LevelRegion,
	"state":             LevelRegion,
	"state_district":    LevelRegion,
	"country":           LevelCountry,
	"continent":         LevelContinent,
}

// LevelForPlaceType resolves a provider address type string to its logical
// address level.
func LevelForPlaceType(placeType string) (AddressLevel, bool) {
	level, ok := placeTypeLevels[placeType]
	return level, ok
}

// Summary joins the informative levels of the address into one display line.
func (a Address) Summary() string {
	return a.describe(informativeLevels)
}

// describe renders the given levels in order, skipping empty ones. Both the
// generic summary and the per-type context share this one implementation.
func (a Address) describe(levels []AddressLevel) string {
	values := make([]string, 0, len(levels))

	for _, level := range levels {
		if v := a.Level(level); v != "" {
			values = append(values, v)
		}
	}

	return strings.Join(values, ", ")
}
