package ports

import (
	"context"
	"time"

	"github.com/sean-rowe/weather-bot/internal/core/domain"
)

// Geocoder resolves a free-text place name to candidate places.
type Geocoder interface {
	// Search returns zero or more candidates for the query, each with the
	// query attached as its expected name.
	Search(ctx context.Context, query string) ([]domain.Place, error)
}

// ForecastClient fetches current weather conditions.
type ForecastClient interface {
	// CurrentTemperature returns the most recent temperature sample for
	// the given coordinates.
	CurrentTemperature(ctx context.Context, coords domain.Coordinates) (domain.TemperatureReading, error)
}

// HistoryClient fetches historical weather data.
type HistoryClient interface {
	// HourlyTemperatures returns the hourly temperature series between the
	// start and end calendar dates (inclusive), with timestamps expressed
	// in the named timezone.
	HourlyTemperatures(ctx context.Context, coords domain.Coordinates, start, end time.Time, timezone string) (domain.TemperatureSeries, error)
}

// TimezoneResolver maps coordinates to an IANA timezone identifier using an
// embedded spatial dataset. Pure and synchronous after initialization.
type TimezoneResolver interface {
	// Resolve returns the timezone identifier for the coordinates, or the
	// empty string when the location is not covered by the dataset.
	Resolve(lat, lon float64) string
}

// Localizer turns a message ID plus named arguments into a user-facing
// string. Lookup never fails at runtime; unknown IDs degrade to the ID
// itself.
type Localizer interface {
	Lookup(messageID string, args map[string]any) string
}
