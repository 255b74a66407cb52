package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sean-rowe/weather-bot/internal/core/domain"
	"github.com/sean-rowe/weather-bot/internal/core/ports"
)

// TemperatureRequest carries the parsed inputs of one temperature command
// invocation.
type TemperatureRequest struct {
	// PlaceName is the free-text place the user asked about.
	PlaceName string

	// Date and TimeOfDay are optional; when either is present the lookup
	// targets a historical sample instead of the current conditions.
	Date      string
	TimeOfDay string

	// UserMention is the platform markup mentioning the invoking user,
	// used when the final answer is posted to the shared channel.
	UserMention string
}

// TemperatureService orchestrates the temperature command: parse input,
// resolve the place, select one candidate, fetch the temperature, reply.
type TemperatureService struct {
	geocoder  ports.Geocoder
	forecast  ports.ForecastClient
	history   ports.HistoryClient
	timezones ports.TimezoneResolver
	selector  *Selector
	localizer ports.Localizer
	logger    *zap.Logger

	// defaultTimezone is used when the spatial dataset has no zone for the
	// place's coordinates.
	defaultTimezone string

	// now is injectable for tests.
	now func() time.Time
}

// NewTemperatureService creates the temperature command orchestrator.
func NewTemperatureService(
	geocoder ports.Geocoder,
	forecast ports.ForecastClient,
	history ports.HistoryClient,
	timezones ports.TimezoneResolver,
	selector *Selector,
	localizer ports.Localizer,
	defaultTimezone string,
	logger *zap.Logger,
) *TemperatureService {
	return &TemperatureService{
		geocoder:        geocoder,
		forecast:        forecast,
		history:         history,
		timezones:       timezones,
		selector:        selector,
		localizer:       localizer,
		defaultTimezone: defaultTimezone,
		logger:          logger,
		now:             time.Now,
	}
}

// Lookup runs one temperature command invocation end to end. Every terminal
// state produces exactly one message: user-level conditions (bad input,
// unknown place, no sample, timeout) are answered here, while provider and
// transport failures propagate to the command boundary's error handler.
func (s *TemperatureService) Lookup(ctx context.Context, conv ports.Conversation, req TemperatureRequest) error {
	// Validate the user-supplied timestamp before any network call.
	var timestamp *time.Time

	if req.Date != "" || req.TimeOfDay != "" {
		parsed, err := ParseDateTime(req.Date, req.TimeOfDay, s.now())
		if err != nil {
			s.logger.Debug("rejecting unparsable timestamp input",
				zap.String("date", req.Date),
				zap.String("time", req.TimeOfDay))

			return conv.Reply(ctx, s.localizer.Lookup("timestamp-parse-error", map[string]any{
				"Date": req.Date,
				"Time": req.TimeOfDay,
			}))
		}
		timestamp = &parsed
	}

	places, err := s.geocoder.Search(ctx, req.PlaceName)
	if err != nil {
		return fmt.Errorf("search place %q: %w", req.PlaceName, err)
	}

	if len(places) == 0 {
		return conv.Reply(ctx, s.localizer.Lookup("place-not-found", map[string]any{
			"SearchTerm": req.PlaceName,
		}))
	}

	selection := s.selector.Resolve(ctx, conv, req.PlaceName, places)

	switch selection.Kind {
	case SelectionUnique:
		return s.respond(ctx, conv, selection.Place, timestamp, false, req.UserMention)

	case SelectionOneOfMany:
		// The interactive exchange happened in an ephemeral context, so
		// the answer goes to the shared channel instead.
		return s.respond(ctx, conv, selection.Place, timestamp, true, req.UserMention)

	case SelectionAborted:
		return conv.Announce(ctx, s.localizer.Lookup("place-selection-timeout", nil))

	default:
		return fmt.Errorf("place selection failed: %w", selection.Err)
	}
}

// respond fetches the temperature for the chosen place and delivers the
// localized answer.
func (s *TemperatureService) respond(ctx context.Context, conv ports.Conversation, place *domain.Place, timestamp *time.Time, public bool, mention string) error {
	reading, err := s.singleTemperature(ctx, place, timestamp)

	var message string

	switch {
	case errors.Is(err, domain.ErrNotFound):
		message = s.localizer.Lookup("temperature-not-found", map[string]any{
			"Place": place.Name.Local,
		})

	case err != nil:
		return err

	default:
		message = s.localizer.Lookup("temperature-success", map[string]any{
			"Place":    place.Label(),
			"Celsius":  fmt.Sprintf("%.1f", reading.Celsius),
			"UnixTime": reading.Time,
		})
	}

	// After an interactive exchange the outcome stays on the shared channel,
	// whether the sample existed or not.
	if !public {
		return conv.Reply(ctx, message)
	}

	message = s.localizer.Lookup("response-invoked-by", map[string]any{
		"Message":     message,
		"UserMention": mention,
	})

	return conv.Announce(ctx, message)
}

// singleTemperature fetches either the current temperature or the
// historical sample closest to the requested timestamp.
func (s *TemperatureService) singleTemperature(ctx context.Context, place *domain.Place, timestamp *time.Time) (domain.TemperatureReading, error) {
	coords, err := place.Coordinates()
	if err != nil {
		return domain.TemperatureReading{}, fmt.Errorf("place %q: %w", place.Name.Local, err)
	}

	if timestamp == nil {
		return s.forecast.CurrentTemperature(ctx, coords)
	}

	zone := s.timezones.Resolve(coords.Latitude, coords.Longitude)
	if zone == "" {
		zone = s.defaultTimezone
	}

	location, err := time.LoadLocation(zone)
	if err != nil {
		return domain.TemperatureReading{}, fmt.Errorf("load timezone %q: %w", zone, err)
	}

	// Reinterpret the civil timestamp in the place's own timezone.
	local := time.Date(timestamp.Year(), timestamp.Month(), timestamp.Day(),
		timestamp.Hour(), timestamp.Minute(), timestamp.Second(), 0, location)

	series, err := s.history.HourlyTemperatures(ctx, coords, local, local, zone)
	if err != nil {
		return domain.TemperatureReading{}, err
	}

	// The archive stores hourly samples aligned to the place's local full
	// hours; snap to that grid, not to UTC hours.
	reading, ok := series.At(domain.RoundToHour(local).Unix())
	if !ok {
		return domain.TemperatureReading{}, domain.ErrNotFound
	}

	return reading, nil
}
