// Package cached decorates the geocoding and forecast providers with
// read-through caching, so repeated lookups for popular places skip the
// network entirely.
package cached

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sean-rowe/weather-bot/internal/core/domain"
	"github.com/sean-rowe/weather-bot/internal/core/ports"
	"github.com/sean-rowe/weather-bot/internal/observability"
)

// Geocoder wraps a geocoder with a read-through cache keyed by the
// normalized query text.
type Geocoder struct {
	inner   ports.Geocoder
	cache   ports.CacheService
	ttl     time.Duration
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewGeocoder creates a caching geocoder decorator.
//
// Parameters:
//   - inner: The geocoder performing real searches on a miss
//   - cache: Backing cache service
//   - ttl: How long a search result stays cached
//   - metrics: Metrics bundle for hit and miss counters
//   - logger: Zap logger for cache decisions
func NewGeocoder(inner ports.Geocoder, cache ports.CacheService, ttl time.Duration, metrics *observability.Metrics, logger *zap.Logger) *Geocoder {
	return &Geocoder{
		inner:   inner,
		cache:   cache,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
}

// Search returns candidates for the query, serving repeated queries from the
// cache. Only successful non-empty results are cached; failures and empty
// results always go back to the provider.
func (g *Geocoder) Search(ctx context.Context, query string) ([]domain.Place, error) {
	key := "geo:" + strings.ToLower(strings.TrimSpace(query))

	if payload, err := g.cache.Get(ctx, key); err == nil {
		var places []domain.Place

		if err := json.Unmarshal(payload, &places); err == nil {
			// The search term is not part of the cached payload and has
			// to be re-attached for each fresh deserialization.
			for i := range places {
				places[i].SetExpectedName(query)
			}

			g.metrics.RecordCacheLookup("geocode", true)

			return places, nil
		}

		g.logger.Warn("discarding undecodable geocode cache entry", zap.String("key", key))
		_ = g.cache.Delete(ctx, key)
	}

	g.metrics.RecordCacheLookup("geocode", false)

	places, err := g.inner.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if len(places) > 0 {
		if payload, err := json.Marshal(places); err == nil {
			if err := g.cache.Set(ctx, key, payload, g.ttl); err != nil {
				g.logger.Warn("failed to cache geocode result", zap.Error(err))
			}
		}
	}

	return places, nil
}

// Forecast wraps a forecast client with a short-lived cache keyed by rounded
// coordinates, so nearby requests within the same few minutes share one
// provider call.
type Forecast struct {
	inner   ports.ForecastClient
	cache   ports.CacheService
	ttl     time.Duration
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewForecast creates a caching forecast decorator.
func NewForecast(inner ports.ForecastClient, cache ports.CacheService, ttl time.Duration, metrics *observability.Metrics, logger *zap.Logger) *Forecast {
	return &Forecast{
		inner:   inner,
		cache:   cache,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
}

// CurrentTemperature returns the current reading, served from cache when a
// recent reading for (approximately) the same coordinates exists.
func (f *Forecast) CurrentTemperature(ctx context.Context, coords domain.Coordinates) (domain.TemperatureReading, error) {
	key := "temp:" + coords.Rounded().Key()

	if payload, err := f.cache.Get(ctx, key); err == nil {
		var reading domain.TemperatureReading

		if err := json.Unmarshal(payload, &reading); err == nil {
			f.metrics.RecordCacheLookup("forecast", true)

			return reading, nil
		}

		f.logger.Warn("discarding undecodable forecast cache entry", zap.String("key", key))
		_ = f.cache.Delete(ctx, key)
	}

	f.metrics.RecordCacheLookup("forecast", false)

	reading, err := f.inner.CurrentTemperature(ctx, coords)
	if err != nil {
		return domain.TemperatureReading{}, err
	}

	if payload, err := json.Marshal(reading); err == nil {
		if err := f.cache.Set(ctx, key, payload, f.ttl); err != nil {
			f.logger.Warn("failed to cache forecast result", zap.Error(err))
		}
	}

	return reading, nil
}
