package openmeteo

import (
	"context"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/sean-rowe/weather-bot/internal/core/domain"
	"github.com/sean-rowe/weather-bot/internal/infrastructure/circuitbreaker"
)

// ForecastClient fetches current conditions from the Open-Meteo forecast API.
type ForecastClient struct {
	baseURL    string
	httpClient *http.Client
	breaker    *circuitbreaker.Breaker
	logger     *zap.Logger
}

// NewForecastClient creates a forecast API client.
//
// Parameters:
//   - baseURL: Forecast API base URL (typically https://api.open-meteo.com/v1/forecast)
//   - httpClient: HTTP client with timeout configuration, shared across adapters
//   - breaker: Circuit breaker protecting the provider
//   - logger: Zap logger for API interaction logging
func NewForecastClient(baseURL string, httpClient *http.Client, breaker *circuitbreaker.Breaker, logger *zap.Logger) *ForecastClient {
	return &ForecastClient{
		baseURL:    baseURL,
		httpClient: httpClient,
		breaker:    breaker,
		logger:     logger,
	}
}

// currentResponse is the success payload of a current-conditions request.
type currentResponse struct {
	Current struct {
		Time        int64    `json:"time"`
		Temperature *float64 `json:"temperature_2m"`
	} `json:"current"`
}

func (r currentResponse) valid() bool {
	return r.Current.Temperature != nil
}

// CurrentTemperature returns the most recent temperature sample for the
// given coordinates.
func (c *ForecastClient) CurrentTemperature(ctx context.Context, coords domain.Coordinates) (domain.TemperatureReading, error) {
	fullURL := buildURL(c.baseURL, []param{
		{"latitude", strconv.FormatFloat(coords.Latitude, 'f', -1, 64)},
		{"longitude", strconv.FormatFloat(coords.Longitude, 'f', -1, 64)},
		{"current", "temperature_2m"},
		{"timeformat", "unixtime"},
	})

	var response currentResponse

	err := c.breaker.Execute("current-temperature", func() error {
		var innerErr error
		response, innerErr = queryAPI[currentResponse](ctx, c.httpClient, fullURL)
		return innerErr
	})

	if err != nil {
		return domain.TemperatureReading{}, err
	}

	c.logger.Debug("fetched current temperature",
		zap.Float64("latitude", coords.Latitude),
		zap.Float64("longitude", coords.Longitude),
		zap.Float64("celsius", *response.Current.Temperature))

	return domain.TemperatureReading{
		Time:    response.Current.Time,
		Celsius: *response.Current.Temperature,
	}, nil
}
