package openmeteo

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/sean-rowe/weather-bot/internal/core/domain"
	"github.com/sean-rowe/weather-bot/internal/infrastructure/circuitbreaker"
)

// ArchiveClient fetches historical hourly samples from the Open-Meteo
// archive API.
type ArchiveClient struct {
	baseURL    string
	httpClient *http.Client
	breaker    *circuitbreaker.Breaker
	logger     *zap.Logger
}

// NewArchiveClient creates an archive API client.
//
// Parameters:
//   - baseURL: Archive API base URL (typically https://archive-api.open-meteo.com/v1/archive)
//   - httpClient: HTTP client with timeout configuration, shared across adapters
//   - breaker: Circuit breaker protecting the provider
//   - logger: Zap logger for API interaction logging
func NewArchiveClient(baseURL string, httpClient *http.Client, breaker *circuitbreaker.Breaker, logger *zap.Logger) *ArchiveClient {
	return &ArchiveClient{
		baseURL:    baseURL,
		httpClient: httpClient,
		breaker:    breaker,
		logger:     logger,
	}
}

// archiveResponse is the success payload of an archive request: parallel
// time and value arrays that get zipped into a series.
type archiveResponse struct {
	Hourly *struct {
		Times        []int64   `json:"time"`
		Temperatures []float64 `json:"temperature_2m"`
	} `json:"hourly"`
}

func (r archiveResponse) valid() bool {
	return r.Hourly != nil
}

// HourlyTemperatures returns the hourly temperature series between the start
// and end calendar dates (inclusive), with timestamps expressed in the named
// timezone.
func (c *ArchiveClient) HourlyTemperatures(ctx context.Context, coords domain.Coordinates, start, end time.Time, timezone string) (domain.TemperatureSeries, error) {
	if start.After(end) {
		return domain.TemperatureSeries{}, &domain.ProviderError{
			Kind:   domain.ProviderBadRequest,
			Reason: "start date must be less than or equal to end date",
		}
	}

	fullURL := buildURL(c.baseURL, []param{
		{"latitude", strconv.FormatFloat(coords.Latitude, 'f', -1, 64)},
		{"longitude", strconv.FormatFloat(coords.Longitude, 'f', -1, 64)},
		{"hourly", "temperature_2m"},
		{"start_date", start.Format("2006-01-02")},
		{"end_date", end.Format("2006-01-02")},
		{"timezone", timezone},
		{"timeformat", "unixtime"},
	})

	var response archiveResponse

	err := c.breaker.Execute("hourly-temperatures", func() error {
		var innerErr error
		response, innerErr = queryAPI[archiveResponse](ctx, c.httpClient, fullURL)
		return innerErr
	})

	if err != nil {
		return domain.TemperatureSeries{}, err
	}

	series, err := domain.NewTemperatureSeries(response.Hourly.Times, response.Hourly.Temperatures)
	if err != nil {
		return domain.TemperatureSeries{}, &domain.ProviderError{Kind: domain.ProviderParsing, Cause: err}
	}

	c.logger.Debug("fetched hourly temperature series",
		zap.Float64("latitude", coords.Latitude),
		zap.Float64("longitude", coords.Longitude),
		zap.Int("samples", series.Len()))

	return series, nil
}
