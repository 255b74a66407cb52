package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sean-rowe/weather-bot/internal/core/domain"
	"github.com/sean-rowe/weather-bot/internal/infrastructure/circuitbreaker"
)

func testBreaker(t *testing.T) *circuitbreaker.Breaker {
	t.Helper()
	return circuitbreaker.NewBreaker(circuitbreaker.Config{
		Name:        "test",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     time.Minute,
	}, zap.NewNop())
}

func TestForecastClient_CurrentTemperature(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		assert.Equal(t, "48.21", query.Get("latitude"))
		assert.Equal(t, "16.37", query.Get("longitude"))
		assert.Equal(t, "temperature_2m", query.Get("current"))
		assert.Equal(t, "unixtime", query.Get("timeformat"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"latitude": 48.21, "longitude": 16.37, "generationtime_ms": 0.05,
			"current": {"time": 1718452800, "temperature_2m": 24.3}
		}`))
	}))
	defer server.Close()

	client := NewForecastClient(server.URL, server.Client(), testBreaker(t), zap.NewNop())

	reading, err := client.CurrentTemperature(context.Background(),
		domain.Coordinates{Latitude: 48.21, Longitude: 16.37})

	require.NoError(t, err)
	assert.Equal(t, domain.TemperatureReading{Time: 1718452800, Celsius: 24.3}, reading)
}

func TestForecastClient_ProviderRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error": true, "reason": "Latitude must be in range of -90 to 90°."}`))
	}))
	defer server.Close()

	client := NewForecastClient(server.URL, server.Client(), testBreaker(t), zap.NewNop())

	_, err := client.CurrentTemperature(context.Background(), domain.Coordinates{Latitude: 91})

	require.Error(t, err)

	var providerErr *domain.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, domain.ProviderBadRequest, providerErr.Kind)
	assert.Equal(t, "Latitude must be in range of -90 to 90°.", providerErr.Reason,
		"provider reason text is preserved verbatim")
}

func TestForecastClient_UnparsableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>gateway error</html>`))
	}))
	defer server.Close()

	client := NewForecastClient(server.URL, server.Client(), testBreaker(t), zap.NewNop())

	_, err := client.CurrentTemperature(context.Background(), domain.Coordinates{})

	var providerErr *domain.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, domain.ProviderParsing, providerErr.Kind)
}

func TestForecastClient_WrongShapeBodyIsParsingError(t *testing.T) {
	// Valid JSON that matches neither the success nor the error schema.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"something": "else"}`))
	}))
	defer server.Close()

	client := NewForecastClient(server.URL, server.Client(), testBreaker(t), zap.NewNop())

	_, err := client.CurrentTemperature(context.Background(), domain.Coordinates{})

	var providerErr *domain.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, domain.ProviderParsing, providerErr.Kind)
}

func TestForecastClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse all connections

	client := NewForecastClient(server.URL, &http.Client{Timeout: time.Second}, testBreaker(t), zap.NewNop())

	_, err := client.CurrentTemperature(context.Background(), domain.Coordinates{})

	var providerErr *domain.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, domain.ProviderCommunication, providerErr.Kind)
}

func TestArchiveClient_HourlyTemperatures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		assert.Equal(t, "2024-06-01", query.Get("start_date"))
		assert.Equal(t, "2024-06-01", query.Get("end_date"))
		assert.Equal(t, "Europe/Vienna", query.Get("timezone"))
		assert.Equal(t, "temperature_2m", query.Get("hourly"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"hourly": {
				"time": [1717200000, 1717203600, 1717207200],
				"temperature_2m": [14.1, 14.9, 16.2]
			}
		}`))
	}))
	defer server.Close()

	client := NewArchiveClient(server.URL, server.Client(), testBreaker(t), zap.NewNop())

	day := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)
	series, err := client.HourlyTemperatures(context.Background(),
		domain.Coordinates{Latitude: 48.21, Longitude: 16.37}, day, day, "Europe/Vienna")

	require.NoError(t, err)
	assert.Equal(t, 3, series.Len())

	reading, ok := series.At(1717203600)
	require.True(t, ok)
	assert.Equal(t, 14.9, reading.Celsius)
}

func TestArchiveClient_StartAfterEndRejected(t *testing.T) {
	client := NewArchiveClient("http://unused.invalid", &http.Client{}, testBreaker(t), zap.NewNop())

	start := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := client.HourlyTemperatures(context.Background(), domain.Coordinates{}, start, end, "UTC")

	var providerErr *domain.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, domain.ProviderBadRequest, providerErr.Kind)
}

func TestArchiveClient_MismatchedSeriesIsParsingError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hourly": {"time": [0, 3600], "temperature_2m": [1.0]}}`))
	}))
	defer server.Close()

	client := NewArchiveClient(server.URL, server.Client(), testBreaker(t), zap.NewNop())

	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err := client.HourlyTemperatures(context.Background(), domain.Coordinates{}, day, day, "UTC")

	var providerErr *domain.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, domain.ProviderParsing, providerErr.Kind)
}

func TestBuildURL(t *testing.T) {
	url := buildURL("https://example.com/v1/forecast", []param{
		{"latitude", "48.21"},
		{"current", "temperature_2m"},
	})

	assert.Equal(t, "https://example.com/v1/forecast?latitude=48.21&current=temperature_2m", url,
		"parameters keep the caller's order")

	url = buildURL("https://example.com/search?format=jsonv2", []param{{"q", "Wien"}})
	assert.Equal(t, "https://example.com/search?format=jsonv2&q=Wien", url)
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	breaker := testBreaker(t)
	client := NewForecastClient(server.URL, &http.Client{Timeout: time.Second}, breaker, zap.NewNop())

	for i := 0; i < 5; i++ {
		_, _ = client.CurrentTemperature(context.Background(), domain.Coordinates{})
	}

	_, err := client.CurrentTemperature(context.Background(), domain.Coordinates{})
	require.Error(t, err)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState,
		"open breaker short-circuits without reaching the provider")
}
