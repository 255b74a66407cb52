// Package nominatim implements the geocoding secondary adapter on top of a
// Nominatim-compatible search endpoint.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/sean-rowe/weather-bot/internal/core/domain"
	"github.com/sean-rowe/weather-bot/internal/infrastructure/circuitbreaker"
)

// Options tune how searches are issued.
type Options struct {
	// Language is sent as accept-language so names and address parts come
	// back localized.
	Language string

	// Viewbox biases (but does not restrict) results toward an area,
	// in "minLon,minLat,maxLon,maxLat" form. Empty disables biasing.
	Viewbox string

	// Limit caps the number of candidates per search.
	Limit int
}

// Client searches a Nominatim instance for places matching free text.
type Client struct {
	baseURL    string
	opts       Options
	httpClient *http.Client
	breaker    *circuitbreaker.Breaker
	logger     *zap.Logger
}

// NewClient creates a geocoding client.
//
// Parameters:
//   - baseURL: Search endpoint URL (typically https://nominatim.openstreetmap.org/search)
//   - opts: Search tuning options
//   - httpClient: HTTP client with timeout configuration, shared across adapters
//   - breaker: Circuit breaker protecting the provider
//   - logger: Zap logger for API interaction logging
func NewClient(baseURL string, opts Options, httpClient *http.Client, breaker *circuitbreaker.Breaker, logger *zap.Logger) *Client {
	if opts.Limit <= 0 {
		opts.Limit = 10
	}

	return &Client{
		baseURL:    baseURL,
		opts:       opts,
		httpClient: httpClient,
		breaker:    breaker,
		logger:     logger,
	}
}

// apiError is the provider's error payload. Nominatim wraps the detail in an
// object with a numeric code.
type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Search queries the provider for candidate places. Every candidate comes
// back with the query attached as its expected name. An empty result is not
// an error; callers decide what no candidates means.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Place, error) {
	fullURL := c.searchURL(query)

	var places []domain.Place

	err := c.breaker.Execute("geocode-search", func() error {
		var innerErr error
		places, innerErr = c.query(ctx, fullURL)
		return innerErr
	})

	if err != nil {
		return nil, err
	}

	for i := range places {
		places[i].SetExpectedName(query)
	}

	c.logger.Debug("geocoding search completed",
		zap.String("query", query),
		zap.Int("candidates", len(places)))

	return places, nil
}

func (c *Client) searchURL(query string) string {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "jsonv2")
	params.Set("limit", strconv.Itoa(c.opts.Limit))
	params.Set("addressdetails", "1")
	params.Set("namedetails", "1")
	params.Set("featureType", "settlement")

	if c.opts.Language != "" {
		params.Set("accept-language", c.opts.Language)
	}

	if c.opts.Viewbox != "" {
		params.Set("viewbox", c.opts.Viewbox)
	}

	return c.baseURL + "?" + params.Encode()
}

// query issues the request and decodes the body, falling back to the
// provider's error shape when the success shape does not match. The provider
// returns a JSON array on success and an object on failure, so an object
// where an array is expected is the error signal.
func (c *Client) query(ctx context.Context, fullURL string) ([]domain.Place, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, &domain.ProviderError{Kind: domain.ProviderCommunication, Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.ProviderError{Kind: domain.ProviderCommunication, Cause: err}
	}

	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.ProviderError{Kind: domain.ProviderCommunication, Cause: err}
	}

	var places []domain.Place

	successErr := json.Unmarshal(payload, &places)
	if successErr == nil {
		return places, nil
	}

	var failure apiError

	if err := json.Unmarshal(payload, &failure); err == nil && failure.Error.Message != "" {
		return nil, &domain.ProviderError{Kind: domain.ProviderBadRequest, Reason: failure.Error.Message}
	}

	return nil, &domain.ProviderError{
		Kind:  domain.ProviderParsing,
		Cause: fmt.Errorf("decoding search response: %w", successErr),
	}
}
