// Package openmeteo implements clients for the Open-Meteo forecast and
// archive APIs. These serve as secondary adapters, translating domain
// requests into provider calls and mapping both success and failure payloads
// into the domain error taxonomy.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sean-rowe/weather-bot/internal/core/domain"
)

// param is one ordered query parameter. A plain slice keeps the parameters
// in the order the caller wrote them, which url.Values would not.
type param struct {
	key   string
	value string
}

// buildURL appends the ordered parameters to the base URL.
func buildURL(base string, params []param) string {
	var query strings.Builder

	for i, p := range params {
		if i > 0 {
			query.WriteByte('&')
		}
		query.WriteString(url.QueryEscape(p.key))
		query.WriteByte('=')
		query.WriteString(url.QueryEscape(p.value))
	}

	if strings.Contains(base, "?") {
		return base + "&" + query.String()
	}

	return base + "?" + query.String()
}

// apiError is the provider's error payload shape.
type apiError struct {
	Reason string `json:"reason"`
}

// schema is implemented by every expected success payload so queryAPI can
// tell a genuine success apart from an error payload that Go's lenient JSON
// decoding would otherwise accept silently.
type schema interface {
	valid() bool
}

// queryAPI issues a GET request and decodes the body with a two-schema
// fallback: the success schema S is tried first; if the body does not match
// it, the provider error shape is tried on the same body; if neither
// matches, the original success-decode failure is reported. The fallback
// exists because the provider returns differently shaped JSON for success
// and error with no status signal reliable enough to branch on.
func queryAPI[S schema](ctx context.Context, client *http.Client, fullURL string) (S, error) {
	var out S

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return out, &domain.ProviderError{Kind: domain.ProviderCommunication, Cause: err}
	}

	resp, err := client.Do(req)
	if err != nil {
		return out, &domain.ProviderError{Kind: domain.ProviderCommunication, Cause: err}
	}

	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return out, &domain.ProviderError{Kind: domain.ProviderCommunication, Cause: err}
	}

	successErr := json.Unmarshal(payload, &out)
	if successErr == nil && out.valid() {
		return out, nil
	}

	var failure apiError

	if err := json.Unmarshal(payload, &failure); err == nil && failure.Reason != "" {
		var zero S
		return zero, &domain.ProviderError{Kind: domain.ProviderBadRequest, Reason: failure.Reason}
	}

	if successErr == nil {
		successErr = fmt.Errorf("response body matches neither the success nor the error schema")
	}

	var zero S
	return zero, &domain.ProviderError{Kind: domain.ProviderParsing, Cause: successErr}
}
