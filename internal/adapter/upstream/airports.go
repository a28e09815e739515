package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/faresight/flight-result-pipeline/internal/domain"
	"github.com/faresight/flight-result-pipeline/internal/infrastructure/retry"
)

// Airport is one record from the airports reference endpoint,
// consumed by the airport-picker collaborator.
type Airport struct {
	// Code is the IATA airport code.
	Code string `json:"code"`

	// Name is the full airport name.
	Name string `json:"name"`

	// City is the served city.
	City string `json:"city"`

	// Country is the airport's country.
	Country string `json:"country,omitempty"`
}

// airportsEnvelope wraps the reference payload. The relay sometimes nests
// the records one level deeper as an array of arrays, so data is decoded
// lazily and normalized on read.
type airportsEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// Airports fetches the airport reference list, normalizing either the flat
// or the nested array-of-arrays payload shape. The fetch is idempotent
// reference data, so transient upstream failures are retried; search and
// auth calls are never retried automatically.
func (c *Client) Airports(ctx context.Context) ([]Airport, error) {
	return retry.DoWithResult(ctx, func() ([]Airport, error) {
		return c.fetchAirports(ctx)
	}, retry.ReferenceConfig.WithRetryIf(transientUpstream))
}

// fetchAirports performs one airports request.
func (c *Client) fetchAirports(ctx context.Context) ([]Airport, error) {
	req, err := c.newRequest(ctx, http.MethodGet, airportsPath, nil)
	if err != nil {
		return nil, err
	}

	body, status, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, domain.NewUpstreamError(status, string(body))
	}

	var envelope airportsEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode airports response: %w", err)
	}
	return normalizeAirports(envelope.Data)
}

// transientUpstream retries transport failures and 5xx responses only.
func transientUpstream(err error) bool {
	var upstreamErr *domain.UpstreamError
	if !errors.As(err, &upstreamErr) {
		return false
	}
	return upstreamErr.StatusCode == 0 || upstreamErr.StatusCode >= 500
}

// normalizeAirports decodes the data payload as a flat list first, then as
// a nested array-of-arrays, flattening the latter.
func normalizeAirports(data json.RawMessage) ([]Airport, error) {
	if len(data) == 0 {
		return []Airport{}, nil
	}

	var flat []Airport
	if err := json.Unmarshal(data, &flat); err == nil {
		return flat, nil
	}

	var nested [][]Airport
	if err := json.Unmarshal(data, &nested); err != nil {
		return nil, fmt.Errorf("decode airports payload: %w", err)
	}

	out := make([]Airport, 0)
	for _, group := range nested {
		out = append(out, group...)
	}
	return out, nil
}
