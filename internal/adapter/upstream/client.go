// Package upstream is the HTTP adapter for the vendor relay: the flight
// search endpoint, the app-token endpoint, and the airports reference
// endpoint. The relay's payloads are externally owned and decoded
// defensively.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/faresight/flight-result-pipeline/internal/domain"
	"github.com/faresight/flight-result-pipeline/internal/infrastructure/logger"
)

// Relay paths.
const (
	searchPath   = "/api/flights/search"
	tokenPath    = "/api/auth/app/token"
	airportsPath = "/api/settings/airports"
)

// Config holds the upstream client settings.
type Config struct {
	// BaseURL is the root of the vendor relay.
	BaseURL string `env:"UPSTREAM_BASE_URL" envDefault:"http://localhost:9000"`

	// Timeout bounds each outbound HTTP call.
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"15s"`

	// RequestsPerSecond limits the outbound call rate to the relay.
	RequestsPerSecond float64 `env:"UPSTREAM_RATE_LIMIT" envDefault:"10"`

	// Burst is the rate limiter burst size.
	Burst int `env:"UPSTREAM_RATE_BURST" envDefault:"5"`
}

// Client calls the vendor relay. All methods honor the caller's context,
// so a superseded search can be cancelled at the transport level.
type Client struct {
	http    *http.Client
	baseURL string
	limiter *rate.Limiter
	log     *logger.Logger
}

// NewClient creates a rate-limited relay client.
func NewClient(cfg Config, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		log:     log,
	}
}

// searchResponse is the relay's search envelope.
type searchResponse struct {
	Results []domain.RawItinerary `json:"results"`
}

// Search POSTs the criteria to the relay's search endpoint with the given
// bearer credential and returns the raw itinerary list.
//
// A 401 maps to domain.ErrUnauthorized so callers can distinguish it from
// generic upstream failures; any other non-2xx maps to an UpstreamError
// carrying the status and body text.
func (c *Client) Search(ctx context.Context, criteria domain.SearchCriteria, cred domain.Credential) ([]domain.RawItinerary, error) {
	body, err := json.Marshal(criteria)
	if err != nil {
		return nil, fmt.Errorf("encode search criteria: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, searchPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	attachAuthHeader(req, cred)

	respBody, status, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized {
		return nil, fmt.Errorf("%w: search endpoint returned 401", domain.ErrUnauthorized)
	}
	if status < 200 || status > 299 {
		return nil, domain.NewUpstreamError(status, string(respBody))
	}

	var decoded searchResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return decoded.Results, nil
}

// appTokenRequest is the token endpoint's request body.
type appTokenRequest struct {
	AppSecret string `json:"appSecret"`
}

// AppToken POSTs the shared secret to the relay's token endpoint and
// returns the raw 2xx response body for token extraction by the auth flow.
func (c *Client) AppToken(ctx context.Context, secret string) ([]byte, error) {
	body, err := json.Marshal(appTokenRequest{AppSecret: secret})
	if err != nil {
		return nil, fmt.Errorf("encode token request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, tokenPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	respBody, status, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, domain.NewUpstreamError(status, string(respBody))
	}
	return respBody, nil
}

// newRequest builds a JSON request against the relay.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// do waits for rate-limiter clearance, executes the request, and reads the
// full body. Transport failures map to an UpstreamError with status 0.
func (c *Client) do(ctx context.Context, req *http.Request) ([]byte, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, 0, ctx.Err()
		}
		return nil, 0, domain.NewUpstreamError(0, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, domain.NewUpstreamError(resp.StatusCode, "read body: "+err.Error())
	}

	c.log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("Upstream call")

	return body, resp.StatusCode, nil
}

// attachAuthHeader sets the bearer Authorization header for the credential.
// Callers with no credential must fail fast before reaching this point.
func attachAuthHeader(req *http.Request, cred domain.Credential) {
	req.Header.Set("Authorization", "Bearer "+cred.Value)
}
