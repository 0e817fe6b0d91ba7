package giphy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public GIPHY v1 endpoint
	DefaultBaseURL = "https://api.giphy.com/v1"
	// DefaultTimeout bounds a single request
	DefaultTimeout = 30 * time.Second
	// DefaultLimit is the page size used when none is given
	DefaultLimit = 10

	maxBodySize = 5 * 1024 * 1024
)

// Client represents a GIPHY API client
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	logger     zerolog.Logger
}

// NewClient creates a new GIPHY client. No request is made until the first
// fetch, so constructing a client does not spend API quota.
func NewClient(baseURL, apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: giphy URL is required", ErrInvalidConfig)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: giphy API key is required", ErrInvalidConfig)
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("%w: invalid giphy URL %q: %v", ErrInvalidConfig, baseURL, err)
	}

	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// BaseURL returns the normalized base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// buildURL joins base, endpoint, API key and query parameters
func (c *Client) buildURL(endpoint string, params url.Values) string {
	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("api_key", c.apiKey)

	return fmt.Sprintf("%s%s?%s", c.baseURL, endpoint, query.Encode())
}

// Get issues a GET request against endpoint and decodes the JSON body into
// out. Any non-2xx status is returned as an *APIError.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: rate limiter: %w", ErrRequestFailed, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(endpoint, params), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("params", params.Encode()).
		Msg("Making GIPHY API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: failed to read response body: %w", ErrRequestFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.StatusCode, body),
			Body:       string(body),
		}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return fmt.Errorf("%w: empty body", ErrInvalidResponse)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	return nil
}

// Ping performs the cheapest possible request and returns the real error
func (c *Client) Ping(ctx context.Context) error {
	params := url.Values{}
	params.Set("limit", "1")

	var res GifsResponse
	return c.Get(ctx, "/gifs/trending", params, &res)
}

// errorMessage picks the most useful message for a failed response
func errorMessage(status int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Meta    Meta   `json:"meta"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Meta.Msg != "" {
			return payload.Meta.Msg
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return http.StatusText(status)
}
