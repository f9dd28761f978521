package abuseipdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultEndpoint is the AbuseIPDB v2 check endpoint.
	DefaultEndpoint = "https://api.abuseipdb.com/api/v2/check"

	// DefaultTimeout bounds a single reputation lookup.
	DefaultTimeout = 10 * time.Second

	userAgent = "iprep-checker/1.0"
)

// ErrNoData indicates that the lookup answered but carried no usable `data`
// payload. Callers still write a no-data report for this case.
var ErrNoData = errors.New("abuseipdb: no data received from API")

// Client queries the AbuseIPDB check endpoint.
type Client struct {
	endpoint     string
	apiKey       string
	maxAgeInDays int
	httpClient   *http.Client
}

// New builds a client for the given endpoint and credential. Zero values fall
// back to the documented defaults.
func New(endpoint, apiKey string, maxAgeInDays int, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if maxAgeInDays <= 0 {
		maxAgeInDays = 90
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		endpoint:     endpoint,
		apiKey:       apiKey,
		maxAgeInDays: maxAgeInDays,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

// Check fetches the reputation record for ipAddress. A response whose `data`
// object is missing or null yields ErrNoData.
func (c *Client) Check(ctx context.Context, ipAddress string) (*Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	params := url.Values{}
	params.Set("ipAddress", ipAddress)
	params.Set("maxAgeInDays", strconv.Itoa(c.maxAgeInDays))
	params.Set("verbose", "")
	req.URL.RawQuery = params.Encode()

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Key", c.apiKey)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("check %s: %w", ipAddress, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("check %s: unexpected status %d: %s", ipAddress, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if payload.Data == nil {
		return nil, ErrNoData
	}

	return payload.Data, nil
}
