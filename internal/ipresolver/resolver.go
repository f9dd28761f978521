package ipresolver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultEndpoint echoes the caller's public address as JSON.
	DefaultEndpoint = "https://api.ipify.org?format=json"

	// DefaultTimeout bounds a single discovery call.
	DefaultTimeout = 5 * time.Second

	userAgent = "iprep-checker/1.0"
)

// Resolver discovers the caller's public IP address over HTTP.
type Resolver struct {
	endpoint   string
	httpClient *http.Client
}

func New(endpoint string, timeout time.Duration) *Resolver {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Resolver{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// CurrentIP returns the public address reported by the echo endpoint.
func (r *Resolver) CurrentIP(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch current IP: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("fetch current IP: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload struct {
		IP string `json:"ip"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	ip := strings.TrimSpace(payload.IP)
	if ip == "" {
		return "", fmt.Errorf("fetch current IP: response carried no ip field")
	}

	return ip, nil
}
