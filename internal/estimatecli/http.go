package estimatecli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrRequest is returned when the service answers with an error status.
var ErrRequest = errors.New("estimate request failed")

// Client talks to a running valuation service.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client with the given request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Estimate posts one car and returns its valuation along with the raw body.
func (c *Client) Estimate(ctx context.Context, r Request) (Estimate, []byte, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return Estimate{}, nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/estimate", bytes.NewReader(body))
	if err != nil {
		return Estimate{}, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var est Estimate
	raw, err := c.do(req, &est)
	return est, raw, err
}

// Examples fetches the valuations of the service's sample cars.
func (c *Client) Examples(ctx context.Context) ([]Estimate, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/examples", http.NoBody)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	var out []Estimate
	raw, err := c.do(req, &out)
	return out, raw, err
}

func (c *Client) do(req *http.Request, v any) ([]byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var e ErrorResponse
		if jerr := json.Unmarshal(raw, &e); jerr == nil && e.Message != "" {
			return raw, fmt.Errorf("%w: %d %s: %s", ErrRequest, resp.StatusCode, e.Code, e.Message)
		}
		return raw, fmt.Errorf("%w: %d %s", ErrRequest, resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return raw, fmt.Errorf("failed to decode response: %w", err)
	}
	return raw, nil
}
