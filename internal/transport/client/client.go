package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/joshdurbin/shortcode-service/internal/domain"
)

// Client represents an HTTP client for the URL shortener API
type Client struct {
	serverURL  string
	httpClient *http.Client
}

// NewClient creates a new URL shortener client. Redirects are never
// followed, so Resolve can report the Location the server hands out.
func NewClient(serverURL string) *Client {
	return &Client{
		serverURL: serverURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Shorten maps url to a shortcode. An empty shortcode asks the server to
// generate one.
func (c *Client) Shorten(ctx context.Context, originalURL, shortcode string) (*domain.ShortenResponse, error) {
	reqBody := domain.ShortenRequest{URL: originalURL}
	if shortcode != "" {
		reqBody.Shortcode = &shortcode
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/shorten", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, responseError(resp)
	}

	var result domain.ShortenResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

// Stats retrieves the usage statistics of a shortcode
func (c *Client) Stats(ctx context.Context, shortcode string) (*domain.StatsResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serverURL+"/"+url.PathEscape(shortcode)+"/stats", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp)
	}

	var stats domain.StatsResponse
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &stats, nil
}

// Resolve returns the redirect target of a shortcode. The server counts
// the call as a visit.
func (c *Client) Resolve(ctx context.Context, shortcode string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serverURL+"/"+url.PathEscape(shortcode), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		return "", responseError(resp)
	}

	return resp.Header.Get("Location"), nil
}

// responseError converts a non-success response into an error wrapping the
// matching domain sentinel
func responseError(resp *http.Response) error {
	var body domain.ErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)

	var sentinel error
	switch resp.StatusCode {
	case http.StatusBadRequest:
		sentinel = domain.ErrInvalidRequest
	case http.StatusUnprocessableEntity:
		sentinel = domain.ErrInvalidShortcode
	case http.StatusConflict:
		sentinel = domain.ErrShortcodeTaken
	case http.StatusNotFound:
		sentinel = domain.ErrNotFound
	}

	if sentinel == nil {
		if body.Error != "" {
			return fmt.Errorf("server returned status %d: %s", resp.StatusCode, body.Error)
		}
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}
	return fmt.Errorf("server returned status %d: %w", resp.StatusCode, sentinel)
}
