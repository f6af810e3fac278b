package storeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the public MockAPI project backing the storefront.
const DefaultBaseURL = "https://64f8b5c3824680fd81e13716.mockapi.io/api/v1"

// Client is a minimal HTTP client for the remote product store. It exposes
// the resource collections (/products, /categories, /reviews) and maps every
// failure to an *APIError so callers can decide retryability from the
// status code.
type Client struct {
	httpClient *http.Client
	baseURL    string
	debug      bool
}

// NewClient constructs a new store client with sane defaults. An empty
// baseURL selects DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		debug:      os.Getenv("ENV") == "development",
	}
}

// SetHTTPClient replaces the underlying HTTP client. Useful for tests.
func (c *Client) SetHTTPClient(hc *http.Client) { c.httpClient = hc }

// doRequest performs an HTTP request with a JSON body and decodes the JSON
// response into result. A nil result discards the response body (DELETE).
func (c *Client) doRequest(ctx context.Context, method, endpoint string, query url.Values, body any, result any) error {
	reqURL := c.baseURL + endpoint
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if c.debug {
		log.Debug().
			Str("method", method).
			Str("url", reqURL).
			Msg("[STORE] Outgoing request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return NewNetworkError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewNetworkError(err)
	}

	if c.debug {
		log.Debug().
			Str("url", reqURL).
			Int("status_code", resp.StatusCode).
			Msg("[STORE] Incoming response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusText := http.StatusText(resp.StatusCode)
		return &APIError{
			Status:     resp.StatusCode,
			StatusText: statusText,
			Message:    fmt.Sprintf("API request failed: %s", statusText),
		}
	}

	if result == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
