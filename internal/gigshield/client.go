package gigshield

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"
)

const (
	defaultBaseURL = "http://localhost:8000"
	maxRetries     = 3
	retryDelay     = time.Second
)

// HTTPClient defines the interface for HTTP operations
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenSource supplies a fresh bearer token for each authenticated call.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client handles communication with the GigShield API
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient HTTPClient
}

// ClientOption allows configuring the Client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL sets a custom base URL
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// NewClient creates a new GigShield API client. tokens may be nil, in
// which case only unauthenticated endpoints are usable.
func NewClient(tokens TokenSource, opts ...ClientOption) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		tokens:     tokens,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}

	if url := os.Getenv("GIGSHIELD_API_URL"); url != "" {
		client.baseURL = url
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// apiError is a non-2xx response from the API, carrying the backend's
// detail message when one was provided.
type apiError struct {
	StatusCode int
	Detail     string
}

func (e *apiError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("API error (status %d)", e.StatusCode)
}

// doRequest performs an HTTP request with retry on transport errors,
// rate limits, and server errors. 4xx responses are never retried. When
// authed is set, a fresh bearer token is attached on every attempt.
func (c *Client) doRequest(ctx context.Context, req *http.Request, body []byte, authed bool) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryDelay * time.Duration(attempt))
		}

		if body != nil {
			req.Body = io.NopCloser(bytes.NewReader(body))
		}

		if authed {
			if c.tokens == nil {
				return nil, fmt.Errorf("not signed in")
			}
			token, err := c.tokens.Token(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get auth token: %w", err)
			}
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			retryAfter := resp.Header.Get("Retry-After")
			if seconds, err := strconv.Atoi(retryAfter); err == nil {
				time.Sleep(time.Duration(seconds) * time.Second)
			} else {
				time.Sleep(retryDelay * time.Duration(attempt+1))
			}
			lastErr = fmt.Errorf("rate limited: %d", resp.StatusCode)
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
			continue
		}

		return resp, nil
	}

	return nil, fmt.Errorf("request failed after %d retries: %w", maxRetries, lastErr)
}

// doJSON sends a JSON request and decodes the JSON response into out.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}, authed bool) error {
	var body []byte
	if in != nil {
		var err error
		body, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.doRequest(ctx, req, body, authed)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// decodeJSON reads and decodes JSON from a response body
func decodeJSON(r io.Reader, v interface{}) error {
	return json.NewDecoder(r).Decode(v)
}

// decodeError extracts the backend's detail message from an error
// response, falling back to the raw body.
func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return &apiError{StatusCode: resp.StatusCode, Detail: parsed.Detail}
	}
	return &apiError{StatusCode: resp.StatusCode, Detail: string(body)}
}

// Health checks API availability. No authentication required.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	if err := c.doJSON(ctx, http.MethodGet, "/api/health", nil, &status, false); err != nil {
		return nil, err
	}
	return &status, nil
}
