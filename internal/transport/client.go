package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/netpanel/netpanel-go/internal/core/domain"
)

// Client is the fixed-origin HTTP client for the NetPanel API.
//
// The endpoint root is configured once at construction; every call is a JSON
// request routed through the supplied round tripper (normally a *Pipeline).
// Timeout policy belongs to the injected http.Client, not to this layer.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client. Its Transport is
// overwritten with the pipeline passed to NewClient.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates an API client for the given endpoint root.
func NewClient(baseURL string, pipeline http.RoundTripper, opts ...ClientOption) *Client {
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.httpClient.Transport = pipeline
	return c
}

// BaseURL returns the configured endpoint root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs a GET request. Query may be nil.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

// Post performs a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (*http.Response, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

// Put performs a PUT request with an optional JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (*http.Response, error) {
	return c.do(ctx, http.MethodPut, path, nil, body)
}

// PutQuery performs a PUT request with query parameters and a JSON body.
func (c *Client) PutQuery(ctx context.Context, path string, query url.Values, body any) (*http.Response, error) {
	return c.do(ctx, http.MethodPut, path, query, body)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*http.Response, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.httpClient.Do(req)
}

// ParseResponse consumes a response. For failure statuses it returns the
// matching domain error, preferring the server-supplied error field as
// details; for success it decodes the body into target (skipped when target
// is nil).
func ParseResponse(resp *http.Response, target any) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return errorFromResponse(resp)
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return domain.ErrServer.WithDetails("malformed response body").WithCause(err)
		}
	}
	return nil
}

// errorFromResponse maps a failure response to a domain error.
func errorFromResponse(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	// A non-JSON error body is fine; the status alone picks the error.
	_ = json.NewDecoder(resp.Body).Decode(&payload)

	var base *domain.Error
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		base = domain.ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		base = domain.ErrNotFound
	case resp.StatusCode >= 500:
		base = domain.ErrServer
	default:
		base = domain.ErrBadRequest
	}

	// No server message: the mapped error's own message stands, so a login
	// failure falls back to its generic text instead of a status line.
	if payload.Error != "" {
		return base.WithDetails(payload.Error)
	}
	return base
}
