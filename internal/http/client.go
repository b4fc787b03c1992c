package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout bounds every request made by a Client unless overridden.
const DefaultTimeout = 10 * time.Second

// maxBodySize caps response bodies; cover art and search results are far
// smaller than this.
const maxBodySize = 32 << 20

// ErrBodyTooLarge is returned when a response body exceeds the size cap.
var ErrBodyTooLarge = errors.New("response body too large")

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.URL)
}

// Client wraps HTTP operations used by the cover art fetchers.
//
// Client provides:
//   - Configured User-Agent header
//   - A bounded per-request timeout
//   - Injection of a custom *http.Client or RoundTripper for tests
//
// Example usage:
//
//	client := NewClient(WithTimeout(5 * time.Second))
//
//	// Search request with query parameters
//	body, err := client.Get(ctx, "https://itunes.apple.com/search", url.Values{
//	    "term":   {"Daft Punk One More Time"},
//	    "entity": {"song"},
//	    "limit":  {"1"},
//	})
//
//	// Raw image download
//	art, err := client.Get(ctx, artworkURL, nil)
type Client struct {
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
	maxBody    int64
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTransport sets the RoundTripper of the underlying client.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		if rt != nil {
			hc := *c.httpClient
			hc.Transport = rt
			c.httpClient = &hc
		}
	}
}

// WithTimeout sets the per-request timeout. Non-positive values keep the
// default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient creates a new HTTP client.
//
// The client is configured with:
//   - DefaultTimeout per request
//   - "songripper" User-Agent header
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		userAgent:  "songripper",
		timeout:    DefaultTimeout,
		maxBody:    maxBodySize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs a GET request and returns the response body as bytes.
//
// query, when non-empty, is encoded and appended to rawURL. The request
// includes the configured User-Agent header and is cancelled after the
// client's timeout.
//
// Returns an error if:
//   - The URL is invalid or the request fails
//   - The response status is not 2xx (a *StatusError)
//   - Reading the body fails
//
// Example:
//
//	data, err := client.Get(ctx, "https://example.com/image.jpg", nil)
func (c *Client) Get(ctx context.Context, rawURL string, query url.Values) ([]byte, error) {
	target, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if len(query) > 0 {
		q := target.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		target.RawQuery = q.Encode()
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: target.String(), StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrBodyTooLarge, target.String(), c.maxBody)
	}
	return body, nil
}
