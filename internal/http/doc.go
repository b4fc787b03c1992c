// Package http provides the small HTTP client used for cover art lookups.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Query parameter encoding
//   - Per-request timeouts
//   - Non-2xx responses as *StatusError
//
// # Basic Usage
//
//	client := http.NewClient(http.WithTimeout(10 * time.Second))
//
//	body, err := client.Get(ctx, "https://itunes.apple.com/search", url.Values{
//	    "term": {"artist title"},
//	})
//
// # Testing
//
// Tests inject an httptest server client or a custom RoundTripper:
//
//	client := http.NewClient(http.WithHTTPClient(server.Client()))
package http
