// Package artwork looks up cover art for ripped tracks.
//
// Every lookup degrades to "absent": transport failures, bad status codes,
// malformed responses and timeouts all return (nil, false).
package artwork

import (
	"context"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	shttp "github.com/handiism/songripper/internal/http"
)

// DefaultSearchURL is the iTunes Search API endpoint.
const DefaultSearchURL = "https://itunes.apple.com/search"

// Fetcher resolves cover art through a search API and plain URL downloads.
type Fetcher struct {
	client    *shttp.Client
	searchURL string
}

// NewFetcher returns a Fetcher using client. An empty searchURL selects
// DefaultSearchURL.
func NewFetcher(client *shttp.Client, searchURL string) *Fetcher {
	if client == nil {
		client = shttp.NewClient()
	}
	if searchURL == "" {
		searchURL = DefaultSearchURL
	}
	return &Fetcher{client: client, searchURL: searchURL}
}

// CoverArt searches for "<artist> <title>" and downloads the first song
// result's artwork at 600x600.
func (f *Fetcher) CoverArt(ctx context.Context, artist, title string) ([]byte, bool) {
	term := strings.TrimSpace(artist + " " + title)
	if term == "" {
		return nil, false
	}
	body, err := f.client.Get(ctx, f.searchURL, url.Values{
		"term":   {term},
		"entity": {"song"},
		"limit":  {"1"},
	})
	if err != nil || !gjson.ValidBytes(body) {
		return nil, false
	}

	artURL := gjson.GetBytes(body, "results.0.artworkUrl100").String()
	if artURL == "" {
		return nil, false
	}
	artURL = strings.Replace(artURL, "100x100bb", "600x600bb", 1)
	return f.URLBytes(ctx, artURL)
}

// URLBytes downloads url. Empty bodies count as absent.
func (f *Fetcher) URLBytes(ctx context.Context, rawURL string) ([]byte, bool) {
	if rawURL == "" {
		return nil, false
	}
	data, err := f.client.Get(ctx, rawURL, nil)
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}
