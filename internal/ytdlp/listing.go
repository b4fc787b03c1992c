package ytdlp

import (
	"strings"

	"github.com/tidwall/gjson"
)

// ShortURLPrefix is prepended to entry ids to form item URLs.
const ShortURLPrefix = "https://youtu.be/"

// Listing is the flat playlist document yt-dlp prints with --flat-playlist.
type Listing struct {
	doc gjson.Result
}

// ParseListing parses a flat playlist document.
func ParseListing(data []byte) (Listing, error) {
	if !gjson.ValidBytes(data) {
		return Listing{}, ErrMalformedOutput
	}
	return Listing{doc: gjson.ParseBytes(data)}, nil
}

// Title returns the playlist title, if any.
func (l Listing) Title() string {
	return strings.TrimSpace(l.doc.Get("title").String())
}

// ItemURLs returns one URL per playlist entry, in playlist order. Entries are
// addressed by id (a bare string entry is an id), falling back to their url;
// entries with neither are skipped and repeated entries are kept once. A document without entries is
// a single item: source itself.
func (l Listing) ItemURLs(source string) []string {
	entries := l.doc.Get("entries")
	if !entries.IsArray() || len(entries.Array()) == 0 {
		return []string{source}
	}

	var urls []string
	seen := make(map[string]struct{})
	for _, e := range entries.Array() {
		u := entryURL(e)
		if u == "" {
			continue
		}
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}
	if len(urls) == 0 {
		return []string{source}
	}
	return urls
}

func entryURL(e gjson.Result) string {
	if e.Type == gjson.String {
		if id := strings.TrimSpace(e.Str); id != "" {
			return ShortURLPrefix + id
		}
		return ""
	}
	if id := strings.TrimSpace(e.Get("id").String()); id != "" {
		return ShortURLPrefix + id
	}
	return strings.TrimSpace(e.Get("url").String())
}
