package ytdlp

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Info is the metadata document yt-dlp prints for a single item.
type Info struct {
	doc gjson.Result
}

// ParseInfo parses a yt-dlp JSON document.
func ParseInfo(data []byte) (Info, error) {
	if !gjson.ValidBytes(data) {
		return Info{}, ErrMalformedOutput
	}
	return Info{doc: gjson.ParseBytes(data)}, nil
}

// First returns the first of paths whose value is a non-blank string or
// number. Missing, null and blank values fall through to the next path.
func (i Info) First(paths ...string) string {
	for _, p := range paths {
		v := i.doc.Get(p)
		switch v.Type {
		case gjson.String, gjson.Number:
			if s := strings.TrimSpace(v.String()); s != "" {
				return s
			}
		}
	}
	return ""
}

// TrackNumber returns the leading N of the track_number field, which may be a
// number or a string of the form "N" or "N/M". Zero means no usable number.
func (i Info) TrackNumber() int {
	v := i.doc.Get("track_number")
	var raw string
	switch v.Type {
	case gjson.Number:
		raw = v.Raw
	case gjson.String:
		raw = v.Str
	default:
		return 0
	}
	raw = strings.TrimSpace(raw)
	if idx := strings.IndexByte(raw, '/'); idx >= 0 {
		raw = strings.TrimSpace(raw[:idx])
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

// ThumbnailURL returns "thumbnail", falling back to the first entry of
// "thumbnails" which is either an object with a url or a plain string.
func (i Info) ThumbnailURL() string {
	if s := i.First("thumbnail"); s != "" {
		return s
	}
	first := i.doc.Get("thumbnails.0")
	switch {
	case first.IsObject():
		return strings.TrimSpace(first.Get("url").String())
	case first.Type == gjson.String:
		return strings.TrimSpace(first.Str)
	}
	return ""
}
