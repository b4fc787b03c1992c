package ytdlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustInfo(t *testing.T, doc string) Info {
	t.Helper()
	info, err := ParseInfo([]byte(doc))
	require.NoError(t, err)
	return info
}

func TestInfoFirst(t *testing.T) {
	info := mustInfo(t, `{"artist":"  ","uploader":"Uploader","track":null,"title":"Title","album":"","playlist":"PL","n":7}`)

	assert.Equal(t, "Uploader", info.First("artist", "uploader"))
	assert.Equal(t, "Title", info.First("track", "title"))
	assert.Equal(t, "PL", info.First("album", "playlist"))
	assert.Equal(t, "7", info.First("n"))
	assert.Equal(t, "", info.First("missing", "artist"))
	assert.Equal(t, "", info.First())
}

func TestInfoTrackNumber(t *testing.T) {
	tests := []struct {
		doc  string
		want int
	}{
		{`{"track_number":3}`, 3},
		{`{"track_number":"7"}`, 7},
		{`{"track_number":"4/12"}`, 4},
		{`{"track_number":" 9 / 10 "}`, 9},
		{`{"track_number":0}`, 0},
		{`{"track_number":-2}`, 0},
		{`{"track_number":"A1"}`, 0},
		{`{"track_number":2.5}`, 0},
		{`{"track_number":null}`, 0},
		{`{}`, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, mustInfo(t, tt.doc).TrackNumber(), tt.doc)
	}
}

func TestInfoThumbnailURL(t *testing.T) {
	tests := []struct {
		doc  string
		want string
	}{
		{`{"thumbnail":"http://t/1.jpg","thumbnails":[{"url":"http://t/2.jpg"}]}`, "http://t/1.jpg"},
		{`{"thumbnails":[{"url":"http://t/2.jpg"},{"url":"http://t/3.jpg"}]}`, "http://t/2.jpg"},
		{`{"thumbnails":["http://t/4.jpg"]}`, "http://t/4.jpg"},
		{`{"thumbnails":[]}`, ""},
		{`{}`, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, mustInfo(t, tt.doc).ThumbnailURL(), tt.doc)
	}
}

func TestParseInfoMalformed(t *testing.T) {
	_, err := ParseInfo([]byte("{"))
	assert.ErrorIs(t, err, ErrMalformedOutput)
}
