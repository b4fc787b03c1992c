package ytdlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingItemURLs(t *testing.T) {
	const src = "https://www.youtube.com/watch?v=single"
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{"no entries key", `{"id":"single"}`, []string{src}},
		{"null entries", `{"entries":null}`, []string{src}},
		{"empty entries", `{"entries":[]}`, []string{src}},
		{"ids", `{"entries":[{"id":"a"},{"id":"b"},{"id":"c"}]}`, []string{
			"https://youtu.be/a", "https://youtu.be/b", "https://youtu.be/c",
		}},
		{"url fallback", `{"entries":[{"url":"https://example.com/x"},{"id":"b"}]}`, []string{
			"https://example.com/x", "https://youtu.be/b",
		}},
		{"bare string ids", `{"entries":["a","b"]}`, []string{"https://youtu.be/a", "https://youtu.be/b"}},
		{"repeated entries kept once", `{"entries":[{"id":"a"},{"id":"b"},{"id":"a"}]}`, []string{
			"https://youtu.be/a", "https://youtu.be/b",
		}},
		{"unaddressable entries", `{"entries":[{},{"title":"x"}]}`, []string{src}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listing, err := ParseListing([]byte(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, tt.want, listing.ItemURLs(src))
		})
	}
}
