package audio

import "sync"

// Tagger serializes all tag I/O of a process through one lock.
//
// Every read and write, including reads done only for display, goes through
// the same mutex so a file is never read while another goroutine rewrites
// it.
//
// Example:
//
//	tagger := audio.NewTagger(audio.NewID3Codec())
//
//	// After extraction
//	err := tagger.WriteTags(path, audio.Tags{Artist: "A", Album: "B", Title: "C", TrackNumber: 1})
//	if err != nil {
//	    return fmt.Errorf("tag %s: %w", path, err)
//	}
//	err = tagger.SetCover(path, audio.Picture{MIME: "image/jpeg", Data: art})
type Tagger struct {
	mu    sync.Mutex
	codec Codec
}

// NewTagger creates a Tagger for codec. A nil codec disables tagging.
func NewTagger(codec Codec) *Tagger {
	if codec == nil {
		codec = NopCodec{}
	}
	return &Tagger{codec: codec}
}

// Available reports whether tags are really read and written.
func (t *Tagger) Available() bool {
	return t.codec.Available()
}

// WriteTags writes artist, album, title and (when positive) track number.
func (t *Tagger) WriteTags(path string, tags Tags) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.codec.WriteTags(path, tags)
}

// ReadTags reads the text fields of path.
func (t *Tagger) ReadTags(path string) (Tags, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.codec.ReadTags(path)
}

// SetCover replaces all embedded pictures of path with pic.
func (t *Tagger) SetCover(path string, pic Picture) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.codec.ReplacePictures(path, pic)
}

// Cover returns the embedded front cover of path, or nil.
func (t *Tagger) Cover(path string) (*Picture, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.codec.ReadPicture(path)
}
