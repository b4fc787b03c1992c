package audio

import "errors"

// ErrUnavailable is returned by codecs that cannot read or write tags.
var ErrUnavailable = errors.New("tag codec unavailable")

// Tags are the text fields songripper manages.
type Tags struct {
	Artist string
	Album  string
	Title  string

	// TrackNumber is written only when positive. Zero leaves any existing
	// track number frame untouched.
	TrackNumber int
}

// Picture is an embedded cover image.
type Picture struct {
	MIME string
	Data []byte
}

// Codec reads and writes tags of one container format.
//
// Implementations are not required to be safe for concurrent use; Tagger
// serializes every call.
type Codec interface {
	// Available reports whether the codec actually touches files.
	Available() bool

	ReadTags(path string) (Tags, error)
	WriteTags(path string, tags Tags) error

	// ReadPicture returns the front cover, or nil when there is none.
	ReadPicture(path string) (*Picture, error)

	// ReplacePictures removes every embedded picture and adds pic as the
	// front cover.
	ReplacePictures(path string, pic Picture) error
}

// NopCodec is used when tagging is disabled. Writes succeed without touching
// the file and reads report ErrUnavailable so callers fall back to the path.
type NopCodec struct{}

func (NopCodec) Available() bool { return false }
func (NopCodec) ReadTags(string) (Tags, error) { return Tags{}, ErrUnavailable }
func (NopCodec) WriteTags(string, Tags) error { return nil }
func (NopCodec) ReadPicture(string) (*Picture, error) { return nil, ErrUnavailable }
func (NopCodec) ReplacePictures(string, Picture) error { return nil }
