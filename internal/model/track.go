package model

import (
	"encoding/base64"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// AudioExt is the extension of every audio file songripper produces.
const AudioExt = ".mp3"

// Fallback values used when a source carries no usable metadata.
const (
	UnknownArtist = "Unknown Artist"
	UnknownAlbum  = "Unknown Album"
	UnknownTitle  = "Unknown Title"
)

var numberPrefix = regexp.MustCompile(`^\d{2} `)

// Track is one audio file in staging or in the library.
//
// Tracks are rebuilt from the filesystem on every scan; the file path is the
// identity. Artist and Album come from the two directories above the file,
// Title from the file stem with its "NN " prefix removed.
//
// Example:
//
//	track := model.TrackFromPath("/data/staging/Daft Punk/Discovery/01 One More Time.mp3")
//	// track.Artist = "Daft Punk"
//	// track.Album  = "Discovery"
//	// track.Title  = "One More Time"
type Track struct {
	// Artist is the artist directory name.
	Artist string `json:"artist"`

	// Album is the album directory name.
	Album string `json:"album"`

	// Title is the file stem without the track number prefix.
	Title string `json:"title"`

	// Path is the absolute path of the audio file.
	Path string `json:"path"`

	// Approved is false for tracks enumerated from staging.
	Approved bool `json:"approved"`

	// Cover is the embedded front cover, nil when absent or unreadable.
	Cover *Cover `json:"-"`
}

// Cover is an embedded image with its MIME type.
type Cover struct {
	MIME string
	Data []byte
}

// DataURI renders the cover as a data: URI suitable for inline display.
func (c *Cover) DataURI() string {
	if c == nil || len(c.Data) == 0 {
		return ""
	}
	return "data:" + c.MIME + ";base64," + base64.StdEncoding.EncodeToString(c.Data)
}

// TrackFromPath builds a staging Track from the directory layout of path.
func TrackFromPath(path string) Track {
	albumDir := filepath.Dir(path)
	return Track{
		Artist: filepath.Base(filepath.Dir(albumDir)),
		Album:  filepath.Base(albumDir),
		Title:  TitleFromFileName(filepath.Base(path)),
		Path:   path,
	}
}

// NumberPrefix renders the "NN " file name prefix for a track number, or ""
// when n is not positive.
func NumberPrefix(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("%02d ", n)
}

// SplitNumberPrefix separates a leading "NN " prefix from a file stem.
//
// Example:
//
//	SplitNumberPrefix("03 Song")   // "03 ", "Song"
//	SplitNumberPrefix("Song")      // "", "Song"
//	SplitNumberPrefix("2024 Song") // "", "2024 Song"
func SplitNumberPrefix(stem string) (prefix, rest string) {
	if loc := numberPrefix.FindStringIndex(stem); loc != nil {
		return stem[:loc[1]], stem[loc[1]:]
	}
	return "", stem
}

// PrefixNumber returns the track number encoded in a "NN " prefix, or 0.
func PrefixNumber(prefix string) int {
	n, err := strconv.Atoi(strings.TrimSpace(prefix))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

// TitleFromFileName strips the audio extension and number prefix from name.
func TitleFromFileName(name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	_, title := SplitNumberPrefix(stem)
	return title
}

// FileName builds "<prefix><title>.mp3".
func FileName(prefix, title string) string {
	return prefix + title + AudioExt
}

// IsAudioFile reports whether name carries the audio extension.
func IsAudioFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), AudioExt)
}
