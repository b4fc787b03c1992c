package audio

import (
	"fmt"
	"os"
	"strconv"

	"github.com/bogem/id3v2"
	"github.com/dhowden/tag"
)

// ID3Codec handles ID3v2 tags in MP3 files.
//
// Writes go through id3v2 and always produce ID3v2.4 with UTF-8 text frames.
// Reads go through dhowden/tag, which also understands older tag versions
// written by other tools.
type ID3Codec struct{}

// NewID3Codec returns the MP3 codec.
func NewID3Codec() ID3Codec { return ID3Codec{} }

// Available implements Codec.
func (ID3Codec) Available() bool { return true }

// ReadTags implements Codec.
func (ID3Codec) ReadTags(path string) (Tags, error) {
	m, err := readMetadata(path)
	if err != nil {
		return Tags{}, err
	}
	track, _ := m.Track()
	return Tags{
		Artist:      m.Artist(),
		Album:       m.Album(),
		Title:       m.Title(),
		TrackNumber: track,
	}, nil
}

// WriteTags implements Codec.
//
// Artist (TPE1), album (TALB) and title (TIT2) are always written, the track
// number (TRCK) only when positive. Other frames, including pictures, are
// kept.
func (ID3Codec) WriteTags(path string, t Tags) error {
	return editTag(path, func(tg *id3v2.Tag) {
		tg.SetArtist(t.Artist)
		tg.SetAlbum(t.Album)
		tg.SetTitle(t.Title)
		if t.TrackNumber > 0 {
			tg.DeleteFrames(tg.CommonID("Track number/Position in set"))
			tg.AddTextFrame(tg.CommonID("Track number/Position in set"), id3v2.EncodingUTF8, strconv.Itoa(t.TrackNumber))
		}
	})
}

// ReadPicture implements Codec.
func (ID3Codec) ReadPicture(path string) (*Picture, error) {
	m, err := readMetadata(path)
	if err != nil {
		return nil, err
	}
	pic := m.Picture()
	if pic == nil || len(pic.Data) == 0 {
		return nil, nil
	}
	return &Picture{MIME: pic.MIMEType, Data: pic.Data}, nil
}

// ReplacePictures implements Codec.
func (ID3Codec) ReplacePictures(path string, pic Picture) error {
	mime := pic.MIME
	if mime == "" {
		mime = "image/jpeg"
	}
	return editTag(path, func(tg *id3v2.Tag) {
		// Remove any existing pictures so only one cover remains
		tg.DeleteFrames(tg.CommonID("Attached picture"))

		tg.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    mime,
			PictureType: id3v2.PTFrontCover,
			Description: "Cover",
			Picture:     pic.Data,
		})
	})
}

func editTag(path string, edit func(*id3v2.Tag)) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	tg, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open tag: %w", err)
	}
	defer tg.Close()

	// Use ID3v2.4 with UTF-8 for Unicode metadata
	tg.SetVersion(4)
	tg.SetDefaultEncoding(id3v2.EncodingUTF8)

	edit(tg)

	if err := tg.Save(); err != nil {
		return fmt.Errorf("save tag: %w", err)
	}
	return nil
}

func readMetadata(path string) (tag.Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("read tag: %w", err)
	}
	return m, nil
}
