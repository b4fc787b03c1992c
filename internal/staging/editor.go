package staging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/handiism/songripper/internal/audio"
	ioutils "github.com/handiism/songripper/internal/io"
	"github.com/handiism/songripper/internal/model"
)

// Field names a user-editable tag.
type Field string

const (
	FieldArtist Field = "artist"
	FieldAlbum  Field = "album"
	FieldTitle  Field = "title"
)

var (
	ErrUnknownField = errors.New("unknown field")
	ErrNotFound     = errors.New("file not found")
	ErrEmptyValue   = errors.New("value is empty after normalization")
)

// TrackUpdateError reports an edit the user can correct: a missing file, an
// unknown field or a rename that could not be done.
type TrackUpdateError struct {
	Path string
	Op   string
	Err  error
}

func (e *TrackUpdateError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *TrackUpdateError) Unwrap() error { return e.Err }

// ArtCache receives art set by hand so later rips of the album reuse it.
type ArtCache interface {
	StoreArt(artist, album string, data []byte)
}

// Editor changes tags of staged tracks and keeps the directory layout in
// step with them.
type Editor struct {
	root   string
	tagger *audio.Tagger
	cache  ArtCache
}

// NewEditor returns an Editor for the staging tree at root. cache may be nil.
func NewEditor(root string, tagger *audio.Tagger, cache ArtCache) *Editor {
	if tagger == nil {
		tagger = audio.NewTagger(nil)
	}
	return &Editor{root: root, tagger: tagger, cache: cache}
}

// ReadTags returns the tags of path. Each field missing from the file falls
// back to the layout: artist to the grandparent directory, album to the
// parent directory and title to the file stem without its number prefix.
func (e *Editor) ReadTags(path string) audio.Tags {
	fromPath := model.TrackFromPath(path)
	tags := audio.Tags{Artist: fromPath.Artist, Album: fromPath.Album, Title: fromPath.Title}

	stored, err := e.tagger.ReadTags(path)
	if err != nil {
		return tags
	}
	if v := strings.TrimSpace(stored.Artist); v != "" {
		tags.Artist = v
	}
	if v := strings.TrimSpace(stored.Album); v != "" {
		tags.Album = v
	}
	if v := strings.TrimSpace(stored.Title); v != "" {
		tags.Title = v
	}
	tags.TrackNumber = stored.TrackNumber
	return tags
}

// UpdateTag sets one field of a staged track and moves the file to
// staging/<artist>/<album>/<prefix><title>.mp3, keeping its number prefix.
// Directories emptied by the move are removed up to the staging root.
//
// The new value is normalized like ripped metadata. Every failure is a
// *TrackUpdateError; a missing file, an unknown field or a taken
// destination are detected before anything changes.
func (e *Editor) UpdateTag(path string, field Field, value string) (string, error) {
	const op = "update tag"
	switch field {
	case FieldArtist, FieldAlbum, FieldTitle:
	default:
		return "", &TrackUpdateError{Path: path, Op: op, Err: fmt.Errorf("%w %q", ErrUnknownField, field)}
	}
	if _, err := os.Stat(path); err != nil {
		return "", &TrackUpdateError{Path: path, Op: op, Err: fmt.Errorf("%w: %v", ErrNotFound, err)}
	}
	value = ioutils.SanitizeFileName(value)
	if value == "" {
		return "", &TrackUpdateError{Path: path, Op: op, Err: ErrEmptyValue}
	}

	old := e.ReadTags(path)
	tags := audio.Tags{
		Artist: ioutils.SanitizeFileName(old.Artist),
		Album:  ioutils.SanitizeFileName(old.Album),
		Title:  ioutils.SanitizeFileName(old.Title),
	}
	switch field {
	case FieldArtist:
		tags.Artist = value
	case FieldAlbum:
		tags.Album = value
	case FieldTitle:
		tags.Title = value
	}

	prefix := e.trackPrefix(path, old.TrackNumber)
	destDir := filepath.Join(e.root, tags.Artist, tags.Album)
	newPath := filepath.Join(destDir, model.FileName(prefix, tags.Title))
	moving := filepath.Clean(newPath) != filepath.Clean(path)

	if moving && occupiedByOther(newPath, path) {
		return "", &TrackUpdateError{Path: path, Op: op, Err: fmt.Errorf("%s: %w", newPath, ioutils.ErrDestinationExists)}
	}

	if err := e.tagger.WriteTags(path, tags); err != nil {
		return "", &TrackUpdateError{Path: path, Op: "write tags", Err: err}
	}
	if !moving {
		return path, nil
	}

	if err := ioutils.EnsureDir(destDir); err != nil {
		ioutils.PruneEmptyDirs(destDir, e.root)
		e.restoreTags(path, old)
		return "", &TrackUpdateError{Path: path, Op: "create directory", Err: err}
	}
	if err := os.Rename(path, newPath); err != nil {
		ioutils.PruneEmptyDirs(destDir, e.root)
		e.restoreTags(path, old)
		return "", &TrackUpdateError{Path: path, Op: "rename", Err: err}
	}
	ioutils.PruneEmptyDirs(filepath.Dir(path), e.root)
	return newPath, nil
}

// trackPrefix returns the "NN " prefix of path's file name when it is the
// track number. A title that starts with digits, like "99 Problems", has no
// prefix unless the stored track number is 99. Without a codec the stem is
// the only source and its prefix is kept.
func (e *Editor) trackPrefix(path string, number int) string {
	prefix, _ := model.SplitNumberPrefix(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	if prefix == "" || !e.tagger.Available() {
		return prefix
	}
	if model.PrefixNumber(prefix) != number {
		return ""
	}
	return prefix
}

// UpdateArt replaces the cover of every track in path's album directory and
// remembers data as the album's art for the rest of the session. With
// tagging disabled only the existence check is done.
func (e *Editor) UpdateArt(path string, data []byte, mime string) error {
	const op = "update art"
	if _, err := os.Stat(path); err != nil {
		return &TrackUpdateError{Path: path, Op: op, Err: fmt.Errorf("%w: %v", ErrNotFound, err)}
	}
	if !e.tagger.Available() {
		return nil
	}
	if mime == "" {
		mime = ioutils.DetectImageMIME(data)
	}

	dir := filepath.Dir(path)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return &TrackUpdateError{Path: path, Op: op, Err: err}
	}
	pic := audio.Picture{MIME: mime, Data: data}
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !model.IsAudioFile(entry.Name()) {
			continue
		}
		track := filepath.Join(dir, entry.Name())
		if err := e.tagger.SetCover(track, pic); err != nil {
			return &TrackUpdateError{Path: track, Op: op, Err: err}
		}
	}

	if e.cache != nil {
		tags := e.ReadTags(path)
		e.cache.StoreArt(tags.Artist, tags.Album, data)
	}
	return nil
}

func (e *Editor) restoreTags(path string, old audio.Tags) {
	old.TrackNumber = 0
	_ = e.tagger.WriteTags(path, old)
}

// occupiedByOther reports whether dst exists and is not the same file as
// src, which allows case-only renames on case-insensitive filesystems.
func occupiedByOther(dst, src string) bool {
	dstInfo, err := os.Stat(dst)
	if err != nil {
		return false
	}
	srcInfo, err := os.Stat(src)
	if err != nil {
		return true
	}
	return !os.SameFile(dstInfo, srcInfo)
}
