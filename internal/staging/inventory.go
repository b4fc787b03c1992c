package staging

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/handiism/songripper/internal/audio"
	ioutils "github.com/handiism/songripper/internal/io"
	"github.com/handiism/songripper/internal/model"
)

// Inventory reads the staging tree.
type Inventory struct {
	root   string
	tagger *audio.Tagger
}

// NewInventory returns an Inventory of the staging tree at root. Covers are
// read through tagger.
func NewInventory(root string, tagger *audio.Tagger) *Inventory {
	if tagger == nil {
		tagger = audio.NewTagger(nil)
	}
	return &Inventory{root: root, tagger: tagger}
}

// Root returns the staging root directory.
func (i *Inventory) Root() string { return i.root }

// HasFiles reports whether the staging root exists and holds any entry.
func (i *Inventory) HasFiles() bool {
	return ioutils.HasEntries(i.root)
}

// List returns every staged track sorted by artist then album, ignoring
// case. Covers that cannot be read are left nil. A missing staging root is
// an empty list.
func (i *Inventory) List() ([]model.Track, error) {
	paths, err := AudioFiles(i.root)
	if err != nil {
		return nil, err
	}

	tracks := make([]model.Track, 0, len(paths))
	for _, p := range paths {
		track := model.TrackFromPath(p)
		track.Cover = i.cover(p)
		tracks = append(tracks, track)
	}
	model.SortTracks(tracks)
	return tracks, nil
}

// Delete removes the whole staging tree. It reports false when nothing was
// staged.
func (i *Inventory) Delete() (bool, error) {
	if !i.HasFiles() {
		return false, nil
	}
	if err := os.RemoveAll(i.root); err != nil {
		return false, fmt.Errorf("delete staging: %w", err)
	}
	return true, nil
}

func (i *Inventory) cover(path string) *model.Cover {
	pic, err := i.tagger.Cover(path)
	if err != nil || pic == nil {
		return nil
	}
	mime := pic.MIME
	if mime == "" {
		mime = ioutils.DetectImageMIME(pic.Data)
	}
	return &model.Cover{MIME: mime, Data: pic.Data}
}

// AudioFiles lists root/<artist>/<album>/*.mp3 in directory order. Files at
// other depths are ignored. A missing root yields no files.
func AudioFiles(root string) ([]string, error) {
	artists, err := os.ReadDir(root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read staging: %w", err)
	}

	var paths []string
	for _, artist := range artists {
		if !artist.IsDir() {
			continue
		}
		artistDir := filepath.Join(root, artist.Name())
		albums, err := os.ReadDir(artistDir)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", artistDir, err)
		}
		for _, album := range albums {
			if !album.IsDir() {
				continue
			}
			albumDir := filepath.Join(artistDir, album.Name())
			files, err := os.ReadDir(albumDir)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", albumDir, err)
			}
			for _, f := range files {
				if f.Type().IsRegular() && model.IsAudioFile(f.Name()) {
					paths = append(paths, filepath.Join(albumDir, f.Name()))
				}
			}
		}
	}
	return paths, nil
}
