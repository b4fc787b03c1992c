package model

import (
	"path/filepath"
	"sort"
	"strings"
)

// Album groups the tracks of one artist/album directory.
type Album struct {
	Artist string
	Title  string
	Tracks []Track
}

// Dir returns the album directory below root.
func (a Album) Dir(root string) string {
	return filepath.Join(root, a.Artist, a.Title)
}

// GroupAlbums groups tracks by (artist, album), preserving the order in which
// albums first appear and the order of tracks within each album.
func GroupAlbums(tracks []Track) []Album {
	var albums []Album
	index := make(map[[2]string]int)
	for _, t := range tracks {
		key := [2]string{t.Artist, t.Album}
		i, ok := index[key]
		if !ok {
			i = len(albums)
			index[key] = i
			albums = append(albums, Album{Artist: t.Artist, Title: t.Album})
		}
		albums[i].Tracks = append(albums[i].Tracks, t)
	}
	return albums
}

// SortTracks orders tracks by lowercase artist then lowercase album. The
// sort is stable, so ties keep their scan order.
func SortTracks(tracks []Track) {
	sort.SliceStable(tracks, func(i, j int) bool {
		ai, aj := strings.ToLower(tracks[i].Artist), strings.ToLower(tracks[j].Artist)
		if ai != aj {
			return ai < aj
		}
		return strings.ToLower(tracks[i].Album) < strings.ToLower(tracks[j].Album)
	})
}
