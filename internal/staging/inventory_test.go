package staging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/songripper/internal/audio"
)

func TestInventoryEmpty(t *testing.T) {
	root := filepath.Join(t.TempDir(), "staging")
	inv := NewInventory(root, nil)

	assert.False(t, inv.HasFiles())
	tracks, err := inv.List()
	require.NoError(t, err)
	assert.Empty(t, tracks)

	deleted, err := inv.Delete()
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestInventoryList(t *testing.T) {
	root := t.TempDir()
	tagger := audio.NewTagger(audio.NewID3Codec())

	stageTrack(t, tagger, root, "beta", "Zeta", "01 One.mp3", "One")
	stageTrack(t, tagger, root, "Alpha", "b-side", "Two.mp3", "Two")
	covered := stageTrack(t, tagger, root, "alpha", "A-Side", "03 Three.mp3", "Three")
	require.NoError(t, tagger.SetCover(covered, audio.Picture{MIME: "image/png", Data: []byte("png-bytes")}))

	// Ignored: loose files and non-audio files.
	require.NoError(t, os.WriteFile(filepath.Join(root, "stray.mp3"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "beta", "Zeta", "cover.jpg"), []byte("x"), 0o600))

	inv := NewInventory(root, tagger)
	assert.True(t, inv.HasFiles())

	tracks, err := inv.List()
	require.NoError(t, err)
	require.Len(t, tracks, 3)

	assert.Equal(t, "alpha", tracks[0].Artist)
	assert.Equal(t, "A-Side", tracks[0].Album)
	assert.Equal(t, "Three", tracks[0].Title)
	require.NotNil(t, tracks[0].Cover)
	assert.Equal(t, "image/png", tracks[0].Cover.MIME)
	assert.Equal(t, []byte("png-bytes"), tracks[0].Cover.Data)

	assert.Equal(t, "Alpha", tracks[1].Artist)
	assert.Equal(t, "b-side", tracks[1].Album)
	assert.Equal(t, "Two", tracks[1].Title)
	assert.Nil(t, tracks[1].Cover)

	assert.Equal(t, "beta", tracks[2].Artist)
	assert.Equal(t, "One", tracks[2].Title)
	assert.False(t, tracks[2].Approved)
}

func TestInventoryListWithoutTagging(t *testing.T) {
	root := t.TempDir()
	writeMP3(t, filepath.Join(root, "Artist", "Album", "02 Song.mp3"))

	tracks, err := NewInventory(root, audio.NewTagger(audio.NopCodec{})).List()
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, "Song", tracks[0].Title)
	assert.Nil(t, tracks[0].Cover)
}

func TestInventoryDelete(t *testing.T) {
	root := filepath.Join(t.TempDir(), "staging")
	writeMP3(t, filepath.Join(root, "Artist", "Album", "Song.mp3"))

	inv := NewInventory(root, nil)
	deleted, err := inv.Delete()
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.NoDirExists(t, root)
}
