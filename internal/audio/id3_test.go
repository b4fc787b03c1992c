package audio

import (
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID3CodecRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "01 Song.mp3")
	createMinimalMP3(t, path)
	codec := NewID3Codec()

	want := Tags{Artist: "Sigur Rós", Album: "Ágætis byrjun", Title: "Svefn-g-englar", TrackNumber: 2}
	require.NoError(t, codec.WriteTags(path, want))

	got, err := codec.ReadTags(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestID3CodecKeepsTrackNumber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.mp3")
	createMinimalMP3(t, path)
	codec := NewID3Codec()

	require.NoError(t, codec.WriteTags(path, Tags{Artist: "A", Album: "B", Title: "C", TrackNumber: 5}))
	require.NoError(t, codec.WriteTags(path, Tags{Artist: "A2", Album: "B", Title: "C"}))

	got, err := codec.ReadTags(path)
	require.NoError(t, err)
	assert.Equal(t, "A2", got.Artist)
	assert.Equal(t, 5, got.TrackNumber)
}

func TestID3CodecReplacePictures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.mp3")
	createMinimalMP3(t, path)
	codec := NewID3Codec()

	require.NoError(t, codec.WriteTags(path, Tags{Artist: "A", Album: "B", Title: "C"}))
	require.NoError(t, codec.ReplacePictures(path, Picture{MIME: "image/png", Data: []byte("first")}))
	require.NoError(t, codec.ReplacePictures(path, Picture{Data: []byte("second")}))

	pic, err := codec.ReadPicture(path)
	require.NoError(t, err)
	require.NotNil(t, pic)
	assert.Equal(t, "image/jpeg", pic.MIME)
	assert.Equal(t, []byte("second"), pic.Data)

	tg, err := id3v2.Open(path, id3v2.Options{Parse: true})
	require.NoError(t, err)
	defer tg.Close()
	assert.Len(t, tg.GetFrames(tg.CommonID("Attached picture")), 1)
	assert.Equal(t, "A", tg.Artist(), "text frames survive picture replacement")
}

func TestID3CodecNoPicture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.mp3")
	createMinimalMP3(t, path)
	codec := NewID3Codec()
	require.NoError(t, codec.WriteTags(path, Tags{Artist: "A", Album: "B", Title: "C"}))

	pic, err := codec.ReadPicture(path)
	require.NoError(t, err)
	assert.Nil(t, pic)
}

func TestID3CodecErrors(t *testing.T) {
	dir := t.TempDir()
	codec := NewID3Codec()

	untagged := filepath.Join(dir, "untagged.mp3")
	createMinimalMP3(t, untagged)
	_, err := codec.ReadTags(untagged)
	assert.Error(t, err)

	missing := filepath.Join(dir, "missing.mp3")
	assert.Error(t, codec.WriteTags(missing, Tags{Title: "x"}))
	assert.Error(t, codec.ReplacePictures(missing, Picture{Data: []byte("x")}))
	assert.NoFileExists(t, missing)
}

func TestNopCodec(t *testing.T) {
	var codec Codec = NopCodec{}
	assert.False(t, codec.Available())
	assert.NoError(t, codec.WriteTags("/nonexistent", Tags{}))
	assert.NoError(t, codec.ReplacePictures("/nonexistent", Picture{}))

	_, err := codec.ReadTags("/nonexistent")
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = codec.ReadPicture("/nonexistent")
	assert.ErrorIs(t, err, ErrUnavailable)
}
