package staging

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/handiism/songripper/internal/audio"
	"github.com/handiism/songripper/internal/model"
)

// writeMP3 writes one MPEG1 Layer3 frame so ID3 tags can be written.
func writeMP3(t *testing.T, path string) {
	t.Helper()
	frame := make([]byte, 417)
	frame[0], frame[1], frame[2] = 0xff, 0xfb, 0x90
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, frame, 0o600))
}

// stageTrack writes a tagged track at root/artist/album/name. A "NN " prefix
// on name is stored as the track number, as a rip would.
func stageTrack(t *testing.T, tagger *audio.Tagger, root, artist, album, name, title string) string {
	t.Helper()
	path := filepath.Join(root, artist, album, name)
	writeMP3(t, path)
	prefix, _ := model.SplitNumberPrefix(strings.TrimSuffix(name, filepath.Ext(name)))
	tags := audio.Tags{Artist: artist, Album: album, Title: title, TrackNumber: model.PrefixNumber(prefix)}
	require.NoError(t, tagger.WriteTags(path, tags))
	return path
}

type recordingCache struct {
	mu     sync.Mutex
	stored map[[2]string][]byte
}

func (c *recordingCache) StoreArt(artist, album string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stored == nil {
		c.stored = make(map[[2]string][]byte)
	}
	c.stored[[2]string{artist, album}] = data
}
