package download

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/handiism/songripper/internal/ytdlp"
)

// writeMinimalMP3 writes one MPEG1 Layer3 frame so ID3 tags can be written.
func writeMinimalMP3(path string) error {
	frame := make([]byte, 417)
	frame[0], frame[1], frame[2] = 0xff, 0xfb, 0x90
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, frame, 0o600)
}

// fakeSource serves scripted metadata per URL and writes a real mp3 frame
// on extraction.
type fakeSource struct {
	mu         sync.Mutex
	docs       map[string]string
	probeErr   error
	extractErr error
	stems      []string
}

func (f *fakeSource) Probe(_ context.Context, url string) (ytdlp.Info, error) {
	if f.probeErr != nil {
		return ytdlp.Info{}, f.probeErr
	}
	doc, ok := f.docs[url]
	if !ok {
		doc = `{}`
	}
	return ytdlp.ParseInfo([]byte(doc))
}

func (f *fakeSource) ExtractAudio(_ context.Context, _ string, dir, stem string) (string, error) {
	f.mu.Lock()
	f.stems = append(f.stems, stem)
	f.mu.Unlock()
	if f.extractErr != nil {
		return "", f.extractErr
	}
	path := filepath.Join(dir, stem+ytdlp.AudioExt)
	return path, writeMinimalMP3(path)
}

// fakeArt counts lookups and serves fixed bytes.
type fakeArt struct {
	mu        sync.Mutex
	cover     []byte
	thumb     []byte
	coverHits int
	urlHits   []string
}

func (f *fakeArt) CoverArt(context.Context, string, string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.coverHits++
	return f.cover, f.cover != nil
}

func (f *fakeArt) URLBytes(_ context.Context, url string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urlHits = append(f.urlHits, url)
	if url == "" {
		return nil, false
	}
	return f.thumb, f.thumb != nil
}

type fakeTrimmer struct{ called []string }

func (f *fakeTrimmer) Trim(_ context.Context, path string) bool {
	f.called = append(f.called, path)
	return true
}

var errBoom = errors.New("boom")

func listAudio(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, _ := filepath.Rel(root, path)
			files = append(files, rel)
		}
		return nil
	})
	require.NoError(t, err)
	return files
}
