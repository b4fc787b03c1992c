package download

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/handiism/songripper/internal/config"
	"github.com/handiism/songripper/internal/ytdlp"
)

type fakeLister struct {
	doc string
	err error
}

func (f fakeLister) Listing(context.Context, string) (ytdlp.Listing, error) {
	if f.err != nil {
		return ytdlp.Listing{}, f.err
	}
	return ytdlp.ParseListing([]byte(f.doc))
}

// scriptedAcquirer writes a file named after the item into the work dir.
type scriptedAcquirer struct {
	fail     map[string]bool
	before   func(url string)
	workDirs sync.Map
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func (s *scriptedAcquirer) Acquire(_ context.Context, url, workDir string) (Result, error) {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		m := s.maxSeen.Load()
		if n <= m || s.maxSeen.CompareAndSwap(m, n) {
			break
		}
	}
	s.workDirs.Store(url, workDir)
	if s.before != nil {
		s.before(url)
	}
	if s.fail[url] {
		return Result{}, errBoom
	}

	id := strings.TrimPrefix(url, ytdlp.ShortURLPrefix)
	path := filepath.Join(workDir, "01 "+id+".mp3")
	if err := os.WriteFile(path, []byte(id), 0o644); err != nil {
		return Result{}, err
	}
	return Result{Artist: "Artist " + strings.ToUpper(id[:1]), Album: "Album", Title: id, Path: path, HasArt: true}, nil
}

func testSettings(t *testing.T, limit int) *config.Settings {
	t.Helper()
	s := config.DefaultSettings()
	s.Paths.DataDir = t.TempDir()
	s.Paths.LibraryDir = t.TempDir()
	s.Download.MaxConcurrentTracks = limit
	return s
}

func playlistDoc(ids ...string) string {
	entries := make([]string, len(ids))
	for i, id := range ids {
		entries[i] = fmt.Sprintf(`{"id":%q}`, id)
	}
	return `{"entries":[` + strings.Join(entries, ",") + `]}`
}

func TestRipStagesEveryItem(t *testing.T) {
	settings := testSettings(t, 4)
	acq := &scriptedAcquirer{}
	var events []ProgressEvent
	var evMu sync.Mutex

	m := NewManager(settings, NewSession(nil), fakeLister{doc: playlistDoc("alpha", "beta", "gamma")}, acq,
		WithLogger(zaptest.NewLogger(t)),
		WithProgress(func(e ProgressEvent) {
			evMu.Lock()
			events = append(events, e)
			evMu.Unlock()
		}))

	summary, err := m.Rip(context.Background(), "https://example.com/playlist")
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Items)
	assert.Len(t, summary.Staged, 3)
	assert.Zero(t, summary.Failed)
	assert.NotEmpty(t, summary.RipID)

	files := listAudio(t, settings.StagingDir())
	sort.Strings(files)
	assert.Equal(t, []string{
		filepath.Join("Artist A", "Album", "01 alpha.mp3"),
		filepath.Join("Artist B", "Album", "01 beta.mp3"),
		filepath.Join("Artist G", "Album", "01 gamma.mp3"),
	}, files)

	assert.NoDirExists(t, settings.WorkDir(), "work directories are removed")
	acq.workDirs.Range(func(_, dir any) bool {
		assert.NoDirExists(t, dir.(string))
		return true
	})

	var successes int
	for _, e := range events {
		if e.Level == LevelSuccess {
			successes++
		}
	}
	assert.Equal(t, 3, successes)
}

func TestRipSingleItem(t *testing.T) {
	settings := testSettings(t, 4)
	acq := &scriptedAcquirer{}
	m := NewManager(settings, NewSession(nil), fakeLister{doc: `{"id":"solo","title":"A video"}`}, acq)

	summary, err := m.Rip(context.Background(), "https://youtu.be/solo")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Items)
	assert.FileExists(t, filepath.Join(settings.StagingDir(), "Artist S", "Album", "01 solo.mp3"))
}

func TestRipRunsItemsConcurrently(t *testing.T) {
	settings := testSettings(t, 3)
	var arrived sync.WaitGroup
	arrived.Add(3)
	allIn := make(chan struct{})
	go func() {
		arrived.Wait()
		close(allIn)
	}()

	acq := &scriptedAcquirer{before: func(string) {
		arrived.Done()
		select {
		case <-allIn:
		case <-time.After(5 * time.Second):
		}
	}}
	m := NewManager(settings, NewSession(nil), fakeLister{doc: playlistDoc("a", "b", "c")}, acq)

	done := make(chan struct{})
	go func() {
		_, _ = m.Rip(context.Background(), "pl")
		close(done)
	}()

	select {
	case <-allIn:
	case <-time.After(3 * time.Second):
		t.Fatal("items did not run concurrently")
	}
	<-done
	assert.Equal(t, int32(3), acq.maxSeen.Load())
}

func TestRipRespectsLimit(t *testing.T) {
	settings := testSettings(t, 2)
	acq := &scriptedAcquirer{before: func(string) { time.Sleep(10 * time.Millisecond) }}
	m := NewManager(settings, NewSession(nil), fakeLister{doc: playlistDoc("a", "b", "c", "d", "e", "f")}, acq)

	summary, err := m.Rip(context.Background(), "pl")
	require.NoError(t, err)
	assert.Len(t, summary.Staged, 6)
	assert.LessOrEqual(t, acq.maxSeen.Load(), int32(2))
}

func TestRipWaitsForAllAndReturnsFailure(t *testing.T) {
	settings := testSettings(t, 0)
	failing := ytdlp.ShortURLPrefix + "bad"
	acq := &scriptedAcquirer{fail: map[string]bool{failing: true}}
	m := NewManager(settings, NewSession(nil), fakeLister{doc: playlistDoc("a", "bad", "c")}, acq)

	summary, err := m.Rip(context.Background(), "pl")
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), failing)

	assert.Equal(t, 1, summary.Failed)
	assert.Len(t, summary.Staged, 2)
	assert.Len(t, listAudio(t, settings.StagingDir()), 2, "successful items stay staged")
}

func TestRipListingFailure(t *testing.T) {
	settings := testSettings(t, 4)
	acq := &scriptedAcquirer{}
	m := NewManager(settings, NewSession(nil), fakeLister{err: errBoom}, acq)

	_, err := m.Rip(context.Background(), "pl")
	assert.ErrorIs(t, err, errBoom)
	assert.DirExists(t, settings.StagingDir())
	assert.Zero(t, acq.maxSeen.Load())
}

func TestRipResetsArtCache(t *testing.T) {
	settings := testSettings(t, 1)
	session := NewSession(nil)
	session.StoreArt("A", "B", []byte("old"))

	m := NewManager(settings, session, fakeLister{doc: playlistDoc("a")}, &scriptedAcquirer{})
	_, err := m.Rip(context.Background(), "pl")
	require.NoError(t, err)

	_, known := session.CachedArt("A", "B")
	assert.False(t, known)
}

func TestProgressLevelString(t *testing.T) {
	assert.Equal(t, "info", LevelInfo.String())
	assert.Equal(t, "success", LevelSuccess.String())
	assert.Equal(t, "warning", LevelWarning.String())
}
