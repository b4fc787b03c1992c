package download

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/handiism/songripper/internal/config"
	ioutils "github.com/handiism/songripper/internal/io"
	"github.com/handiism/songripper/internal/logging"
	"github.com/handiism/songripper/internal/ytdlp"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// String returns the lowercase level name.
func (l ProgressLevel) String() string {
	switch l {
	case LevelVerbose:
		return "verbose"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelSuccess:
		return "success"
	default:
		return "info"
	}
}

// ProgressEvent represents a rip progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// PlaylistLister lists the items behind a playlist or single URL.
type PlaylistLister interface {
	Listing(ctx context.Context, url string) (ytdlp.Listing, error)
}

// Summary reports the outcome of a rip.
type Summary struct {
	RipID    string
	Items    int
	Staged   []string
	Failed   int
	Duration time.Duration
}

// Manager coordinates playlist rips into staging.
type Manager struct {
	stagingDir string
	workRoot   string
	limit      int

	session  *Session
	lister   PlaylistLister
	acquirer TrackAcquirer

	logger     *zap.Logger
	onProgress func(ProgressEvent)
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithProgress registers a progress callback. It may be called from several
// goroutines at once.
func WithProgress(fn func(ProgressEvent)) ManagerOption {
	return func(m *Manager) { m.onProgress = fn }
}

// NewManager creates a new Manager from settings.
func NewManager(settings *config.Settings, session *Session, lister PlaylistLister, acquirer TrackAcquirer, opts ...ManagerOption) *Manager {
	m := &Manager{
		stagingDir: settings.StagingDir(),
		workRoot:   settings.WorkDir(),
		limit:      settings.Download.MaxConcurrentTracks,
		session:    session,
		lister:     lister,
		acquirer:   acquirer,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Rip lists url and acquires every item into staging.
//
// Items run concurrently, at most max_concurrent_tracks at a time. A failing
// item never stops its siblings: Rip waits for every item and then returns
// the first failure, wrapped with the item URL. Tracks that succeeded stay
// in staging either way.
func (m *Manager) Rip(ctx context.Context, url string) (Summary, error) {
	start := time.Now()
	summary := Summary{RipID: uuid.NewString()}
	logger := m.logger.With(zap.String(logging.FieldRipID, summary.RipID), zap.String(logging.FieldURL, url))

	if err := ioutils.EnsureDir(m.stagingDir); err != nil {
		return summary, fmt.Errorf("create staging directory: %w", err)
	}
	m.session.Reset()

	listing, err := m.lister.Listing(ctx, url)
	if err != nil {
		logger.Error("list playlist", zap.Error(err))
		m.progress(ProgressEvent{Message: fmt.Sprintf("Could not list %s: %v", url, err), Level: LevelError})
		return summary, fmt.Errorf("list %s: %w", url, err)
	}

	items := listing.ItemURLs(url)
	summary.Items = len(items)
	logger.Info("rip started", zap.Int("items", len(items)), zap.Int("limit", m.limit))
	m.progress(ProgressEvent{Message: fmt.Sprintf("Found %d item(s)", len(items)), Level: LevelInfo})

	var (
		g  errgroup.Group
		mu sync.Mutex
	)
	if m.limit > 0 {
		g.SetLimit(m.limit)
	}

	for _, item := range items {
		g.Go(func() error {
			staged, err := m.ripItem(ctx, item)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				summary.Failed++
				logger.Warn("item failed", zap.String(logging.FieldURL, item), zap.Error(err))
				m.progress(ProgressEvent{Message: fmt.Sprintf("Failed %s: %v", item, err), Level: LevelError})
				return fmt.Errorf("%s: %w", item, err)
			}
			summary.Staged = append(summary.Staged, staged)
			logger.Debug("item staged", zap.String(logging.FieldPath, staged))
			m.progress(ProgressEvent{Message: fmt.Sprintf("Staged %s", filepath.Base(staged)), Level: LevelSuccess})
			return nil
		})
	}

	err = g.Wait()
	ioutils.RemoveIfEmpty(m.workRoot)
	summary.Duration = time.Since(start)

	logger.Info("rip finished",
		zap.Int("staged", len(summary.Staged)),
		zap.Int("failed", summary.Failed),
		zap.Duration("duration", summary.Duration))
	return summary, err
}

// ripItem acquires one item in a private work directory and moves the
// result into staging/<artist>/<album>/.
func (m *Manager) ripItem(ctx context.Context, url string) (string, error) {
	workDir := filepath.Join(m.workRoot, uuid.NewString())
	if err := ioutils.EnsureDir(workDir); err != nil {
		return "", fmt.Errorf("create work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	m.progress(ProgressEvent{Message: fmt.Sprintf("Downloading %s", url), Level: LevelVerbose})

	res, err := m.acquirer.Acquire(ctx, url, workDir)
	if err != nil {
		return "", err
	}
	if res.Trimmed {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Trimmed silence from %s", res.Title), Level: LevelVerbose})
	}
	if !res.HasArt && m.session.Tagger().Available() {
		m.progress(ProgressEvent{Message: fmt.Sprintf("No cover art for %s - %s", res.Artist, res.Album), Level: LevelWarning})
	}

	dest := filepath.Join(m.stagingDir, res.Artist, res.Album, filepath.Base(res.Path))
	if err := ioutils.MoveFile(res.Path, dest, true); err != nil {
		return "", fmt.Errorf("move to staging: %w", err)
	}
	return dest, nil
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
