package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/handiism/songripper/internal/artwork"
	"github.com/handiism/songripper/internal/audio"
	"github.com/handiism/songripper/internal/command"
	"github.com/handiism/songripper/internal/config"
	"github.com/handiism/songripper/internal/download"
	shttp "github.com/handiism/songripper/internal/http"
	ioutils "github.com/handiism/songripper/internal/io"
	"github.com/handiism/songripper/internal/library"
	"github.com/handiism/songripper/internal/model"
	"github.com/handiism/songripper/internal/staging"
	"github.com/handiism/songripper/internal/ytdlp"
)

// App exposes every songripper operation over one shared Session.
type App struct {
	settings *config.Settings
	logger   *zap.Logger

	session   *download.Session
	ytdlp     *ytdlp.Client
	acquirer  *download.Acquirer
	inventory *staging.Inventory
	editor    *staging.Editor
	approver  *library.Approver
}

type options struct {
	logger *zap.Logger
	runner command.Runner
	client *shttp.Client
	codec  audio.Codec
}

// Option configures an App.
type Option func(*options)

// WithLogger sets the logger handed to the rip manager.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithRunner replaces the process runner used for yt-dlp and ffmpeg.
func WithRunner(r command.Runner) Option {
	return func(o *options) { o.runner = r }
}

// WithHTTPClient replaces the client used for cover art lookups.
func WithHTTPClient(c *shttp.Client) Option {
	return func(o *options) { o.client = c }
}

// WithCodec overrides the tag codec chosen from tags.enabled.
func WithCodec(c audio.Codec) Option {
	return func(o *options) { o.codec = c }
}

// New wires an App from settings.
func New(settings *config.Settings, opts ...Option) *App {
	o := options{logger: zap.NewNop(), runner: command.ExecRunner{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.client == nil {
		o.client = shttp.NewClient(shttp.WithTimeout(settings.CoverArt.FetchTimeout.Std()))
	}
	if o.codec == nil {
		o.codec = audio.NopCodec{}
		if settings.Tags.Enabled {
			o.codec = audio.NewID3Codec()
		}
	}

	session := download.NewSession(audio.NewTagger(o.codec))
	yt := ytdlp.New(settings.Download.YtDlpPath, o.runner)

	acquirerOpts := []download.AcquirerOption{
		download.WithCoverOptions(ioutils.CoverOptions{
			ConvertToJPEG: settings.CoverArt.ConvertToJPG,
			Resize:        settings.CoverArt.Resize,
			MaxSize:       settings.CoverArt.MaxSize,
		}),
	}
	if settings.Download.TrimSilence {
		acquirerOpts = append(acquirerOpts, download.WithTrimmer(audio.NewSilenceTrimmer(settings.Download.FfmpegPath, o.runner)))
	}
	fetcher := artwork.NewFetcher(o.client, settings.CoverArt.SearchURL)

	stagingDir := settings.StagingDir()
	return &App{
		settings:  settings,
		logger:    o.logger,
		session:   session,
		ytdlp:     yt,
		acquirer:  download.NewAcquirer(session, yt, fetcher, acquirerOpts...),
		inventory: staging.NewInventory(stagingDir, session.Tagger()),
		editor:    staging.NewEditor(stagingDir, session.Tagger(), session),
		approver:  library.NewApprover(stagingDir, settings.Paths.LibraryDir),
	}
}

// Settings returns the settings the App was built from.
func (a *App) Settings() *config.Settings { return a.settings }

// Session returns the shared pipeline session.
func (a *App) Session() *download.Session { return a.session }

// Rip downloads every item behind url into staging. onProgress may be nil.
func (a *App) Rip(ctx context.Context, url string, onProgress func(download.ProgressEvent)) (download.Summary, error) {
	m := download.NewManager(a.settings, a.session, a.ytdlp, a.acquirer,
		download.WithLogger(a.logger),
		download.WithProgress(onProgress),
	)
	return m.Rip(ctx, url)
}

// HasStaged reports whether anything waits in staging.
func (a *App) HasStaged() bool { return a.inventory.HasFiles() }

// ListStaged returns the staged tracks.
func (a *App) ListStaged() ([]model.Track, error) { return a.inventory.List() }

// UpdateTag edits one tag of a staged track and returns its new path.
func (a *App) UpdateTag(path string, field staging.Field, value string) (string, error) {
	return a.editor.UpdateTag(path, field, value)
}

// UpdateArt sets the cover of the album containing path.
func (a *App) UpdateArt(path string, data []byte, mime string) error {
	return a.editor.UpdateArt(path, data, mime)
}

// ApproveAll moves all of staging into the library.
func (a *App) ApproveAll() (bool, error) { return a.approver.ApproveAll() }

// ApproveSelected moves the given staged tracks into the library.
func (a *App) ApproveSelected(paths []string) (int, error) {
	return a.approver.ApproveSelected(paths)
}

// ApproveWithChecks approves all of staging, asking confirm about
// look-alikes.
func (a *App) ApproveWithChecks(confirm library.ConfirmFunc) (library.CheckReport, error) {
	return a.approver.ApproveWithChecks(confirm)
}

// DeleteStaging removes everything staged.
func (a *App) DeleteStaging() (bool, error) { return a.inventory.Delete() }

// FindSimilarExisting lists library tracks resembling the staged track.
func (a *App) FindSimilarExisting(path string) ([]string, error) {
	return a.approver.FindSimilarExisting(path)
}
