package download

import (
	"context"
	"fmt"
	"strings"

	"github.com/handiism/songripper/internal/audio"
	ioutils "github.com/handiism/songripper/internal/io"
	"github.com/handiism/songripper/internal/model"
	"github.com/handiism/songripper/internal/ytdlp"
)

// singlesAlbum is the album name some uploads use for loose singles. It is
// replaced by the track title so each single gets its own album directory.
const singlesAlbum = "singles"

// Metadata fallback chains. The first value that is non-empty after
// sanitization wins.
var (
	artistFields = []string{"artist", "uploader"}
	titleFields  = []string{"track", "title"}
	albumFields  = []string{"album", "playlist"}
)

// MetadataSource probes and extracts single items.
type MetadataSource interface {
	Probe(ctx context.Context, url string) (ytdlp.Info, error)
	ExtractAudio(ctx context.Context, url, dir, stem string) (string, error)
}

// Trimmer removes silence in place and reports whether the file changed.
type Trimmer interface {
	Trim(ctx context.Context, path string) bool
}

// ArtSource fetches cover images. Both methods degrade to (nil, false).
type ArtSource interface {
	CoverArt(ctx context.Context, artist, title string) ([]byte, bool)
	URLBytes(ctx context.Context, url string) ([]byte, bool)
}

// TrackAcquirer turns one source URL into one tagged audio file.
type TrackAcquirer interface {
	Acquire(ctx context.Context, sourceURL, workDir string) (Result, error)
}

// Result describes an acquired track. Artist and Album are sanitized and
// name the staging directories the file belongs in.
type Result struct {
	Artist  string
	Album   string
	Title   string
	Path    string
	Trimmed bool
	HasArt  bool
}

// Acquirer implements TrackAcquirer on top of yt-dlp, ffmpeg and the cover
// art fetchers.
type Acquirer struct {
	session   *Session
	source    MetadataSource
	art       ArtSource
	trimmer   Trimmer
	images    *ioutils.ImageService
	coverOpts ioutils.CoverOptions
}

// AcquirerOption configures an Acquirer.
type AcquirerOption func(*Acquirer)

// WithTrimmer enables silence trimming.
func WithTrimmer(t Trimmer) AcquirerOption {
	return func(a *Acquirer) { a.trimmer = t }
}

// WithCoverOptions sets the conversions applied to fetched art.
func WithCoverOptions(opts ioutils.CoverOptions) AcquirerOption {
	return func(a *Acquirer) { a.coverOpts = opts }
}

// NewAcquirer creates an Acquirer. Art is resolved through session's cache.
func NewAcquirer(session *Session, source MetadataSource, art ArtSource, opts ...AcquirerOption) *Acquirer {
	a := &Acquirer{
		session: session,
		source:  source,
		art:     art,
		images:  ioutils.NewImageService(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Acquire downloads sourceURL into workDir and tags it.
//
// This method:
//  1. Probes metadata and derives artist, album, title and number prefix
//  2. Extracts the audio as <prefix><title>.mp3
//  3. Trims silence (never fatal)
//  4. Writes artist, album, title and track number tags
//  5. Resolves album art through the session cache and embeds it
//
// Probe, extraction and tag write failures are returned; missing art is not.
func (a *Acquirer) Acquire(ctx context.Context, sourceURL, workDir string) (Result, error) {
	info, err := a.source.Probe(ctx, sourceURL)
	if err != nil {
		return Result{}, fmt.Errorf("probe: %w", err)
	}

	artist := firstSanitized(info, artistFields, model.UnknownArtist)
	title := firstSanitized(info, titleFields, model.UnknownTitle)
	album := firstSanitized(info, albumFields, model.UnknownAlbum)
	if strings.EqualFold(album, singlesAlbum) {
		album = title
	}
	number := info.TrackNumber()

	path, err := a.source.ExtractAudio(ctx, sourceURL, workDir, model.NumberPrefix(number)+title)
	if err != nil {
		return Result{}, err
	}

	res := Result{Artist: artist, Album: album, Title: title, Path: path}

	if a.trimmer != nil {
		res.Trimmed = a.trimmer.Trim(ctx, path)
	}

	tagger := a.session.Tagger()
	if !tagger.Available() {
		return res, nil
	}

	tags := audio.Tags{Artist: artist, Album: album, Title: title, TrackNumber: number}
	if err := tagger.WriteTags(path, tags); err != nil {
		return Result{}, fmt.Errorf("write tags: %w", err)
	}

	thumbnail := info.ThumbnailURL()
	art, ok := a.session.ResolveArt(artist, album, func() ([]byte, bool) {
		return a.fetchArt(ctx, artist, title, thumbnail)
	})
	if ok {
		pic := audio.Picture{MIME: ioutils.DetectImageMIME(art), Data: art}
		if err := tagger.SetCover(path, pic); err != nil {
			return Result{}, fmt.Errorf("write cover: %w", err)
		}
		res.HasArt = true
	}

	return res, nil
}

// fetchArt runs the fallback chain: search API first, video thumbnail second.
func (a *Acquirer) fetchArt(ctx context.Context, artist, title, thumbnail string) ([]byte, bool) {
	if a.art == nil {
		return nil, false
	}
	data, ok := a.art.CoverArt(ctx, artist, title)
	if !ok {
		data, ok = a.art.URLBytes(ctx, thumbnail)
	}
	if !ok {
		return nil, false
	}
	return a.images.PrepareCover(ctx, data, a.coverOpts), true
}

func firstSanitized(info ytdlp.Info, fields []string, fallback string) string {
	for _, f := range fields {
		if v := ioutils.SanitizeFileName(info.First(f)); v != "" {
			return v
		}
	}
	return fallback
}
