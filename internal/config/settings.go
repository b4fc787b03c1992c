package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes every environment override, e.g.
// SONGRIPPER_DOWNLOAD__MAX_CONCURRENT_TRACKS=8.
const EnvPrefix = "SONGRIPPER_"

// Settings holds all configuration options.
type Settings struct {
	Paths    PathsConfig    `koanf:"paths" toml:"paths"`
	Download DownloadConfig `koanf:"download" toml:"download"`
	CoverArt CoverArtConfig `koanf:"cover_art" toml:"cover_art"`
	Tags     TagsConfig     `koanf:"tags" toml:"tags"`
	Log      LogConfig      `koanf:"log" toml:"log"`
}

// PathsConfig locates staging and the library.
type PathsConfig struct {
	DataDir    string `koanf:"data_dir" toml:"data_dir"`       // staging lives in <data_dir>/staging
	LibraryDir string `koanf:"library_dir" toml:"library_dir"` // approved tracks
}

// DownloadConfig controls ripping.
type DownloadConfig struct {
	MaxConcurrentTracks int    `koanf:"max_concurrent_tracks" toml:"max_concurrent_tracks"` // <= 0 means unbounded
	YtDlpPath           string `koanf:"ytdlp_path" toml:"ytdlp_path"`
	FfmpegPath          string `koanf:"ffmpeg_path" toml:"ffmpeg_path"`
	TrimSilence         bool   `koanf:"trim_silence" toml:"trim_silence"`
}

// CoverArtConfig controls cover lookups and the image pipeline.
type CoverArtConfig struct {
	SearchURL    string   `koanf:"search_url" toml:"search_url"`
	FetchTimeout Duration `koanf:"fetch_timeout" toml:"fetch_timeout"`
	ConvertToJPG bool     `koanf:"convert_to_jpg" toml:"convert_to_jpg"`
	Resize       bool     `koanf:"resize" toml:"resize"`
	MaxSize      int      `koanf:"max_size" toml:"max_size"`
}

// TagsConfig toggles tag I/O. With Enabled false files are never tagged.
type TagsConfig struct {
	Enabled bool `koanf:"enabled" toml:"enabled"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `koanf:"level" toml:"level"`   // debug, info, warn, error
	Format string `koanf:"format" toml:"format"` // console or json
}

// Duration is a time.Duration written as a string such as "10s".
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Paths: PathsConfig{
			DataDir:    "/data",
			LibraryDir: "/music",
		},
		Download: DownloadConfig{
			MaxConcurrentTracks: 4,
			YtDlpPath:           "yt-dlp",
			FfmpegPath:          "ffmpeg",
			TrimSilence:         true,
		},
		CoverArt: CoverArtConfig{
			SearchURL:    "https://itunes.apple.com/search",
			FetchTimeout: Duration(10 * time.Second),
			ConvertToJPG: true,
			Resize:       true,
			MaxSize:      1000,
		},
		Tags: TagsConfig{Enabled: true},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load builds settings from, in increasing priority: defaults, the legacy
// DATA_DIR and NAS_PATH variables, the TOML file at path and SONGRIPPER_*
// environment variables.
//
// An empty path searches DefaultPaths; a missing file is not an error.
func Load(path string) (*Settings, error) {
	k := koanf.New(".")

	paths := DefaultPaths()
	if path != "" {
		paths = []string{path}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			if path != "" && !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
			continue
		}
		if err := k.Load(file.Provider(p), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", p, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	settings := DefaultSettings()
	applyLegacyEnv(settings)

	err := k.UnmarshalWithConf("", settings, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.TextUnmarshallerHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			Metadata:         nil,
			Result:           settings,
			WeaklyTypedInput: true,
			TagName:          "koanf",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}

	settings.Paths.DataDir = expandPath(settings.Paths.DataDir)
	settings.Paths.LibraryDir = expandPath(settings.Paths.LibraryDir)

	return settings, nil
}

// DefaultPaths lists the config files Load reads when no path is given,
// lowest priority first.
func DefaultPaths() []string {
	var paths []string
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "songripper", "config.toml"))
	}
	return append(paths, "songripper.toml")
}

// Validate reports settings that cannot work.
func (s *Settings) Validate() error {
	var errs []error
	if strings.TrimSpace(s.Paths.DataDir) == "" {
		errs = append(errs, errors.New("paths.data_dir is required"))
	}
	if strings.TrimSpace(s.Paths.LibraryDir) == "" {
		errs = append(errs, errors.New("paths.library_dir is required"))
	}
	if strings.TrimSpace(s.Download.YtDlpPath) == "" {
		errs = append(errs, errors.New("download.ytdlp_path is required"))
	}
	if s.CoverArt.FetchTimeout <= 0 {
		errs = append(errs, errors.New("cover_art.fetch_timeout must be positive"))
	}
	if s.CoverArt.MaxSize < 1 {
		errs = append(errs, errors.New("cover_art.max_size must be at least 1"))
	}
	switch s.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not console or json", s.Log.Format))
	}
	return errors.Join(errs...)
}

// Save writes settings to a TOML file, creating parent directories.
func (s *Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := gotoml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// StagingDir is where ripped tracks wait for approval.
func (s *Settings) StagingDir() string {
	return filepath.Join(s.Paths.DataDir, "staging")
}

// WorkDir holds per-item scratch directories during a rip.
func (s *Settings) WorkDir() string {
	return filepath.Join(s.Paths.DataDir, ".work")
}

// LockPath is the process lock shared by all mutating commands.
func (s *Settings) LockPath() string {
	return filepath.Join(s.Paths.DataDir, "songripper.lock")
}

// envKey maps SONGRIPPER_COVER_ART__MAX_SIZE to cover_art.max_size.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func applyLegacyEnv(s *Settings) {
	if v := strings.TrimSpace(os.Getenv("DATA_DIR")); v != "" {
		s.Paths.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv("NAS_PATH")); v != "" {
		s.Paths.LibraryDir = v
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
