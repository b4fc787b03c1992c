package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/handiism/songripper/internal/command"
)

// AudioFormat is the codec requested from yt-dlp and AudioExt the extension
// of the files it produces.
const (
	AudioFormat = "mp3"
	AudioExt    = ".mp3"
)

var (
	// ErrMalformedOutput is returned when yt-dlp prints something that is not
	// a JSON document.
	ErrMalformedOutput = errors.New("yt-dlp produced malformed JSON")

	// ErrNoOutput is returned when extraction succeeded but the expected audio
	// file does not exist.
	ErrNoOutput = errors.New("yt-dlp produced no audio file")
)

var baseArgs = []string{"--quiet", "--no-warnings"}

// Client runs yt-dlp.
type Client struct {
	binary string
	runner command.Runner
}

// New returns a Client for binary. An empty binary selects "yt-dlp"; a nil
// runner selects command.ExecRunner.
func New(binary string, runner command.Runner) *Client {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "yt-dlp"
	}
	if runner == nil {
		runner = command.ExecRunner{}
	}
	return &Client{binary: binary, runner: runner}
}

// Binary returns the executable the client runs.
func (c *Client) Binary() string { return c.binary }

// Probe fetches single-item metadata (-J --no-playlist).
func (c *Client) Probe(ctx context.Context, url string) (Info, error) {
	raw, err := c.json(ctx, "-J", "--no-playlist", url)
	if err != nil {
		return Info{}, err
	}
	return Info{doc: raw}, nil
}

// Listing fetches a flat playlist listing (--flat-playlist -J).
func (c *Client) Listing(ctx context.Context, url string) (Listing, error) {
	raw, err := c.json(ctx, "--flat-playlist", "-J", url)
	if err != nil {
		return Listing{}, err
	}
	return Listing{doc: raw}, nil
}

// ExtractAudio downloads url as mp3 into dir, naming the file stem+".mp3",
// and returns the produced path.
func (c *Client) ExtractAudio(ctx context.Context, url, dir, stem string) (string, error) {
	template := filepath.Join(dir, escapeTemplate(stem)+".%(ext)s")
	args := append(append([]string(nil), baseArgs...),
		"-x", "--audio-format", AudioFormat, "-o", template, url)
	if err := c.runner.Run(ctx, c.binary, args...); err != nil {
		return "", fmt.Errorf("extract audio: %w", err)
	}

	path := filepath.Join(dir, stem+AudioExt)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", ErrNoOutput, path)
	}
	return path, nil
}

func (c *Client) json(ctx context.Context, args ...string) (gjson.Result, error) {
	full := append(append([]string(nil), baseArgs...), args...)
	out, err := c.runner.Output(ctx, c.binary, full...)
	if err != nil {
		return gjson.Result{}, err
	}
	if !gjson.ValidBytes(out) {
		return gjson.Result{}, ErrMalformedOutput
	}
	doc := gjson.ParseBytes(out)
	if !doc.IsObject() {
		return gjson.Result{}, ErrMalformedOutput
	}
	return doc, nil
}

// escapeTemplate protects literal percent signs from yt-dlp's output
// template expansion.
func escapeTemplate(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}
