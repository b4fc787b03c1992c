package audio

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/handiism/songripper/internal/command"
)

// SilenceFilter removes leading and trailing silence longer than five
// seconds below -50 dB.
const SilenceFilter = "silenceremove=" +
	"start_periods=1:start_duration=5:start_threshold=-50dB:" +
	"stop_periods=1:stop_duration=5:stop_threshold=-50dB"

// SilenceTrimmer strips long silences with ffmpeg.
type SilenceTrimmer struct {
	binary string
	runner command.Runner
}

// NewSilenceTrimmer returns a trimmer running binary ("ffmpeg" when empty).
func NewSilenceTrimmer(binary string, runner command.Runner) *SilenceTrimmer {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	if runner == nil {
		runner = command.ExecRunner{}
	}
	return &SilenceTrimmer{binary: binary, runner: runner}
}

// Trim rewrites path without its long silences and reports whether it did.
//
// The filtered audio is written next to path and renamed over it, so path
// is either the original or the complete trimmed file. Any failure leaves
// the original in place and removes the partial output.
func (s *SilenceTrimmer) Trim(ctx context.Context, path string) bool {
	ext := filepath.Ext(path)
	out := strings.TrimSuffix(path, ext) + "_trim" + ext

	err := s.runner.Run(ctx, s.binary, "-y", "-i", path, "-af", SilenceFilter, out)
	if err == nil {
		if info, statErr := os.Stat(out); statErr == nil && info.Size() > 0 {
			if os.Rename(out, path) == nil {
				return true
			}
		}
	}
	_ = os.Remove(out)
	return false
}
