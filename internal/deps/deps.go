// Package deps reports whether the external programs songripper drives are
// installed.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement describes an external binary dependency.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status captures the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Path        string
	Detail      string
}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// CheckBinaries evaluates the provided requirements.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		path, err := lookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Path = path
		results = append(results, status)
	}
	return results
}

// Requirements lists the binaries used for ripping. yt-dlp needs ffmpeg for
// the mp3 conversion, so both are required.
func Requirements(ytdlp, ffmpeg string) []Requirement {
	return []Requirement{
		{Name: "yt-dlp", Command: ytdlp, Description: "playlist listing and audio extraction"},
		{Name: "ffmpeg", Command: ffmpeg, Description: "mp3 conversion and silence trimming"},
	}
}

// MissingRequired reports the required dependencies that are unavailable.
func MissingRequired(statuses []Status) []Status {
	var missing []Status
	for _, s := range statuses {
		if !s.Available && !s.Optional {
			missing = append(missing, s)
		}
	}
	return missing
}
