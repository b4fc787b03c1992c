// Package command runs external programs such as yt-dlp and ffmpeg behind a
// small interface so callers can be tested with scripted fakes.
//
// # Usage
//
//	runner := command.ExecRunner{}
//	out, err := runner.Output(ctx, "yt-dlp", "-J", "--no-playlist", url)
//	var exitErr *command.ExitError
//	if errors.As(err, &exitErr) {
//	    fmt.Println(exitErr.Stderr)
//	}
//
// A binary missing from PATH is reported as ErrNotFound.
package command
