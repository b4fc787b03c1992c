package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/handiism/songripper/internal/app"
	"github.com/handiism/songripper/internal/download"
)

func newRipCommand(ctx *commandContext) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "rip URL",
		Short: "Download a playlist or single video into staging",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			return ctx.withLock(func(a *app.App) error {
				summary, err := a.Rip(runCtx, args[0], func(event download.ProgressEvent) {
					if event.Level == download.LevelVerbose && !verbose {
						return
					}
					fmt.Fprintln(out, progressPrefix(event.Level)+event.Message)
				})

				fmt.Fprintf(out, "\nStaged %d of %d item(s), %d failed (%s)\n",
					len(summary.Staged), summary.Items, summary.Failed, elapsed(summary.Duration))
				if runCtx.Err() != nil {
					return runCtx.Err()
				}
				return err
			})
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show verbose progress")
	return cmd
}

// elapsed renders a rip duration the way humanize renders relative times.
func elapsed(d time.Duration) string {
	now := time.Now()
	return strings.TrimSpace(humanize.RelTime(now.Add(-d), now, "", ""))
}

func progressPrefix(level download.ProgressLevel) string {
	switch level {
	case download.LevelError:
		return "✗ "
	case download.LevelWarning:
		return "! "
	case download.LevelSuccess:
		return "✓ "
	case download.LevelInfo:
		return "› "
	default:
		return "  "
	}
}
