package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/handiism/songripper/internal/app"
	"github.com/handiism/songripper/internal/library"
)

func newApproveCommand(ctx *commandContext) *cobra.Command {
	var all, check, yes bool

	cmd := &cobra.Command{
		Use:   "approve [PATH...]",
		Short: "Move staged tracks into the library",
		Long: `Move staged tracks into the library.

With --all everything staged is approved and existing library files are never
overwritten. With --check every staged track that resembles a library track
asks "Overwrite with new file? [y/N]"; when stdin is not a terminal the answer
is no unless --yes is given. Otherwise only the given paths are approved.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			modes := 0
			for _, on := range []bool{all, check, len(args) > 0} {
				if on {
					modes++
				}
			}
			if modes != 1 {
				return errors.New("give exactly one of --all, --check or staged paths")
			}
			if yes && !check {
				return errors.New("--yes only applies to --check")
			}

			out := cmd.OutOrStdout()
			return ctx.withLock(func(a *app.App) error {
				switch {
				case all:
					done, err := a.ApproveAll()
					return reportApproveAll(out, done, err)
				case check:
					confirm := newConfirmer(cmd.InOrStdin(), out, yes)
					report, err := a.ApproveWithChecks(confirm)
					fmt.Fprintf(out, "Approved %d, skipped %d\n", len(report.Approved), len(report.Skipped))
					return err
				default:
					n, err := a.ApproveSelected(args)
					fmt.Fprintf(out, "Approved %d track(s)\n", n)
					return err
				}
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Approve everything staged")
	cmd.Flags().BoolVar(&check, "check", false, "Approve everything, asking before replacing look-alike tracks")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Answer yes to every duplicate question")
	return cmd
}

// reportApproveAll prints the outcome of approve --all. Success is only
// reported when the staging tree was actually moved.
func reportApproveAll(out io.Writer, done bool, err error) error {
	switch {
	case done:
		fmt.Fprintln(out, "Approved staging")
	case err == nil:
		fmt.Fprintln(out, "Nothing staged")
	}
	return err
}

// newConfirmer asks on in/out. Without a terminal on in every question is
// declined unless assumeYes is set.
func newConfirmer(in io.Reader, out io.Writer, assumeYes bool) library.ConfirmFunc {
	interactive := isTerminal(in)
	reader := bufio.NewReader(in)
	return func(p library.DuplicatePrompt) bool {
		fmt.Fprintf(out, "Possible duplicates for %s:\n", filepath.Base(p.Candidate))
		for _, m := range p.Matches {
			fmt.Fprintf(out, " - %s\n", filepath.Base(m))
		}
		if assumeYes {
			fmt.Fprintln(out, "Overwrite with new file? [y/N] y")
			return true
		}
		if !interactive {
			fmt.Fprintln(out, "Overwrite with new file? [y/N] n (stdin is not a terminal)")
			return false
		}
		fmt.Fprint(out, "Overwrite with new file? [y/N] ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return false
		}
		return strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "y")
	}
}

func isTerminal(r io.Reader) bool {
	file, ok := r.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
