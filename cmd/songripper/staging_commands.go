package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/handiism/songripper/internal/app"
	"github.com/handiism/songripper/internal/staging"
)

type stagedTrackJSON struct {
	Artist    string `json:"artist"`
	Album     string `json:"album"`
	Title     string `json:"title"`
	Path      string `json:"path"`
	Size      int64  `json:"size"`
	CoverMIME string `json:"cover_mime,omitempty"`
	Cover     string `json:"cover,omitempty"`
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var asJSON, withCovers bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List staged tracks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.ensureApp()
			if err != nil {
				return err
			}
			tracks, err := a.ListStaged()
			if err != nil {
				return err
			}

			if asJSON {
				out := make([]stagedTrackJSON, 0, len(tracks))
				for _, t := range tracks {
					row := stagedTrackJSON{Artist: t.Artist, Album: t.Album, Title: t.Title, Path: t.Path, Size: fileSize(t.Path)}
					if t.Cover != nil {
						row.CoverMIME = t.Cover.MIME
						if withCovers {
							row.Cover = t.Cover.DataURI()
						}
					}
					out = append(out, row)
				}
				return writeJSON(cmd, out)
			}

			if len(tracks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing staged")
				return nil
			}
			rows := make([][]string, 0, len(tracks))
			var total int64
			for _, t := range tracks {
				size := fileSize(t.Path)
				total += size
				rows = append(rows, []string{t.Artist, t.Album, t.Title, humanize.Bytes(uint64(size)), yesNo(t.Cover != nil), t.Path})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Artist", "Album", "Title", "Size", "Art", "Path"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
			))
			fmt.Fprintf(cmd.OutOrStdout(), "%d track(s), %s\n", len(tracks), humanize.Bytes(uint64(total)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	cmd.Flags().BoolVar(&withCovers, "covers", false, "Include covers as data URIs in JSON output")
	return cmd
}

func newEditCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:       "edit PATH FIELD VALUE",
		Short:     "Change the artist, album or title of a staged track",
		Args:      cobra.ExactArgs(3),
		ValidArgs: []string{string(staging.FieldArtist), string(staging.FieldAlbum), string(staging.FieldTitle)},
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLock(func(a *app.App) error {
				newPath, err := a.UpdateTag(args[0], staging.Field(args[1]), args[2])
				if err != nil {
					return userError(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), newPath)
				return nil
			})
		},
	}
}

func newArtCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "art PATH IMAGE",
		Short: "Set the cover of the album containing a staged track",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}
			return ctx.withLock(func(a *app.App) error {
				if err := a.UpdateArt(args[0], data, ""); err != nil {
					return userError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cover set for %s (%s)\n", filepath.Dir(args[0]), humanize.Bytes(uint64(len(data))))
				return nil
			})
		},
	}
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Delete everything in staging",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLock(func(a *app.App) error {
				deleted, err := a.DeleteStaging()
				if err != nil {
					return err
				}
				if !deleted {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing staged")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Staging deleted")
				return nil
			})
		},
	}
}

func newSimilarCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "similar PATH",
		Short: "List library tracks resembling a staged track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.ensureApp()
			if err != nil {
				return err
			}
			matches, err := a.FindSimilarExisting(args[0])
			if err != nil {
				return err
			}
			for _, m := range matches {
				fmt.Fprintln(cmd.OutOrStdout(), m)
			}
			return nil
		},
	}
}

// userError phrases a TrackUpdateError, which names the file and the
// operation, for the terminal.
func userError(err error) error {
	var updateErr *staging.TrackUpdateError
	if errors.As(err, &updateErr) {
		return fmt.Errorf("cannot %s", updateErr.Error())
	}
	return err
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
