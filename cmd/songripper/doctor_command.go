package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handiism/songripper/internal/deps"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the external programs are installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.ensureApp(); err != nil {
				return err
			}
			settings := ctx.settings
			statuses := deps.CheckBinaries(deps.Requirements(settings.Download.YtDlpPath, settings.Download.FfmpegPath))

			rows := make([][]string, 0, len(statuses))
			for _, s := range statuses {
				where := s.Path
				if !s.Available {
					where = s.Detail
				}
				rows = append(rows, []string{s.Name, yesNo(s.Available), where, s.Description})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Dependency", "Available", "Path", "Used for"},
				rows,
				nil,
			))

			fmt.Fprintf(cmd.OutOrStdout(), "Tagging: %s\n", yesNo(settings.Tags.Enabled))
			fmt.Fprintf(cmd.OutOrStdout(), "Staging: %s\n", settings.StagingDir())
			fmt.Fprintf(cmd.OutOrStdout(), "Library: %s\n", settings.Paths.LibraryDir)

			if missing := deps.MissingRequired(statuses); len(missing) > 0 {
				return fmt.Errorf("%d required dependency(ies) missing", len(missing))
			}
			return nil
		},
	}
}
