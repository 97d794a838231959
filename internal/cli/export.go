package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/tasklog/internal/export"
)

func newExportCommand(a *app) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all tasks to a CSV, JSON or YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if !slices.Contains(export.Formats, format) {
				return fmt.Errorf("unknown export format %q (want one of %s)", format, strings.Join(export.Formats, ", "))
			}
			if out == "" {
				out = "tasklog-export." + format
			}

			if err := export.ToFile(format, a.store.Snapshot(), a.now(), out); err != nil {
				return err
			}
			a.log.Info().Str("format", format).Str("path", out).Msg("exported tasks")
			fmt.Fprintf(a.stdout, "✓ Exported to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "output format: "+strings.Join(export.Formats, ", "))
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default tasklog-export.<format>)")
	return cmd
}
