package cli

import (
	"github.com/spf13/cobra"

	"github.com/sadopc/tasklog/internal/tui"
)

func newTUICommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive task view (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI()
		},
	}
}

func (a *app) runTUI() error {
	if a.opts.RunTUI != nil {
		return a.opts.RunTUI(a.store, a.cfg, a.log)
	}
	return tui.Run(a.store, a.cfg.RefreshInterval, a.log)
}
