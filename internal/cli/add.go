package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAddCommand(a *app) *cobra.Command {
	var date, clock string
	var force bool

	cmd := &cobra.Command{
		Use:   "add <name>...",
		Short: "Add a new task",
		Long:  `Add a task to the active list. The due date defaults to today and the due time to 23:59.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")

			if !force {
				if dupes := a.store.DuplicateCheck(name, date); len(dupes) > 0 {
					for _, d := range dupes {
						fmt.Fprintf(a.stderr, "Similar task already due that day: %s (Due: %s %s)\n", d.Name, d.DueDate, d.DueTime)
					}
					return fmt.Errorf("possible duplicate of %q, use --force to add anyway", dupes[0].Name)
				}
			}

			t, err := a.store.Add(name, date, clock)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "✓ Task added: %s\n", t.Name)
			fmt.Fprintf(a.stdout, "  Due: %s %s\n", t.DueDate, t.DueTime)
			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "due date YYYY-MM-DD (default today)")
	cmd.Flags().StringVarP(&clock, "time", "t", "", "due time HH:MM (default 23:59)")
	cmd.Flags().BoolVar(&force, "force", false, "add even if a similar task is due the same day")
	return cmd
}
