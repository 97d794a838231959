package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sadopc/tasklog/internal/store"
)

// activeAt resolves a number printed by list to the task it labelled.
func (a *app) activeAt(arg string) (store.Task, error) {
	views := a.store.Sorted(a.now())
	i, err := parseNumber(arg, len(views))
	if err != nil {
		return store.Task{}, err
	}
	return views[i].Task, nil
}

func newEditCommand(a *app) *cobra.Command {
	var name, date, clock string

	cmd := &cobra.Command{
		Use:   "edit <number>",
		Short: "Change a task's name, due date or due time",
		Long:  `Edit the task with the given number from list. Fields without a flag keep their current value.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.activeAt(args[0])
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if !flags.Changed("name") {
				name = t.Name
			}
			if !flags.Changed("date") {
				date = t.DueDate
			}
			if !flags.Changed("time") {
				clock = t.DueTime
			}

			if err := a.store.EditByID(t.ID, name, date, clock); err != nil {
				return err
			}
			edited, ok := a.store.Get(t.ID)
			if !ok {
				return fmt.Errorf("%w: %s", store.ErrNotFound, t.ID)
			}
			fmt.Fprintf(a.stdout, "✓ Task updated: %s\n", edited.Name)
			fmt.Fprintf(a.stdout, "  Due: %s %s\n", edited.DueDate, edited.DueTime)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "new task name")
	cmd.Flags().StringVarP(&date, "date", "d", "", "new due date YYYY-MM-DD")
	cmd.Flags().StringVarP(&clock, "time", "t", "", "new due time HH:MM")
	return cmd
}

func newDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <number>",
		Aliases: []string{"rm"},
		Short:   "Delete an active task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.activeAt(args[0])
			if err != nil {
				return err
			}
			if err := a.store.DeleteByID(t.ID); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "✓ Task deleted: %s\n", t.Name)
			return nil
		},
	}
}

func newDoneCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "done <number>",
		Aliases: []string{"complete"},
		Short:   "Mark an active task as completed",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.activeAt(args[0])
			if err != nil {
				return err
			}
			if err := a.store.CompleteByID(t.ID); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "✓ Task completed: %s\n", t.Name)
			return nil
		},
	}
}

func newUndoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "undo <number>",
		Aliases: []string{"restore"},
		Short:   "Move a completed task back to the active list",
		Long:    `Restore the task with the given number from completed.`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			completed := a.store.Completed()
			i, err := parseNumber(args[0], len(completed))
			if err != nil {
				return err
			}
			if err := a.store.UncompleteByID(completed[i].ID); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "✓ Task restored: %s\n", completed[i].Name)
			return nil
		},
	}
}
