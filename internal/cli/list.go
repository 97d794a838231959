package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/tasklog/internal/due"
	"github.com/sadopc/tasklog/internal/store"
)

func newListCommand(a *app) *cobra.Command {
	var summary bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List active tasks, soonest due first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			views := a.store.Sorted(a.now())
			printViews(a.stdout, views)
			if summary {
				printSummary(a, views)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&summary, "summary", "s", false, "print a count per due bucket")
	return cmd
}

func printSummary(a *app, views []store.View) {
	counts := store.BucketCounts(views)
	parts := make([]string, 0, len(due.Buckets))
	for _, b := range due.Buckets {
		parts = append(parts, bucketStyle(b).Render(fmt.Sprintf("%s: %d", b, counts[b])))
	}
	fmt.Fprintln(a.stdout)
	fmt.Fprintln(a.stdout, strings.Join(parts, "  "))
}

func newCompletedCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "completed",
		Short: "List completed tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printCompleted(a.stdout, a.store.Completed())
			return nil
		},
	}
}

func newSearchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Find active tasks by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found := a.store.Search(strings.Join(args, " "))
			printViews(a.stdout, store.BuildViews(a.now(), found))
			return nil
		},
	}
}
