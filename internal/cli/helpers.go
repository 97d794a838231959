package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/tasklog/internal/due"
	"github.com/sadopc/tasklog/internal/store"
)

var (
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	soonStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	laterStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	invalidStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

func bucketStyle(b due.Bucket) lipgloss.Style {
	switch b {
	case due.Overdue:
		return overdueStyle
	case due.DueSoon:
		return soonStyle
	case due.DueLater:
		return laterStyle
	default:
		return invalidStyle
	}
}

// parseNumber turns the 1-based number shown by list or completed into an
// index into a list of length n.
func parseNumber(arg string, n int) (int, error) {
	num, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid task number %q", arg)
	}
	if num < 1 || num > n {
		return 0, fmt.Errorf("%w: %d (have %d)", store.ErrIndexOutOfRange, num, n)
	}
	return num - 1, nil
}

func printViews(w io.Writer, views []store.View) {
	if len(views) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No tasks."))
		return
	}
	for i, v := range views {
		fmt.Fprintf(w, "%2d. %s (Due: %s %s)  %s\n",
			i+1, v.Name, v.DueDate, v.DueTime,
			bucketStyle(v.Bucket).Render(v.Remaining))
	}
}

func printCompleted(w io.Writer, tasks []store.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No completed tasks."))
		return
	}
	for i, t := range tasks {
		fmt.Fprintf(w, "%2d. %s (Due: %s %s)\n", i+1, t.Name, t.DueDate, t.DueTime)
	}
}
