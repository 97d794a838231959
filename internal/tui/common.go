package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/tasklog/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTasks viewState = iota
	viewCompleted
	viewOverview
)

var viewNames = []string{"Tasks", "Completed", "Overview"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

// storeChangedMsg is sent after any mutation so every view reloads.
type storeChangedMsg struct{}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

// mutationCmd reports the outcome of a store change in the footer and, on
// success, makes every view reload.
func mutationCmd(err error, ok string) tea.Cmd {
	if err != nil {
		return func() tea.Msg {
			return statusMsg{text: "Error: " + err.Error(), isError: true}
		}
	}
	return tea.Batch(
		func() tea.Msg { return storeChangedMsg{} },
		func() tea.Msg { return statusMsg{text: ok} },
	)
}

func clamp(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

func taskLine(t store.Task) string {
	return t.Name + " (Due: " + t.DueDate + " " + t.DueTime + ")"
}
