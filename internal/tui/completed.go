package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/tasklog/internal/store"
)

type completedModel struct {
	store  *store.Store
	width  int
	height int

	tasks  []store.Task
	cursor int
}

func newCompletedModel(s *store.Store) completedModel {
	return completedModel{store: s, tasks: s.Completed()}
}

func (m *completedModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *completedModel) reload() {
	m.tasks = m.store.Completed()
	m.cursor = clamp(m.cursor, len(m.tasks))
}

func (m completedModel) update(msg tea.Msg) (completedModel, tea.Cmd) {
	switch msg := msg.(type) {
	case storeChangedMsg:
		m.reload()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.tasks)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Restore, keys.Enter):
			if m.cursor < len(m.tasks) {
				t := m.tasks[m.cursor]
				err := m.store.UncompleteByID(t.ID)
				return m, mutationCmd(err, fmt.Sprintf("Restored %q", t.Name))
			}
		}
	}
	return m, nil
}

func (m completedModel) view() string {
	w := m.width - 4
	title := titleStyle.Render("Completed")

	if len(m.tasks) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("Nothing completed yet."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title, "")
	for i, t := range m.tasks {
		cursor := "  "
		style := mutedStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+successStyle.Render("✓ ")+taskLine(t)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  u: restore to tasks"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
