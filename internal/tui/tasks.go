package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/tasklog/internal/store"
)

// tasksModel is the active list, soonest due first.
type tasksModel struct {
	store  *store.Store
	width  int
	height int

	now    time.Time
	views  []store.View
	cursor int

	formActive bool
	form       taskForm
}

func newTasksModel(s *store.Store) tasksModel {
	now := s.Now()
	return tasksModel{
		store: s,
		now:   now,
		views: s.Sorted(now),
	}
}

func (m *tasksModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *tasksModel) reload() {
	m.views = m.store.Sorted(m.now)
	m.cursor = clamp(m.cursor, len(m.views))
}

func (m tasksModel) selected() (store.View, bool) {
	if m.cursor < len(m.views) {
		return m.views[m.cursor], true
	}
	return store.View{}, false
}

func (m tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if m.formActive {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tickMsg:
		m.now = time.Time(msg)
		m.reload()
		return m, nil

	case storeChangedMsg:
		m.reload()
		return m, nil

	case tea.KeyMsg:
		return m.updateList(msg)
	}
	return m, nil
}

func (m tasksModel) updateList(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.views)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.New):
		m.form = newAddForm(m.store)
		m.formActive = true
		return m, m.form.Init()
	case key.Matches(msg, keys.Edit, keys.Enter):
		if v, ok := m.selected(); ok {
			m.form = newEditForm(m.store, v.Task)
			m.formActive = true
			return m, m.form.Init()
		}
	case key.Matches(msg, keys.Done):
		if v, ok := m.selected(); ok {
			err := m.store.CompleteByID(v.ID)
			return m, mutationCmd(err, fmt.Sprintf("Completed %q", v.Name))
		}
	case key.Matches(msg, keys.Delete):
		if v, ok := m.selected(); ok {
			err := m.store.DeleteByID(v.ID)
			return m, mutationCmd(err, fmt.Sprintf("Deleted %q", v.Name))
		}
	}
	return m, nil
}

func (m tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, keys.Back) {
		m.formActive = false
		return m, nil
	}
	// Keep the clock moving under the form.
	if tick, ok := msg.(tickMsg); ok {
		m.now = time.Time(tick)
		m.reload()
		return m, nil
	}

	form, cmd, done := m.form.update(msg)
	m.form = form
	if done {
		m.formActive = false
	}
	return m, cmd
}

func (m tasksModel) view() string {
	w := m.width - 4

	if m.formActive {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(m.form.title()), "", m.form.view(),
		)
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Tasks")
	if len(m.views) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No tasks. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title, "")
	for i, v := range m.views {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		line := style.Render(fmt.Sprintf("%s%s", cursor, taskLine(v.Task)))
		rows = append(rows, line+"  "+bucketStyle(v.Bucket).Render(v.Remaining))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  space: complete  d: delete  r: reload"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
