// Package tui is the interactive terminal view of the task store.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/sadopc/tasklog/internal/export"
	"github.com/sadopc/tasklog/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	store   *store.Store
	log     zerolog.Logger
	refresh time.Duration
	width   int
	height  int
	now     time.Time

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	tasks     tasksModel
	completed completedModel
	overview  overviewModel

	help   help.Model
	status string
	isErr  bool
}

func NewApp(s *store.Store, refresh time.Duration, log zerolog.Logger) App {
	h := help.New()
	h.ShowAll = false
	if refresh <= 0 {
		refresh = time.Second
	}

	return App{
		store:      s,
		log:        log.With().Str("component", "tui").Logger(),
		refresh:    refresh,
		now:        s.Now(),
		activeView: viewTasks,
		tasks:      newTasksModel(s),
		completed:  newCompletedModel(s),
		overview:   newOverviewModel(s),
		help:       h,
	}
}

// Run shows the app full screen until the user quits.
func Run(s *store.Store, refresh time.Duration, log zerolog.Logger) error {
	p := tea.NewProgram(NewApp(s, refresh, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}

func (a App) Init() tea.Cmd {
	return a.tickCmd()
}

func (a App) tickCmd() tea.Cmd {
	return tea.Tick(a.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.tasks.setSize(a.width, contentHeight)
		a.completed.setSize(a.width, contentHeight)
		a.overview.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Reload):
			return a, a.reload()
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewTasks
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewCompleted
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewOverview
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			return a, nil
		}

	case tickMsg:
		// Every view recomputes its buckets against the new time.
		a.now = time.Time(msg)
		var cmd tea.Cmd
		a.tasks, cmd = a.tasks.update(msg)
		a.overview, _ = a.overview.update(msg)
		return a, tea.Batch(a.tickCmd(), cmd)

	case storeChangedMsg:
		a.tasks, _ = a.tasks.update(msg)
		a.completed, _ = a.completed.update(msg)
		a.overview, _ = a.overview.update(msg)
		return a, nil

	case statusMsg:
		a.status = msg.text
		a.isErr = msg.isError
		if msg.isError {
			a.log.Error().Str("status", msg.text).Msg("action failed")
		} else {
			a.log.Debug().Str("status", msg.text).Msg("action done")
		}
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.isErr = false
		a.exportPicking = false
		a.log.Info().Str("path", msg.path).Msg("exported tasks")
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewTasks:
		a.tasks, cmd = a.tasks.update(msg)
	case viewCompleted:
		a.completed, cmd = a.completed.update(msg)
	case viewOverview:
		a.overview, cmd = a.overview.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	return a.activeView == viewTasks && a.tasks.formActive
}

// reload re-reads the backend, picking up changes made by another process.
func (a App) reload() tea.Cmd {
	return func() tea.Msg {
		if err := a.store.Load(); err != nil {
			return statusMsg{text: "Reload error: " + err.Error(), isError: true}
		}
		return storeChangedMsg{}
	}
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewTasks:
		content = a.tasks.view()
	case viewCompleted:
		content = a.completed.view()
	case viewOverview:
		content = a.overview.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("tasklog")
	clock := clockStyle.Render(a.now.Format("Mon Jan 2 15:04:05"))
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - lipgloss.Width(clock) - 6
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", tabRow, spacer, clock),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.isErr {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	left := footerStyle.Render(helpView)

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(status) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range export.Formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+strings.ToUpper(f)))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(export.Formats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(export.Formats[a.exportCursor])
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format string) tea.Cmd {
	snap := a.store.Snapshot()
	now := a.now
	return func() tea.Msg {
		home, err := os.UserHomeDir()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		path := filepath.Join(home, fmt.Sprintf("tasklog-export-%s.%s", now.Format("2006-01-02"), format))
		if err := export.ToFile(format, snap, now, path); err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}
