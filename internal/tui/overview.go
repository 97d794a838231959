package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/tasklog/internal/due"
	"github.com/sadopc/tasklog/internal/store"
)

// overviewModel charts how many active tasks sit in each due bucket.
type overviewModel struct {
	store  *store.Store
	width  int
	height int

	now       time.Time
	counts    map[due.Bucket]int
	completed int

	chart barchart.Model
}

func newOverviewModel(s *store.Store) overviewModel {
	m := overviewModel{store: s, now: s.Now()}
	m.reload()
	return m
}

func (m *overviewModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.buildChart()
}

func (m *overviewModel) reload() {
	m.counts = store.BucketCounts(m.store.Sorted(m.now))
	m.completed = len(m.store.Completed())
	m.buildChart()
}

func (m overviewModel) update(msg tea.Msg) (overviewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.now = time.Time(msg)
		m.reload()
	case storeChangedMsg:
		m.reload()
	}
	return m, nil
}

func (m *overviewModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if m.height > 30 {
		chartHeight = 16
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, b := range due.Buckets {
		bars = append(bars, barchart.BarData{
			Label: b.String(),
			Values: []barchart.BarValue{{
				Name:  b.String(),
				Value: float64(m.counts[b]),
				Style: bucketStyle(b),
			}},
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m overviewModel) view() string {
	w := m.width - 4

	active := 0
	for _, n := range m.counts {
		active += n
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Overview"), "  ",
		mutedStyle.Render(fmt.Sprintf("%d active, %d completed", active, m.completed)),
	)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", m.chart.View(), "", m.renderLegend(),
		),
	)
}

func (m overviewModel) renderLegend() string {
	items := make([]string, 0, len(due.Buckets))
	for _, b := range due.Buckets {
		dot := bucketStyle(b).Render("●")
		items = append(items, fmt.Sprintf("%s %s: %d", dot, b, m.counts[b]))
	}
	return "  " + strings.Join(items, "  ")
}
