// Package tui is the interactive day picker behind `netmon watch`.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/eliteGoblin/focusd/netmon/internal/domain"
	"github.com/eliteGoblin/focusd/netmon/internal/ui"
)

const helpText = "←/→ change day • t today • q quit"

// TickMsg triggers a reload of the surfaces.
type TickMsg time.Time

// Model is the bubbletea model for the day picker.
// Until a day is picked it follows today across midnight.
type Model struct {
	status   ui.StatusSource
	logs     domain.LogStore
	renderer ui.Renderer
	now      func() time.Time

	selected time.Time
	picked   bool
	surfaces ui.Surfaces
	err      error
	quitting bool
}

// NewModel creates a model showing today.
func NewModel(status ui.StatusSource, logs domain.LogStore, renderer ui.Renderer) *Model {
	m := &Model{
		status:   status,
		logs:     logs,
		renderer: renderer,
		now:      time.Now,
	}
	m.selected = startOfDay(m.now())
	return m
}

// Selected returns the day being shown.
func (m *Model) Selected() time.Time {
	return m.selected
}

func (m *Model) Init() tea.Cmd {
	m.reload()
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		if !m.picked {
			m.selected = startOfDay(m.now())
		}
		m.reload()
		return m, tickCmd()
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "left", "h":
		m.selectDay(m.selected.AddDate(0, 0, -1))
	case "right", "l":
		m.selectDay(m.selected.AddDate(0, 0, 1))
	case "t":
		m.picked = false
		m.selected = startOfDay(m.now())
		m.reload()
	}
	return m, nil
}

func (m *Model) selectDay(day time.Time) {
	m.picked = true
	m.selected = startOfDay(day)
	m.reload()
}

func (m *Model) reload() {
	surfaces, err := ui.Collect(m.status, m.logs, m.selected)
	m.err = err
	if err == nil {
		m.surfaces = surfaces
	}
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	view := m.renderer.Render(m.surfaces)
	if m.err != nil {
		view += ui.DisconnectedStyle.Render("error: "+m.err.Error()) + "\n"
	}
	return view + "\n" + ui.MutedStyle.Render(helpText) + "\n"
}

func startOfDay(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, t.Location())
}
