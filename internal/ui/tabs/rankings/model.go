// Package rankings provides the rankings tab: hourly popularity, time of day,
// working day against weekend, and seasons.
package rankings

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/pedalgo-dashboard-tui/internal/app"
)

// hourOrder selects how the hourly bars are listed.
type hourOrder int

const (
	orderRanked hourOrder = iota
	orderClock
)

func (o hourOrder) String() string {
	if o == orderClock {
		return "by hour"
	}
	return "ranked"
}

type keyMap struct {
	ToggleOrder key.Binding
	Up          key.Binding
	Down        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		ToggleOrder: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "ranked / by hour"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
	}
}

// Model represents the rankings tab state.
type Model struct {
	state    *app.State
	keys     keyMap
	viewport viewport.Model
	order    hourOrder
	width    int
	height   int
}

// New creates a new rankings model.
func New(state *app.State) *Model {
	return &Model{
		state:    state,
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
	}
}

// Init initializes the rankings tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the rankings tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ToggleOrder) {
			if m.order == orderRanked {
				m.order = orderClock
			} else {
				m.order = orderRanked
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case app.ReportComputedMsg:
		if msg.Err == nil {
			m.viewport.GotoTop()
		}
	}
	return m, nil
}

// SetSize sets the available size for the rankings tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = max(width-2, 0)
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.ToggleOrder, m.keys.Up, m.keys.Down}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.ToggleOrder},
		{m.keys.Up, m.keys.Down},
	}
}
