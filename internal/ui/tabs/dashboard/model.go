// Package dashboard provides the main dashboard tab: the filter bar, the
// headline metrics and the daily rentals chart.
package dashboard

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/pedalgo-dashboard-tui/internal/app"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/models"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/ui/components"
)

// chartMode selects what the daily chart plots.
type chartMode int

const (
	chartTotal chartMode = iota
	chartSplit
)

// keyMap defines the key bindings specific to the dashboard tab.
type keyMap struct {
	EditDates   key.Binding
	NextSeason  key.Binding
	PrevSeason  key.Binding
	NextWeather key.Binding
	PrevWeather key.Binding
	Reset       key.Binding
	ToggleChart key.Binding
	Apply       key.Binding
	Cancel      key.Binding
	SwitchField key.Binding
}

// defaultKeyMap returns the default key bindings for the dashboard tab.
func defaultKeyMap() keyMap {
	return keyMap{
		EditDates: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "edit dates"),
		),
		NextSeason: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s/S", "cycle season"),
		),
		PrevSeason: key.NewBinding(
			key.WithKeys("S"),
		),
		NextWeather: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w/W", "cycle weather"),
		),
		PrevWeather: key.NewBinding(
			key.WithKeys("W"),
		),
		Reset: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reset filters"),
		),
		ToggleChart: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "total / casual vs registered"),
		),
		Apply: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply dates"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		SwitchField: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "switch field"),
		),
	}
}

// Model represents the dashboard tab state.
type Model struct {
	state    *app.State
	spinner  components.LoadingSpinner
	keys     keyMap
	viewport viewport.Model
	dates    components.DateRangeInput
	shareBar components.ShareBar
	chart    chartMode
	inputErr string
	width    int
	height   int
}

// New creates a new dashboard model.
func New(state *app.State) *Model {
	return &Model{
		state:    state,
		spinner:  components.NewSpinner(),
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
		dates:    components.NewDateRangeInput(),
		shareBar: components.NewShareBar(30),
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Init()
}

// CapturesInput reports whether the date editor owns the keyboard.
func (m *Model) CapturesInput() bool {
	return m.dates.Active()
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.dates.Active() {
			cmds = append(cmds, m.handleEditKey(msg))
		} else {
			cmds = append(cmds, m.handleKeyMsg(msg))
		}

	case app.ReportComputedMsg:
		if msg.Err == nil {
			m.viewport.GotoTop()
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if m.state.IsInitialLoading() {
		return nil
	}
	info := m.state.GetDatasetInfo()
	c := m.state.GetCriteria()

	switch {
	case key.Matches(msg, m.keys.EditDates):
		m.inputErr = ""
		return m.dates.Start(c.DateFrom, c.DateTo)

	case key.Matches(msg, m.keys.NextSeason):
		c.Season = cycleSeason(c.Season, info.Seasons, 1)
		return applyCmd(c)

	case key.Matches(msg, m.keys.PrevSeason):
		c.Season = cycleSeason(c.Season, info.Seasons, -1)
		return applyCmd(c)

	case key.Matches(msg, m.keys.NextWeather):
		c.Weather = cycleWeather(c.Weather, info.Weathers, 1)
		return applyCmd(c)

	case key.Matches(msg, m.keys.PrevWeather):
		c.Weather = cycleWeather(c.Weather, info.Weathers, -1)
		return applyCmd(c)

	case key.Matches(msg, m.keys.Reset):
		def := models.DefaultCriteria(info)
		if sameCriteria(def, c) {
			return nil
		}
		return applyCmd(def)

	case key.Matches(msg, m.keys.ToggleChart):
		if m.chart == chartTotal {
			m.chart = chartSplit
		} else {
			m.chart = chartTotal
		}

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.dates.Stop()
		m.inputErr = ""
		return nil

	case key.Matches(msg, m.keys.SwitchField):
		return m.dates.FocusNext()

	case key.Matches(msg, m.keys.Apply):
		from, to, err := m.dates.Parse()
		if err != nil {
			m.inputErr = err.Error()
			return nil
		}
		m.dates.Stop()
		m.inputErr = ""
		c := m.state.GetCriteria()
		if c.DateFrom.Equal(from) && c.DateTo.Equal(to) {
			return nil
		}
		c.DateFrom, c.DateTo = from, to
		return applyCmd(c)
	}

	var cmd tea.Cmd
	m.dates, cmd = m.dates.Update(msg)
	return cmd
}

func sameCriteria(a, b models.FilterCriteria) bool {
	return a.DateFrom.Equal(b.DateFrom) && a.DateTo.Equal(b.DateTo) &&
		a.Season == b.Season && a.Weather == b.Weather
}

func applyCmd(c models.FilterCriteria) tea.Cmd {
	return func() tea.Msg {
		return app.ApplyFilterMsg{Criteria: c}
	}
}

// cycleSeason steps through "all" followed by the seasons present in the data.
func cycleSeason(current models.Season, available []models.Season, dir int) models.Season {
	options := append([]models.Season{models.SeasonAll}, available...)
	return options[cycleIndex(indexOf(options, current), len(options), dir)]
}

// cycleWeather steps through "all" followed by the weathers present in the data.
func cycleWeather(current models.Weather, available []models.Weather, dir int) models.Weather {
	options := append([]models.Weather{models.WeatherAll}, available...)
	return options[cycleIndex(indexOf(options, current), len(options), dir)]
}

func indexOf[T comparable](options []T, v T) int {
	for i, o := range options {
		if o == v {
			return i
		}
	}
	return 0
}

func cycleIndex(i, n, dir int) int {
	return ((i+dir)%n + n) % n
}

// SetSize sets the available size for the dashboard.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = max(width-2, 0)
	m.viewport.Height = height
	m.shareBar.SetWidth(max(width/3, 10))
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	if m.dates.Active() {
		return []key.Binding{m.keys.Apply, m.keys.SwitchField, m.keys.Cancel}
	}
	return []key.Binding{
		m.keys.EditDates,
		m.keys.NextSeason,
		m.keys.NextWeather,
		m.keys.Reset,
		m.keys.ToggleChart,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.EditDates, m.keys.Apply, m.keys.SwitchField, m.keys.Cancel},
		{m.keys.NextSeason, m.keys.NextWeather, m.keys.Reset},
		{m.keys.ToggleChart},
	}
}
