// Package history provides the history tab listing recently applied filters.
package history

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/pedalgo-dashboard-tui/internal/app"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/models"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/services"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/ui/styles"
)

const defaultLimit = 20

// keyMap defines the key bindings specific to the history tab.
type keyMap struct {
	Apply   key.Binding
	Refresh key.Binding
	Up      key.Binding
	Down    key.Binding
}

// defaultKeyMap returns the default key bindings for the history tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Apply: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "re-apply filter"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
	}
}

// historyLoadedMsg is sent when history entries are loaded.
type historyLoadedMsg struct {
	entries []models.FilterHistoryEntry
}

// historyErrorMsg is sent when there's an error loading history.
type historyErrorMsg struct {
	err string
}

// Model represents the history tab state.
type Model struct {
	state    *app.State
	services *services.Manager
	table    table.Model
	keys     keyMap
	width    int
	height   int

	entries     []models.FilterHistoryEntry
	limit       int
	loading     bool
	lastRefresh time.Time
	errorMsg    string
}

// New creates a new history model.
func New(state *app.State, svc *services.Manager) *Model {
	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Subtle).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.Primary)
	s.Selected = s.Selected.
		Foreground(styles.TextPrimary).
		Background(styles.BgAccent).
		Bold(true)
	t.SetStyles(s)

	limit := defaultLimit
	if svc != nil && svc.Config() != nil && svc.Config().HistoryLimit > 0 {
		limit = svc.Config().HistoryLimit
	}

	return &Model{
		state:    state,
		services: svc,
		table:    t,
		keys:     defaultKeyMap(),
		limit:    limit,
	}
}

// columns sizes the table to width. The range column takes the slack.
func columns(width int) []table.Column {
	fixed := []table.Column{
		{Title: " ", Width: 1},
		{Title: "Applied", Width: 16},
		{Title: "Range", Width: 23},
		{Title: "Season", Width: 12},
		{Title: "Weather", Width: 16},
		{Title: "Records", Width: 9},
		{Title: "Rentals", Width: 11},
	}
	used := 0
	for _, c := range fixed {
		used += c.Width + 2
	}
	if extra := width - used; extra > 0 {
		fixed[2].Width += extra
	}
	return fixed
}

// Init initializes the history tab.
func (m *Model) Init() tea.Cmd {
	m.loading = true
	return m.loadHistoryCmd()
}

// loadHistoryCmd creates a command to load the recent filters.
func (m *Model) loadHistoryCmd() tea.Cmd {
	svc, limit := m.services, m.limit
	return func() tea.Msg {
		if svc == nil {
			return historyErrorMsg{err: "Services not initialized"}
		}
		entries, err := svc.RecentFilters(limit)
		if err != nil {
			return historyErrorMsg{err: err.Error()}
		}
		return historyLoadedMsg{entries: entries}
	}
}

// Update handles messages for the history tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case historyLoadedMsg:
		m.entries = msg.entries
		m.loading = false
		m.lastRefresh = time.Now()
		m.errorMsg = ""
		m.updateTableData()

	case historyErrorMsg:
		m.loading = false
		m.errorMsg = msg.err
		cmds = append(cmds, func() tea.Msg {
			return app.AddNotificationMsg{
				Type:     app.NotificationError,
				Message:  fmt.Sprintf("History error: %s", msg.err),
				Duration: app.LongNotificationDuration,
			}
		})

	case app.ReportComputedMsg:
		// Each computed report records a history row.
		if msg.Err == nil {
			cmds = append(cmds, m.refresh())
		}

	case app.TabSwitchMsg:
		if msg.Tab == app.TabHistory {
			cmds = append(cmds, m.refresh())
		}

	case tea.KeyMsg:
		return m, m.handleKeyMsg(msg)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) refresh() tea.Cmd {
	if m.loading {
		return nil
	}
	m.loading = true
	return m.loadHistoryCmd()
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Apply):
		entry, ok := m.selected()
		if !ok {
			return nil
		}
		info := m.state.GetDatasetInfo()
		c := entry.Criteria.Clamp(info.FirstDate, info.LastDate)
		return func() tea.Msg {
			return app.ApplyFilterMsg{Criteria: c}
		}

	case key.Matches(msg, m.keys.Refresh):
		return m.refresh()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return cmd
}

// selected returns the entry under the table cursor.
func (m *Model) selected() (models.FilterHistoryEntry, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.entries) {
		return models.FilterHistoryEntry{}, false
	}
	return m.entries[i], true
}

func (m *Model) updateTableData() {
	loc := m.state.GetLocale()
	session := ""
	if m.services != nil {
		session = m.services.SessionID()
	}

	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		marker := ""
		if e.SessionID == session {
			marker = "●"
		}
		rows[i] = table.Row{
			marker,
			humanize.Time(e.AppliedAt),
			e.Criteria.DateFrom.Format(models.DateLayout) + " → " + e.Criteria.DateTo.Format(models.DateLayout),
			e.Criteria.Season.Label(loc),
			e.Criteria.Weather.Label(loc),
			humanize.Comma(int64(e.RecordCount)),
			humanize.Comma(e.TotalRentals),
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// SetSize sets the available size for the history tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetColumns(columns(max(width-8, 60)))
	m.table.SetHeight(max(height-8, 3))
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Apply, m.keys.Refresh}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Apply, m.keys.Refresh},
		{m.keys.Up, m.keys.Down},
	}
}
