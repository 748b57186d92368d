package info

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/pedalgo-dashboard-tui/internal/models"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/ui/styles"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	sections := []string{
		m.renderTitle(),
		m.renderConfigCard(),
		m.renderDatasetCard(),
		m.renderSessionCard(),
		m.renderAboutCard(),
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

// renderTitle renders the info tab title.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Configuration, dataset and application information")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	return min(max(m.width-6, 50), 90)
}

func (m *Model) card(title string, rows ...string) string {
	body := append([]string{styles.CardTitleStyle.Render(title)}, rows...)
	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, body...),
	)
}

// renderConfigCard renders the configuration card.
func (m *Model) renderConfigCard() string {
	if m.config == nil {
		return m.card("Configuration", styles.HelpStyle.Render("Configuration not loaded"))
	}

	logPath := m.config.LogPath
	if logPath == "" {
		logPath = "(disabled)"
	}

	return m.card("Configuration",
		renderRow("Dataset", m.config.DatasetPath),
		renderRow("Database", m.config.DatabasePath),
		renderRow("Export dir", m.config.ExportDir),
		renderRow("Log file", logPath),
		renderRow("Locale", string(m.config.Locale)),
		renderRow("Watch dataset", onOff(m.config.WatchDataset)),
		renderRow("Reload debounce", m.config.ReloadDebounce.String()),
		renderRow("Desktop notify", onOff(m.config.DesktopNotifications)),
		renderRow("History limit", fmt.Sprintf("%d", m.config.HistoryLimit)),
	)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// renderDatasetCard renders facts about the loaded dataset.
func (m *Model) renderDatasetCard() string {
	info := m.state.GetDatasetInfo()
	if info.Records == 0 {
		return m.card("Dataset", styles.HelpStyle.Render("No dataset loaded"))
	}
	loc := m.state.GetLocale()

	days := int(info.LastDate.Sub(info.FirstDate).Hours()/24) + 1

	seasons := make([]string, len(info.Seasons))
	for i, s := range info.Seasons {
		seasons[i] = s.Label(loc)
	}
	weathers := make([]string, len(info.Weathers))
	for i, w := range info.Weathers {
		weathers[i] = w.Label(loc)
	}

	return m.card("Dataset",
		renderRow("File", info.Path),
		renderRow("Records", humanize.Comma(int64(info.Records))),
		renderRow("Date range", fmt.Sprintf("%s → %s (%s days)",
			info.FirstDate.Format(models.DateLayout),
			info.LastDate.Format(models.DateLayout),
			humanize.Comma(int64(days)))),
		renderRow("Seasons", strings.Join(seasons, ", ")),
		renderRow("Weather", strings.Join(weathers, ", ")),
		renderRow("Loaded", humanize.Time(info.LoadedAt)),
	)
}

// renderSessionCard renders the service counters for this session.
func (m *Model) renderSessionCard() string {
	stats := m.state.GetStats()
	if stats == nil {
		return m.card("Session", styles.HelpStyle.Render("No activity yet"))
	}
	rows := []string{
		renderRow("Filters applied", humanize.Comma(int64(stats.FiltersApplied))),
		renderRow("Reloads", humanize.Comma(int64(stats.Reloads))),
		renderRow("Exports", humanize.Comma(int64(stats.Exports))),
	}
	if updated := m.state.GetLastUpdated(); !updated.IsZero() {
		rows = append(rows, renderRow("Last update", humanize.Time(updated)))
	}
	return m.card("Session", rows...)
}

// renderRow renders a key-value row.
func renderRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(18).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

// renderAboutCard renders the about/version information card.
func (m *Model) renderAboutCard() string {
	return m.card("About PedalGo Dashboard",
		renderRow("Version", version.GetVersion()),
		renderRow("Build Date", version.GetDate()),
		renderRow("Git Commit", version.GetCommit()),
		renderRow("Go Version", runtime.Version()),
		renderRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)),
	)
}
