package history

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/pedalgo-dashboard-tui/internal/ui/styles"
)

// View renders the history tab.
func (m *Model) View() string {
	if m.errorMsg != "" {
		return m.renderError()
	}
	if m.entries == nil && m.loading {
		return m.renderLoading()
	}
	if len(m.entries) == 0 {
		return m.renderEmpty()
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.table.View(),
		"",
		styles.HelpStyle.Render("● applied in this session"),
	)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderLoading() string {
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(styles.HelpStyle.Render("Loading filter history..."))
}

func (m *Model) renderError() string {
	content := fmt.Sprintf("%s %s",
		styles.ErrorTextStyle.Render("Error:"),
		m.errorMsg,
	)
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderEmpty() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Filter History"),
		"",
		styles.HelpStyle.Render("No filters applied yet."),
		styles.HelpStyle.Render("Filters appear here as you change them on the dashboard."),
	)
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderHeader() string {
	title := styles.TitleStyle.Render("Filter History")

	subtitle := fmt.Sprintf("Last %d of up to %d filters · enter re-applies the selected one",
		len(m.entries), m.limit)
	if !m.lastRefresh.IsZero() {
		subtitle += " · refreshed " + m.lastRefresh.Format("15:04:05")
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, styles.HelpStyle.Render(subtitle), "")
}
