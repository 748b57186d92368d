package dashboard

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/pedalgo-dashboard-tui/internal/app"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/models"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/services/pipeline"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/ui/styles"
)

// View renders the dashboard component.
func (m *Model) View() string {
	report := m.state.GetReport()
	switch {
	case m.state.IsInitialLoading():
		return m.renderLoading(components.StageDataset)
	case report == nil && m.state.IsLoading(app.ResourceReport):
		return m.renderLoading(components.StageReport)
	}

	sections := []string{
		m.renderTitle(),
		m.renderFilterBar(),
	}
	if err := m.state.GetReportError(); err != nil {
		sections = append(sections, styles.ErrorTextStyle.Render("✗ Report failed: "+err.Error()))
	}
	sections = append(sections,
		"",
		m.renderMetrics(report),
		"",
		m.renderShare(report),
		"",
		m.renderDailyChart(report),
	)

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

// renderLoading renders the loading state for stage.
func (m *Model) renderLoading(stage components.LoadStage) string {
	m.spinner.SetStage(stage)
	m.spinner.SetSource(m.state.GetDatasetInfo().Path)
	return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("PedalGo Dashboard")
	info := m.state.GetDatasetInfo()
	subtitle := styles.HelpStyle.Render("Bike-sharing rentals · " + info.Path)

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) renderFilterBar() string {
	loc := m.state.GetLocale()
	c := m.state.GetCriteria()

	if m.dates.Active() {
		lines := []string{
			styles.CardTitleStyle.Render("Date range"),
			m.dates.View(),
		}
		if m.inputErr != "" {
			lines = append(lines, styles.ErrorTextStyle.Render("✗ "+m.inputErr))
		}
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	dates := styles.FilterChipStyle.Render(fmt.Sprintf("%s → %s",
		c.DateFrom.Format(models.DateLayout), c.DateTo.Format(models.DateLayout)))
	season := chip("Season", c.Season.Label(loc), c.Season != models.SeasonAll)
	weather := chip("Weather", c.Weather.Label(loc), c.Weather != models.WeatherAll)

	return lipgloss.JoinHorizontal(lipgloss.Center, dates, " ", season, " ", weather)
}

func chip(name, value string, active bool) string {
	if active {
		return styles.FilterChipActiveStyle.Render(name + ": " + value)
	}
	return styles.FilterChipStyle.Render(name + ": " + value)
}

func (m *Model) renderMetrics(report *pipeline.Report) string {
	loc := m.state.GetLocale()

	var totals models.Totals
	var daily []float64
	if !report.Empty() {
		totals = report.Totals
		daily = dailySeries(report.Daily, func(d models.DailyTotal) int64 { return d.TotalSum })
	}

	cardWidth := max((m.width-16)/4, 18)

	cards := []string{
		metricCard("Total rentals", components.FormatCount(float64(totals.TotalRentals)),
			components.RenderSparkline(daily, cardWidth-4), cardWidth),
		metricCard("Average daily", components.FormatCount(float64(totals.AverageDailyRounded())),
			styles.HelpStyle.Render(fmt.Sprintf("over %d days", totals.Days)), cardWidth),
		metricCard(models.UserCasual.Label(loc), components.FormatCount(float64(totals.CasualRentals)),
			"", cardWidth),
		metricCard(models.UserRegistered.Label(loc), components.FormatCount(float64(totals.RegisteredRentals)),
			"", cardWidth),
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func metricCard(label, value, footer string, width int) string {
	lines := []string{
		styles.MetricLabelStyle.Render(label),
		styles.MetricValueStyle.Render(value),
	}
	if footer != "" {
		lines = append(lines, footer)
	}
	return styles.MetricCardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *Model) renderShare(report *pipeline.Report) string {
	var casual, registered int64
	if !report.Empty() {
		casual, registered = report.Totals.CasualRentals, report.Totals.RegisteredRentals
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.CardTitleStyle.Render("Rider mix"),
		m.shareBar.View(casual, registered, m.state.GetLocale()),
	)
}

func (m *Model) renderDailyChart(report *pipeline.Report) string {
	loc := m.state.GetLocale()
	chartWidth := max(m.width-16, 30)
	chartHeight := max(m.height/4, 6)

	title := "Daily rentals"
	if m.chart == chartSplit {
		title = fmt.Sprintf("Daily rentals: %s vs %s",
			models.UserCasual.Label(loc), models.UserRegistered.Label(loc))
	}

	if report.Empty() {
		return lipgloss.JoinVertical(lipgloss.Left,
			styles.CardTitleStyle.Render(title),
			styles.HelpStyle.Render(components.NoDataText),
		)
	}

	var chart string
	if m.chart == chartSplit {
		casual := dailySeries(report.Daily, func(d models.DailyTotal) int64 { return d.CasualSum })
		registered := dailySeries(report.Daily, func(d models.DailyTotal) int64 { return d.RegisteredSum })
		chart = lipgloss.JoinVertical(lipgloss.Left,
			components.RenderDualLineChart(casual, registered, chartWidth, chartHeight, dateCaption(report.Daily)),
			"",
			components.RenderLegend([]components.LegendItem{
				{Label: models.UserCasual.Label(loc), Color: components.ChartCasualColor},
				{Label: models.UserRegistered.Label(loc), Color: components.ChartRegisteredColor},
			}),
		)
	} else {
		totals := dailySeries(report.Daily, func(d models.DailyTotal) int64 { return d.TotalSum })
		chart = components.RenderLineChart(totals, chartWidth, chartHeight, dateCaption(report.Daily))
	}

	return lipgloss.JoinVertical(lipgloss.Left, styles.CardTitleStyle.Render(title), chart)
}

func dailySeries(daily []models.DailyTotal, value func(models.DailyTotal) int64) []float64 {
	out := make([]float64, len(daily))
	for i, d := range daily {
		out[i] = float64(value(d))
	}
	return out
}

func dateCaption(daily []models.DailyTotal) string {
	if len(daily) == 0 {
		return ""
	}
	return daily[0].Date.Format(models.DateLayout) + " … " + daily[len(daily)-1].Date.Format(models.DateLayout)
}
