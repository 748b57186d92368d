package rankings

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/pedalgo-dashboard-tui/internal/models"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/services/pipeline"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/ui/styles"
)

// View renders the rankings tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return styles.DocStyle.
			Width(m.width).
			Height(m.height).
			Render(styles.HelpStyle.Render("Loading dataset..."))
	}

	report := m.state.GetReport()
	loc := m.state.GetLocale()

	header := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Rankings"),
		styles.HelpStyle.Render(m.state.GetCriteria().Describe(loc)),
		"",
	)

	sections := []string{
		header,
		m.renderHourly(report),
		m.renderTimeCategories(report),
		m.renderWorkingDay(report, loc),
		m.renderSeasons(report),
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) cardWidth() int {
	return max(m.width-6, 40)
}

func (m *Model) card(icon, title string, body ...string) string {
	rows := []string{
		fmt.Sprintf("%s %s", lipgloss.NewStyle().Foreground(styles.Primary).Render(icon),
			styles.CardTitleStyle.Render(title)),
	}
	for _, b := range body {
		for line := range strings.SplitSeq(b, "\n") {
			rows = append(rows, "  "+line)
		}
	}
	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func noData() string {
	return styles.HelpStyle.Render(components.NoDataText)
}

func (m *Model) chartWidth() int {
	return max(m.cardWidth()-8, 30)
}

// hourBars returns the hourly bars in the selected order with the favorite
// hours highlighted.
func hourBars(hourly []models.HourlyTotal, order hourOrder) []components.Bar {
	rows := slices.Clone(hourly)
	if order == orderClock {
		slices.SortFunc(rows, func(a, b models.HourlyTotal) int { return a.Hour - b.Hour })
	}
	bars := make([]components.Bar, len(rows))
	for i, h := range rows {
		bars[i] = components.Bar{
			Label:     fmt.Sprintf("%02d:00", h.Hour),
			Value:     float64(h.TotalSum),
			Highlight: h.Favorite,
		}
	}
	return bars
}

func (m *Model) renderHourly(report *pipeline.Report) string {
	title := "Rentals by hour (" + m.order.String() + ")"
	if report.Empty() {
		return m.card("◷", title, noData())
	}

	heat := make([]float64, 24)
	for _, h := range report.Hourly {
		heat[h.Hour] = float64(h.TotalSum)
	}

	favorites := "Favorite hours: " + lipgloss.NewStyle().Bold(true).Foreground(styles.Highlight).
		Render(pipeline.FavoriteHoursLabel(report.FavoriteHours))

	return m.card("◷", title,
		components.RenderBarChart(hourBars(report.Hourly, m.order), m.chartWidth()),
		"",
		components.RenderHourlyHeatmap(heat),
		"",
		favorites,
	)
}

// timeCategoryBars lists the categories with the busiest first.
func timeCategoryBars(cats []models.TimeCategoryTotal) []components.Bar {
	bars := make([]components.Bar, 0, len(cats))
	for i := len(cats) - 1; i >= 0; i-- {
		c := cats[i]
		bars = append(bars, components.Bar{
			Label:     string(c.Category),
			Value:     float64(c.TotalSum),
			Highlight: c.Top,
		})
	}
	return bars
}

func timeCategoryLegend(cats []models.TimeCategoryTotal) string {
	parts := make([]string, 0, len(cats))
	for i := len(cats) - 1; i >= 0; i-- {
		start, end := cats[i].Category.HourRange()
		parts = append(parts, fmt.Sprintf("%s %02d:00-%02d:00", cats[i].Category, start, end))
	}
	return styles.HelpStyle.Render(strings.Join(parts, " · "))
}

func (m *Model) renderTimeCategories(report *pipeline.Report) string {
	const title = "Time of day"
	if report.Empty() {
		return m.card("◑", title, noData())
	}

	body := []string{
		components.RenderBarChart(timeCategoryBars(report.TimeCategories), m.chartWidth()),
		"",
		timeCategoryLegend(report.TimeCategories),
	}
	if top, ok := report.TopTimeCategory(); ok {
		body = append(body, fmt.Sprintf("Busiest: %s (%s rentals)",
			styles.SuccessTextStyle.Render(string(top.Category)),
			components.FormatCount(float64(top.TotalSum))))
	}
	return m.card("◑", title, body...)
}

func workingDayLabel(workingDay bool) string {
	if workingDay {
		return "Working day"
	}
	return "Weekend / holiday"
}

// workingDayGroups groups the means by day type, keeping the report order.
func workingDayGroups(means []models.WorkingDayMean, loc models.Locale) []components.BarGroup {
	var groups []components.BarGroup
	for _, wm := range means {
		label := workingDayLabel(wm.WorkingDay)
		if len(groups) == 0 || groups[len(groups)-1].Label != label {
			groups = append(groups, components.BarGroup{Label: label})
		}
		g := &groups[len(groups)-1]
		g.Bars = append(g.Bars, components.Bar{
			Label:   wm.UserType.Label(loc),
			Value:   wm.Mean,
			Color:   styles.SeriesStyle(string(wm.UserType)).GetForeground(),
			Display: fmt.Sprintf("%.1f", wm.Mean),
		})
	}
	return groups
}

func (m *Model) renderWorkingDay(report *pipeline.Report, loc models.Locale) string {
	const title = "Working day vs weekend (mean rentals per hour)"
	if report.Empty() {
		return m.card("◧", title, noData())
	}
	return m.card("◧", title,
		components.RenderGroupedBarChart(workingDayGroups(report.WorkingDay, loc), m.chartWidth()),
		"",
		components.RenderLegend([]components.LegendItem{
			{Label: models.UserCasual.Label(loc), Color: styles.Casual},
			{Label: models.UserRegistered.Label(loc), Color: styles.Registered},
		}),
	)
}

func seasonBars(seasons []models.SeasonTotal) []components.Bar {
	bars := make([]components.Bar, len(seasons))
	for i, s := range seasons {
		bars[i] = components.Bar{
			Label:     s.Label,
			Value:     float64(s.TotalSum),
			Highlight: s.Top,
		}
	}
	return bars
}

func (m *Model) renderSeasons(report *pipeline.Report) string {
	const title = "Seasons"
	if report.Empty() {
		return m.card("❄", title, noData())
	}
	body := []string{components.RenderBarChart(seasonBars(report.Seasons), m.chartWidth())}
	if top, ok := report.TopSeason(); ok {
		body = append(body, "", fmt.Sprintf("Top season: %s (%s rentals)",
			styles.SuccessTextStyle.Render(top.Label),
			components.FormatCount(float64(top.TotalSum))))
	}
	return m.card("❄", title, body...)
}
