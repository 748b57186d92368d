// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/pedalgo-dashboard-tui/internal/ui/styles"
)

// ChartColors defines colors for chart elements. The line colors match the
// asciigraph series colors used by RenderDualLineChart.
var (
	ChartCasualColor     = lipgloss.Color("9")
	ChartRegisteredColor = lipgloss.Color("12")
)

// NoDataText is shown in place of any chart with nothing to plot.
const NoDataText = "No data"

func noData() string {
	return styles.HelpStyle.Render(NoDataText)
}

// RenderLineChart creates a single-series ASCII line chart.
func RenderLineChart(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return noData()
	}

	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// RenderDualLineChart plots casual against registered rentals.
func RenderDualLineChart(casual, registered []float64, width, height int, caption string) string {
	if len(casual) == 0 && len(registered) == 0 {
		return noData()
	}

	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}

	// Pad the shorter series with zeros.
	n := max(len(casual), len(registered))
	casualData := make([]float64, n)
	registeredData := make([]float64, n)
	copy(casualData, casual)
	copy(registeredData, registered)

	return asciigraph.PlotMany([][]float64{casualData, registeredData},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(
			asciigraph.Red,
			asciigraph.Blue,
		),
	)
}

// Bar is one row of a horizontal bar chart.
type Bar struct {
	Label     string
	Value     float64
	Highlight bool
	// Color overrides the default bar style when set.
	Color lipgloss.TerminalColor
	// Display overrides the formatted value when set.
	Display string
}

// FormatCount renders v rounded to an integer with thousands separators.
func FormatCount(v float64) string {
	return humanize.Comma(int64(math.Round(v)))
}

func (b Bar) display() string {
	if b.Display != "" {
		return b.Display
	}
	return FormatCount(b.Value)
}

func (b Bar) style() lipgloss.Style {
	switch {
	case b.Color != nil:
		return lipgloss.NewStyle().Foreground(b.Color)
	case b.Highlight:
		return styles.BarHighlightStyle
	default:
		return styles.BarStyle
	}
}

// RenderBarChart renders horizontal bars scaled to the largest value.
// Highlighted bars are drawn in the highlight color with a marker.
func RenderBarChart(bars []Bar, width int) string {
	if len(bars) == 0 {
		return noData()
	}

	maxVal := 0.0
	labelWidth := 0
	valueWidth := 0
	for _, b := range bars {
		maxVal = max(maxVal, b.Value)
		labelWidth = max(labelWidth, lipgloss.Width(b.Label))
		valueWidth = max(valueWidth, lipgloss.Width(b.display()))
	}
	if maxVal <= 0 {
		maxVal = 1
	}

	// label, " │", bar, " ", value, " ★"
	barWidth := max(width-labelWidth-valueWidth-6, 10)

	lines := make([]string, 0, len(bars))
	for _, b := range bars {
		barLen := max(int(math.Round(b.Value/maxVal*float64(barWidth))), 0)
		if b.Value > 0 && barLen == 0 {
			barLen = 1
		}

		label := strings.Repeat(" ", labelWidth-lipgloss.Width(b.Label)) + b.Label
		marker := ""
		if b.Highlight {
			marker = " " + styles.BarHighlightStyle.Render("★")
		}

		lines = append(lines, label+" │"+
			b.style().Render(strings.Repeat("█", barLen))+
			" "+b.display()+marker)
	}

	return strings.Join(lines, "\n")
}

// BarGroup is a labelled set of bars drawn together.
type BarGroup struct {
	Label string
	Bars  []Bar
}

// RenderGroupedBarChart renders each group as a heading followed by its bars.
// All groups share one scale.
func RenderGroupedBarChart(groups []BarGroup, width int) string {
	var all []Bar
	for _, g := range groups {
		all = append(all, g.Bars...)
	}
	if len(all) == 0 {
		return noData()
	}

	// Render every bar in one pass so the groups share the scale and padding.
	rows := strings.Split(RenderBarChart(all, width-2), "\n")

	var b strings.Builder
	i := 0
	for gi, g := range groups {
		if gi > 0 {
			b.WriteString("\n")
		}
		b.WriteString(styles.GroupLabelStyle.Render(g.Label))
		for range g.Bars {
			b.WriteString("\n  ")
			b.WriteString(rows[i])
			i++
		}
	}
	return b.String()
}

// HeatmapBlocks are Unicode block characters for heatmaps (low to high intensity).
var HeatmapBlocks = []rune{'░', '▒', '▓', '█'}

// RenderHourlyHeatmap renders 24 hourly values as a one-line heatmap.
func RenderHourlyHeatmap(hours []float64) string {
	if len(hours) != 24 {
		padded := make([]float64, 24)
		copy(padded, hours)
		hours = padded
	}

	maxVal := 0.0
	for _, v := range hours {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	var result strings.Builder
	result.WriteString("00 ")

	for i, v := range hours {
		intensity := int((v / maxVal) * float64(len(HeatmapBlocks)-1))
		intensity = min(max(intensity, 0), len(HeatmapBlocks)-1)

		var style lipgloss.Style
		switch intensity {
		case 0:
			style = lipgloss.NewStyle().Foreground(styles.Subtle)
		case 1:
			style = lipgloss.NewStyle().Foreground(styles.Info)
		case 2:
			style = lipgloss.NewStyle().Foreground(styles.Warning)
		case 3:
			style = lipgloss.NewStyle().Foreground(styles.Highlight)
		}

		result.WriteString(style.Render(string(HeatmapBlocks[intensity])))

		// Gap at noon for readability.
		if i == 11 {
			result.WriteString(" ")
		}
	}

	result.WriteString(" 23")
	return result.String()
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderSparkline creates a compact inline sparkline chart.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	maxVal := 0.0
	for _, v := range values {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Sample values to fit width.
	var result strings.Builder
	step := max(float64(len(values))/float64(width), 1)

	for i := 0; i < width && int(float64(i)*step) < len(values); i++ {
		val := values[int(float64(i)*step)]
		normalized := int((val / maxVal) * float64(len(sparkChars)-1))
		normalized = min(max(normalized, 0), len(sparkChars)-1)
		result.WriteRune(sparkChars[normalized])
	}

	return result.String()
}

// RenderLegend creates a chart legend.
func RenderLegend(items []LegendItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		colorBox := lipgloss.NewStyle().Foreground(item.Color).Render("■")
		parts = append(parts, fmt.Sprintf("%s %s", colorBox, item.Label))
	}
	return strings.Join(parts, "  ")
}

// LegendItem represents a single legend entry.
type LegendItem struct {
	Label string
	Color lipgloss.TerminalColor
}
