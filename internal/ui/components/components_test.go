package components

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/pedalgo-dashboard-tui/internal/models"
)

func TestNewSpinner(t *testing.T) {
	s := NewSpinner()
	if s.stage != StageDataset {
		t.Errorf("stage = %v, want dataset", s.stage)
	}
	if s.Init() == nil {
		t.Error("Init should return command")
	}
	if _, cmd := s.Update(spinner.TickMsg{}); cmd == nil {
		t.Error("Update should return command for tick")
	}
}

func TestSpinner_Label(t *testing.T) {
	tests := []struct {
		name   string
		stage  LoadStage
		source string
		want   string
	}{
		{"DatasetNoSource", StageDataset, "", "Loading dataset..."},
		{"DatasetWithSource", StageDataset, "/data/final_data.csv", "Loading dataset · final_data.csv..."},
		{"Report", StageReport, "final_data.csv", "Computing report · final_data.csv..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSpinner()
			s.SetStage(tt.stage)
			s.SetSource(tt.source)
			if got := s.Label(); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
			if !strings.Contains(s.ViewWithLabel(), tt.want) {
				t.Error("ViewWithLabel should include the label")
			}
		})
	}
}

func TestRenderSpinnerCentered(t *testing.T) {
	s := NewSpinner()
	if !strings.Contains(RenderSpinnerCentered(s, 40, 5), "Loading dataset...") {
		t.Error("RenderSpinnerCentered should include the label")
	}
}

func TestRenderLineChart(t *testing.T) {
	if s := RenderLineChart([]float64{1, 2, 3, 4}, 20, 5, "Daily"); !strings.Contains(s, "Daily") {
		t.Error("RenderLineChart should include the caption")
	}
	if s := RenderLineChart(nil, 20, 5, "Daily"); !strings.Contains(s, NoDataText) {
		t.Error("empty line chart should say no data")
	}
}

func TestRenderDualLineChart(t *testing.T) {
	s := RenderDualLineChart([]float64{1, 2, 3}, []float64{3, 2}, 20, 5, "Casual vs Registered")
	if !strings.Contains(s, "Casual vs Registered") {
		t.Error("RenderDualLineChart should include the caption")
	}
	if s := RenderDualLineChart(nil, nil, 20, 5, ""); !strings.Contains(s, NoDataText) {
		t.Error("empty dual chart should say no data")
	}
}

func TestRenderBarChart(t *testing.T) {
	bars := []Bar{
		{Label: "17", Value: 1234, Highlight: true},
		{Label: "8", Value: 617},
		{Label: "3", Value: 0},
	}
	s := RenderBarChart(bars, 40)
	lines := strings.Split(s, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if !strings.Contains(lines[0], "1,234") {
		t.Errorf("value should use thousands separators: %q", lines[0])
	}
	if !strings.Contains(lines[0], "★") {
		t.Error("highlighted bar should carry a marker")
	}
	if strings.Contains(lines[1], "★") {
		t.Error("plain bar should not carry a marker")
	}
	if strings.Count(lines[0], "█") <= strings.Count(lines[1], "█") {
		t.Error("larger values should draw longer bars")
	}
	if strings.Contains(lines[2], "█") {
		t.Error("zero values should draw no bar")
	}
	if !strings.HasPrefix(lines[1], " 8 │") {
		t.Errorf("labels should be right-aligned: %q", lines[1])
	}
}

func TestRenderBarChart_Display(t *testing.T) {
	s := RenderBarChart([]Bar{{Label: "x", Value: 2.5, Display: "2.50"}}, 30)
	if !strings.Contains(s, "2.50") {
		t.Errorf("Display should override the value: %q", s)
	}
	if !strings.Contains(RenderBarChart(nil, 30), NoDataText) {
		t.Error("empty bar chart should say no data")
	}
}

func TestRenderGroupedBarChart(t *testing.T) {
	groups := []BarGroup{
		{Label: "Weekend", Bars: []Bar{{Label: "Casual", Value: 10}, {Label: "Registered", Value: 20}}},
		{Label: "Working day", Bars: []Bar{{Label: "Casual", Value: 5}, {Label: "Registered", Value: 40}}},
	}
	s := RenderGroupedBarChart(groups, 50)
	for _, want := range []string{"Weekend", "Working day", "Registered", "40"} {
		if !strings.Contains(s, want) {
			t.Errorf("grouped chart missing %q", want)
		}
	}
	if got := len(strings.Split(s, "\n")); got != 6 {
		t.Errorf("got %d lines, want 6", got)
	}
	if !strings.Contains(RenderGroupedBarChart(nil, 50), NoDataText) {
		t.Error("empty grouped chart should say no data")
	}
}

func TestFormatCount(t *testing.T) {
	tests := map[float64]string{
		0:       "0",
		999:     "999",
		1234.4:  "1,234",
		1234.5:  "1,235",
		3292679: "3,292,679",
	}
	for in, want := range tests {
		if got := FormatCount(in); got != want {
			t.Errorf("FormatCount(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderHourlyHeatmap(t *testing.T) {
	s := RenderHourlyHeatmap(make([]float64, 24))
	if !strings.HasPrefix(s, "00 ") || !strings.HasSuffix(s, " 23") {
		t.Errorf("heatmap should be framed by hour labels: %q", s)
	}
}

func TestRenderSparkline(t *testing.T) {
	s := RenderSparkline([]float64{1, 2, 3}, 10)
	if len([]rune(s)) != 3 {
		t.Errorf("sparkline = %q, want 3 cells", s)
	}
	if RenderSparkline(nil, 10) != "" {
		t.Error("empty sparkline should be empty")
	}
}

func TestRenderLegend(t *testing.T) {
	items := []LegendItem{
		{Label: "Casual", Color: lipgloss.Color("#ffffff")},
		{Label: "Registered", Color: lipgloss.Color("#000000")},
	}
	s := RenderLegend(items)
	if !strings.Contains(s, "Casual") || !strings.Contains(s, "Registered") {
		t.Errorf("legend = %q", s)
	}
}

func TestShareBar(t *testing.T) {
	b := NewShareBar(20)
	if b.Width() != 20 {
		t.Errorf("Width = %d, want 20", b.Width())
	}
	b.SetWidth(0)
	if b.Width() != 1 {
		t.Errorf("Width = %d, want 1", b.Width())
	}
	b.SetWidth(20)

	s := b.View(25, 75, models.LocaleEnglish)
	if !strings.Contains(s, "75%") || !strings.Contains(s, "25%") {
		t.Errorf("share bar = %q", s)
	}
	if !strings.Contains(b.View(0, 0, models.LocaleEnglish), NoDataText) {
		t.Error("empty share bar should say no data")
	}
}

func TestRegisteredShare(t *testing.T) {
	if got := RegisteredShare(1, 3); got != 0.75 {
		t.Errorf("RegisteredShare(1, 3) = %v, want 0.75", got)
	}
	if got := RegisteredShare(0, 0); got != 0 {
		t.Errorf("RegisteredShare(0, 0) = %v, want 0", got)
	}
}

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		wantErr  bool
		reversed bool
	}{
		{"Valid", "2011-01-01", "2011-12-31", false, false},
		{"SameDay", "2011-01-01", "2011-01-01", false, false},
		{"Reversed", "2011-12-31", "2011-01-01", true, true},
		{"BadStart", "2011-13-01", "2011-12-31", true, false},
		{"BadEnd", "2011-01-01", "tomorrow", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseDateRange(tt.from, tt.to)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if errors.Is(err, ErrReversedRange) != tt.reversed {
				t.Errorf("reversed = %v, want %v", errors.Is(err, ErrReversedRange), tt.reversed)
			}
		})
	}
}

func TestDateRangeInput(t *testing.T) {
	d := NewDateRangeInput()
	if d.Active() {
		t.Fatal("new editor should be inactive")
	}

	from := time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2011, 1, 31, 0, 0, 0, 0, time.UTC)
	d.Start(from, to)
	if !d.Active() || d.focused != 0 {
		t.Fatal("Start should activate and focus the start input")
	}

	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("5")})
	if f := d.from.Value(); f != "2011-01-05" {
		t.Errorf("start = %q, want 2011-01-05", f)
	}

	d.FocusNext()
	if d.focused != 1 {
		t.Fatal("FocusNext should move to the end input")
	}
	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("0")})

	gotFrom, gotTo, err := d.Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if gotFrom.Day() != 5 || gotTo.Day() != 30 {
		t.Errorf("range = %v..%v", gotFrom, gotTo)
	}
	if d.View() == "" {
		t.Error("View returned empty")
	}

	d.Stop()
	if d.Active() {
		t.Error("Stop should deactivate the editor")
	}
	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("9")})
	if to := d.to.Value(); to != "2011-01-30" {
		t.Errorf("inactive editor should ignore input, end = %q", to)
	}
}
