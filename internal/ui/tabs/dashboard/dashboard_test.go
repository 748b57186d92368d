package dashboard

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/pedalgo-dashboard-tui/internal/app"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/models"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/services/pipeline"
)

func day(s string) time.Time {
	t, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func testDataset() models.Dataset {
	return models.Dataset{
		{Date: day("2011-01-01"), Hour: 8, Season: models.SeasonSpring, Weather: models.WeatherClear,
			WorkingDay: false, TimeCategory: models.TimeMorning, Casual: 100, Registered: 500, Total: 600},
		{Date: day("2011-01-31"), Hour: 17, Season: models.SeasonSummer, Weather: models.WeatherClear,
			WorkingDay: true, TimeCategory: models.TimeAfternoon, Casual: 100, Registered: 534, Total: 634},
	}
}

func readyState(t *testing.T) *app.State {
	t.Helper()
	ds := testDataset()
	info := ds.Describe("final_data.csv", time.Now())

	state := app.NewState()
	state.SetLoading(app.ResourceInitial, false)
	state.SetDatasetInfo(info)
	c := models.DefaultCriteria(info)
	state.SetCriteria(c)
	state.SetReport(pipeline.Run(ds, c, models.LocaleEnglish), nil)
	return state
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func applied(t *testing.T, cmd tea.Cmd) models.FilterCriteria {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(app.ApplyFilterMsg)
	if !ok {
		t.Fatalf("expected ApplyFilterMsg, got %T", cmd())
	}
	return msg.Criteria
}

func TestNew(t *testing.T) {
	m := New(app.NewState())
	if m == nil {
		t.Fatal("New returned nil")
	}
	if m.Init() == nil {
		t.Error("Init should start the spinner")
	}
	if m.CapturesInput() {
		t.Error("new dashboard should not capture input")
	}
}

func TestModel_LoadingView(t *testing.T) {
	m := New(app.NewState())
	m.SetSize(80, 24)
	if !strings.Contains(m.View(), "Loading dataset") {
		t.Error("initial view should show the loading spinner")
	}
	if _, cmd := m.Update(runes("s")); cmd != nil {
		t.Error("keys should be ignored while loading")
	}
}

func TestModel_LoadingViewComputingReport(t *testing.T) {
	info := testDataset().Describe("/data/final_data.csv", time.Now())
	state := app.NewState()
	state.SetLoading(app.ResourceInitial, false)
	state.SetDatasetInfo(info)
	state.SetCriteria(models.DefaultCriteria(info))
	state.SetLoading(app.ResourceReport, true)

	m := New(state)
	m.SetSize(100, 24)
	if !strings.Contains(m.View(), "Computing report · final_data.csv...") {
		t.Error("view should show the report stage until the first report arrives")
	}

	state.SetReport(pipeline.Run(testDataset(), state.GetCriteria(), models.LocaleEnglish), nil)
	state.SetLoading(app.ResourceReport, false)
	if strings.Contains(m.View(), "Computing report") {
		t.Error("view should render the dashboard once the report is ready")
	}
}

func TestModel_View(t *testing.T) {
	m := New(readyState(t))
	m.SetSize(160, 80)

	view := m.View()
	for _, want := range []string{
		"PedalGo Dashboard",
		"2011-01-01 → 2011-01-31",
		"Season: All",
		"Weather: All",
		"Total rentals",
		"1,234",
		"Average daily",
		"617",
		"Casual",
		"Registered",
		"Daily rentals",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_ViewEmptyReport(t *testing.T) {
	state := readyState(t)
	c := state.GetCriteria()
	c.Weather = models.WeatherHeavyPrecip
	state.SetCriteria(c)
	state.SetReport(pipeline.Run(testDataset(), c, models.LocaleEnglish), nil)

	m := New(state)
	m.SetSize(160, 80)
	view := m.View()
	if !strings.Contains(view, "No data") {
		t.Error("empty report should say no data")
	}
	if strings.Contains(view, "1,234") {
		t.Error("empty report should show zero metrics")
	}
}

func TestModel_ViewReportError(t *testing.T) {
	state := readyState(t)
	m := New(state)
	m.SetSize(160, 80)
	if strings.Contains(m.View(), "Report failed") {
		t.Fatal("no error expected after a successful report")
	}

	state.SetReport(nil, errors.New("service manager closed"))
	view := m.View()
	if !strings.Contains(view, "Report failed: service manager closed") {
		t.Error("view should show the last report error")
	}
	if !strings.Contains(view, "1,234") {
		t.Error("previous report should stay on screen")
	}
}

func TestModel_ToggleChart(t *testing.T) {
	m := New(readyState(t))
	m.SetSize(160, 80)

	if _, cmd := m.Update(runes("c")); cmd != nil {
		t.Error("toggling the chart should not apply a filter")
	}
	if !strings.Contains(m.View(), "Daily rentals: Casual vs Registered") {
		t.Error("split chart should be titled casual vs registered")
	}
	m.Update(runes("c"))
	if strings.Contains(m.View(), "Casual vs Registered") {
		t.Error("second toggle should return to the total chart")
	}
}

func TestModel_CycleSeason(t *testing.T) {
	state := readyState(t)
	m := New(state)

	_, cmd := m.Update(runes("s"))
	if got := applied(t, cmd).Season; got != models.SeasonSpring {
		t.Errorf("next season = %v, want Spring", got)
	}

	_, cmd = m.Update(runes("S"))
	if got := applied(t, cmd).Season; got != models.SeasonSummer {
		t.Errorf("previous season from All = %v, want Summer", got)
	}

	c := state.GetCriteria()
	c.Season = models.SeasonSummer
	state.SetCriteria(c)
	_, cmd = m.Update(runes("s"))
	if got := applied(t, cmd).Season; got != models.SeasonAll {
		t.Errorf("next season after the last = %v, want All", got)
	}
}

func TestModel_CycleWeatherKeepsDates(t *testing.T) {
	state := readyState(t)
	m := New(state)

	_, cmd := m.Update(runes("w"))
	c := applied(t, cmd)
	if c.Weather != models.WeatherClear {
		t.Errorf("next weather = %v, want Clear", c.Weather)
	}
	if !c.DateFrom.Equal(day("2011-01-01")) || !c.DateTo.Equal(day("2011-01-31")) {
		t.Errorf("weather cycling changed dates: %v..%v", c.DateFrom, c.DateTo)
	}
}

func TestModel_Reset(t *testing.T) {
	state := readyState(t)
	m := New(state)

	if _, cmd := m.Update(runes("x")); cmd != nil {
		t.Error("reset with default criteria should do nothing")
	}

	c := state.GetCriteria()
	c.Season = models.SeasonSummer
	c.DateFrom = day("2011-01-15")
	state.SetCriteria(c)

	_, cmd := m.Update(runes("x"))
	got := applied(t, cmd)
	if got.Season != models.SeasonAll || !got.DateFrom.Equal(day("2011-01-01")) {
		t.Errorf("reset = %+v", got)
	}
}

func TestModel_EditDates(t *testing.T) {
	m := New(readyState(t))
	m.SetSize(160, 80)

	m.Update(runes("d"))
	if !m.CapturesInput() {
		t.Fatal("d should open the date editor")
	}
	if len(m.ShortHelp()) != 3 {
		t.Errorf("editor help should list 3 keys, got %d", len(m.ShortHelp()))
	}

	// Global-looking keys are typed into the input while editing.
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m.Update(runes("5"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	c := applied(t, cmd)
	if !c.DateFrom.Equal(day("2011-01-05")) || !c.DateTo.Equal(day("2011-01-31")) {
		t.Errorf("applied range = %v..%v", c.DateFrom, c.DateTo)
	}
	if m.CapturesInput() {
		t.Error("enter should close the editor")
	}
}

func TestModel_EditDatesUnchanged(t *testing.T) {
	m := New(readyState(t))
	m.Update(runes("d"))
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("applying the same range should not recompute")
	}
}

func TestModel_EditDatesInvalid(t *testing.T) {
	m := New(readyState(t))
	m.SetSize(160, 80)

	m.Update(runes("d"))
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("invalid date should not apply")
	}
	if !m.CapturesInput() {
		t.Error("editor should stay open on a parse error")
	}
	if !strings.Contains(m.View(), "✗") {
		t.Error("view should show the input error")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.CapturesInput() {
		t.Error("esc should close the editor")
	}
	if strings.Contains(m.View(), "✗") {
		t.Error("esc should clear the input error")
	}
}

func TestCycleIndex(t *testing.T) {
	tests := []struct {
		i, n, dir, want int
	}{
		{0, 3, 1, 1},
		{2, 3, 1, 0},
		{0, 3, -1, 2},
		{1, 3, -1, 0},
		{0, 1, 1, 0},
	}
	for _, tt := range tests {
		if got := cycleIndex(tt.i, tt.n, tt.dir); got != tt.want {
			t.Errorf("cycleIndex(%d, %d, %d) = %d, want %d", tt.i, tt.n, tt.dir, got, tt.want)
		}
	}
}

func TestCycleSeason_UnknownCurrent(t *testing.T) {
	got := cycleSeason(models.SeasonWinter, []models.Season{models.SeasonSpring}, 1)
	if got != models.SeasonSpring {
		t.Errorf("unknown current should restart from All, got %v", got)
	}
}

func TestModel_Help(t *testing.T) {
	m := New(app.NewState())
	if len(m.ShortHelp()) == 0 {
		t.Error("ShortHelp empty")
	}
	if len(m.FullHelp()) == 0 {
		t.Error("FullHelp empty")
	}
}
