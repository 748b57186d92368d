package history

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/pedalgo-dashboard-tui/internal/app"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/config"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/models"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/services"
)

const testCSV = "dteday,hr,season,weathersit,workingday,time_category,casual,registered,cnt\n" +
	"2011-01-01,8,1,1,1,Pagi,2,23,25\n" +
	"2011-01-01,17,1,2,1,Siang,10,30,40\n" +
	"2011-01-02,8,2,1,0,Pagi,5,30,35\n"

func newTestManager(t *testing.T) *services.Manager {
	t.Helper()
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "final_data.csv")
	if err := os.WriteFile(csvPath, []byte(testCSV), 0600); err != nil {
		t.Fatalf("failed to write dataset: %v", err)
	}
	mgr, err := services.NewManager(&config.Config{
		DatasetPath:  csvPath,
		DatabasePath: filepath.Join(dir, "history.db"),
		Locale:       models.LocaleEnglish,
		HistoryLimit: 5,
	})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	t.Cleanup(func() { _ = mgr.Close() })
	return mgr
}

func day(s string) time.Time {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func readyState(mgr *services.Manager) *app.State {
	state := app.NewState()
	state.SetLoading(app.ResourceInitial, false)
	if mgr != nil {
		state.SetDatasetInfo(mgr.DatasetInfo())
	}
	return state
}

// load runs the model's pending load command and feeds the result back.
func load(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a load command")
	}
	m.Update(cmd())
}

func TestNew(t *testing.T) {
	m := New(app.NewState(), nil)
	if m == nil {
		t.Fatal("New returned nil")
	}
	if m.limit != defaultLimit {
		t.Errorf("limit = %d, want %d", m.limit, defaultLimit)
	}
}

func TestNew_UsesConfiguredLimit(t *testing.T) {
	m := New(app.NewState(), newTestManager(t))
	if m.limit != 5 {
		t.Errorf("limit = %d, want 5", m.limit)
	}
}

func TestModel_InitWithoutServices(t *testing.T) {
	m := New(readyState(nil), nil)
	m.SetSize(100, 30)

	cmd := m.Init()
	if !strings.Contains(m.View(), "Loading filter history") {
		t.Error("view should show loading before the first result")
	}

	_, notify := m.Update(cmd())
	if m.errorMsg == "" {
		t.Fatal("missing services should surface an error")
	}
	if notify == nil {
		t.Fatal("error should raise a notification")
	}
	if _, ok := notify().(app.AddNotificationMsg); !ok {
		t.Error("expected AddNotificationMsg")
	}
	if !strings.Contains(m.View(), "Error:") {
		t.Error("view should show the error")
	}
}

func TestModel_Empty(t *testing.T) {
	mgr := newTestManager(t)
	m := New(readyState(mgr), mgr)
	m.SetSize(100, 30)

	load(t, m, m.Init())
	if !strings.Contains(m.View(), "No filters applied yet") {
		t.Error("view should show the empty state")
	}
}

func TestModel_ListsAndReappliesFilters(t *testing.T) {
	mgr := newTestManager(t)
	info := mgr.DatasetInfo()

	older := models.DefaultCriteria(info)
	newer := older
	newer.Season = models.SeasonSpring
	for _, c := range []models.FilterCriteria{older, newer} {
		if _, err := mgr.Compute(c); err != nil {
			t.Fatalf("Compute: %v", err)
		}
	}

	m := New(readyState(mgr), mgr)
	m.SetSize(140, 30)
	load(t, m, m.Init())

	if len(m.entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(m.entries))
	}

	view := m.View()
	for _, want := range []string{"Filter History", "2011-01-01 → 2011-01-02", "Spring", "●"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	// The newest entry is first.
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should re-apply the selected filter")
	}
	msg, ok := cmd().(app.ApplyFilterMsg)
	if !ok {
		t.Fatalf("expected ApplyFilterMsg, got %T", cmd())
	}
	if msg.Criteria.Season != models.SeasonSpring {
		t.Errorf("re-applied season = %v, want Spring", msg.Criteria.Season)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := cmd().(app.ApplyFilterMsg).Criteria.Season; got != models.SeasonAll {
		t.Errorf("second entry season = %v, want All", got)
	}
}

func TestModel_ReapplyClampsToDataset(t *testing.T) {
	mgr := newTestManager(t)
	m := New(readyState(mgr), mgr)
	m.Update(historyLoadedMsg{entries: []models.FilterHistoryEntry{{
		Criteria: models.FilterCriteria{DateFrom: day("2010-06-01"), DateTo: day("2012-01-01")},
	}}})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	c := cmd().(app.ApplyFilterMsg).Criteria
	if !c.DateFrom.Equal(day("2011-01-01")) || !c.DateTo.Equal(day("2011-01-02")) {
		t.Errorf("clamped range = %v..%v", c.DateFrom, c.DateTo)
	}
}

func TestModel_EnterWithoutEntries(t *testing.T) {
	m := New(readyState(nil), nil)
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("enter with no entries should do nothing")
	}
}

func TestModel_RefreshTriggers(t *testing.T) {
	mgr := newTestManager(t)
	m := New(readyState(mgr), mgr)

	if _, cmd := m.Update(app.ReportComputedMsg{}); cmd == nil {
		t.Error("a computed report should refresh history")
	}
	if _, cmd := m.Update(app.ReportComputedMsg{}); cmd != nil {
		t.Error("refresh should not stack while loading")
	}

	m.Update(historyLoadedMsg{})
	if _, cmd := m.Update(app.TabSwitchMsg{Tab: app.TabRankings}); cmd != nil {
		t.Error("switching to another tab should not refresh history")
	}
	if _, cmd := m.Update(app.TabSwitchMsg{Tab: app.TabHistory}); cmd == nil {
		t.Error("switching to history should refresh it")
	}

	m.Update(historyLoadedMsg{})
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}); cmd == nil {
		t.Error("r should refresh history")
	}
}

func TestColumns(t *testing.T) {
	narrow := columns(10)
	wide := columns(200)
	if len(narrow) != 7 || len(wide) != 7 {
		t.Fatal("expected 7 columns")
	}
	if wide[2].Width <= narrow[2].Width {
		t.Error("extra width should go to the range column")
	}
}

func TestModel_Help(t *testing.T) {
	m := New(app.NewState(), nil)
	if len(m.ShortHelp()) == 0 || len(m.FullHelp()) == 0 {
		t.Error("help bindings should not be empty")
	}
}
