package db

import (
	"testing"
	"time"

	"github.com/j-veylop/pedalgo-dashboard-tui/internal/models"
)

func date(s string) time.Time {
	t, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func newEntry(applied time.Time, season models.Season) *models.FilterHistoryEntry {
	return &models.FilterHistoryEntry{
		SessionID: "sess-1",
		AppliedAt: applied,
		Criteria: models.FilterCriteria{
			DateFrom: date("2011-01-01"),
			DateTo:   date("2012-12-31"),
			Season:   season,
			Weather:  models.WeatherClear,
		},
		RecordCount:  120,
		TotalRentals: 4500,
	}
}

func TestInsertFilterHistory(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	entry := newEntry(time.Time{}, models.SeasonSummer)
	if err := db.InsertFilterHistory(entry); err != nil {
		t.Fatalf("InsertFilterHistory() failed: %v", err)
	}

	if entry.ID == 0 {
		t.Error("InsertFilterHistory() should set ID")
	}
}

func TestGetLastFilter_Empty(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	entry, err := db.GetLastFilter()
	if err != nil {
		t.Fatalf("GetLastFilter() failed: %v", err)
	}
	if entry != nil {
		t.Errorf("GetLastFilter() = %+v, want nil", entry)
	}
}

func TestGetLastFilter_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	applied := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	want := newEntry(applied, models.SeasonFall)
	if err := db.InsertFilterHistory(want); err != nil {
		t.Fatalf("InsertFilterHistory() failed: %v", err)
	}

	got, err := db.GetLastFilter()
	if err != nil {
		t.Fatalf("GetLastFilter() failed: %v", err)
	}
	if got == nil {
		t.Fatal("GetLastFilter() returned nil")
	}

	if got.ID != want.ID || got.SessionID != want.SessionID {
		t.Errorf("identity = %d/%q, want %d/%q", got.ID, got.SessionID, want.ID, want.SessionID)
	}
	if !got.AppliedAt.Equal(applied) {
		t.Errorf("AppliedAt = %v, want %v", got.AppliedAt, applied)
	}
	if got.Criteria != want.Criteria {
		t.Errorf("Criteria = %+v, want %+v", got.Criteria, want.Criteria)
	}
	if got.RecordCount != 120 || got.TotalRentals != 4500 {
		t.Errorf("counts = %d/%d, want 120/4500", got.RecordCount, got.TotalRentals)
	}
}

func TestGetRecentFilters_Order(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	seasons := []models.Season{models.SeasonSpring, models.SeasonSummer, models.SeasonFall, models.SeasonWinter}
	for i, s := range seasons {
		if err := db.InsertFilterHistory(newEntry(base.Add(time.Duration(i)*time.Minute), s)); err != nil {
			t.Fatalf("InsertFilterHistory() failed: %v", err)
		}
	}

	entries, err := db.GetRecentFilters(3)
	if err != nil {
		t.Fatalf("GetRecentFilters() failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("GetRecentFilters(3) returned %d entries", len(entries))
	}

	want := []models.Season{models.SeasonWinter, models.SeasonFall, models.SeasonSummer}
	for i, e := range entries {
		if e.Criteria.Season != want[i] {
			t.Errorf("entries[%d].Season = %v, want %v", i, e.Criteria.Season, want[i])
		}
	}
}

func TestGetRecentFilters_SameSecondUsesID(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	applied := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	first := newEntry(applied, models.SeasonSpring)
	second := newEntry(applied, models.SeasonWinter)
	for _, e := range []*models.FilterHistoryEntry{first, second} {
		if err := db.InsertFilterHistory(e); err != nil {
			t.Fatalf("InsertFilterHistory() failed: %v", err)
		}
	}

	last, err := db.GetLastFilter()
	if err != nil {
		t.Fatalf("GetLastFilter() failed: %v", err)
	}
	if last.ID != second.ID {
		t.Errorf("GetLastFilter().ID = %d, want %d", last.ID, second.ID)
	}
}

func TestPruneFilterHistory(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for i := range 5 {
		if err := db.InsertFilterHistory(newEntry(base.Add(time.Duration(i)*time.Hour), models.SeasonSpring)); err != nil {
			t.Fatalf("InsertFilterHistory() failed: %v", err)
		}
	}

	removed, err := db.PruneFilterHistory(2)
	if err != nil {
		t.Fatalf("PruneFilterHistory() failed: %v", err)
	}
	if removed != 3 {
		t.Errorf("PruneFilterHistory() removed %d, want 3", removed)
	}

	entries, err := db.GetRecentFilters(10)
	if err != nil {
		t.Fatalf("GetRecentFilters() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if !entries[0].AppliedAt.Equal(base.Add(4 * time.Hour)) {
		t.Errorf("newest kept entry applied at %v", entries[0].AppliedAt)
	}
}

func TestSessionEvents(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	for range 2 {
		if err := db.InsertSessionEvent("sess-1", EventDatasetReload, ""); err != nil {
			t.Fatalf("InsertSessionEvent() failed: %v", err)
		}
	}
	if err := db.InsertSessionEvent("sess-2", EventDatasetReload, "other"); err != nil {
		t.Fatalf("InsertSessionEvent() failed: %v", err)
	}

	n, err := db.CountSessionEvents("sess-1", EventDatasetReload)
	if err != nil {
		t.Fatalf("CountSessionEvents() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("CountSessionEvents() = %d, want 2", n)
	}
}

func TestParseTimeString(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"2024-05-01 10:30:00", true},
		{"2024-05-01T10:30:00Z", true},
		{"2024-05-01T10:30:00.123456789Z", true},
		{"yesterday", false},
	}
	for _, tt := range tests {
		if _, ok := parseTimeString(tt.in); ok != tt.ok {
			t.Errorf("parseTimeString(%q) ok = %v, want %v", tt.in, ok, tt.ok)
		}
	}
}
