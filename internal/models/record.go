package models

import (
	"slices"
	"time"
)

// DateLayout is the calendar date format used by the dataset and the UI.
const DateLayout = "2006-01-02"

// Record is one hourly observation of bike rentals.
type Record struct {
	Date         time.Time
	Hour         int
	Season       Season
	Weather      Weather
	WorkingDay   bool
	TimeCategory TimeCategory
	Casual       int64
	Registered   int64
	Total        int64
}

// Dataset is an ordered sequence of records, sorted by date ascending.
type Dataset []Record

// Len returns the number of records.
func (d Dataset) Len() int {
	return len(d)
}

// DateBounds returns the first and last date of the dataset.
// ok is false for an empty dataset.
func (d Dataset) DateBounds() (first, last time.Time, ok bool) {
	if len(d) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return d[0].Date, d[len(d)-1].Date, true
}

// Seasons returns the distinct season codes present, ascending.
func (d Dataset) Seasons() []Season {
	seen := make(map[Season]struct{})
	var out []Season
	for i := range d {
		if _, ok := seen[d[i].Season]; !ok {
			seen[d[i].Season] = struct{}{}
			out = append(out, d[i].Season)
		}
	}
	slices.Sort(out)
	return out
}

// Weathers returns the distinct weather codes present, ascending.
func (d Dataset) Weathers() []Weather {
	seen := make(map[Weather]struct{})
	var out []Weather
	for i := range d {
		if _, ok := seen[d[i].Weather]; !ok {
			seen[d[i].Weather] = struct{}{}
			out = append(out, d[i].Weather)
		}
	}
	slices.Sort(out)
	return out
}

// DatasetInfo summarizes a loaded dataset for display.
type DatasetInfo struct {
	Path      string
	Records   int
	FirstDate time.Time
	LastDate  time.Time
	Seasons   []Season
	Weathers  []Weather
	LoadedAt  time.Time
}

// Describe builds a DatasetInfo for the given dataset.
func (d Dataset) Describe(path string, loadedAt time.Time) DatasetInfo {
	first, last, _ := d.DateBounds()
	return DatasetInfo{
		Path:      path,
		Records:   d.Len(),
		FirstDate: first,
		LastDate:  last,
		Seasons:   d.Seasons(),
		Weathers:  d.Weathers(),
		LoadedAt:  loadedAt,
	}
}
