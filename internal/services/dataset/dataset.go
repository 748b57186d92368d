// Package dataset loads the prepared rental dataset and keeps it in sync with
// the file on disk.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/j-veylop/pedalgo-dashboard-tui/internal/models"
)

// Column names expected in the CSV header.
const (
	ColDate         = "dteday"
	ColHour         = "hr"
	ColSeason       = "season"
	ColWeather      = "weathersit"
	ColWorkingDay   = "workingday"
	ColTimeCategory = "time_category"
	ColCasual       = "casual"
	ColRegistered   = "registered"
	ColTotal        = "cnt"
)

// RequiredColumns lists every column the loader reads.
var RequiredColumns = []string{
	ColDate, ColHour, ColSeason, ColWeather, ColWorkingDay,
	ColTimeCategory, ColCasual, ColRegistered, ColTotal,
}

var intColumns = []string{
	ColHour, ColSeason, ColWeather, ColWorkingDay,
	ColCasual, ColRegistered, ColTotal,
}

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// ErrEmpty is returned when the file has no data rows.
var ErrEmpty = errors.New("dataset has no rows")

// Load reads and validates the dataset at path.
func Load(path string) (models.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	ds, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Parse reads CSV data from r. Any invalid row fails the whole load.
func Parse(r io.Reader) (models.Dataset, error) {
	types := map[string]series.Type{
		ColDate:         series.String,
		ColTimeCategory: series.String,
	}
	for _, name := range intColumns {
		types[name] = series.Int
	}

	df := dataframe.ReadCSV(r,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(types),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", df.Err)
	}

	names := df.Names()
	for _, col := range RequiredColumns {
		if !slices.Contains(names, col) {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	if df.Nrow() == 0 {
		return nil, ErrEmpty
	}

	ints := make(map[string][]int, len(intColumns))
	for _, name := range intColumns {
		col := df.Col(name)
		if col.Err != nil {
			return nil, fmt.Errorf("column %s: %w", name, col.Err)
		}
		for i, nan := range col.IsNaN() {
			if nan {
				return nil, rowError(i, "column %s is not an integer", name)
			}
		}
		vals, err := col.Int()
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", name, err)
		}
		ints[name] = vals
	}

	dates := df.Col(ColDate).Records()
	categories := df.Col(ColTimeCategory).Records()

	ds := make(models.Dataset, df.Nrow())
	for i := range ds {
		rec, err := buildRecord(dates[i], categories[i], func(col string) int { return ints[col][i] })
		if err != nil {
			return nil, rowError(i, "%v", err)
		}
		ds[i] = rec
	}

	slices.SortStableFunc(ds, func(a, b models.Record) int {
		return a.Date.Compare(b.Date)
	})
	return ds, nil
}

// parseDay accepts a plain date or the midnight datetime form written by
// dataframe exports, e.g. "2011-01-01 00:00:00". The time of day is dropped.
func parseDay(s string) (time.Time, error) {
	d, err := models.ParseDate(s)
	if err == nil {
		return d, nil
	}
	t, dtErr := time.Parse(time.DateTime, s)
	if dtErr != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func buildRecord(date, category string, val func(string) int) (models.Record, error) {
	var rec models.Record

	d, err := parseDay(strings.TrimSpace(date))
	if err != nil {
		return rec, err
	}
	rec.Date = d

	rec.Hour = val(ColHour)
	if rec.Hour < 0 || rec.Hour > 23 {
		return rec, fmt.Errorf("hour %d out of range", rec.Hour)
	}

	rec.Season = models.Season(val(ColSeason))
	if !rec.Season.Valid() {
		return rec, fmt.Errorf("unknown season code %d", rec.Season)
	}

	rec.Weather = models.Weather(val(ColWeather))
	if !rec.Weather.Valid() {
		return rec, fmt.Errorf("unknown weather code %d", rec.Weather)
	}

	switch wd := val(ColWorkingDay); wd {
	case 0:
	case 1:
		rec.WorkingDay = true
	default:
		return rec, fmt.Errorf("working day flag %d is not 0 or 1", wd)
	}

	rec.TimeCategory, err = models.ParseTimeCategory(strings.TrimSpace(category))
	if err != nil {
		return rec, err
	}

	rec.Casual = int64(val(ColCasual))
	rec.Registered = int64(val(ColRegistered))
	rec.Total = int64(val(ColTotal))
	if rec.Casual < 0 || rec.Registered < 0 {
		return rec, fmt.Errorf("negative rental count")
	}
	if rec.Total != rec.Casual+rec.Registered {
		return rec, fmt.Errorf("cnt %d != casual %d + registered %d", rec.Total, rec.Casual, rec.Registered)
	}
	return rec, nil
}

// rowError numbers rows from 1, excluding the header.
func rowError(i int, format string, args ...any) error {
	return fmt.Errorf("row %d: "+format, append([]any{i + 1}, args...)...)
}
