package models

import (
	"fmt"
	"time"
)

// FilterCriteria selects the records in scope for one pipeline run.
// Season and Weather use their zero values to mean "no filter".
type FilterCriteria struct {
	DateFrom time.Time
	DateTo   time.Time
	Season   Season
	Weather  Weather
}

// DefaultCriteria covers the whole dataset with no category filters.
func DefaultCriteria(info DatasetInfo) FilterCriteria {
	return FilterCriteria{
		DateFrom: info.FirstDate,
		DateTo:   info.LastDate,
	}
}

// Valid reports whether the criteria can match anything at all.
// A reversed date range or an unknown category code is invalid.
func (c FilterCriteria) Valid() bool {
	if c.DateFrom.After(c.DateTo) {
		return false
	}
	if c.Season != SeasonAll && !c.Season.Valid() {
		return false
	}
	if c.Weather != WeatherAll && !c.Weather.Valid() {
		return false
	}
	return true
}

// Matches reports whether r satisfies every set condition.
func (c FilterCriteria) Matches(r *Record) bool {
	if r.Date.Before(c.DateFrom) || r.Date.After(c.DateTo) {
		return false
	}
	if c.Season != SeasonAll && r.Season != c.Season {
		return false
	}
	if c.Weather != WeatherAll && r.Weather != c.Weather {
		return false
	}
	return true
}

// Clamp narrows the date range to the given bounds, keeping category filters.
func (c FilterCriteria) Clamp(first, last time.Time) FilterCriteria {
	if c.DateFrom.IsZero() || c.DateFrom.Before(first) {
		c.DateFrom = first
	}
	if c.DateTo.IsZero() || c.DateTo.After(last) {
		c.DateTo = last
	}
	return c
}

// Describe renders the criteria as a short human-readable string.
func (c FilterCriteria) Describe(loc Locale) string {
	return fmt.Sprintf("%s → %s · %s · %s",
		c.DateFrom.Format(DateLayout),
		c.DateTo.Format(DateLayout),
		c.Season.Label(loc),
		c.Weather.Label(loc),
	)
}

// ParseDate parses a calendar date in DateLayout as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}
