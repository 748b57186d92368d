package pipeline

import (
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/models"
)

// Report is the output of one full pipeline pass.
type Report struct {
	Criteria       models.FilterCriteria      `yaml:"-"`
	Locale         models.Locale              `yaml:"locale"`
	RecordCount    int                        `yaml:"record_count"`
	Totals         models.Totals              `yaml:"totals"`
	Daily          []models.DailyTotal        `yaml:"daily"`
	Hourly         []models.HourlyTotal       `yaml:"hourly"`
	FavoriteHours  []int                      `yaml:"favorite_hours"`
	TimeCategories []models.TimeCategoryTotal `yaml:"time_categories"`
	WorkingDay     []models.WorkingDayMean    `yaml:"working_day"`
	Seasons        []models.SeasonTotal       `yaml:"seasons"`
}

// Run filters ds by criteria and computes every aggregation.
func Run(ds models.Dataset, criteria models.FilterCriteria, loc models.Locale) *Report {
	filtered := Filter(ds, criteria)

	daily := AggregateDaily(filtered)
	hourly := AggregateHourly(filtered)

	return &Report{
		Criteria:       criteria,
		Locale:         loc,
		RecordCount:    filtered.Len(),
		Totals:         ComputeTotals(daily),
		Daily:          daily,
		Hourly:         hourly,
		FavoriteHours:  FavoriteHours(hourly),
		TimeCategories: AggregateTimeCategory(filtered),
		WorkingDay:     MeanByWorkingDay(CompareWorkingDay(filtered)),
		Seasons:        AggregateSeason(filtered, loc),
	}
}

// Empty reports whether no record matched the criteria.
func (r *Report) Empty() bool {
	return r == nil || r.RecordCount == 0
}

// TopTimeCategory returns the highlighted time category, if any.
func (r *Report) TopTimeCategory() (models.TimeCategoryTotal, bool) {
	for _, c := range r.TimeCategories {
		if c.Top {
			return c, true
		}
	}
	return models.TimeCategoryTotal{}, false
}

// TopSeason returns the highlighted season, if any.
func (r *Report) TopSeason() (models.SeasonTotal, bool) {
	for _, s := range r.Seasons {
		if s.Top {
			return s, true
		}
	}
	return models.SeasonTotal{}, false
}
