package models

import (
	"math"
	"time"
)

// DailyTotal aggregates all records of one calendar date.
type DailyTotal struct {
	Date          time.Time `yaml:"date"`
	TotalSum      int64     `yaml:"total_sum"`
	TotalMean     float64   `yaml:"total_mean"`
	CasualSum     int64     `yaml:"casual_sum"`
	RegisteredSum int64     `yaml:"registered_sum"`
}

// Totals are the grand-total metrics computed from the daily totals.
type Totals struct {
	Days              int     `yaml:"days"`
	TotalRentals      int64   `yaml:"total_rentals"`
	AverageDaily      float64 `yaml:"average_daily"`
	CasualRentals     int64   `yaml:"casual_rentals"`
	RegisteredRentals int64   `yaml:"registered_rentals"`
}

// AverageDailyRounded returns the average daily rentals rounded to the
// nearest integer. It is zero when there are no days.
func (t Totals) AverageDailyRounded() int64 {
	return int64(math.Round(t.AverageDaily))
}

// HourlyTotal aggregates all records of one hour of day.
type HourlyTotal struct {
	Hour          int   `yaml:"hour"`
	TotalSum      int64 `yaml:"total_sum"`
	CasualSum     int64 `yaml:"casual_sum"`
	RegisteredSum int64 `yaml:"registered_sum"`
	Favorite      bool  `yaml:"favorite"`
}

// TimeCategoryTotal aggregates all records of one time category.
type TimeCategoryTotal struct {
	Category TimeCategory `yaml:"category"`
	TotalSum int64        `yaml:"total_sum"`
	Top      bool         `yaml:"top"`
}

// SeasonTotal aggregates all records of one season.
type SeasonTotal struct {
	Season   Season `yaml:"season"`
	Label    string `yaml:"label"`
	TotalSum int64  `yaml:"total_sum"`
	Top      bool   `yaml:"top"`
}

// UserTypeCount is one long-form row of the working-day comparison.
type UserTypeCount struct {
	WorkingDay bool
	UserType   UserType
	Count      int64
}

// WorkingDayMean is the mean rental count of one (working day, user type) group.
type WorkingDayMean struct {
	WorkingDay bool     `yaml:"working_day"`
	UserType   UserType `yaml:"user_type"`
	Mean       float64  `yaml:"mean"`
	Samples    int      `yaml:"samples"`
}
