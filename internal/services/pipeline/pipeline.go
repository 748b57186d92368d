// Package pipeline implements the filter and aggregation passes behind the
// dashboard. Every function is a pure function of its arguments.
package pipeline

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/j-veylop/pedalgo-dashboard-tui/internal/models"
)

// FavoriteHourCount is how many of the busiest hours are flagged as favorites.
const FavoriteHourCount = 3

// Filter returns the records matching criteria, preserving their order.
// Invalid criteria match nothing.
func Filter(ds models.Dataset, criteria models.FilterCriteria) models.Dataset {
	if !criteria.Valid() {
		return models.Dataset{}
	}
	out := make(models.Dataset, 0, len(ds))
	for i := range ds {
		if criteria.Matches(&ds[i]) {
			out = append(out, ds[i])
		}
	}
	return out
}

type dailyAcc struct {
	date                    time.Time
	total, casual, register int64
	n                       int
}

// AggregateDaily groups records by date. The result follows dataset order,
// which is ascending by date.
func AggregateDaily(ds models.Dataset) []models.DailyTotal {
	index := make(map[time.Time]int)
	var accs []*dailyAcc
	for i := range ds {
		r := &ds[i]
		idx, ok := index[r.Date]
		if !ok {
			idx = len(accs)
			index[r.Date] = idx
			accs = append(accs, &dailyAcc{date: r.Date})
		}
		a := accs[idx]
		a.total += r.Total
		a.casual += r.Casual
		a.register += r.Registered
		a.n++
	}

	out := make([]models.DailyTotal, len(accs))
	for i, a := range accs {
		out[i] = models.DailyTotal{
			Date:          a.date,
			TotalSum:      a.total,
			TotalMean:     float64(a.total) / float64(a.n),
			CasualSum:     a.casual,
			RegisteredSum: a.register,
		}
	}
	slices.SortStableFunc(out, func(a, b models.DailyTotal) int {
		return a.Date.Compare(b.Date)
	})
	return out
}

// ComputeTotals derives the headline metrics. AverageDaily is the mean of the
// per-day sums, not of the raw record counts.
func ComputeTotals(daily []models.DailyTotal) models.Totals {
	t := models.Totals{Days: len(daily)}
	for _, d := range daily {
		t.TotalRentals += d.TotalSum
		t.CasualRentals += d.CasualSum
		t.RegisteredRentals += d.RegisteredSum
	}
	if t.Days > 0 {
		t.AverageDaily = float64(t.TotalRentals) / float64(t.Days)
	}
	return t
}

// AggregateHourly groups records by hour and ranks them by total descending.
// Ties go to the earlier hour. The first FavoriteHourCount entries are flagged.
func AggregateHourly(ds models.Dataset) []models.HourlyTotal {
	var byHour [24]models.HourlyTotal
	var seen [24]bool
	for i := range ds {
		r := &ds[i]
		// The loader rejects these; datasets built in memory may not.
		if r.Hour < 0 || r.Hour > 23 {
			continue
		}
		h := &byHour[r.Hour]
		h.Hour = r.Hour
		h.TotalSum += r.Total
		h.CasualSum += r.Casual
		h.RegisteredSum += r.Registered
		seen[r.Hour] = true
	}

	out := make([]models.HourlyTotal, 0, 24)
	for hour := range byHour {
		if seen[hour] {
			out = append(out, byHour[hour])
		}
	}
	slices.SortStableFunc(out, func(a, b models.HourlyTotal) int {
		if a.TotalSum != b.TotalSum {
			if a.TotalSum > b.TotalSum {
				return -1
			}
			return 1
		}
		return a.Hour - b.Hour
	})
	for i := range out {
		out[i].Favorite = i < FavoriteHourCount
	}
	return out
}

// FavoriteHours returns the flagged hours in ranking order.
func FavoriteHours(hourly []models.HourlyTotal) []int {
	var hours []int
	for _, h := range hourly {
		if h.Favorite {
			hours = append(hours, h.Hour)
		}
	}
	return hours
}

// FavoriteHoursLabel joins the favorite hours as "17, 8, 18".
func FavoriteHoursLabel(hours []int) string {
	parts := make([]string, len(hours))
	for i, h := range hours {
		parts[i] = strconv.Itoa(h)
	}
	return strings.Join(parts, ", ")
}

// AggregateTimeCategory sums totals per time category, omitting absent
// categories. The result is ascending by total so the largest bar comes last;
// ties keep the nominal category order. The last entry is flagged as top.
func AggregateTimeCategory(ds models.Dataset) []models.TimeCategoryTotal {
	sums := make(map[models.TimeCategory]int64)
	for i := range ds {
		sums[ds[i].TimeCategory] += ds[i].Total
	}

	out := make([]models.TimeCategoryTotal, 0, len(sums))
	for _, c := range models.TimeCategories {
		if total, ok := sums[c]; ok {
			out = append(out, models.TimeCategoryTotal{Category: c, TotalSum: total})
		}
	}
	slices.SortStableFunc(out, func(a, b models.TimeCategoryTotal) int {
		switch {
		case a.TotalSum < b.TotalSum:
			return -1
		case a.TotalSum > b.TotalSum:
			return 1
		default:
			return 0
		}
	})
	if len(out) > 0 {
		out[len(out)-1].Top = true
	}
	return out
}

// AggregateSeason sums totals per season and ranks them descending, ties by
// ascending code. Absent seasons are omitted; the first entry is flagged.
func AggregateSeason(ds models.Dataset, loc models.Locale) []models.SeasonTotal {
	sums := make(map[models.Season]int64)
	for i := range ds {
		sums[ds[i].Season] += ds[i].Total
	}

	out := make([]models.SeasonTotal, 0, len(sums))
	for s, total := range sums {
		out = append(out, models.SeasonTotal{Season: s, Label: s.Label(loc), TotalSum: total})
	}
	slices.SortFunc(out, func(a, b models.SeasonTotal) int {
		if a.TotalSum != b.TotalSum {
			if a.TotalSum > b.TotalSum {
				return -1
			}
			return 1
		}
		return int(a.Season) - int(b.Season)
	})
	if len(out) > 0 {
		out[0].Top = true
	}
	return out
}

// CompareWorkingDay reshapes each record into two long-form rows keyed by
// working day and user type: casual first, then registered.
func CompareWorkingDay(ds models.Dataset) []models.UserTypeCount {
	out := make([]models.UserTypeCount, 0, 2*len(ds))
	for i := range ds {
		r := &ds[i]
		out = append(out,
			models.UserTypeCount{WorkingDay: r.WorkingDay, UserType: models.UserCasual, Count: r.Casual},
			models.UserTypeCount{WorkingDay: r.WorkingDay, UserType: models.UserRegistered, Count: r.Registered},
		)
	}
	return out
}

type groupKey struct {
	workingDay bool
	userType   models.UserType
}

// MeanByWorkingDay averages the long-form rows per (working day, user type).
// Groups are ordered weekend before working day, casual before registered,
// and omitted when they have no rows.
func MeanByWorkingDay(rows []models.UserTypeCount) []models.WorkingDayMean {
	sums := make(map[groupKey]int64)
	counts := make(map[groupKey]int)
	for _, r := range rows {
		k := groupKey{r.WorkingDay, r.UserType}
		sums[k] += r.Count
		counts[k]++
	}

	var out []models.WorkingDayMean
	for _, wd := range []bool{false, true} {
		for _, ut := range []models.UserType{models.UserCasual, models.UserRegistered} {
			k := groupKey{wd, ut}
			n := counts[k]
			if n == 0 {
				continue
			}
			out = append(out, models.WorkingDayMean{
				WorkingDay: wd,
				UserType:   ut,
				Mean:       float64(sums[k]) / float64(n),
				Samples:    n,
			})
		}
	}
	return out
}
