// Package models defines data structures and domain types.
package models

import "fmt"

// Locale selects the label table used for display names.
type Locale string

const (
	// LocaleEnglish renders labels in English.
	LocaleEnglish Locale = "en"
	// LocaleIndonesian renders labels in Indonesian, as in the source dataset.
	LocaleIndonesian Locale = "id"
)

// ParseLocale converts a config value into a Locale.
func ParseLocale(s string) (Locale, error) {
	switch Locale(s) {
	case LocaleEnglish, LocaleIndonesian:
		return Locale(s), nil
	default:
		return "", fmt.Errorf("unknown locale %q (want %q or %q)", s, LocaleEnglish, LocaleIndonesian)
	}
}

// Season is the dataset's season code. The zero value means "all seasons".
type Season int

const (
	// SeasonAll disables season filtering.
	SeasonAll Season = iota
	// SeasonSpring is code 1.
	SeasonSpring
	// SeasonSummer is code 2.
	SeasonSummer
	// SeasonFall is code 3.
	SeasonFall
	// SeasonWinter is code 4.
	SeasonWinter
)

var seasonLabels = map[Locale][5]string{
	LocaleEnglish:    {"All", "Spring", "Summer", "Fall", "Winter"},
	LocaleIndonesian: {"Semua", "Musim Semi", "Musim Panas", "Musim Gugur", "Musim Dingin"},
}

// Valid reports whether s is one of the four known season codes.
func (s Season) Valid() bool {
	return s >= SeasonSpring && s <= SeasonWinter
}

// Label returns the display name of the season in the given locale.
func (s Season) Label(loc Locale) string {
	if s < SeasonAll || s > SeasonWinter {
		return fmt.Sprintf("Season %d", int(s))
	}
	labels, ok := seasonLabels[loc]
	if !ok {
		labels = seasonLabels[LocaleEnglish]
	}
	return labels[s]
}

// String returns the English label.
func (s Season) String() string {
	return s.Label(LocaleEnglish)
}

// Weather is the dataset's weather situation code. The zero value means "all".
type Weather int

const (
	// WeatherAll disables weather filtering.
	WeatherAll Weather = iota
	// WeatherClear is code 1: clear or partly cloudy.
	WeatherClear
	// WeatherMist is code 2: mist or cloudy.
	WeatherMist
	// WeatherLightPrecip is code 3: light rain or snow.
	WeatherLightPrecip
	// WeatherHeavyPrecip is code 4: heavy rain, snow or fog.
	WeatherHeavyPrecip
)

var weatherLabels = map[Locale][5]string{
	LocaleEnglish:    {"All", "Clear", "Mist/Cloudy", "Light Rain/Snow", "Heavy Rain/Snow"},
	LocaleIndonesian: {"Semua", "Cerah", "Mendung/Kabut", "Hujan/Bersalju Ringan", "Hujan/Bersalju Lebat"},
}

// Valid reports whether w is one of the four known weather codes.
func (w Weather) Valid() bool {
	return w >= WeatherClear && w <= WeatherHeavyPrecip
}

// Label returns the display name of the weather situation in the given locale.
func (w Weather) Label(loc Locale) string {
	if w < WeatherAll || w > WeatherHeavyPrecip {
		return fmt.Sprintf("Weather %d", int(w))
	}
	labels, ok := weatherLabels[loc]
	if !ok {
		labels = weatherLabels[LocaleEnglish]
	}
	return labels[w]
}

// String returns the English label.
func (w Weather) String() string {
	return w.Label(LocaleEnglish)
}

// TimeCategory is the four-way bucketing of the hour of day.
type TimeCategory string

const (
	// TimeMorning covers 06:00-12:00.
	TimeMorning TimeCategory = "Pagi"
	// TimeAfternoon covers 12:00-18:00.
	TimeAfternoon TimeCategory = "Siang"
	// TimeEvening covers 18:00-24:00.
	TimeEvening TimeCategory = "Malam"
	// TimeNight covers 00:00-06:00.
	TimeNight TimeCategory = "Dini Hari"
)

// TimeCategories is the nominal category order used for labelling.
var TimeCategories = []TimeCategory{TimeEvening, TimeAfternoon, TimeMorning, TimeNight}

// ParseTimeCategory validates a raw category string from the dataset.
func ParseTimeCategory(s string) (TimeCategory, error) {
	for _, c := range TimeCategories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown time category %q", s)
}

// HourRange returns the half-open hour window [start, end) of the category.
func (c TimeCategory) HourRange() (start, end int) {
	switch c {
	case TimeMorning:
		return 6, 12
	case TimeAfternoon:
		return 12, 18
	case TimeEvening:
		return 18, 24
	case TimeNight:
		return 0, 6
	default:
		return 0, 0
	}
}

// UserType distinguishes casual from registered riders.
type UserType string

const (
	// UserCasual is a rider without a membership.
	UserCasual UserType = "casual"
	// UserRegistered is a member rider.
	UserRegistered UserType = "registered"
)

// Label returns the display name of the user type.
func (u UserType) Label(loc Locale) string {
	if loc == LocaleIndonesian {
		if u == UserCasual {
			return "Pengguna Kasual"
		}
		return "Pengguna Terdaftar"
	}
	if u == UserCasual {
		return "Casual"
	}
	return "Registered"
}
