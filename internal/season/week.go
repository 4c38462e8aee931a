// Package season maps calendar dates onto NFL season years and week numbers.
// The mapping is intentionally simple: the season opens the Thursday after
// Labor Day and weeks advance every seven days, clamped to the regular
// season range.
package season

import "time"

const (
	// FirstWeek and LastWeek bound the regular season.
	FirstWeek = 1
	LastWeek  = 18
)

// Year returns the season year a date belongs to. January through July count
// toward the previous season (playoffs and offseason).
func Year(now time.Time) int {
	if now.Month() < time.August {
		return now.Year() - 1
	}
	return now.Year()
}

// Opener returns the season's opening Thursday: the Thursday after the first
// Monday of September (Labor Day).
func Opener(year int) time.Time {
	d := time.Date(year, time.September, 1, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return d.AddDate(0, 0, 3)
}

// CurrentWeek returns the NFL week number for a date, clamped to
// [FirstWeek, LastWeek]. Dates before the opener map to week 1.
func CurrentWeek(now time.Time) int {
	opener := Opener(Year(now))
	if now.Before(opener) {
		return FirstWeek
	}
	week := int(now.Sub(opener).Hours()/(24*7)) + 1
	if week > LastWeek {
		return LastWeek
	}
	return week
}
