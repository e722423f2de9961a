package dateutil

import (
	"fmt"
	"time"
)

// Day truncates t to its calendar day in the given location.
func Day(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// IsPreviousDay reports whether a is the calendar day right before b.
func IsPreviousDay(a, b time.Time) bool {
	return a.AddDate(0, 0, 1).Equal(b)
}

// CurrentWeekValue returns the period value of the ISO week containing t,
// for example "week/34/2026".
func CurrentWeekValue(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("week/%d/%d", week, year)
}

// CurrentMonthValue returns the period value of the month containing t,
// for example "month/8/2026".
func CurrentMonthValue(t time.Time) string {
	return fmt.Sprintf("month/%d/%d", t.Month(), t.Year())
}

// NextMidnight returns the first instant of the next calendar day in loc.
func NextMidnight(now time.Time, loc *time.Location) time.Time {
	return Day(now, loc).AddDate(0, 0, 1)
}
