package timex

import "time"

// Clock returns the current time. Services take a Clock so "today" can be
// pinned in tests.
type Clock func() time.Time

// Day truncates t to midnight of its calendar date in t's location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Today is the calendar date of clock() in the clock's location.
func Today(clock Clock) time.Time {
	return Day(clock())
}

// AddDays moves a calendar day by n days, keeping it at midnight across
// DST changes.
func AddDays(day time.Time, n int) time.Time {
	return day.AddDate(0, 0, n)
}

// WeekStart returns the Monday on or before day.
func WeekStart(day time.Time) time.Time {
	// time.Weekday has Sunday = 0; shift so Monday = 0.
	offset := (int(day.Weekday()) + 6) % 7
	return AddDays(Day(day), -offset)
}
