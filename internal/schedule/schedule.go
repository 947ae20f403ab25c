// Package schedule finds free time slots for a group of calendars. It works
// on a per-day occupancy vector at one-minute resolution and selects the
// earliest slot that fits (first-fit). The package is pure: no clocks, no
// storage, no side effects.
package schedule

import "time"

const (
	minutesPerDay = 24 * 60

	// maxScanDays bounds the range iteration so a malformed request can
	// never spin the scan for years of virtual days.
	maxScanDays = 3 * 365
)

// BusyInterval is an existing commitment blocking availability.
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// Slot is a found free interval.
type Slot struct {
	Start time.Time
	End   time.Time
}

// RepeatUnit spaces repeated occurrences by a week or a calendar month.
type RepeatUnit string

const (
	RepeatWeekly  RepeatUnit = "week"
	RepeatMonthly RepeatUnit = "month"
)

// Repeat asks for Count additional occurrences after the first slot, each
// searched for starting one Unit after the previously found slot's day.
type Repeat struct {
	Unit  RepeatUnit
	Count int
}

// Request describes one slot search over a date range.
type Request struct {
	// StartDate and EndDate bound the scan, inclusive; time of day is ignored.
	StartDate time.Time
	EndDate   time.Time
	// Daily window in minutes from local midnight, inclusive both ends.
	DailyStartMin int
	DailyEndMin   int
	// DurationMinutes is the length of the slot being requested.
	DurationMinutes int
	// IdealDays restricts the scan to these weekdays. Empty means any day.
	IdealDays []time.Weekday
	Repeat    *Repeat
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
