package period

import (
	"math"
	"time"
)

type Kind string

const (
	Weekly  Kind = "weekly"
	Monthly Kind = "monthly"
)

func (k Kind) IsValid() bool {
	return k == Weekly || k == Monthly
}

// Window is a concrete [Start, End] date range daily entries are summed over.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Kind  Kind      `json:"kind"`
}

// Days is the full window length in calendar days, minimum 1.
func (w Window) Days() int {
	return daysBetween(w.Start, w.End)
}

// ElapsedDays counts calendar days from Start through now, floored at 1 so
// projections never divide by zero on day one.
func (w Window) ElapsedDays(now time.Time) int {
	return daysBetween(w.Start, now)
}

// daysBetween counts calendar days from a through b inclusive, minimum 1.
// Rounding absorbs the 23/25 hour days around DST transitions.
func daysBetween(a, b time.Time) int {
	d := int(math.Round(Day(b).Sub(Day(a)).Hours()/24)) + 1
	if d < 1 {
		return 1
	}
	return d
}

// Contains reports whether the date of t falls inside the window, both
// bounds inclusive.
func (w Window) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(Day(w.Start)) && !Day(w.End).Before(d)
}

// Set holds the two windows every aggregation uses.
type Set struct {
	Weekly  Window `json:"weekly"`
	Monthly Window `json:"monthly"`
}

// Day truncates t to midnight of its calendar day, keeping the location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

// Windows computes the weekly and monthly ranges for now.
//
// The business week starts on Tuesday. On a Monday the weekly window
// collapses to [now, now]: the week total is defined to be zero lookback,
// only Monday's own entries count. Any other day reaches back to the most
// recent Tuesday (from a Sunday that is five days).
//
// On the 1st of a month the active month is still the previous calendar
// month, first day through last day 23:59:59. From the 2nd on it is the
// current month, day 1 through end of today.
func Windows(now time.Time) Set {
	return Set{
		Weekly:  weeklyWindow(now),
		Monthly: monthlyWindow(now),
	}
}

func weeklyWindow(now time.Time) Window {
	if now.Weekday() == time.Monday {
		return Window{Start: now, End: now, Kind: Weekly}
	}

	daysBack := (int(now.Weekday()) - int(time.Tuesday) + 7) % 7
	start := Day(now).AddDate(0, 0, -daysBack)
	return Window{Start: start, End: now, Kind: Weekly}
}

func monthlyWindow(now time.Time) Window {
	if now.Day() == 1 {
		firstOfCurrent := Day(now)
		start := firstOfCurrent.AddDate(0, -1, 0)
		end := firstOfCurrent.Add(-time.Second)
		return Window{Start: start, End: end, Kind: Monthly}
	}

	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := Day(now).AddDate(0, 0, 1).Add(-time.Second)
	return Window{Start: start, End: end, Kind: Monthly}
}
