package calendar

import (
	"fmt"
	"time"
)

// Window is the Monday-start 7-day span currently displayed on the calendar.
// The zero value is not meaningful; construct via ThisWeek or At.
type Window struct {
	Start time.Time
}

// StartOfWeek returns Monday 00:00 of the week containing t: for a Sunday the
// Monday six days earlier, otherwise the most recent Monday on or before t.
func StartOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())

	if day.Weekday() == time.Sunday {
		return day.AddDate(0, 0, -6)
	}
	return day.AddDate(0, 0, -int(day.Weekday()-time.Monday))
}

// ThisWeek returns the window containing now.
func ThisWeek(now time.Time) Window {
	return Window{Start: StartOfWeek(now)}
}

// At returns the window containing an arbitrary reference date.
func At(date time.Time) Window {
	return Window{Start: StartOfWeek(date)}
}

// Shift returns a new window offset by whole weeks. Shift(1) then Shift(-1)
// is the identity.
func (w Window) Shift(weeks int) Window {
	return Window{Start: w.Start.AddDate(0, 0, weeks*7)}
}

// Days returns the 7 consecutive day boundaries of the window, Monday first.
func (w Window) Days() [7]time.Time {
	var days [7]time.Time
	for i := range days {
		days[i] = w.Start.AddDate(0, 0, i)
	}
	return days
}

// End is the exclusive upper boundary: midnight after the window's Sunday.
func (w Window) End() time.Time {
	return w.Start.AddDate(0, 0, 7)
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End())
}

// RangeLabel renders the window as e.g. "Jun 3 - Jun 9, 2024".
func (w Window) RangeLabel() string {
	days := w.Days()
	return fmt.Sprintf("%s - %s", days[0].Format("Jan 2"), days[6].Format("Jan 2, 2006"))
}
