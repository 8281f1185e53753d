package calendar

import (
	"sort"
	"time"

	"github.com/cwarden/agendas/internal/agenda"
)

// StartOfDay returns midnight of t in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight of the first day of the week containing t.
func StartOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	offset := (int(t.Weekday()) - int(weekStart) + 7) % 7
	return StartOfDay(t).AddDate(0, 0, -offset)
}

func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// Range returns the half-open interval [start, end) shown for mode around ref.
func Range(ref time.Time, mode agenda.ViewMode, weekStart time.Weekday) (time.Time, time.Time) {
	switch mode {
	case agenda.ViewDay:
		start := StartOfDay(ref)
		return start, start.AddDate(0, 0, 1)
	case agenda.ViewMonth:
		start := StartOfMonth(ref)
		return start, start.AddDate(0, 1, 0)
	default:
		start := StartOfWeek(ref, weekStart)
		return start, start.AddDate(0, 0, 7)
	}
}

// Shift moves ref by n days, weeks or months depending on mode.
func Shift(ref time.Time, mode agenda.ViewMode, n int) time.Time {
	switch mode {
	case agenda.ViewDay:
		return ref.AddDate(0, 0, n)
	case agenda.ViewMonth:
		// Clamp to the first so Jan 31 + 1 month does not skip February.
		first := StartOfMonth(ref).AddDate(0, n, 0)
		day := ref.Day()
		if last := daysIn(first); day > last {
			day = last
		}
		return time.Date(first.Year(), first.Month(), day,
			ref.Hour(), ref.Minute(), ref.Second(), ref.Nanosecond(), ref.Location())
	default:
		return ref.AddDate(0, 0, 7*n)
	}
}

// DisplayDate is the date a view is anchored to: the week start in week
// mode and ref itself otherwise.
func DisplayDate(ref time.Time, mode agenda.ViewMode, weekStart time.Weekday) time.Time {
	if mode == agenda.ViewWeek {
		return StartOfWeek(ref, weekStart)
	}
	return ref
}

// Days lists the midnights in [start, end).
func Days(start, end time.Time) []time.Time {
	var days []time.Time
	for d := StartOfDay(start); d.Before(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ForDay returns the appointments that overlap day, ordered by start
// time, then title. Appointments whose end precedes their start are
// treated as instants at their start.
func ForDay(appts []agenda.Appointment, day time.Time) []agenda.Appointment {
	dayStart := StartOfDay(day)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var out []agenda.Appointment
	for _, a := range appts {
		end := a.End
		if end.Before(a.Start) {
			end = a.Start
		}
		if a.Start.Before(dayEnd) && (end.After(dayStart) || a.Start.Equal(dayStart)) {
			out = append(out, a)
		}
	}
	SortAppointments(out)
	return out
}

// InRange returns the appointments starting in [start, end), sorted.
func InRange(appts []agenda.Appointment, start, end time.Time) []agenda.Appointment {
	var out []agenda.Appointment
	for _, a := range appts {
		if !a.Start.Before(start) && a.Start.Before(end) {
			out = append(out, a)
		}
	}
	SortAppointments(out)
	return out
}

func SortAppointments(appts []agenda.Appointment) {
	sort.SliceStable(appts, func(i, j int) bool {
		if !appts[i].Start.Equal(appts[j].Start) {
			return appts[i].Start.Before(appts[j].Start)
		}
		return appts[i].Title < appts[j].Title
	})
}

// MonthGrid returns six weeks of days beginning with the week that
// contains the first of ref's month.
func MonthGrid(ref time.Time, weekStart time.Weekday) [6][7]time.Time {
	var grid [6][7]time.Time
	day := StartOfWeek(StartOfMonth(ref), weekStart)
	for w := 0; w < 6; w++ {
		for d := 0; d < 7; d++ {
			grid[w][d] = day
			day = day.AddDate(0, 0, 1)
		}
	}
	return grid
}

func daysIn(t time.Time) int {
	return StartOfMonth(t).AddDate(0, 1, -1).Day()
}
