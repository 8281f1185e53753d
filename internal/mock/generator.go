// Package mock generates placeholder appointments for agendas whose
// calendar source is simulated.
package mock

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	"github.com/cwarden/agendas/internal/agenda"
	"github.com/cwarden/agendas/internal/calendar"
)

const (
	firstHour = 8
	lastHour  = 19

	standupRule = "FREQ=DAILY;BYDAY=MO,TU,WE,TH,FR"
	weeklyRule  = "FREQ=WEEKLY;COUNT=8"
)

var durations = []time.Duration{
	30 * time.Minute,
	45 * time.Minute,
	time.Hour,
	90 * time.Minute,
	2 * time.Hour,
}

var userTitles = []string{
	"Project sync",
	"Design review",
	"1:1 with manager",
	"Sprint planning",
	"Customer call",
	"Focus time",
	"Dentist",
	"Budget review",
	"Interview",
	"Lunch & learn",
}

var userDescriptions = []string{
	"Bring the latest numbers.",
	"Video link in the invite.",
	"Room 4B",
	"",
	"",
}

var friendTitles = []string{
	"Coffee",
	"Climbing",
	"Birthday party",
	"Dinner",
	"Movie night",
	"Football practice",
	"Book club",
	"Concert",
}

var friendRecurring = []string{"Gym", "Choir rehearsal", "Pottery class", "Running club"}

// Generator produces pseudo-random appointments scattered across a week.
type Generator struct {
	mu        sync.Mutex
	rng       *rand.Rand
	weekStart time.Weekday
}

// NewGenerator returns a generator seeded with seed. A zero seed uses the clock.
func NewGenerator(seed int64, weekStart time.Weekday) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		rng:       rand.New(rand.NewSource(seed)),
		weekStart: weekStart,
	}
}

// Appointments implements agenda.AppointmentSource. User agendas get a
// busier work week with a daily standup; friend agendas get a few social
// events and one weekly activity.
func (g *Generator) Appointments(isUser bool, ref time.Time) []agenda.Appointment {
	g.mu.Lock()
	defer g.mu.Unlock()

	weekStart := calendar.StartOfWeek(ref, g.weekStart)
	weekEnd := weekStart.AddDate(0, 0, 7)

	var appts []agenda.Appointment
	if isUser {
		appts = g.oneOffs(weekStart, 4+g.rng.Intn(4), userTitles, userDescriptions)
		appts = append(appts, g.recurring("Daily standup", standupRule,
			at(weekStart, 9, 30), 15*time.Minute, weekStart, weekEnd)...)
	} else {
		appts = g.oneOffs(weekStart, 2+g.rng.Intn(3), friendTitles, nil)
		day := weekStart.AddDate(0, 0, g.rng.Intn(7))
		title := friendRecurring[g.rng.Intn(len(friendRecurring))]
		appts = append(appts, g.recurring(title, weeklyRule,
			at(day, 18, 0), time.Hour, weekStart, weekEnd)...)
	}

	calendar.SortAppointments(appts)
	return appts
}

func (g *Generator) oneOffs(weekStart time.Time, n int, titles, descriptions []string) []agenda.Appointment {
	appts := make([]agenda.Appointment, 0, n)
	for i := 0; i < n; i++ {
		day := weekStart.AddDate(0, 0, g.rng.Intn(7))
		hour := firstHour + g.rng.Intn(lastHour-firstHour)
		minute := 30 * g.rng.Intn(2)
		start := at(day, hour, minute)

		appt := agenda.Appointment{
			ID:    uuid.New().String(),
			Title: titles[g.rng.Intn(len(titles))],
			Start: start,
			End:   start.Add(durations[g.rng.Intn(len(durations))]),
		}
		if len(descriptions) > 0 {
			appt.Description = descriptions[g.rng.Intn(len(descriptions))]
		}
		appts = append(appts, appt)
	}
	return appts
}

// at returns the wall clock time hour:minute on day, so DST changes
// within the week do not shift it.
func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

// recurring expands rule from dtstart and keeps the occurrences inside [from, to).
func (g *Generator) recurring(title, rule string, dtstart time.Time, length time.Duration, from, to time.Time) []agenda.Appointment {
	r, err := rrule.StrToRRule(rule)
	if err != nil {
		slog.Error("mock recurrence rule rejected", "rule", rule, "error", err)
		return nil
	}
	r.DTStart(dtstart)

	series := uuid.New().String()
	var appts []agenda.Appointment
	for _, start := range r.Between(from, to, true) {
		if !start.Before(to) {
			continue
		}
		appts = append(appts, agenda.Appointment{
			ID:    series + "-" + start.Format("20060102T1504"),
			Title: title,
			Start: start,
			End:   start.Add(length),
		})
	}
	return appts
}
