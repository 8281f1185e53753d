package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/cwarden/agendas/internal/agenda"
	"github.com/cwarden/agendas/internal/calendar"
)

var modeTabs = []struct {
	mode  agenda.ViewMode
	label string
}{
	{agenda.ViewDay, "1 Day"},
	{agenda.ViewWeek, "2 Week"},
	{agenda.ViewMonth, "3 Month"},
}

// renderCalendar renders the header and the visible appointments for the
// current mode into a width x height block.
func (m *Model) renderCalendar(width, height int) string {
	header := m.renderCalendarHeader(width)
	bodyHeight := height - lipgloss.Height(header)

	appts := m.store.Visible()
	date := m.displayDate()

	var body string
	switch m.mode {
	case agenda.ViewDay:
		body = m.renderDayView(appts, date, width-2)
	case agenda.ViewMonth:
		body = m.renderMonthView(appts, date, width-2)
	default:
		body = m.renderWeekView(appts, date, width-2)
	}

	body = clipLines(body, bodyHeight)
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		PaddingLeft(1).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, body))
}

func (m *Model) renderCalendarHeader(width int) string {
	title := m.styles.Title.Render("Aggregated Agenda")

	var tabs []string
	for _, t := range modeTabs {
		if t.mode == m.mode {
			tabs = append(tabs, m.styles.Selected.Render(" "+t.label+" "))
		} else {
			tabs = append(tabs, m.styles.Help.Render(" "+t.label+" "))
		}
	}
	tabLine := strings.Join(tabs, " ")

	gap := width - 2 - lipgloss.Width(title) - lipgloss.Width(tabLine)
	if gap < 1 {
		gap = 1
	}
	top := title + strings.Repeat(" ", gap) + tabLine

	period := m.styles.Header.Render(periodLabel(m.displayDate(), m.mode))
	nav := m.styles.Help.Render("  h/l prev/next · t today")

	return lipgloss.JoinVertical(lipgloss.Left, top, period+nav, "")
}

// renderDayView lists the day's appointments with their descriptions.
func (m *Model) renderDayView(appts []agenda.Appointment, date time.Time, width int) string {
	day := calendar.ForDay(appts, date)
	if len(day) == 0 {
		return m.styles.Dim.Render("(no appointments)")
	}

	descWidth := width - 4
	if descWidth < 20 {
		descWidth = 20
	}

	var lines []string
	for i, a := range day {
		if i > 0 {
			lines = append(lines, "")
		}
		when := formatTimeRange(a, m.config.TimeFormat)
		line := fmt.Sprintf("%s %s  %s  %s",
			swatch(a.AgendaColor),
			m.styles.Normal.Render(when),
			agendaStyle(a.AgendaColor).Bold(true).Render(a.Title),
			m.styles.Help.Render(fmt.Sprintf("%s · %s", a.AgendaName, formatDuration(a.Duration()))),
		)
		lines = append(lines, fit(line, width))

		if a.Description != "" {
			for _, l := range strings.Split(wordwrap.String(a.Description, descWidth), "\n") {
				if l != "" {
					lines = append(lines, "    "+m.styles.Help.Render(l))
				}
			}
		}
	}
	return strings.Join(lines, "\n")
}

// renderWeekView renders seven day columns side by side.
func (m *Model) renderWeekView(appts []agenda.Appointment, weekStart time.Time, width int) string {
	colWidth := (width - 6) / 7
	if colWidth < 8 {
		colWidth = 8
	}

	today := m.now()
	var columns []string
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)

		headerStyle := m.styles.Normal.Bold(true)
		switch {
		case calendar.SameDay(day, today):
			headerStyle = m.styles.Today
		case isWeekend(day):
			headerStyle = m.styles.Weekend.Bold(true)
		}

		lines := []string{
			headerStyle.Render(pad(day.Format("Mon 02"), colWidth)),
			m.styles.Help.Render(strings.Repeat("─", colWidth)),
		}

		dayAppts := calendar.ForDay(appts, day)
		if len(dayAppts) == 0 {
			lines = append(lines, m.styles.Dim.Render(pad("—", colWidth)))
		}
		for _, a := range dayAppts {
			entry := a.Start.Format(m.config.TimeFormat) + " " + a.Title
			lines = append(lines, agendaStyle(a.AgendaColor).Render(pad(entry, colWidth)))
		}

		columns = append(columns, strings.Join(lines, "\n"))
		if i < 6 {
			columns = append(columns, " ")
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

// renderMonthView renders a six week grid. Each cell shows the day number
// and up to MonthCellLines appointment titles.
func (m *Model) renderMonthView(appts []agenda.Appointment, ref time.Time, width int) string {
	colWidth := (width - 6) / 7
	if colWidth < 6 {
		colWidth = 6
	}
	maxEntries := m.config.MonthCellLines
	if maxEntries < 1 {
		maxEntries = 1
	}

	grid := calendar.MonthGrid(ref, m.config.WeekStartDay)
	today := m.now()

	var dayNames []string
	for d := 0; d < 7; d++ {
		name := grid[0][d].Format("Mon")
		dayNames = append(dayNames, m.styles.Help.Render(pad(name, colWidth)))
	}
	rows := []string{strings.Join(dayNames, " ")}

	for _, week := range grid {
		var cells []string
		for d, day := range week {
			cells = append(cells, m.renderMonthCell(appts, day, ref, today, colWidth, maxEntries))
			if d < 6 {
				cells = append(cells, " ")
			}
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) renderMonthCell(appts []agenda.Appointment, day, ref, today time.Time, width, maxEntries int) string {
	numStyle := m.styles.Normal
	switch {
	case day.Month() != ref.Month():
		numStyle = m.styles.Dim
	case calendar.SameDay(day, today):
		numStyle = m.styles.Today
	case isWeekend(day):
		numStyle = m.styles.Weekend
	}

	lines := []string{numStyle.Render(pad(fmt.Sprintf("%2d", day.Day()), width))}

	dayAppts := calendar.ForDay(appts, day)
	shown := dayAppts
	more := 0
	if len(dayAppts) > maxEntries {
		shown = dayAppts[:maxEntries-1]
		more = len(dayAppts) - len(shown)
		if maxEntries == 1 {
			shown = nil
			more = len(dayAppts)
		}
	}
	for _, a := range shown {
		lines = append(lines, agendaStyle(a.AgendaColor).Render(pad(a.Title, width)))
	}
	if more > 0 {
		lines = append(lines, m.styles.Help.Render(pad(fmt.Sprintf("+%d more", more), width)))
	}
	for len(lines) < maxEntries+1 {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

// clipLines keeps at most n lines of s.
func clipLines(s string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}
