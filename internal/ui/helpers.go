package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/cwarden/agendas/internal/agenda"
)

const ellipsis = "…"

// agendaStyle colors text with an agenda's palette color.
func agendaStyle(color string) lipgloss.Style {
	if color == "" {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// swatch is the colored dot shown next to an agenda or appointment.
func swatch(color string) string {
	return agendaStyle(color).Render("●")
}

// fit truncates s to width cells, ending with an ellipsis when cut.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	return truncate.StringWithTail(s, uint(width), ellipsis)
}

// pad right-pads s with spaces to exactly width cells.
func pad(s string, width int) string {
	s = fit(s, width)
	if gap := width - lipgloss.Width(s); gap > 0 {
		s += strings.Repeat(" ", gap)
	}
	return s
}

func formatTimeRange(appt agenda.Appointment, layout string) string {
	return fmt.Sprintf("%s–%s", appt.Start.Format(layout), appt.End.Format(layout))
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// periodLabel names the span shown for mode starting at date.
func periodLabel(date time.Time, mode agenda.ViewMode) string {
	switch mode {
	case agenda.ViewDay:
		return date.Format("Monday, Jan 2, 2006")
	case agenda.ViewMonth:
		return date.Format("January 2006")
	default:
		end := date.AddDate(0, 0, 6)
		if date.Year() != end.Year() {
			return fmt.Sprintf("%s – %s", date.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"))
		}
		return fmt.Sprintf("%s – %s", date.Format("Jan 2"), end.Format("Jan 2, 2006"))
	}
}

func isWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}
