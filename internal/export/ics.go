// Package export writes aggregated appointments as iCalendar data.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/cwarden/agendas/internal/agenda"
)

const (
	productID    = "-//agendas//Agenda Aggregator//EN"
	calendarName = "Aggregated Agenda"
)

// Calendar builds a VCALENDAR holding one VEVENT per appointment.
func Calendar(appts []agenda.Appointment, now time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	cal.Props.SetText(ical.PropName, calendarName)

	for _, appt := range appts {
		cal.Children = append(cal.Children, toEvent(appt, now))
	}
	return cal
}

func toEvent(appt agenda.Appointment, now time.Time) *ical.Component {
	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, appt.ID)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	ve.Props.SetText(ical.PropSummary, appt.Title)
	ve.Props.SetDateTime(ical.PropDateTimeStart, appt.Start.UTC())

	end := appt.End
	if end.Before(appt.Start) {
		end = appt.Start
	}
	ve.Props.SetDateTime(ical.PropDateTimeEnd, end.UTC())

	if appt.Description != "" {
		ve.Props.SetText(ical.PropDescription, appt.Description)
	}
	if appt.AgendaName != "" {
		ve.Props.SetText(ical.PropCategories, appt.AgendaName)
	}
	if name := cssColorName(appt.AgendaColor); name != "" {
		ve.Props.SetText(ical.PropColor, name)
	}
	return ve
}

// WriteICS encodes appts to w. An empty set still produces a valid,
// event-less VCALENDAR.
func WriteICS(w io.Writer, appts []agenda.Appointment, now time.Time) error {
	if len(appts) == 0 {
		return writeEmpty(w)
	}
	if err := ical.NewEncoder(w).Encode(Calendar(appts, now)); err != nil {
		return fmt.Errorf("failed to encode appointments to iCal format: %w", err)
	}
	return nil
}

// writeEmpty writes the calendar header and footer only. The ical
// encoder rejects a VCALENDAR without components.
func writeEmpty(w io.Writer) error {
	lines := []string{
		"BEGIN:" + ical.CompCalendar,
		ical.PropVersion + ":2.0",
		ical.PropProductID + ":" + productID,
		ical.PropName + ":" + calendarName,
		"END:" + ical.CompCalendar,
	}
	if _, err := io.WriteString(w, strings.Join(lines, "\r\n")+"\r\n"); err != nil {
		return fmt.Errorf("failed to write empty calendar: %w", err)
	}
	return nil
}

// WriteFile encodes appts into path, replacing it atomically.
func WriteFile(path string, appts []agenda.Appointment, now time.Time) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".agendas-export-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := WriteICS(tmp, appts, now); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
