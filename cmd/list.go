package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwarden/agendas/internal/agenda"
	"github.com/cwarden/agendas/internal/calendar"
)

var listView string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the aggregated appointments and exit",
	Long: `List the visible appointments of the preset agendas for today, or for
the current week or month with --view, in a simple text format and exit.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listView, "view", "day", "Period to list: day, week or month")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	if cfg == nil {
		initConfig()
	}
	setupCLILogging()

	switch listView {
	case "day", "week", "month":
	default:
		return fmt.Errorf("unknown view %q (want day, week or month)", listView)
	}
	mode := agenda.ParseViewMode(listView)

	now := time.Now()
	store, err := newStore(now)
	if err != nil {
		return err
	}

	start, end := calendar.Range(now, mode, cfg.WeekStartDay)
	appts := calendar.InRange(store.Visible(), start, end)
	printAppointments(cmd.OutOrStdout(), start, end, mode, appts)
	return nil
}

func printAppointments(w io.Writer, start, end time.Time, mode agenda.ViewMode, appts []agenda.Appointment) {
	if mode == agenda.ViewDay {
		fmt.Fprintf(w, "Appointments for %s:\n", start.Format(cfg.DateFormat))
	} else {
		fmt.Fprintf(w, "Appointments for %s – %s:\n",
			start.Format(cfg.DateFormat), end.AddDate(0, 0, -1).Format(cfg.DateFormat))
	}
	if len(appts) == 0 {
		fmt.Fprintln(w, "No appointments found.")
		return
	}

	var lastDay time.Time
	for _, a := range appts {
		if mode != agenda.ViewDay && !calendar.SameDay(a.Start, lastDay) {
			fmt.Fprintf(w, "\n%s\n", a.Start.Format("Mon "+cfg.DateFormat))
			lastDay = a.Start
		}
		fmt.Fprintf(w, "  %s-%s  %s [%s]\n",
			a.Start.Format(cfg.TimeFormat), a.End.Format(cfg.TimeFormat), a.Title, a.AgendaName)
	}
}

