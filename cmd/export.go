package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwarden/agendas/internal/export"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the aggregated agenda as iCalendar",
	Long: `Export the visible appointments of the preset agendas as an iCalendar
(.ics) file. Writes to stdout unless --out is given.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default: stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if cfg == nil {
		initConfig()
	}
	setupCLILogging()

	now := time.Now()
	store, err := newStore(now)
	if err != nil {
		return err
	}
	appts := store.Visible()

	if exportOut == "" {
		return export.WriteICS(cmd.OutOrStdout(), appts, now)
	}

	if err := export.WriteFile(exportOut, appts, now); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	slog.Info("exported appointments", "path", exportOut, "count", len(appts))
	return nil
}
