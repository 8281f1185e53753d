package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/cwarden/agendas/internal/agenda"
	"github.com/cwarden/agendas/internal/config"
	"github.com/cwarden/agendas/internal/mock"
	"github.com/cwarden/agendas/internal/ui"
)

var (
	cfgFile    string
	presetFile string
	seed       int64
	verbose    bool
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "agendas",
	Short: "Aggregate your agendas and your friends' into one calendar",
	Long: `Agendas is a terminal agenda aggregator. Add your own calendars and
your friends' shared agendas, toggle them on and off, and browse the combined
schedule by day, week or month.`,
	RunE: runTUI,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default: search the usual locations)")
	rootCmd.PersistentFlags().StringVarP(&presetFile, "presets", "p", "", "Preset agenda file (YAML)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "Seed for generated appointments (0 uses the clock)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
}

func initConfig() {
	// A missing .env is fine; it only supplies AGENDAS_CONFIG and friends.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: .env: %v\n", err)
	}

	var err error
	if cfgFile != "" {
		cfg, err = config.LoadConfigFrom(cfgFile)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if presetFile != "" {
		cfg.PresetFile = presetFile
	}
	if seed != 0 {
		cfg.Seed = seed
	}
}

func logLevel() slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// setupCLILogging sends logs to stderr for the non-interactive commands.
func setupCLILogging() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel()})))
}

// setupTUILogging sends logs to the configured log file, or nowhere. The
// terminal belongs to the TUI.
func setupTUILogging() (io.Closer, error) {
	if cfg.LogFile == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return nil, nil
	}
	f, err := tea.LogToFile(cfg.LogFile, "agendas")
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: logLevel()})))
	return f, nil
}

// newStore builds an empty store backed by the mock generator and fills it
// from the preset file.
func newStore(ref time.Time) (*agenda.Store, error) {
	gen := mock.NewGenerator(cfg.Seed, cfg.WeekStartDay)
	store := agenda.NewStore(gen, cfg.Palette)
	store.SetReferenceDate(ref)

	presets, err := config.LoadPresets(cfg.PresetFile)
	if err != nil {
		return nil, err
	}
	added := config.ApplyPresets(store, presets)
	slog.Debug("presets loaded", "path", cfg.PresetFile, "agendas", len(added))
	return store, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	closer, err := setupTUILogging()
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	store, err := newStore(time.Now())
	if err != nil {
		return err
	}

	model := ui.NewModel(cfg, store)
	p := tea.NewProgram(model, tea.WithAltScreen())

	// Reload presets when the file is edited while running.
	watcher, err := config.NewFileWatcher(func(path string) {
		p.Send(ui.PresetsChangedMsg{Path: path})
	})
	if err != nil {
		slog.Warn("preset watcher unavailable", "error", err)
	} else {
		defer watcher.Close()
		if cfg.PresetFile == "" {
			slog.Debug("no preset file configured")
		} else if err := watcher.AddFile(cfg.PresetFile); err != nil {
			slog.Warn("cannot watch preset file", "path", cfg.PresetFile, "error", err)
		}
	}

	slog.Info("starting", "agendas", store.Len(), "view", cfg.StartupView)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	return nil
}
