package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cwarden/agendas/internal/agenda"
)

var (
	setRe   = regexp.MustCompile(`^set\s+(\w+)\s+(.+)$`)
	bindRe  = regexp.MustCompile(`^bind\s+(\S+)\s+(\S+)$`)
	colorRe = regexp.MustCompile(`^color\s+(\w+)\s+(.+)$`)
	hexRe   = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

type Config struct {
	// File settings
	PresetFile string
	ExportFile string
	LogFile    string

	// Display settings
	WeekStartDay   time.Weekday
	TimeFormat     string
	DateFormat     string
	SidebarWidth   int
	MonthCellLines int

	// UI settings
	Colors      map[string]string
	KeyBindings map[string]string
	StartupView agenda.ViewMode
	Palette     []string

	// Behavior settings
	ConfirmDelete bool
	Seed          int64
}

func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()

	return &Config{
		PresetFile: filepath.Join(home, ".config", "agendas", "presets.yaml"),
		ExportFile: filepath.Join(home, "agendas.ics"),

		WeekStartDay:   time.Monday,
		TimeFormat:     "15:04",
		DateFormat:     "Jan 2, 2006",
		SidebarWidth:   32,
		MonthCellLines: 3,

		Colors: map[string]string{
			"normal":   "252",
			"today":    "220",
			"selected": "220",
			"weekend":  "39",
			"header":   "220",
			"sidebar":  "236",
			"help":     "241",
		},

		KeyBindings: map[string]string{
			"q":     "quit",
			"?":     "help",
			"t":     "today",
			"h":     "prev",
			"left":  "prev",
			"l":     "next",
			"right": "next",
			"j":     "down",
			"down":  "down",
			"k":     "up",
			"up":    "up",
			"a":     "add_user",
			"f":     "add_friend",
			" ":     "toggle",
			"d":     "remove",
			"x":     "export",
			"1":     "view_day",
			"2":     "view_week",
			"3":     "view_month",
		},

		StartupView:   agenda.ViewWeek,
		Palette:       append([]string(nil), agenda.DefaultPalette...),
		ConfirmDelete: true,
	}
}

// Paths returns the config file locations searched by LoadConfig, in order.
func Paths() []string {
	paths := []string{os.Getenv("AGENDAS_CONFIG")}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "agendas", "agendasrc"))
	}
	if home := os.Getenv("HOME"); home != "" {
		paths = append(paths,
			filepath.Join(home, ".config", "agendas", "agendasrc"),
			filepath.Join(home, ".agendasrc"),
		)
	}
	return paths
}

func LoadConfig() (*Config, error) {
	config := DefaultConfig()

	for _, path := range Paths() {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); err == nil {
			if err := config.loadFromFile(path); err != nil {
				return nil, fmt.Errorf("error loading config from %s: %w", path, err)
			}
			break
		}
	}

	return config, nil
}

// LoadConfigFrom loads defaults overridden by the file at path, which must exist.
func LoadConfigFrom(path string) (*Config, error) {
	config := DefaultConfig()
	if err := config.loadFromFile(path); err != nil {
		return nil, fmt.Errorf("error loading config from %s: %w", path, err)
	}
	return config, nil
}

func (c *Config) loadFromFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if err := c.parseLine(line); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
	}

	return scanner.Err()
}

func (c *Config) parseLine(line string) error {
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	if matches := setRe.FindStringSubmatch(line); matches != nil {
		return c.setVariable(matches[1], matches[2])
	}

	// bind key action
	if matches := bindRe.FindStringSubmatch(line); matches != nil {
		key := matches[1]
		if key == "space" {
			key = " "
		}
		c.KeyBindings[key] = matches[2]
		return nil
	}

	// color element color_spec
	if matches := colorRe.FindStringSubmatch(line); matches != nil {
		c.Colors[matches[1]] = strings.Trim(matches[2], `"'`)
		return nil
	}

	return fmt.Errorf("unknown config line: %s", line)
}

func (c *Config) setVariable(name, value string) error {
	value = strings.Trim(value, `"'`)

	switch name {
	case "preset_file":
		c.PresetFile = expandHome(value)

	case "export_file":
		c.ExportFile = expandHome(value)

	case "log_file":
		c.LogFile = expandHome(value)

	case "week_start_day":
		switch strings.ToLower(value) {
		case "sunday", "sun", "0":
			c.WeekStartDay = time.Sunday
		case "monday", "mon", "1":
			c.WeekStartDay = time.Monday
		default:
			return fmt.Errorf("invalid week_start_day: %s", value)
		}

	case "time_format":
		c.TimeFormat = value

	case "date_format":
		c.DateFormat = value

	case "sidebar_width":
		width, err := strconv.Atoi(value)
		if err != nil || width < 16 {
			return fmt.Errorf("invalid sidebar_width: %s", value)
		}
		c.SidebarWidth = width

	case "month_cell_lines":
		lines, err := strconv.Atoi(value)
		if err != nil || lines < 1 {
			return fmt.Errorf("invalid month_cell_lines: %s", value)
		}
		c.MonthCellLines = lines

	case "startup_view":
		switch strings.ToLower(value) {
		case "day", "week", "month":
			c.StartupView = agenda.ParseViewMode(value)
		default:
			return fmt.Errorf("invalid startup_view: %s", value)
		}

	case "palette":
		var palette []string
		for _, color := range strings.Split(value, ",") {
			color = strings.TrimSpace(color)
			if !hexRe.MatchString(color) {
				return fmt.Errorf("invalid palette color: %s", color)
			}
			palette = append(palette, strings.ToUpper(color))
		}
		c.Palette = palette

	case "confirm_delete":
		c.ConfirmDelete = strings.ToLower(value) == "true" || value == "1"

	case "seed":
		seed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid seed: %s", value)
		}
		c.Seed = seed

	default:
		return fmt.Errorf("unknown config variable: %s", name)
	}

	return nil
}

// Action returns the action bound to key, or "" when the key is unbound.
func (c *Config) Action(key string) string {
	return c.KeyBindings[key]
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
