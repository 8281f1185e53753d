package ui

import (
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cwarden/agendas/internal/agenda"
	"github.com/cwarden/agendas/internal/calendar"
	"github.com/cwarden/agendas/internal/config"
	"github.com/cwarden/agendas/internal/export"
)

const messageTimeout = 3 * time.Second

type Model struct {
	// Core components
	config *config.Config
	store  *agenda.Store
	now    func() time.Time

	// View state
	mode        agenda.ViewMode
	currentDate time.Time

	// Sidebar state
	cursor        int
	confirmRemove string // id of the agenda awaiting y/n

	// Overlays
	form        *addForm
	helpVisible bool

	// UI state
	width      int
	height     int
	message    string
	messageSeq int

	styles Styles
}

type Styles struct {
	Normal   lipgloss.Style
	Selected lipgloss.Style
	Today    lipgloss.Style
	Weekend  lipgloss.Style
	Header   lipgloss.Style
	Title    lipgloss.Style
	Dim      lipgloss.Style
	Help     lipgloss.Style
	Message  lipgloss.Style
	Danger   lipgloss.Style
	Sidebar  lipgloss.Style
	Modal    lipgloss.Style
	Border   lipgloss.Style
}

func NewModel(cfg *config.Config, store *agenda.Store) *Model {
	now := time.Now()

	return &Model{
		config:      cfg,
		store:       store,
		now:         time.Now,
		mode:        cfg.StartupView,
		currentDate: now,
		styles:      DefaultStyles(cfg.Colors),
	}
}

// DefaultStyles builds the styles from the config color table. Values
// are anything lipgloss.Color accepts: ANSI numbers or hex strings.
func DefaultStyles(colors map[string]string) Styles {
	color := func(name, fallback string) lipgloss.Color {
		if c, ok := colors[name]; ok && c != "" {
			return lipgloss.Color(c)
		}
		return lipgloss.Color(fallback)
	}

	return Styles{
		Normal: lipgloss.NewStyle().
			Foreground(color("normal", "252")),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("235")).
			Background(color("selected", "220")).
			Bold(true),
		Today: lipgloss.NewStyle().
			Foreground(color("today", "220")).
			Bold(true),
		Weekend: lipgloss.NewStyle().
			Foreground(color("weekend", "39")),
		Header: lipgloss.NewStyle().
			Foreground(color("header", "220")).
			Bold(true).
			Underline(true),
		Title: lipgloss.NewStyle().
			Foreground(color("header", "220")).
			Bold(true),
		Dim: lipgloss.NewStyle().
			Foreground(color("help", "241")).
			Italic(true),
		Help: lipgloss.NewStyle().
			Foreground(color("help", "241")),
		Message: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Background(lipgloss.Color("235")).
			Padding(0, 1),
		Danger: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		Sidebar: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(color("sidebar", "236")).
			Padding(0, 1),
		Modal: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(color("header", "220")).
			Padding(1, 2),
		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")),
	}
}

// PresetsChangedMsg asks the model to re-read the preset file.
type PresetsChangedMsg struct {
	Path string
}

type messageTimeoutMsg struct {
	seq int
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case PresetsChangedMsg:
		return m, m.reloadPresets(msg.Path)

	case messageTimeoutMsg:
		if msg.seq == m.messageSeq {
			m.message = ""
		}
		return m, nil
	}

	// Forward everything else (cursor blink) to an open form.
	if m.form != nil {
		return m, m.form.updateInputs(msg)
	}
	return m, nil
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	bodyHeight := m.height - 1

	var body string
	switch {
	case m.helpVisible:
		body = lipgloss.NewStyle().Height(bodyHeight).Render(m.viewHelp())
	case m.form != nil:
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, m.viewModal())
	default:
		sidebar := m.renderSidebar(bodyHeight)
		mainWidth := m.width - lipgloss.Width(sidebar)
		var main string
		if m.store.Len() == 0 {
			main = m.renderEmptyState(mainWidth, bodyHeight)
		} else {
			main = m.renderCalendar(mainWidth, bodyHeight)
		}
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar())
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.form != nil {
		return m.handleFormKeys(msg)
	}

	if m.helpVisible {
		m.helpVisible = false
		return m, nil
	}

	if m.confirmRemove != "" {
		id := m.confirmRemove
		m.confirmRemove = ""
		if msg.String() == "y" || msg.String() == "Y" {
			return m, m.removeAgenda(id)
		}
		return m, m.showMessage("Remove cancelled")
	}

	switch m.config.Action(msg.String()) {
	case "quit":
		return m, tea.Quit

	case "help":
		m.helpVisible = true

	case "today":
		m.currentDate = m.now()

	case "prev":
		m.currentDate = calendar.Shift(m.currentDate, m.mode, -1)

	case "next":
		m.currentDate = calendar.Shift(m.currentDate, m.mode, 1)

	case "view_day":
		m.mode = agenda.ViewDay

	case "view_week":
		m.mode = agenda.ViewWeek

	case "view_month":
		m.mode = agenda.ViewMonth

	case "up":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down":
		if m.cursor < m.store.Len()-1 {
			m.cursor++
		}

	case "add_user":
		return m, m.openForm(agenda.OwnerUser)

	case "add_friend":
		return m, m.openForm(agenda.OwnerFriend)

	case "toggle":
		if a, ok := m.selectedAgenda(); ok {
			m.store.Toggle(a.ID)
			state := "hidden"
			if !a.Visible {
				state = "shown"
			}
			return m, m.showMessage(fmt.Sprintf("%s %s", a.Name, state))
		}

	case "remove":
		if a, ok := m.selectedAgenda(); ok {
			if m.config.ConfirmDelete {
				m.confirmRemove = a.ID
				return m, nil
			}
			return m, m.removeAgenda(a.ID)
		}

	case "export":
		return m, m.exportVisible()
	}

	return m, nil
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	req, done, cmd := m.form.update(msg)
	if !done {
		return m, cmd
	}

	m.form = nil
	if req == nil {
		return m, nil
	}
	return m, m.addAgenda(*req)
}

func (m *Model) openForm(owner agenda.OwnerType) tea.Cmd {
	m.form = newAddForm(owner)
	return m.form.focusCmd()
}

func (m *Model) addAgenda(req agenda.AddRequest) tea.Cmd {
	m.store.SetReferenceDate(m.currentDate)
	a := m.store.Add(req)
	m.cursor = m.store.Len() - 1
	slog.Info("agenda added", "name", a.Name, "owner", a.Owner, "source", a.Source)
	return m.showMessage(fmt.Sprintf("Added %s", a.Name))
}

func (m *Model) removeAgenda(id string) tea.Cmd {
	a, ok := m.store.Get(id)
	if !ok {
		return nil
	}
	m.store.Remove(id)
	if m.cursor >= m.store.Len() && m.cursor > 0 {
		m.cursor = m.store.Len() - 1
	}
	slog.Info("agenda removed", "name", a.Name)
	return m.showMessage(fmt.Sprintf("Removed %s", a.Name))
}

func (m *Model) exportVisible() tea.Cmd {
	appts := m.store.Visible()
	if err := export.WriteFile(m.config.ExportFile, appts, m.now()); err != nil {
		slog.Error("export failed", "path", m.config.ExportFile, "error", err)
		return m.showMessage(fmt.Sprintf("Export failed: %v", err))
	}
	slog.Info("exported appointments", "path", m.config.ExportFile, "count", len(appts))
	return m.showMessage(fmt.Sprintf("Exported %d appointments to %s", len(appts), m.config.ExportFile))
}

func (m *Model) reloadPresets(path string) tea.Cmd {
	presets, err := config.LoadPresets(path)
	if err != nil {
		slog.Error("preset reload failed", "path", path, "error", err)
		return m.showMessage(fmt.Sprintf("Presets: %v", err))
	}
	m.store.SetReferenceDate(m.currentDate)
	added := config.ApplyPresets(m.store, presets)
	if len(added) == 0 {
		return nil
	}
	slog.Info("presets applied", "path", path, "added", len(added))
	return m.showMessage(fmt.Sprintf("Added %d agendas from presets", len(added)))
}

func (m *Model) selectedAgenda() (agenda.Agenda, bool) {
	agendas := m.store.Agendas()
	if m.cursor < 0 || m.cursor >= len(agendas) {
		return agenda.Agenda{}, false
	}
	return agendas[m.cursor], true
}

func (m *Model) showMessage(msg string) tea.Cmd {
	m.message = msg
	m.messageSeq++
	seq := m.messageSeq
	return tea.Tick(messageTimeout, func(time.Time) tea.Msg {
		return messageTimeoutMsg{seq: seq}
	})
}

// displayDate is the date the calendar is anchored to for the current mode.
func (m *Model) displayDate() time.Time {
	return calendar.DisplayDate(m.currentDate, m.mode, m.config.WeekStartDay)
}
