package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwarden/agendas/internal/agenda"
	"github.com/cwarden/agendas/internal/config"
	"github.com/cwarden/agendas/internal/mock"
)

// Monday, the week the generator fills.
var testNow = time.Date(2025, 8, 25, 8, 0, 0, 0, time.Local)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.ExportFile = filepath.Join(t.TempDir(), "export.ics")
	cfg.PresetFile = ""

	store := agenda.NewStore(mock.NewGenerator(1, cfg.WeekStartDay), cfg.Palette)
	m := NewModel(cfg, store)
	m.now = func() time.Time { return testNow }
	m.currentDate = testNow
	m.width = 140
	m.height = 40
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

var space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

func press(m *Model, msgs ...tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func TestAddUserAgendaDefaultName(t *testing.T) {
	m := newTestModel(t)

	press(m, runes("a"))
	if m.form == nil {
		t.Fatal("a should open the add form")
	}
	if m.form.title() != "Add Your Agenda" {
		t.Errorf("Form title = %q", m.form.title())
	}

	press(m, key(tea.KeyEnter))
	if m.form != nil {
		t.Error("Submitting should close the form")
	}

	agendas := m.store.Agendas()
	if len(agendas) != 1 {
		t.Fatalf("Got %d agendas, want 1", len(agendas))
	}
	if agendas[0].Name != "My Agenda" {
		t.Errorf("Name = %q, want My Agenda", agendas[0].Name)
	}
	if agendas[0].Source != agenda.SourceManual {
		t.Errorf("Source = %s, want manual", agendas[0].Source)
	}
	if len(agendas[0].Appointments) == 0 {
		t.Error("New agenda should come with generated appointments")
	}
	if m.message == "" {
		t.Error("Adding should show a status message")
	}
}

func TestAddFriendAgendaWithLink(t *testing.T) {
	m := newTestModel(t)

	press(m, runes("f"))
	if m.form.title() != "Add Friend's Agenda" {
		t.Errorf("Form title = %q", m.form.title())
	}

	press(m,
		runes("Alex"),
		key(tea.KeyTab),
		runes("https://example.com/alex"),
		key(tea.KeyEnter),
	)

	agendas := m.store.Agendas()
	if len(agendas) != 1 {
		t.Fatalf("Got %d agendas, want 1", len(agendas))
	}
	a := agendas[0]
	if a.Name != "Alex" || a.Owner != agenda.OwnerFriend || a.Source != agenda.SourceFriendLink {
		t.Errorf("Wrong agenda: %+v", a)
	}
	if a.PrivateLink != "https://example.com/alex" {
		t.Errorf("PrivateLink = %q", a.PrivateLink)
	}
}

func TestFormTypingDoesNotTriggerActions(t *testing.T) {
	m := newTestModel(t)

	press(m, runes("a"), runes("q"), runes("d"), runes("x"))
	if m.form == nil {
		t.Fatal("Form should still be open while typing")
	}
	if got := m.form.name.Value(); got != "qdx" {
		t.Errorf("Name input = %q, want qdx", got)
	}
}

func TestFormSourceCycling(t *testing.T) {
	m := newTestModel(t)

	press(m, runes("a"), key(tea.KeyTab), key(tea.KeyLeft))
	if got := m.form.source(); got != agenda.SourceMicrosoft {
		t.Fatalf("Source = %s, want microsoft", got)
	}
	press(m, key(tea.KeyRight), key(tea.KeyRight))
	if got := m.form.source(); got != agenda.SourceGoogle {
		t.Fatalf("Source = %s, want google after wrapping", got)
	}

	press(m, key(tea.KeyEnter))
	a := m.store.Agendas()[0]
	if a.Name != "My Google Calendar" || a.Source != agenda.SourceGoogle {
		t.Errorf("Wrong agenda: %s/%s", a.Name, a.Source)
	}
}

func TestFormEscapeCancels(t *testing.T) {
	m := newTestModel(t)

	press(m, runes("a"), runes("Work"), key(tea.KeyEsc))
	if m.form != nil {
		t.Error("Esc should close the form")
	}
	if m.store.Len() != 0 {
		t.Errorf("Cancelled form added %d agendas", m.store.Len())
	}
}

func TestToggleVisibility(t *testing.T) {
	m := newTestModel(t)
	press(m, runes("a"), key(tea.KeyEnter))
	total := len(m.store.Visible())
	if total == 0 {
		t.Fatal("Expected visible appointments")
	}

	press(m, space)
	if len(m.store.Visible()) != 0 {
		t.Error("Hidden agenda should contribute no appointments")
	}
	if a := m.store.Agendas()[0]; a.Visible {
		t.Error("Agenda should be hidden")
	}

	press(m, space)
	if len(m.store.Visible()) != total {
		t.Errorf("Toggling twice should restore %d appointments, got %d", total, len(m.store.Visible()))
	}
}

func TestRemoveWithConfirmation(t *testing.T) {
	m := newTestModel(t)
	press(m, runes("a"), key(tea.KeyEnter))
	press(m, runes("f"), runes("Alex"), key(tea.KeyEnter))

	if m.cursor != 1 {
		t.Fatalf("Cursor = %d, want 1 (newest agenda)", m.cursor)
	}

	press(m, runes("d"))
	if m.confirmRemove == "" {
		t.Fatal("d should ask for confirmation")
	}
	press(m, runes("n"))
	if m.store.Len() != 2 {
		t.Fatalf("Declined removal changed the store: %d agendas", m.store.Len())
	}

	press(m, runes("d"), runes("y"))
	if m.store.Len() != 1 {
		t.Fatalf("Got %d agendas after removal, want 1", m.store.Len())
	}
	if m.store.Agendas()[0].Name != "My Agenda" {
		t.Error("Wrong agenda removed")
	}
	if m.cursor != 0 {
		t.Errorf("Cursor = %d, want 0 after removing the last row", m.cursor)
	}
}

func TestRemoveWithoutConfirmation(t *testing.T) {
	m := newTestModel(t)
	m.config.ConfirmDelete = false
	press(m, runes("a"), key(tea.KeyEnter))

	press(m, runes("d"))
	if m.store.Len() != 0 {
		t.Errorf("Got %d agendas, want 0", m.store.Len())
	}

	// Nothing selected: a no-op.
	press(m, runes("d"), runes("k"), runes("j"))
	if m.cursor != 0 {
		t.Errorf("Cursor = %d, want 0", m.cursor)
	}
}

func TestNavigation(t *testing.T) {
	m := newTestModel(t)

	tests := []struct {
		name     string
		keys     []tea.Msg
		mode     agenda.ViewMode
		expected time.Time
	}{
		{
			name:     "next week",
			keys:     []tea.Msg{runes("l")},
			mode:     agenda.ViewWeek,
			expected: testNow.AddDate(0, 0, 7),
		},
		{
			name:     "previous day",
			keys:     []tea.Msg{runes("1"), runes("h")},
			mode:     agenda.ViewDay,
			expected: testNow.AddDate(0, 0, -1),
		},
		{
			name:     "next month",
			keys:     []tea.Msg{runes("3"), key(tea.KeyRight)},
			mode:     agenda.ViewMonth,
			expected: testNow.AddDate(0, 1, 0),
		},
		{
			name:     "back to today",
			keys:     []tea.Msg{runes("2"), runes("l"), runes("l"), runes("t")},
			mode:     agenda.ViewWeek,
			expected: testNow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.currentDate = testNow
			m.mode = agenda.ViewWeek
			press(m, tt.keys...)

			if m.mode != tt.mode {
				t.Errorf("mode = %s, want %s", m.mode, tt.mode)
			}
			if !m.currentDate.Equal(tt.expected) {
				t.Errorf("currentDate = %v, want %v", m.currentDate, tt.expected)
			}
		})
	}
}

func TestDisplayDateWeekStart(t *testing.T) {
	m := newTestModel(t)
	m.currentDate = time.Date(2025, 8, 28, 15, 0, 0, 0, time.Local)

	m.mode = agenda.ViewWeek
	if got := m.displayDate(); !got.Equal(time.Date(2025, 8, 25, 0, 0, 0, 0, time.Local)) {
		t.Errorf("week display date = %v", got)
	}
	m.mode = agenda.ViewDay
	if got := m.displayDate(); !got.Equal(m.currentDate) {
		t.Errorf("day display date = %v", got)
	}
}

func TestViewEmptyState(t *testing.T) {
	m := newTestModel(t)

	view := m.View()
	for _, want := range []string{"Your agenda space is empty", "No agendas added yet.", "Agendas"} {
		if !strings.Contains(view, want) {
			t.Errorf("Empty view missing %q", want)
		}
	}
}

func TestViewLoading(t *testing.T) {
	m := newTestModel(t)
	m.width = 0
	if m.View() != "Loading..." {
		t.Error("View before the first resize should be the loading placeholder")
	}
}

func TestViewModes(t *testing.T) {
	m := newTestModel(t)
	press(m, runes("a"), key(tea.KeyEnter))

	m.mode = agenda.ViewDay
	view := m.View()
	for _, want := range []string{"Aggregated Agenda", "My Agenda", "Daily standup", "Monday, Aug 25, 2025"} {
		if !strings.Contains(view, want) {
			t.Errorf("Day view missing %q", want)
		}
	}

	m.mode = agenda.ViewWeek
	view = m.View()
	for _, want := range []string{"Mon 25", "Sun 31", "Aug 25 – Aug 31, 2025"} {
		if !strings.Contains(view, want) {
			t.Errorf("Week view missing %q", want)
		}
	}

	m.mode = agenda.ViewMonth
	view = m.View()
	if !strings.Contains(view, "August 2025") {
		t.Error("Month view missing the month label")
	}

	press(m, space)
	m.mode = agenda.ViewDay
	if strings.Contains(m.View(), "Daily standup") {
		t.Error("Hidden agenda appointments should not be rendered")
	}
}

func TestViewModalAndHelp(t *testing.T) {
	m := newTestModel(t)

	press(m, runes("f"))
	if view := m.View(); !strings.Contains(view, "Add Friend's Agenda") || !strings.Contains(view, "Private link") {
		t.Error("Modal view should show the friend form")
	}
	press(m, key(tea.KeyEsc))

	press(m, runes("?"))
	if !strings.Contains(m.View(), "Agenda Aggregator Help") {
		t.Error("? should show help")
	}
	press(m, runes("j"))
	if m.helpVisible {
		t.Error("Any key should close help")
	}
}

func TestExportVisible(t *testing.T) {
	m := newTestModel(t)
	press(m, runes("a"), key(tea.KeyEnter))
	press(m, runes("x"))

	data, err := os.ReadFile(m.config.ExportFile)
	if err != nil {
		t.Fatalf("Export file not written: %v", err)
	}
	if !strings.Contains(string(data), "SUMMARY:Daily standup") {
		t.Error("Export should contain the visible appointments")
	}
	if !strings.Contains(m.message, "Exported") {
		t.Errorf("Message = %q", m.message)
	}
}

func TestPresetsChanged(t *testing.T) {
	m := newTestModel(t)
	path := filepath.Join(t.TempDir(), "presets.yaml")
	content := "agendas:\n  - name: Work\n    source: google\n  - name: Sam\n    owner: friend\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	press(m, PresetsChangedMsg{Path: path})
	if m.store.Len() != 2 {
		t.Fatalf("Got %d agendas, want 2", m.store.Len())
	}

	press(m, PresetsChangedMsg{Path: path})
	if m.store.Len() != 2 {
		t.Errorf("Reloading unchanged presets should not duplicate agendas, got %d", m.store.Len())
	}
}

func TestMessageTimeout(t *testing.T) {
	m := newTestModel(t)
	m.showMessage("first")
	stale := m.messageSeq
	m.showMessage("second")

	press(m, messageTimeoutMsg{seq: stale})
	if m.message != "second" {
		t.Errorf("Stale timeout cleared the message: %q", m.message)
	}

	press(m, messageTimeoutMsg{seq: m.messageSeq})
	if m.message != "" {
		t.Errorf("Message = %q, want cleared", m.message)
	}
}

func TestExportWithEverythingHidden(t *testing.T) {
	m := newTestModel(t)
	press(m, runes("a"), key(tea.KeyEnter), space)
	if len(m.store.Visible()) != 0 {
		t.Fatal("Agenda should be hidden")
	}

	press(m, runes("x"))

	data, err := os.ReadFile(m.config.ExportFile)
	if err != nil {
		t.Fatalf("Export file not written: %v", err)
	}
	if !strings.Contains(string(data), "BEGIN:VCALENDAR") || strings.Contains(string(data), "VEVENT") {
		t.Errorf("Expected an empty calendar, got:\n%s", data)
	}
	if !strings.HasPrefix(m.message, "Exported 0 appointments") {
		t.Errorf("Message = %q", m.message)
	}
}

func TestExportWithNoAgendas(t *testing.T) {
	m := newTestModel(t)
	press(m, runes("x"))

	if _, err := os.Stat(m.config.ExportFile); err != nil {
		t.Errorf("Export file not written: %v", err)
	}
	if strings.HasPrefix(m.message, "Export failed") {
		t.Errorf("Message = %q", m.message)
	}
}
