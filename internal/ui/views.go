package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cwarden/agendas/internal/agenda"
)

func (m *Model) viewHelp() string {
	help := []string{
		m.styles.Header.Render("Agenda Aggregator Help"),
		"",
		m.styles.Normal.Render("Agendas:"),
		m.styles.Help.Render("  a       - Add my agenda"),
		m.styles.Help.Render("  f       - Add friend's agenda"),
		m.styles.Help.Render("  j/k     - Select agenda"),
		m.styles.Help.Render("  space   - Show/hide selected agenda"),
		m.styles.Help.Render("  d       - Remove selected agenda"),
		"",
		m.styles.Normal.Render("Calendar:"),
		m.styles.Help.Render("  h/←     - Previous day/week/month"),
		m.styles.Help.Render("  l/→     - Next day/week/month"),
		m.styles.Help.Render("  t       - Today"),
		m.styles.Help.Render("  1/2/3   - Day, week or month view"),
		"",
		m.styles.Normal.Render("Other:"),
		m.styles.Help.Render("  x       - Export visible appointments (.ics)"),
		m.styles.Help.Render("  ?       - Toggle help"),
		m.styles.Help.Render("  q       - Quit"),
		"",
		m.styles.Help.Render("Press any key to return..."),
	}

	return lipgloss.JoinVertical(lipgloss.Left, help...)
}

// viewModal renders the add-agenda form inside a bordered box.
func (m *Model) viewModal() string {
	f := m.form
	var sections []string

	sections = append(sections, m.styles.Title.Render(f.title()), "")

	sections = append(sections, m.fieldLabel("Name", f.focus == fieldName))
	sections = append(sections, f.name.View(), "")

	if f.owner == agenda.OwnerFriend {
		sections = append(sections, m.fieldLabel("Private link", f.focus == fieldSecond))
		sections = append(sections, f.link.View(), "")
	} else {
		sections = append(sections, m.fieldLabel("Source", f.focus == fieldSecond))
		var options []string
		for i, src := range agenda.UserSources {
			label := " " + src.Icon(agenda.OwnerUser) + " " + src.Label() + " "
			if i == f.sourceIdx {
				options = append(options, m.styles.Selected.Render(label))
			} else {
				options = append(options, m.styles.Help.Render(label))
			}
		}
		sections = append(sections, strings.Join(options, " "))
		if f.name.Value() == "" {
			name := agenda.AddRequest{Owner: f.owner, Source: f.source()}.Normalize().Name
			sections = append(sections, m.styles.Dim.Render(fmt.Sprintf("Will be named %q", name)))
		}
		sections = append(sections, "")
	}

	sections = append(sections, m.styles.Help.Render("Tab to switch fields · Enter to add · Esc to cancel"))

	return m.styles.Modal.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) fieldLabel(label string, focused bool) string {
	if focused {
		return m.styles.Today.Render("› " + label)
	}
	return m.styles.Normal.Render("  " + label)
}

// renderEmptyState is shown instead of the calendar until an agenda exists.
func (m *Model) renderEmptyState(width, height int) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		m.styles.Title.Render("Your agenda space is empty"),
		"",
		m.styles.Normal.Render("Start by adding your own agenda or linking a friend's agenda."),
		"",
		m.styles.Selected.Render(" a  Add My Agenda ")+"   "+m.styles.Selected.Render(" f  Add Friend's Agenda "),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderStatusBar() string {
	left := fmt.Sprintf(" %s | %s | Agendas: %d | Appointments: %d",
		m.currentDate.Format(m.config.DateFormat),
		m.mode,
		m.store.Len(),
		len(m.store.Visible()))

	right := "? for help | q to quit"

	if m.message != "" {
		right = m.styles.Message.Render(m.message)
	}

	width := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if width < 0 {
		width = 0
	}

	middle := strings.Repeat(" ", width)

	return m.styles.Help.Render(left + middle + right)
}
