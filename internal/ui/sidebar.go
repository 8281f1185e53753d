package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cwarden/agendas/internal/agenda"
)

// renderSidebar renders the agenda list with its add hints and footer.
func (m *Model) renderSidebar(height int) string {
	// Border and padding take three columns.
	inner := m.config.SidebarWidth - 3

	var lines []string
	lines = append(lines, m.styles.Title.Render("Agendas"), "")
	lines = append(lines,
		m.styles.Normal.Render(fit("[a] Add My Agenda", inner)),
		m.styles.Normal.Render(fit("[f] Add Friend's Agenda", inner)),
		"",
	)

	agendas := m.store.Agendas()
	if len(agendas) == 0 {
		lines = append(lines, m.styles.Dim.Render(fit("No agendas added yet.", inner)))
	} else if !m.store.HasPersonalAgenda() {
		lines = append(lines, m.styles.Dim.Render(fit("Tip: add your own agenda", inner)), "")
	}

	for i, a := range agendas {
		lines = append(lines, m.renderAgendaItem(a, i == m.cursor, inner))
	}

	footer := m.styles.Help.Render(fit("Agenda Aggregator v1.0", inner))

	// Keep the footer pinned to the bottom.
	for len(lines) < height-1 {
		lines = append(lines, "")
	}
	if len(lines) > height-1 && height > 1 {
		lines = lines[:height-1]
	}
	lines = append(lines, footer)

	return m.styles.Sidebar.
		Width(m.config.SidebarWidth - 1).
		Render(strings.Join(lines, "\n"))
}

// renderAgendaItem renders one agenda row: cursor, color swatch, source
// icon, name and a visibility marker.
func (m *Model) renderAgendaItem(a agenda.Agenda, selected bool, width int) string {
	cursor := "  "
	if selected {
		cursor = "> "
	}

	visibility := "◉"
	if !a.Visible {
		visibility = "○"
	}

	if m.confirmRemove == a.ID {
		prompt := m.styles.Danger.Render(fit("Remove "+a.Name+"? y/n", width-2))
		return cursor + prompt
	}

	// cursor(2) + swatch(1) + space + icon(1) + space ... space + marker(1)
	nameWidth := width - 8
	name := pad(a.Name, nameWidth)

	nameStyle := m.styles.Normal
	if !a.Visible {
		nameStyle = m.styles.Dim
	}
	if selected {
		nameStyle = nameStyle.Bold(true)
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top,
		cursor,
		swatch(a.Color), " ",
		m.styles.Help.Render(a.Source.Icon(a.Owner)), " ",
		nameStyle.Render(name), " ",
		visibility,
	)
	return row
}
