package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwarden/agendas/internal/agenda"
)

const (
	fieldName = iota
	fieldSecond // source for user agendas, private link for friends
	fieldCount
)

// addForm collects the name, source and link of a new agenda.
type addForm struct {
	owner     agenda.OwnerType
	name      textinput.Model
	link      textinput.Model
	sourceIdx int
	focus     int
}

func newAddForm(owner agenda.OwnerType) *addForm {
	name := textinput.New()
	name.CharLimit = 80
	name.Width = 36
	if owner == agenda.OwnerFriend {
		name.Placeholder = "Friend's name"
	} else {
		name.Placeholder = agenda.DefaultUserName
	}

	link := textinput.New()
	link.CharLimit = 500
	link.Width = 36
	link.Placeholder = "https://…"

	f := &addForm{
		owner:     owner,
		name:      name,
		link:      link,
		sourceIdx: len(agenda.UserSources) - 1, // manual
	}
	return f
}

func (f *addForm) title() string {
	if f.owner == agenda.OwnerFriend {
		return "Add Friend's Agenda"
	}
	return "Add Your Agenda"
}

func (f *addForm) source() agenda.Source {
	if f.owner == agenda.OwnerFriend {
		return agenda.SourceFriendLink
	}
	return agenda.UserSources[f.sourceIdx]
}

func (f *addForm) focusCmd() tea.Cmd {
	f.name.Blur()
	f.link.Blur()
	switch {
	case f.focus == fieldName:
		return f.name.Focus()
	case f.owner == agenda.OwnerFriend:
		return f.link.Focus()
	}
	return nil
}

func (f *addForm) request() agenda.AddRequest {
	req := agenda.AddRequest{
		Name:   f.name.Value(),
		Owner:  f.owner,
		Source: f.source(),
	}
	if f.owner == agenda.OwnerFriend {
		req.Link = f.link.Value()
	}
	return req
}

// update handles a key press. done is true once the form is submitted
// (req non-nil) or cancelled (req nil).
func (f *addForm) update(msg tea.KeyMsg) (req *agenda.AddRequest, done bool, cmd tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return nil, true, nil

	case tea.KeyEnter:
		r := f.request()
		return &r, true, nil

	case tea.KeyTab, tea.KeyDown:
		f.focus = (f.focus + 1) % fieldCount
		return nil, false, f.focusCmd()

	case tea.KeyShiftTab, tea.KeyUp:
		f.focus = (f.focus + fieldCount - 1) % fieldCount
		return nil, false, f.focusCmd()
	}

	if f.focus == fieldSecond && f.owner != agenda.OwnerFriend {
		switch msg.String() {
		case "left", "h":
			f.sourceIdx = (f.sourceIdx + len(agenda.UserSources) - 1) % len(agenda.UserSources)
		case "right", "l", " ":
			f.sourceIdx = (f.sourceIdx + 1) % len(agenda.UserSources)
		}
		return nil, false, nil
	}

	return nil, false, f.updateInputs(msg)
}

func (f *addForm) updateInputs(msg tea.Msg) tea.Cmd {
	var nameCmd, linkCmd tea.Cmd
	f.name, nameCmd = f.name.Update(msg)
	f.link, linkCmd = f.link.Update(msg)
	return tea.Batch(nameCmd, linkCmd)
}
