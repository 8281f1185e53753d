package agenda

import (
	"strings"
	"time"
)

type OwnerType string

const (
	OwnerUser   OwnerType = "user"
	OwnerFriend OwnerType = "friend"
)

type Source string

const (
	SourceGoogle     Source = "google"
	SourceMicrosoft  Source = "microsoft"
	SourceManual     Source = "manual"
	SourceFriendLink Source = "friend_link"
)

// UserSources are the sources offered when adding one of the user's own agendas.
var UserSources = []Source{SourceGoogle, SourceMicrosoft, SourceManual}

type ViewMode string

const (
	ViewDay   ViewMode = "day"
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

// ParseViewMode maps a config or flag value to a ViewMode, defaulting to week.
func ParseViewMode(s string) ViewMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day", "d":
		return ViewDay
	case "month", "m":
		return ViewMonth
	default:
		return ViewWeek
	}
}

func ParseOwnerType(s string) OwnerType {
	if strings.ToLower(strings.TrimSpace(s)) == string(OwnerFriend) {
		return OwnerFriend
	}
	return OwnerUser
}

func ParseSource(s string) Source {
	switch Source(strings.ToLower(strings.TrimSpace(s))) {
	case SourceGoogle:
		return SourceGoogle
	case SourceMicrosoft:
		return SourceMicrosoft
	case SourceFriendLink:
		return SourceFriendLink
	default:
		return SourceManual
	}
}

// Label is the human readable name of a source.
func (s Source) Label() string {
	switch s {
	case SourceGoogle:
		return "Google"
	case SourceMicrosoft:
		return "Microsoft"
	case SourceFriendLink:
		return "Friend link"
	default:
		return "Manual"
	}
}

// Icon returns the glyph shown next to an agenda in the sidebar.
func (s Source) Icon(owner OwnerType) string {
	if owner == OwnerFriend {
		return "&"
	}
	switch s {
	case SourceGoogle:
		return "G"
	case SourceMicrosoft:
		return "M"
	default:
		return "@"
	}
}

type Appointment struct {
	ID          string
	Title       string
	Start       time.Time
	End         time.Time
	Description string
	AgendaID    string

	// Only set on copies returned by Store.Visible.
	AgendaName  string
	AgendaColor string
}

// Duration of the appointment. Inverted intervals yield zero.
func (a Appointment) Duration() time.Duration {
	if a.End.Before(a.Start) {
		return 0
	}
	return a.End.Sub(a.Start)
}

type Agenda struct {
	ID           string
	Name         string
	Owner        OwnerType
	Source       Source
	Color        string
	Visible      bool
	Appointments []Appointment
	PrivateLink  string // friend agendas only
}

// IsPersonal reports whether the agenda is one of the user's own calendars.
func (a Agenda) IsPersonal() bool {
	if a.Owner != OwnerUser {
		return false
	}
	switch a.Source {
	case SourceManual, SourceGoogle, SourceMicrosoft:
		return true
	}
	return false
}
