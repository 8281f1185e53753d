package agenda

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultPalette is the color cycle used when the config does not set one.
var DefaultPalette = []string{
	"#3B82F6", // blue
	"#10B981", // emerald
	"#F59E0B", // amber
	"#EF4444", // red
	"#8B5CF6", // violet
	"#EC4899", // pink
	"#14B8A6", // teal
	"#F97316", // orange
}

const (
	DefaultUserName      = "My Agenda"
	DefaultGoogleName    = "My Google Calendar"
	DefaultMicrosoftName = "My Microsoft Calendar"
	DefaultFriendName    = "Friend's Agenda"
)

// AppointmentSource produces the appointments attached to a newly added agenda.
type AppointmentSource interface {
	Appointments(isUser bool, ref time.Time) []Appointment
}

// AddRequest carries what the add-agenda form collected.
type AddRequest struct {
	Name   string
	Owner  OwnerType
	Source Source
	Link   string
}

// Store owns the agenda list. Every mutation replaces the affected
// element rather than editing it in place, so snapshots handed out
// earlier stay valid.
type Store struct {
	mu        sync.RWMutex
	agendas   []Agenda
	palette   []string
	nextColor int
	source    AppointmentSource
	refDate   time.Time
}

func NewStore(source AppointmentSource, palette []string) *Store {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	return &Store{
		palette: append([]string(nil), palette...),
		source:  source,
		refDate: time.Now(),
	}
}

// SetReferenceDate sets the date around which appointments for future
// agendas are generated.
func (s *Store) SetReferenceDate(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refDate = t
}

// Add creates an agenda from req and appends it. Missing or inconsistent
// fields are coerced to defaults; Add never fails.
func (s *Store) Add(req AddRequest) Agenda {
	s.mu.Lock()
	defer s.mu.Unlock()

	req = req.Normalize()

	a := Agenda{
		ID:          "agenda-" + uuid.New().String(),
		Name:        req.Name,
		Owner:       req.Owner,
		Source:      req.Source,
		Color:       s.palette[s.nextColor%len(s.palette)],
		Visible:     true,
		PrivateLink: req.Link,
	}
	s.nextColor++

	if s.source != nil {
		appts := s.source.Appointments(a.Owner == OwnerUser, s.refDate)
		a.Appointments = make([]Appointment, len(appts))
		for i, appt := range appts {
			appt.AgendaID = a.ID
			a.Appointments[i] = appt
		}
	}

	s.agendas = append(s.agendas, a)
	slog.Debug("agenda added", "id", a.ID, "name", a.Name, "owner", a.Owner, "source", a.Source, "appointments", len(a.Appointments))
	return a
}

// Toggle flips the visibility of the agenda with the given id.
// Unknown ids are ignored.
func (s *Store) Toggle(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Agenda, len(s.agendas))
	for i, a := range s.agendas {
		if a.ID == id {
			a.Visible = !a.Visible
			slog.Debug("agenda visibility toggled", "id", id, "visible", a.Visible)
		}
		next[i] = a
	}
	s.agendas = next
}

// Remove drops the agenda with the given id. Unknown ids are ignored.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Agenda, 0, len(s.agendas))
	for _, a := range s.agendas {
		if a.ID == id {
			slog.Debug("agenda removed", "id", id, "name", a.Name)
			continue
		}
		next = append(next, a)
	}
	s.agendas = next
}

// Visible returns the appointments of all visible agendas, in agenda
// order, each tagged with its agenda's id, name and color.
func (s *Store) Visible() []Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Appointment
	for _, a := range s.agendas {
		if !a.Visible {
			continue
		}
		for _, appt := range a.Appointments {
			appt.AgendaID = a.ID
			appt.AgendaName = a.Name
			appt.AgendaColor = a.Color
			out = append(out, appt)
		}
	}
	return out
}

// Agendas returns a snapshot of the agenda list.
func (s *Store) Agendas() []Agenda {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Agenda(nil), s.agendas...)
}

func (s *Store) Get(id string) (Agenda, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.agendas {
		if a.ID == id {
			return a, true
		}
	}
	return Agenda{}, false
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.agendas)
}

// HasName reports whether an agenda with the given name (case-insensitive) exists.
func (s *Store) HasName(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.agendas {
		if strings.EqualFold(a.Name, name) {
			return true
		}
	}
	return false
}

// HasPersonalAgenda reports whether any of the user's own calendars has been added.
func (s *Store) HasPersonalAgenda() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.agendas {
		if a.IsPersonal() {
			return true
		}
	}
	return false
}

// Normalize coerces the request the way Add does: a friend agenda always
// uses a friend link, user agendas never keep one, and blank names get a
// default based on owner and source.
func (r AddRequest) Normalize() AddRequest {
	r.Owner, r.Source = normalizeKind(r.Owner, r.Source)
	r.Name = defaultName(strings.TrimSpace(r.Name), r.Owner, r.Source)
	if r.Owner == OwnerFriend {
		r.Link = strings.TrimSpace(r.Link)
	} else {
		r.Link = ""
	}
	return r
}

func normalizeKind(owner OwnerType, source Source) (OwnerType, Source) {
	if owner != OwnerFriend {
		owner = OwnerUser
	}
	if owner == OwnerFriend {
		return owner, SourceFriendLink
	}
	switch source {
	case SourceGoogle, SourceMicrosoft, SourceManual:
		return owner, source
	default:
		return owner, SourceManual
	}
}

func defaultName(name string, owner OwnerType, source Source) string {
	if name != "" {
		return name
	}
	if owner == OwnerFriend {
		return DefaultFriendName
	}
	switch source {
	case SourceGoogle:
		return DefaultGoogleName
	case SourceMicrosoft:
		return DefaultMicrosoftName
	default:
		return DefaultUserName
	}
}
