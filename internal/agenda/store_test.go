package agenda

import (
	"strings"
	"testing"
	"time"
)

type fixedSource struct {
	calls []bool
}

func (f *fixedSource) Appointments(isUser bool, ref time.Time) []Appointment {
	f.calls = append(f.calls, isUser)
	start := time.Date(ref.Year(), ref.Month(), ref.Day(), 10, 0, 0, 0, time.Local)
	return []Appointment{
		{ID: "a1", Title: "First", Start: start, End: start.Add(time.Hour)},
		{ID: "a2", Title: "Second", Start: start.Add(2 * time.Hour), End: start.Add(3 * time.Hour)},
	}
}

func TestAddDefaultNames(t *testing.T) {
	tests := []struct {
		name     string
		req      AddRequest
		wantName string
	}{
		{
			name:     "empty manual user agenda",
			req:      AddRequest{Owner: OwnerUser, Source: SourceManual},
			wantName: "My Agenda",
		},
		{
			name:     "whitespace manual user agenda",
			req:      AddRequest{Name: "   ", Owner: OwnerUser, Source: SourceManual},
			wantName: "My Agenda",
		},
		{
			name:     "empty google agenda",
			req:      AddRequest{Owner: OwnerUser, Source: SourceGoogle},
			wantName: "My Google Calendar",
		},
		{
			name:     "empty microsoft agenda",
			req:      AddRequest{Owner: OwnerUser, Source: SourceMicrosoft},
			wantName: "My Microsoft Calendar",
		},
		{
			name:     "empty friend agenda",
			req:      AddRequest{Owner: OwnerFriend},
			wantName: "Friend's Agenda",
		},
		{
			name:     "explicit name kept",
			req:      AddRequest{Name: "Work", Owner: OwnerUser, Source: SourceManual},
			wantName: "Work",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(nil, nil)
			a := s.Add(tt.req)
			if a.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", a.Name, tt.wantName)
			}
		})
	}
}

func TestAddCoercesKind(t *testing.T) {
	s := NewStore(nil, nil)

	friend := s.Add(AddRequest{Name: "Alex", Owner: OwnerFriend, Source: SourceGoogle, Link: " https://example.com/alex "})
	if friend.Source != SourceFriendLink {
		t.Errorf("friend source = %s, want %s", friend.Source, SourceFriendLink)
	}
	if friend.PrivateLink != "https://example.com/alex" {
		t.Errorf("friend link = %q", friend.PrivateLink)
	}

	user := s.Add(AddRequest{Name: "Mine", Owner: OwnerUser, Source: SourceFriendLink, Link: "https://example.com/me"})
	if user.Source != SourceManual {
		t.Errorf("user source = %s, want %s", user.Source, SourceManual)
	}
	if user.PrivateLink != "" {
		t.Errorf("user agenda should not carry a private link, got %q", user.PrivateLink)
	}

	unknown := s.Add(AddRequest{Owner: OwnerType("robot"), Source: Source("fax")})
	if unknown.Owner != OwnerUser || unknown.Source != SourceManual {
		t.Errorf("unknown kind = %s/%s, want user/manual", unknown.Owner, unknown.Source)
	}
}

func TestAddAttachesAppointments(t *testing.T) {
	src := &fixedSource{}
	s := NewStore(src, nil)
	s.SetReferenceDate(time.Date(2025, 8, 25, 0, 0, 0, 0, time.Local))

	a := s.Add(AddRequest{Owner: OwnerUser, Source: SourceManual})
	f := s.Add(AddRequest{Owner: OwnerFriend})

	if len(src.calls) != 2 || !src.calls[0] || src.calls[1] {
		t.Fatalf("generator calls = %v, want [true false]", src.calls)
	}
	if !strings.HasPrefix(a.ID, "agenda-") {
		t.Errorf("ID = %q, want agenda- prefix", a.ID)
	}
	if a.ID == f.ID {
		t.Error("agenda ids should be unique")
	}
	if !a.Visible {
		t.Error("new agenda should be visible")
	}
	for _, appt := range a.Appointments {
		if appt.AgendaID != a.ID {
			t.Errorf("appointment %s AgendaID = %q, want %q", appt.ID, appt.AgendaID, a.ID)
		}
	}
	if got := s.Agendas(); len(got) != 2 || got[0].ID != a.ID || got[1].ID != f.ID {
		t.Error("agendas should be appended in insertion order")
	}
}

func TestPaletteCycles(t *testing.T) {
	palette := []string{"#111111", "#222222", "#333333"}
	s := NewStore(nil, palette)

	for n := 0; n < 7; n++ {
		a := s.Add(AddRequest{Name: "A", Owner: OwnerUser, Source: SourceManual})
		if want := palette[n%len(palette)]; a.Color != want {
			t.Errorf("agenda %d color = %s, want %s", n, a.Color, want)
		}
	}
}

func TestPaletteDoesNotRewindOnRemove(t *testing.T) {
	palette := []string{"#111111", "#222222", "#333333"}
	s := NewStore(nil, palette)

	first := s.Add(AddRequest{Name: "A"})
	s.Remove(first.ID)
	second := s.Add(AddRequest{Name: "B"})

	if second.Color != "#222222" {
		t.Errorf("color after remove = %s, want #222222", second.Color)
	}
}

func TestToggleTwiceRestores(t *testing.T) {
	s := NewStore(nil, nil)
	a := s.Add(AddRequest{Name: "A"})
	b := s.Add(AddRequest{Name: "B"})

	s.Toggle(a.ID)
	got, _ := s.Get(a.ID)
	if got.Visible {
		t.Fatal("agenda should be hidden after one toggle")
	}
	other, _ := s.Get(b.ID)
	if !other.Visible {
		t.Error("toggle should not affect other agendas")
	}

	s.Toggle(a.ID)
	got, _ = s.Get(a.ID)
	if !got.Visible {
		t.Error("agenda should be visible after two toggles")
	}
}

func TestToggleDoesNotMutateSnapshot(t *testing.T) {
	s := NewStore(nil, nil)
	a := s.Add(AddRequest{Name: "A"})

	snapshot := s.Agendas()
	s.Toggle(a.ID)

	if !snapshot[0].Visible {
		t.Error("earlier snapshot was mutated by Toggle")
	}
}

func TestRemove(t *testing.T) {
	s := NewStore(nil, nil)
	a := s.Add(AddRequest{Name: "A"})
	b := s.Add(AddRequest{Name: "B"})

	s.Remove("agenda-does-not-exist")
	if s.Len() != 2 {
		t.Fatalf("Len = %d after removing unknown id, want 2", s.Len())
	}

	s.Remove(a.ID)
	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
	if _, ok := s.Get(a.ID); ok {
		t.Error("removed agenda still present")
	}
	if _, ok := s.Get(b.ID); !ok {
		t.Error("remaining agenda missing")
	}
}

func TestVisibleProjection(t *testing.T) {
	s := NewStore(&fixedSource{}, []string{"#AA0000", "#00AA00"})
	a := s.Add(AddRequest{Name: "Work"})
	b := s.Add(AddRequest{Name: "Alex", Owner: OwnerFriend})

	visible := s.Visible()
	if len(visible) != 4 {
		t.Fatalf("len(Visible) = %d, want 4", len(visible))
	}
	for i, appt := range visible {
		want := a
		if i >= 2 {
			want = b
		}
		if appt.AgendaID != want.ID || appt.AgendaName != want.Name || appt.AgendaColor != want.Color {
			t.Errorf("visible[%d] tagged %s/%s/%s, want %s/%s/%s", i,
				appt.AgendaID, appt.AgendaName, appt.AgendaColor, want.ID, want.Name, want.Color)
		}
	}

	s.Toggle(a.ID)
	visible = s.Visible()
	if len(visible) != 2 {
		t.Fatalf("len(Visible) = %d after hiding, want 2", len(visible))
	}
	for _, appt := range visible {
		if appt.AgendaID == a.ID {
			t.Errorf("hidden agenda appointment %s leaked into projection", appt.ID)
		}
	}

	stored, _ := s.Get(b.ID)
	if stored.Appointments[0].AgendaName != "" {
		t.Error("projection should not write display fields back into the store")
	}
}

func TestHasPersonalAgenda(t *testing.T) {
	s := NewStore(nil, nil)
	if s.HasPersonalAgenda() {
		t.Error("empty store has no personal agenda")
	}

	s.Add(AddRequest{Name: "Alex", Owner: OwnerFriend})
	if s.HasPersonalAgenda() {
		t.Error("friend agenda is not personal")
	}

	s.Add(AddRequest{Owner: OwnerUser, Source: SourceGoogle})
	if !s.HasPersonalAgenda() {
		t.Error("google user agenda should count as personal")
	}
	if !s.HasName("my google calendar") {
		t.Error("HasName should match case-insensitively")
	}
}

func TestParseViewMode(t *testing.T) {
	tests := map[string]ViewMode{
		"day":   ViewDay,
		"Month": ViewMonth,
		"week":  ViewWeek,
		"":      ViewWeek,
		"year":  ViewWeek,
	}
	for in, want := range tests {
		if got := ParseViewMode(in); got != want {
			t.Errorf("ParseViewMode(%q) = %s, want %s", in, got, want)
		}
	}
}
