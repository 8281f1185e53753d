package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwarden/agendas/internal/agenda"
)

// Preset describes an agenda to add at startup.
type Preset struct {
	Name   string `yaml:"name"`
	Owner  string `yaml:"owner"`
	Source string `yaml:"source"`
	Link   string `yaml:"link,omitempty"`
	Hidden bool   `yaml:"hidden,omitempty"`
}

// PresetFile is the YAML document read by LoadPresets:
//
//	agendas:
//	  - name: Work
//	    owner: user
//	    source: google
//	  - name: Alex
//	    owner: friend
//	    link: https://example.com/alex.ics
//	    hidden: true
type PresetFile struct {
	Agendas []Preset `yaml:"agendas"`
}

// Request converts the preset into a store add request.
func (p Preset) Request() agenda.AddRequest {
	return agenda.AddRequest{
		Name:   p.Name,
		Owner:  agenda.ParseOwnerType(p.Owner),
		Source: agenda.ParseSource(p.Source),
		Link:   p.Link,
	}
}

// LoadPresets reads the preset file at path. A missing file yields no
// presets and no error.
func LoadPresets(path string) ([]Preset, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading presets %s: %w", path, err)
	}

	var file PresetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing presets %s: %w", path, err)
	}
	return file.Agendas, nil
}

// ApplyPresets adds every preset whose name is not already present in
// store and hides those marked hidden. It returns the agendas it added.
func ApplyPresets(store *agenda.Store, presets []Preset) []agenda.Agenda {
	var added []agenda.Agenda
	for _, p := range presets {
		req := p.Request().Normalize()
		if store.HasName(req.Name) {
			continue
		}
		a := store.Add(req)
		if p.Hidden {
			store.Toggle(a.ID)
			a.Visible = false
		}
		added = append(added, a)
	}
	return added
}
