// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// venueFile is the on-disk overlay format: a list of venue entries.
// Entries with an ID already in the registry replace the built-in
// venue; new IDs are appended after the built-ins.
type venueFile struct {
	Venues []Venue `yaml:"venues"`
}

// LoadFile merges a YAML venue overlay into the registry.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading venue file: %w", err)
	}
	var vf venueFile
	if err := yaml.Unmarshal(data, &vf); err != nil {
		return fmt.Errorf("parsing venue file: %w", err)
	}
	for i := range vf.Venues {
		v := &vf.Venues[i]
		if v.ID == "" {
			return &ConfigError{Venue: "(unnamed)", Reason: fmt.Sprintf("entry %d has no id", i)}
		}
		if v.URLTemplate == "" {
			return &ConfigError{Venue: v.ID, Reason: "entry has no url"}
		}
		r.add(v)
	}
	return nil
}
