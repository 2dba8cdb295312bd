// Package opponent provides NPC opponent templates and level-bracketed
// matchmaking for the battle loop.
package opponent

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Template defines a reusable opponent archetype loaded from YAML. Templates
// are immutable once loaded; battles copy MaxHP into per-battle health and
// never write back.
type Template struct {
	Name           string `yaml:"name"`
	Level          int    `yaml:"level"`
	MaxHP          int    `yaml:"max_hp"`
	Attack         int    `yaml:"attack"`
	Defense        int    `yaml:"defense"`
	Speed          int    `yaml:"speed"`
	CriticalDamage int    `yaml:"critical_damage"` // percent chance of a critical hit
}

// Validate checks that the template satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff Name is non-empty, Level >= 1, MaxHP >= 1,
// and the remaining stats are non-negative; returns an error on the first
// violation otherwise.
func (t *Template) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("opponent template: name must not be empty")
	}
	if t.Level < 1 {
		return fmt.Errorf("opponent template %q: level must be >= 1", t.Name)
	}
	if t.MaxHP < 1 {
		return fmt.Errorf("opponent template %q: max_hp must be >= 1", t.Name)
	}
	if t.Attack < 0 || t.Defense < 0 || t.Speed < 0 {
		return fmt.Errorf("opponent template %q: stats must be non-negative", t.Name)
	}
	if t.CriticalDamage < 0 || t.CriticalDamage > 100 {
		return fmt.Errorf("opponent template %q: critical_damage must be within [0, 100]", t.Name)
	}
	return nil
}

// LoadTemplateFromBytes parses a single opponent template from raw YAML bytes.
//
// Precondition: data must be valid YAML for a single Template.
// Postcondition: Returns a validated *Template, or an error.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing opponent YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadTemplates reads all *.yaml files in dir and returns the parsed templates.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all templates or an error on the first parse or
// validate failure; on error, the partial result is discarded.
func LoadTemplates(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading opponent dir %q: %w", dir, err)
	}

	var templates []*Template
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}
