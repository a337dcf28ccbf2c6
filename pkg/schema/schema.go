// Package schema loads the relation label schema: the closed set of category
// names a run is allowed to produce, with optional per-category metadata.
package schema

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/soundprediction/relex/pkg/types"
)

// Category describes one relation type.
type Category struct {
	Name string `yaml:"name"`
	// Symmetric marks relations where argument order carries no meaning
	// (e.g. co-occurs-with). Informational for downstream consumers; the
	// pipeline still records the order it saw.
	Symmetric bool `yaml:"symmetric,omitempty"`
	// FirstTypes and SecondTypes optionally constrain the entity types
	// allowed in each argument slot.
	FirstTypes  []string `yaml:"first_types,omitempty"`
	SecondTypes []string `yaml:"second_types,omitempty"`
}

// Schema is the closed set of relation categories for a run.
type Schema struct {
	Categories []Category `yaml:"categories"`

	byName map[string]Category
}

// Load reads a schema from a YAML file.
func Load(path string) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open schema file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a schema from YAML.
func Parse(r io.Reader) (*Schema, error) {
	var s Schema
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode schema: %w", err)
	}
	if len(s.Categories) == 0 {
		return nil, fmt.Errorf("schema defines no categories")
	}
	s.byName = make(map[string]Category, len(s.Categories))
	for _, c := range s.Categories {
		if c.Name == "" {
			return nil, fmt.Errorf("schema category with empty name")
		}
		s.byName[c.Name] = c
	}
	return &s, nil
}

// Has reports whether the category is part of the schema. Encoded labels are
// accepted: the inverted suffix is stripped and the negative sentinel is
// always considered valid.
func (s *Schema) Has(encoded string) bool {
	label := types.ParseLabel(encoded)
	if label.IsNoRelation() {
		return true
	}
	_, ok := s.byName[label.Category]
	return ok
}

// Get returns the category definition by name.
func (s *Schema) Get(name string) (Category, bool) {
	c, ok := s.byName[name]
	return c, ok
}

// Names returns the category names in declaration order.
func (s *Schema) Names() []string {
	names := make([]string, 0, len(s.Categories))
	for _, c := range s.Categories {
		names = append(names, c.Name)
	}
	return names
}
