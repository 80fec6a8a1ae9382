// internal/catalog/catalog.go
//
// Static game content: the medical conditions (one blister pack each) and
// the medications that can be dragged onto them.
//
// Loading behavior (Load):
//  1. If a path is given, read the YAML catalog from that file.
//  2. Otherwise fall back to the catalog embedded in the assets package.
//
// A loaded Catalog is validated once and never mutated afterwards; game
// sessions only read from it.

package catalog

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/pillgame/apps/go-server/assets"
)

// Condition is one blister pack definition.
type Condition struct {
	Key     string   `yaml:"key" json:"key"`
	Icon    string   `yaml:"icon" json:"icon"`
	Accepts []string `yaml:"accepts" json:"accepts"`
}

// Medication is one draggable pill. Color and Category are for display only.
type Medication struct {
	ID       int    `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Color    string `yaml:"color" json:"color"`
	Category string `yaml:"category" json:"category"`
}

// Catalog is the full static content of a game.
type Catalog struct {
	Conditions  []Condition  `yaml:"conditions" json:"conditions"`
	Medications []Medication `yaml:"medications" json:"medications"`
}

// SlotsPerPack is the fixed number of slots in every blister pack.
const SlotsPerPack = 2

// Load reads a catalog from path, or the embedded default when path is empty.
func Load(path string) (*Catalog, error) {
	var (
		raw []byte
		err error
	)
	if path == "" {
		raw, err = assets.CatalogYAML()
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(raw)
}

// Default returns the embedded catalog. The embedded file is part of the
// build, so a failure here is a programming error.
func Default() *Catalog {
	c, err := Load("")
	if err != nil {
		panic(err)
	}
	return c
}

// Parse decodes and validates a YAML catalog.
func Parse(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate enforces the structural rules the engine relies on:
//   - at least one condition, each with a unique key and >= 1 accepted name;
//   - medication ids are positive and unique, names are unique;
//   - every accepted name refers to a medication;
//   - there are enough medications to fill every slot.
func (c *Catalog) Validate() error {
	if len(c.Conditions) == 0 {
		return errors.New("catalog: no conditions")
	}
	ids := make(map[int]struct{}, len(c.Medications))
	names := make(map[string]struct{}, len(c.Medications))
	for _, m := range c.Medications {
		if m.ID <= 0 {
			return fmt.Errorf("catalog: medication %q has invalid id %d", m.Name, m.ID)
		}
		if m.Name == "" {
			return fmt.Errorf("catalog: medication %d has no name", m.ID)
		}
		if _, dup := ids[m.ID]; dup {
			return fmt.Errorf("catalog: duplicate medication id %d", m.ID)
		}
		if _, dup := names[m.Name]; dup {
			return fmt.Errorf("catalog: duplicate medication name %q", m.Name)
		}
		ids[m.ID] = struct{}{}
		names[m.Name] = struct{}{}
	}

	keys := make(map[string]struct{}, len(c.Conditions))
	for _, cond := range c.Conditions {
		if cond.Key == "" {
			return errors.New("catalog: condition with empty key")
		}
		if _, dup := keys[cond.Key]; dup {
			return fmt.Errorf("catalog: duplicate condition %q", cond.Key)
		}
		keys[cond.Key] = struct{}{}
		if len(cond.Accepts) == 0 {
			return fmt.Errorf("catalog: condition %q accepts no medication", cond.Key)
		}
		for _, n := range cond.Accepts {
			if _, ok := names[n]; !ok {
				return fmt.Errorf("catalog: condition %q accepts unknown medication %q", cond.Key, n)
			}
		}
	}

	if need := len(c.Conditions) * SlotsPerPack; len(c.Medications) < need {
		return fmt.Errorf("catalog: %d medications cannot fill %d slots", len(c.Medications), need)
	}
	return nil
}

// Accepts reports whether condition key accepts the medication name.
func (c *Catalog) Accepts(key, name string) bool {
	for _, cond := range c.Conditions {
		if cond.Key == key {
			return slices.Contains(cond.Accepts, name)
		}
	}
	return false
}

// TotalSlots is the number of slots across all packs.
func (c *Catalog) TotalSlots() int { return len(c.Conditions) * SlotsPerPack }
