package game

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// CatalogFile represents the top-level YAML structure.
type CatalogFile struct {
	Factions []FactionEntry `yaml:"factions"`
}

// FactionEntry represents a single faction roster in the YAML file.
type FactionEntry struct {
	Name   string      `yaml:"name"`
	Heroes []HeroEntry `yaml:"heroes"`
}

// HeroEntry represents one hero template in the YAML file.
type HeroEntry struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	ATK    int    `yaml:"atk"`
	HP     int    `yaml:"hp"`
	Effect string `yaml:"effect"`
	Quote  string `yaml:"quote,omitempty"`
}

// Catalog maps each faction to its ordered roster of hero templates.
// A Catalog is read-only once built.
type Catalog struct {
	rosters map[Faction][]*HeroTemplate
}

// NewCatalog builds a catalog from in-memory rosters.
func NewCatalog(rosters map[Faction][]*HeroTemplate) *Catalog {
	c := &Catalog{rosters: make(map[Faction][]*HeroTemplate, len(rosters))}
	for f, heroes := range rosters {
		c.rosters[f] = append([]*HeroTemplate(nil), heroes...)
	}
	return c
}

// Roster returns the templates of a faction in catalog order.
func (c *Catalog) Roster(f Faction) []*HeroTemplate {
	return append([]*HeroTemplate(nil), c.rosters[f]...)
}

// Factions returns the factions present in the catalog, in display order.
func (c *Catalog) Factions() []Faction {
	var out []Faction
	for _, f := range AllFactions() {
		if len(c.rosters[f]) > 0 {
			out = append(out, f)
		}
	}
	return out
}

// Validate checks that every faction can supply a full half-deck and that
// template stats are usable. Hero IDs must be unique across the whole
// catalog since card IDs are derived from them.
func (c *Catalog) Validate() error {
	owner := make(map[string]Faction)
	for _, f := range AllFactions() {
		heroes := c.rosters[f]
		if len(heroes) < CardsPerFaction {
			return invalidSetup("faction %s has %d heroes, need at least %d", f, len(heroes), CardsPerFaction)
		}
		for _, h := range heroes {
			if h.ATK < 0 {
				return invalidSetup("hero %q has negative ATK %d", h.Name, h.ATK)
			}
			if h.MaxHP <= 0 {
				return invalidSetup("hero %q has non-positive HP %d", h.Name, h.MaxHP)
			}
			if prev, ok := owner[h.ID]; ok {
				if prev == f {
					return invalidSetup("duplicate hero id %q in faction %s", h.ID, f)
				}
				return invalidSetup("hero id %q used by both %s and %s", h.ID, prev, f)
			}
			owner[h.ID] = f
		}
	}
	return nil
}

// ParseCatalog parses catalog YAML.
func ParseCatalog(data []byte) (*Catalog, error) {
	var cf CatalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}

	rosters := make(map[Faction][]*HeroTemplate)
	for _, fe := range cf.Factions {
		f, err := ParseFaction(fe.Name)
		if err != nil {
			return nil, fmt.Errorf("parse catalog YAML: %w", err)
		}
		for i, h := range fe.Heroes {
			id := h.ID
			if id == "" {
				id = fmt.Sprintf("%s-%d", f, i+1)
			}
			rosters[f] = append(rosters[f], &HeroTemplate{
				ID:      id,
				Name:    h.Name,
				Faction: f,
				ATK:     h.ATK,
				MaxHP:   h.HP,
				Effect:  h.Effect,
				Quote:   h.Quote,
			})
		}
	}

	c := &Catalog{rosters: rosters}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadCatalog reads and parses a catalog YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data)
}

// DefaultCatalog returns the built-in four-faction catalog.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return c
}

// CatalogFromPath loads path, or the built-in catalog when path is empty.
func CatalogFromPath(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	return LoadCatalog(path)
}
