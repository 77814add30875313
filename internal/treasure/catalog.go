package treasure

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hoomehr/perxplor/internal/core"
)

// Catalog is a validated set of treasures with unique IDs and unique grid
// positions. A position identifies at most one treasure, which is what lets
// occupancy checks resolve a tile to a single record.
type Catalog struct {
	all   []Treasure
	byID  map[string]int
	byPos map[core.Coord]int
}

// catalogFile is the YAML shape a catalog is authored in.
type catalogFile struct {
	Treasures []Treasure `yaml:"treasures"`
}

// NewCatalog builds a catalog from records, validating each record and the
// uniqueness rules. Two treasures on one tile is an authoring error, not a
// tie the engine should break at runtime.
func NewCatalog(treasures []Treasure) (*Catalog, error) {
	c := &Catalog{
		all:   make([]Treasure, 0, len(treasures)),
		byID:  make(map[string]int, len(treasures)),
		byPos: make(map[core.Coord]int, len(treasures)),
	}
	for _, t := range treasures {
		if err := t.validate(); err != nil {
			return nil, err
		}
		if t.Glyph == "" {
			t.Glyph = "✦"
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("treasure: duplicate id %q", t.ID)
		}
		if prev, dup := c.byPos[t.Pos()]; dup {
			return nil, fmt.Errorf("treasure: %s and %s share tile (%d, %d)", c.all[prev].ID, t.ID, t.X, t.Y)
		}
		c.byID[t.ID] = len(c.all)
		c.byPos[t.Pos()] = len(c.all)
		c.all = append(c.all, t)
	}
	return c, nil
}

// Parse builds a catalog from YAML bytes.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("treasure: cannot parse catalog: %w", err)
	}
	return NewCatalog(f.Treasures)
}

// Load loads a treasure catalog.
// Search order: customPath -> ~/.perxplor/treasures.yaml -> ./configs/treasures.yaml -> embedded default
func Load(customPath string) (*Catalog, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("treasure: cannot read catalog %s: %w", customPath, err)
		}
		c, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("treasure: invalid catalog %s: %w", customPath, err)
		}
		return c, nil
	}

	// Try user config directory
	if userPath := userCatalogPath(); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if c, err := Parse(data); err == nil {
				return c, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/treasures.yaml"); err == nil {
		if c, err := Parse(data); err == nil {
			return c, nil
		}
	}

	return Default()
}

// userCatalogPath returns the path to the user's catalog, or empty if home
// is unavailable.
func userCatalogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".perxplor", "treasures.yaml")
}

// All returns the treasures in catalog order.
func (c *Catalog) All() []Treasure {
	out := make([]Treasure, len(c.all))
	copy(out, c.all)
	return out
}

// Len returns the number of treasures.
func (c *Catalog) Len() int {
	return len(c.all)
}

// At returns the treasure on a tile, if any.
func (c *Catalog) At(pos core.Coord) (Treasure, bool) {
	i, ok := c.byPos[pos]
	if !ok {
		return Treasure{}, false
	}
	return c.all[i], true
}

// ByID returns the treasure with the given id, if any.
func (c *Catalog) ByID(id string) (Treasure, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Treasure{}, false
	}
	return c.all[i], true
}
