// Package treasure defines the treasure records the world is seeded with
// and loads them from YAML catalogs. Records are immutable once loaded; the
// game engine tracks per-player state about them but never edits them.
package treasure

import (
	"fmt"

	"github.com/hoomehr/perxplor/internal/core"
)

// Rarity is a treasure's reward tier. Catalogs spell it out as a string so
// authored files stay readable.
type Rarity string

const (
	Common    Rarity = "Common"
	Uncommon  Rarity = "Uncommon"
	Rare      Rarity = "Rare"
	Epic      Rarity = "Epic"
	Legendary Rarity = "Legendary"
)

// fallbackValue is what an unrecognized tier pays out. Collecting must never
// fail over a catalog typo, so the mapping is total.
const fallbackValue = 10

// Value returns the score a collected treasure of this rarity pays out.
func (r Rarity) Value() int {
	switch r {
	case Common:
		return 10
	case Uncommon:
		return 50
	case Rare:
		return 200
	case Epic:
		return 500
	case Legendary:
		return 1000
	default:
		return fallbackValue
	}
}

// Known reports whether the rarity is one of the defined tiers. Unknown
// tiers still collect at the fallback value; callers use this to log them.
func (r Rarity) Known() bool {
	switch r {
	case Common, Uncommon, Rare, Epic, Legendary:
		return true
	}
	return false
}

// Treasure is one collectible placed on the grid.
type Treasure struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Glyph       string `yaml:"glyph"`
	Rarity      Rarity `yaml:"rarity"`
	Biome       string `yaml:"biome"` // advisory placement note, not enforced
	X           int    `yaml:"x"`
	Y           int    `yaml:"y"`
}

// Pos returns the treasure's grid position.
func (t Treasure) Pos() core.Coord {
	return core.Coord{X: t.X, Y: t.Y}
}

// validate checks the fields a single record must carry. Position and ID
// uniqueness is the catalog's job.
func (t Treasure) validate() error {
	if t.ID == "" {
		return fmt.Errorf("treasure: record %q has no id", t.Name)
	}
	if !core.InBounds(t.Pos()) {
		return fmt.Errorf("treasure: %s placed off the grid at (%d, %d)", t.ID, t.X, t.Y)
	}
	return nil
}
