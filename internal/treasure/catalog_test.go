package treasure

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hoomehr/perxplor/internal/core"
)

func TestNewCatalogValidation(t *testing.T) {
	tests := []struct {
		name      string
		treasures []Treasure
		wantErr   string
	}{
		{
			name: "duplicate position",
			treasures: []Treasure{
				{ID: "a", X: 10, Y: 10},
				{ID: "b", X: 10, Y: 10},
			},
			wantErr: "share tile",
		},
		{
			name: "duplicate id",
			treasures: []Treasure{
				{ID: "a", X: 10, Y: 10},
				{ID: "a", X: 11, Y: 10},
			},
			wantErr: "duplicate id",
		},
		{
			name:      "missing id",
			treasures: []Treasure{{Name: "Nameless", X: 5, Y: 5}},
			wantErr:   "no id",
		},
		{
			name:      "off the grid",
			treasures: []Treasure{{ID: "a", X: 500, Y: 10}},
			wantErr:   "off the grid",
		},
		{
			name:      "negative position",
			treasures: []Treasure{{ID: "a", X: -1, Y: 10}},
			wantErr:   "off the grid",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCatalog(tc.treasures)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %q, expected it to mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestCatalogLookups(t *testing.T) {
	c, err := NewCatalog([]Treasure{
		{ID: "a", Name: "First", Rarity: Common, X: 10, Y: 20},
		{ID: "b", Name: "Second", Rarity: Rare, Glyph: "❖", X: 30, Y: 40},
	})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	if c.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", c.Len())
	}

	tr, ok := c.At(core.Coord{X: 10, Y: 20})
	if !ok || tr.ID != "a" {
		t.Errorf("At((10,20)) = %v, %v", tr, ok)
	}
	if _, ok := c.At(core.Coord{X: 0, Y: 0}); ok {
		t.Error("empty tile should not resolve to a treasure")
	}

	tr, ok = c.ByID("b")
	if !ok || tr.Name != "Second" {
		t.Errorf("ByID(b) = %v, %v", tr, ok)
	}
	if _, ok := c.ByID("zzz"); ok {
		t.Error("unknown id should not resolve")
	}

	// Records without a glyph get the default one.
	tr, _ = c.ByID("a")
	if tr.Glyph == "" {
		t.Error("catalog should fill in a default glyph")
	}
}

func TestCatalogAllReturnsCopy(t *testing.T) {
	c, err := NewCatalog([]Treasure{{ID: "a", X: 1, Y: 2}})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	all := c.All()
	all[0].ID = "mutated"

	if got, _ := c.ByID("a"); got.ID != "a" {
		t.Error("mutating All() output must not touch the catalog")
	}
}

func TestParseRejectsBadYAML(t *testing.T) {
	if _, err := Parse([]byte("treasures: [")); err == nil {
		t.Error("expected a parse error")
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "treasures.yaml")
	data := `treasures:
  - id: lone
    name: Lone Find
    rarity: Uncommon
    x: 100
    y: 100
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", c.Len())
	}

	// A custom path that does not exist is an error, not a fallback.
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected an error for a missing custom path")
	}

	// A custom path with an invalid catalog is an error too.
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("treasures: ["), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected an error for an invalid custom catalog")
	}
}

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if c.Len() == 0 {
		t.Fatal("default catalog is empty")
	}

	// The default world must not hide anything under the spawn tile, and
	// every tier should be represented somewhere.
	if _, ok := c.At(core.Spawn()); ok {
		t.Error("default catalog places a treasure on the spawn tile")
	}
	seen := make(map[Rarity]bool)
	for _, tr := range c.All() {
		if !tr.Rarity.Known() {
			t.Errorf("default treasure %s carries unknown rarity %q", tr.ID, tr.Rarity)
		}
		if tr.Glyph == "" {
			t.Errorf("default treasure %s has no glyph", tr.ID)
		}
		seen[tr.Rarity] = true
	}
	for _, r := range []Rarity{Common, Uncommon, Rare, Epic, Legendary} {
		if !seen[r] {
			t.Errorf("default catalog has no %s treasure", r)
		}
	}
}
