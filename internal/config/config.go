// Package config provides YAML-based settings loading for perxplor:
// collect policy, zoom thresholds, animation rate, and storage paths.
package config

import (
	"fmt"
	"strings"

	"github.com/hoomehr/perxplor/internal/core"
)

// Settings holds everything a session can be tuned with. Zero values defer
// to the embedded defaults, so a partial config file only overrides what it
// names.
type Settings struct {
	Game      GameSettings      `yaml:"game"`
	Animation AnimationSettings `yaml:"animation"`
	Storage   StorageSettings   `yaml:"storage"`
}

// GameSettings tunes the session engine.
type GameSettings struct {
	// Policy is what stepping onto a treasure does: "auto" collects it,
	// "confirm" opens its card and waits for an explicit collect.
	Policy string `yaml:"policy"`
	// InspectZoom is the widest zoom level at which clicking a treasure
	// tile opens its detail card, by level name.
	InspectZoom string `yaml:"inspect_zoom"`
	// GlyphZoom is the widest zoom level at which treasure glyphs render.
	GlyphZoom string `yaml:"glyph_zoom"`
	// StartZoom is the zoom level a session begins at.
	StartZoom string `yaml:"start_zoom"`
	// Seed picks the world. Every seed is a different map; the same seed
	// always renders the same one.
	Seed int64 `yaml:"seed"`
}

// AnimationSettings tunes the detail-zoom animation clock.
type AnimationSettings struct {
	// FPS is how many animation ticks run per second while the zoom sits
	// at the detail level. The clock is idle at every other level.
	FPS int `yaml:"fps"`
}

// StorageSettings locates the progress database.
type StorageSettings struct {
	Path string `yaml:"path"`
}

// Validate checks the settings that can be spelled wrong in a file.
func (s Settings) Validate() error {
	switch s.Game.Policy {
	case "", "auto", "confirm":
	default:
		return fmt.Errorf("config: unknown collect policy %q (want auto or confirm)", s.Game.Policy)
	}
	for _, name := range []string{s.Game.InspectZoom, s.Game.GlyphZoom, s.Game.StartZoom} {
		if _, err := zoomByName(name); err != nil {
			return err
		}
	}
	if s.Animation.FPS < 0 {
		return fmt.Errorf("config: animation fps must not be negative, got %d", s.Animation.FPS)
	}
	return nil
}

// InspectZoomLevel resolves the inspect threshold to a zoom level.
// Nil means the setting was left empty and the engine default applies.
func (s Settings) InspectZoomLevel() (*core.ZoomLevel, error) {
	return zoomByName(s.Game.InspectZoom)
}

// GlyphZoomLevel resolves the glyph threshold to a zoom level.
// Nil means the setting was left empty and the engine default applies.
func (s Settings) GlyphZoomLevel() (*core.ZoomLevel, error) {
	return zoomByName(s.Game.GlyphZoom)
}

// StartZoomLevel resolves the starting zoom to a zoom level.
// Nil means the setting was left empty and the engine default applies.
func (s Settings) StartZoomLevel() (*core.ZoomLevel, error) {
	return zoomByName(s.Game.StartZoom)
}

// zoomByName resolves a zoom level from its config spelling,
// case-insensitively. The empty name resolves to nil, distinct from an
// explicit "World": a named level is always honored as written.
func zoomByName(name string) (*core.ZoomLevel, error) {
	if name == "" {
		return nil, nil
	}
	for z := core.ZoomWorld; z <= core.ZoomDetail; z++ {
		if strings.EqualFold(z.String(), name) {
			return &z, nil
		}
	}
	return nil, fmt.Errorf("config: unknown zoom level %q (want World, Region, Area, Local or Detail)", name)
}
