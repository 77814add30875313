package tui

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/hoomehr/perxplor/internal/config"
	"github.com/hoomehr/perxplor/internal/game"
	"github.com/hoomehr/perxplor/internal/treasure"
)

// EngineOptions maps loaded settings onto engine options for one identity.
// store may be nil when persistence is unavailable; the session then runs
// memory-only.
func EngineOptions(settings config.Settings, catalog *treasure.Catalog, store game.Store, identity string, logger *log.Logger) (game.Options, error) {
	policy, err := game.ParsePolicy(settings.Game.Policy)
	if err != nil {
		return game.Options{}, err
	}
	inspect, err := settings.InspectZoomLevel()
	if err != nil {
		return game.Options{}, err
	}
	glyph, err := settings.GlyphZoomLevel()
	if err != nil {
		return game.Options{}, err
	}
	start, err := settings.StartZoomLevel()
	if err != nil {
		return game.Options{}, err
	}

	return game.Options{
		Identity:    identity,
		Catalog:     catalog,
		Store:       store,
		Logger:      logger,
		Policy:      policy,
		Seed:        settings.Game.Seed,
		InspectZoom: inspect,
		GlyphZoom:   glyph,
		StartZoom:   start,
	}, nil
}

// NewSession loads the identity's progress and opens an engine for it.
func NewSession(settings config.Settings, catalog *treasure.Catalog, store game.Store, identity string, logger *log.Logger) (*game.Engine, error) {
	opts, err := EngineOptions(settings, catalog, store, identity, logger)
	if err != nil {
		return nil, err
	}
	engine, err := game.New(opts)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot open session for %q: %w", identity, err)
	}
	return engine, nil
}
