package config

import (
	_ "embed"
)

//go:embed defaults/perxplor.yaml
var defaultSettingsYAML []byte

// DefaultSettings returns hardcoded defaults, used only if the embedded
// YAML somehow fails to parse.
func DefaultSettings() Settings {
	return Settings{
		Game: GameSettings{
			Policy:      "auto",
			InspectZoom: "Local",
			GlyphZoom:   "Local",
			StartZoom:   "Local",
			Seed:        7,
		},
		Animation: AnimationSettings{
			FPS: 12,
		},
		Storage: StorageSettings{
			Path: "~/.perxplor/progress.db",
		},
	}
}
